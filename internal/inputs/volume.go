// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package inputs

// VolumeConfig holds the raw EBS volume and snapshot inputs.
type VolumeConfig struct {
	DeviceName  string
	Size        string
	Iops        string
	Encrypted   string
	Force       string
	Description string
}

// VolumeInputs is the validated form of VolumeConfig. Size and Iops are
// canonical decimal strings, empty when not given.
type VolumeInputs struct {
	DeviceName  string
	Size        string
	Iops        string
	Encrypted   bool
	Force       bool
	Description string
}

// NewVolumeInputs validates cfg. Encrypted and Force default to false.
func NewVolumeInputs(cfg VolumeConfig) (VolumeInputs, error) {
	size, err := ValidPositive(InputSize, cfg.Size)
	if err != nil {
		return VolumeInputs{}, err
	}
	iops, err := ValidPositive(InputIops, cfg.Iops)
	if err != nil {
		return VolumeInputs{}, err
	}
	return VolumeInputs{
		DeviceName:  DefaultString(cfg.DeviceName, ""),
		Size:        size,
		Iops:        iops,
		Encrypted:   EnforcedBoolean(cfg.Encrypted, false),
		Force:       EnforcedBoolean(cfg.Force, false),
		Description: DefaultString(cfg.Description, ""),
	}, nil
}
