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

// ImageConfig holds the raw machine image inputs.
type ImageConfig struct {
	ImageName           string
	ImageDescription    string
	ImageIDsString      string
	OwnersString        string
	UserIDsString       string
	UserGroupsString    string
	Type                string
	IsPublic            string
	State               string
	ImageNoReboot       string
	PermissionOperation string
}

// ImageInputs is the validated form of ImageConfig.
type ImageInputs struct {
	ImageName           string
	ImageDescription    string
	ImageIDsString      string
	OwnersString        string
	UserIDsString       string
	UserGroupsString    string
	Type                ImageType
	IsPublic            string
	State               ImageState
	NoReboot            bool
	PermissionOperation PermissionOperation
}

// NewImageInputs validates cfg. NoReboot defaults to true.
func NewImageInputs(cfg ImageConfig) (ImageInputs, error) {
	typ, err := ParseImageType(cfg.Type)
	if err != nil {
		return ImageInputs{}, err
	}
	state, err := ParseImageState(cfg.State)
	if err != nil {
		return ImageInputs{}, err
	}
	op, err := ParsePermissionOperation(cfg.PermissionOperation)
	if err != nil {
		return ImageInputs{}, err
	}
	return ImageInputs{
		ImageName:           DefaultString(cfg.ImageName, ""),
		ImageDescription:    DefaultString(cfg.ImageDescription, ""),
		ImageIDsString:      DefaultString(cfg.ImageIDsString, ""),
		OwnersString:        DefaultString(cfg.OwnersString, ""),
		UserIDsString:       DefaultString(cfg.UserIDsString, ""),
		UserGroupsString:    DefaultString(cfg.UserGroupsString, ""),
		Type:                typ,
		IsPublic:            RelevantBoolean(cfg.IsPublic),
		State:               state,
		NoReboot:            EnforcedBoolean(cfg.ImageNoReboot, true),
		PermissionOperation: op,
	}, nil
}
