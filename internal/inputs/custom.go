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

// CustomConfig holds the raw resource identifiers and per-action extras.
type CustomConfig struct {
	Region            string
	InstanceID        string
	VolumeID          string
	ImageID           string
	SnapshotID        string
	AttachmentID      string
	AllocationID      string
	AssociationID     string
	SubnetID          string
	AvailabilityZone  string
	InstanceType      string
	KeyName           string
	ResourceIDsString string
	KeyTagsString     string
	ValueTagsString   string
	VolumeType        string
	KmsKeyID          string
	Attribute         string
}

// CustomInputs is the validated form of CustomConfig. List-valued inputs
// stay delimited strings; the query mappers split them with the common
// delimiter.
type CustomInputs struct {
	Region            string
	InstanceID        string
	VolumeID          string
	ImageID           string
	SnapshotID        string
	AttachmentID      string
	AllocationID      string
	AssociationID     string
	SubnetID          string
	AvailabilityZone  string
	InstanceType      string
	KeyName           string
	ResourceIDsString string
	KeyTagsString     string
	ValueTagsString   string
	VolumeType        VolumeType
	KmsKeyID          string
	Attribute         string
}

// NewCustomInputs trims identifiers, maps the NotRelevant sentinel to blank
// and validates the volume type.
func NewCustomInputs(cfg CustomConfig) (CustomInputs, error) {
	vt, err := ParseVolumeType(cfg.VolumeType)
	if err != nil {
		return CustomInputs{}, err
	}
	return CustomInputs{
		Region:            DefaultString(cfg.Region, ""),
		InstanceID:        DefaultString(cfg.InstanceID, ""),
		VolumeID:          DefaultString(cfg.VolumeID, ""),
		ImageID:           DefaultString(cfg.ImageID, ""),
		SnapshotID:        DefaultString(cfg.SnapshotID, ""),
		AttachmentID:      DefaultString(cfg.AttachmentID, ""),
		AllocationID:      DefaultString(cfg.AllocationID, ""),
		AssociationID:     DefaultString(cfg.AssociationID, ""),
		SubnetID:          DefaultString(cfg.SubnetID, ""),
		AvailabilityZone:  DefaultString(cfg.AvailabilityZone, ""),
		InstanceType:      DefaultString(cfg.InstanceType, ""),
		KeyName:           DefaultString(cfg.KeyName, ""),
		ResourceIDsString: DefaultString(cfg.ResourceIDsString, ""),
		KeyTagsString:     DefaultString(cfg.KeyTagsString, ""),
		// Kept verbatim: a lone "Not relevant" clears the value of one tag.
		ValueTagsString: cfg.ValueTagsString,
		VolumeType:      vt,
		KmsKeyID:        DefaultString(cfg.KmsKeyID, ""),
		Attribute:       DefaultString(cfg.Attribute, ""),
	}, nil
}
