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

package query

import (
	"github.com/tombee/ec2actions/internal/inputs"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func init() {
	register(Mapping{
		Action:   "AttachVolume",
		Required: []string{inputs.InputVolumeID, inputs.InputInstanceID, inputs.InputDeviceName},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"Device", in.Volume.DeviceName,
				"InstanceId", in.Custom.InstanceID,
				"VolumeId", in.Custom.VolumeID,
			)
		},
	})
	register(Mapping{
		Action:   "DetachVolume",
		Required: []string{inputs.InputVolumeID},
		build: func(p *Params, in Inputs) error {
			if err := setAll(p,
				"VolumeId", in.Custom.VolumeID,
				"InstanceId", in.Custom.InstanceID,
				"Device", in.Volume.DeviceName,
			); err != nil {
				return err
			}
			if in.Volume.Force {
				return p.Set("Force", "true")
			}
			return nil
		},
	})
	register(Mapping{
		Action:   "CreateVolume",
		Required: []string{inputs.InputAvailabilityZone},
		build:    createVolume,
	})
	register(Mapping{
		Action:   "DeleteVolume",
		Required: []string{inputs.InputVolumeID},
		build: func(p *Params, in Inputs) error {
			return p.Set("VolumeId", in.Custom.VolumeID)
		},
	})
	register(Mapping{
		Action: "DescribeVolumes",
		build:  describeVolumes,
	})
	register(Mapping{
		Action:   "CreateSnapshot",
		Required: []string{inputs.InputVolumeID},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"VolumeId", in.Custom.VolumeID,
				"Description", in.Volume.Description,
			)
		},
	})
	register(Mapping{
		Action:   "DeleteSnapshot",
		Required: []string{inputs.InputSnapshotID},
		build: func(p *Params, in Inputs) error {
			return p.Set("SnapshotId", in.Custom.SnapshotID)
		},
	})
}

func createVolume(p *Params, in Inputs) error {
	if in.Volume.Size == "" && in.Custom.SnapshotID == "" {
		return ec2errors.Request("CreateVolume", "Size", "one of size or snapshotId is required")
	}
	volumeType := in.Custom.VolumeType
	if volumeType == "" {
		volumeType = inputs.VolumeStandard
	}
	if err := setAll(p,
		"AvailabilityZone", in.Custom.AvailabilityZone,
		"Size", in.Volume.Size,
		"SnapshotId", in.Custom.SnapshotID,
		"VolumeType", string(volumeType),
	); err != nil {
		return err
	}
	if err := p.SetIf("Iops", in.Volume.Iops); err != nil {
		return err
	}
	if in.Volume.Encrypted {
		if err := p.Set("Encrypted", "true"); err != nil {
			return err
		}
	}
	return p.SetIf("KmsKeyId", in.Custom.KmsKeyID)
}

func describeVolumes(p *Params, in Inputs) error {
	ids := in.list(in.Custom.ResourceIDsString)
	if len(ids) == 0 && in.Custom.VolumeID != "" {
		ids = []string{in.Custom.VolumeID}
	}
	if err := p.SetList("VolumeId", ids); err != nil {
		return err
	}

	var f filters
	f.add("availability-zone", in.Custom.AvailabilityZone)
	f.add("volume-type", string(in.Custom.VolumeType))
	f.add("attachment.instance-id", in.Custom.InstanceID)
	f.add("attachment.device", in.Volume.DeviceName)
	f.add("snapshot-id", in.Custom.SnapshotID)
	if err := f.addTags(in); err != nil {
		return err
	}
	return f.apply(p)
}
