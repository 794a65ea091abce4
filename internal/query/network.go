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
)

func init() {
	register(Mapping{
		Action:   "AttachNetworkInterface",
		Required: []string{inputs.InputNetworkInterfaceID, inputs.InputInstanceID, inputs.InputDeviceIndex},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"NetworkInterfaceId", in.Network.NetworkInterfaceID,
				"InstanceId", in.Custom.InstanceID,
				"DeviceIndex", in.Network.DeviceIndex,
			)
		},
	})
	register(Mapping{
		Action:   "DetachNetworkInterface",
		Required: []string{inputs.InputAttachmentID},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"AttachmentId", in.Custom.AttachmentID,
				"Force", in.Network.ForceDetach,
			)
		},
	})
	register(Mapping{
		Action:   "CreateNetworkInterface",
		Required: []string{inputs.InputSubnetID},
		build: func(p *Params, in Inputs) error {
			if err := setAll(p,
				"SubnetId", in.Custom.SubnetID,
				"Description", in.Network.Description,
				"PrivateIpAddress", in.Network.PrivateIPAddress,
				"SecondaryPrivateIpAddressCount", in.Network.SecondaryPrivateIPAddressCount,
			); err != nil {
				return err
			}
			return p.SetList("SecurityGroupId", in.list(in.Network.SecurityGroupIDsString))
		},
	})
	register(Mapping{
		Action:   "DeleteNetworkInterface",
		Required: []string{inputs.InputNetworkInterfaceID},
		build: func(p *Params, in Inputs) error {
			return p.Set("NetworkInterfaceId", in.Network.NetworkInterfaceID)
		},
	})
}
