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
		Action: "AllocateAddress",
		build: func(p *Params, in Inputs) error {
			return p.SetIf("Domain", string(in.ElasticIP.Domain))
		},
	})
	register(Mapping{
		Action: "AssociateAddress",
		build:  associateAddress,
	})
	register(Mapping{
		Action: "DisassociateAddress",
		build: func(p *Params, in Inputs) error {
			if err := exactlyOne("DisassociateAddress",
				"AssociationId", in.Custom.AssociationID,
				"PublicIp", in.ElasticIP.PublicIP); err != nil {
				return err
			}
			return setAll(p,
				"AssociationId", in.Custom.AssociationID,
				"PublicIp", in.ElasticIP.PublicIP,
			)
		},
	})
	register(Mapping{
		Action: "ReleaseAddress",
		build: func(p *Params, in Inputs) error {
			if err := exactlyOne("ReleaseAddress",
				"AllocationId", in.Custom.AllocationID,
				"PublicIp", in.ElasticIP.PublicIP); err != nil {
				return err
			}
			return setAll(p,
				"AllocationId", in.Custom.AllocationID,
				"PublicIp", in.ElasticIP.PublicIP,
			)
		},
	})
}

func associateAddress(p *Params, in Inputs) error {
	const action = "AssociateAddress"
	if err := exactlyOne(action,
		"AllocationId", in.Custom.AllocationID,
		"PublicIp", in.ElasticIP.PublicIP); err != nil {
		return err
	}
	if in.Custom.InstanceID == "" && in.Network.NetworkInterfaceID == "" {
		return ec2errors.Request(action, "InstanceId",
			"one of "+inputs.InputInstanceID+" or "+inputs.InputNetworkInterfaceID+" is required")
	}
	return setAll(p,
		"AllocationId", in.Custom.AllocationID,
		"PublicIp", in.ElasticIP.PublicIP,
		"InstanceId", in.Custom.InstanceID,
		"NetworkInterfaceId", in.Network.NetworkInterfaceID,
		"PrivateIpAddress", in.ElasticIP.PrivateIPAddress,
		"AllowReassociation", in.ElasticIP.AllowReassociation,
	)
}
