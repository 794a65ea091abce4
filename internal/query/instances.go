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
	"strconv"

	"github.com/tombee/ec2actions/internal/inputs"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func init() {
	register(Mapping{
		Action:   "RunInstances",
		Required: []string{inputs.InputImageID},
		build:    runInstances,
	})
	register(Mapping{Action: "StartInstances", build: instanceIDs("StartInstances")})
	register(Mapping{Action: "RebootInstances", build: instanceIDs("RebootInstances")})
	register(Mapping{Action: "TerminateInstances", build: instanceIDs("TerminateInstances")})
	register(Mapping{
		Action: "StopInstances",
		build: func(p *Params, in Inputs) error {
			if err := instanceIDs("StopInstances")(p, in); err != nil {
				return err
			}
			return p.SetIf("Force", in.Instance.ForceStop)
		},
	})
	register(Mapping{
		Action: "DescribeInstances",
		build:  describeInstances,
	})
}

// targetInstances returns the instances named by instanceIdsString, falling
// back to the single instanceId.
func targetInstances(in Inputs) []string {
	ids := in.list(in.Instance.InstanceIDsString)
	if len(ids) == 0 && in.Custom.InstanceID != "" {
		ids = []string{in.Custom.InstanceID}
	}
	return ids
}

// instanceIDs builds the InstanceId.N list shared by the lifecycle actions.
func instanceIDs(action string) func(*Params, Inputs) error {
	return func(p *Params, in Inputs) error {
		ids := targetInstances(in)
		if len(ids) == 0 {
			return ec2errors.Request(action, "InstanceId",
				"one of "+inputs.InputInstanceIDsString+" or "+inputs.InputInstanceID+" is required")
		}
		return p.SetList("InstanceId", ids)
	}
}

func runInstances(p *Params, in Inputs) error {
	inst := in.Instance
	if err := setAll(p,
		"ImageId", in.Custom.ImageID,
		"MinCount", strconv.Itoa(inst.MinCount),
		"MaxCount", strconv.Itoa(inst.MaxCount),
		"InstanceType", in.Custom.InstanceType,
		"KeyName", in.Custom.KeyName,
		"SubnetId", in.Custom.SubnetID,
		"PrivateIpAddress", in.Network.PrivateIPAddress,
		"UserData", inst.UserData,
		"ClientToken", inst.ClientToken,
		"DisableApiTermination", inst.DisableAPITermination,
		"InstanceInitiatedShutdownBehavior", string(inst.ShutdownBehavior),
		"Monitoring.Enabled", inst.Monitoring,
		"Placement.AvailabilityZone", in.Custom.AvailabilityZone,
		"Placement.GroupName", inst.PlacementGroupName,
		"Placement.Tenancy", string(inst.Tenancy),
	); err != nil {
		return err
	}
	if err := p.SetList("SecurityGroupId", in.list(in.Network.SecurityGroupIDsString)); err != nil {
		return err
	}
	if len(in.list(in.Custom.KeyTagsString)) == 0 {
		return nil
	}
	if err := p.Set("TagSpecification.1.ResourceType", "instance"); err != nil {
		return err
	}
	return setTags(p, "TagSpecification.1.Tag", in)
}

func describeInstances(p *Params, in Inputs) error {
	if err := p.SetList("InstanceId", targetInstances(in)); err != nil {
		return err
	}
	f, err := instanceFilters(in)
	if err != nil {
		return err
	}
	return f.apply(p)
}

// InstanceFilters returns the DescribeInstances filters selected by in, for
// callers that query instances through an SDK client.
func InstanceFilters(in Inputs) ([]Filter, error) {
	f, err := instanceFilters(in)
	if err != nil {
		return nil, err
	}
	return f.list(), nil
}

func instanceFilters(in Inputs) (filters, error) {
	inst := in.Instance
	var f filters
	f.add("instance-state-name", string(inst.InstanceStateName))
	f.add("instance-state-code", inst.InstanceStateCode)
	f.add("architecture", string(inst.Architecture))
	f.add("tenancy", string(inst.Tenancy))
	f.add("monitoring-state", string(inst.MonitoringState))
	f.add("availability-zone", in.Custom.AvailabilityZone)
	f.add("instance-type", in.Custom.InstanceType)
	f.add("key-name", in.Custom.KeyName)
	f.add("image-id", in.Custom.ImageID)
	f.add("subnet-id", in.Custom.SubnetID)
	f.add("placement-group-name", inst.PlacementGroupName)
	if err := f.addTags(in); err != nil {
		return filters{}, err
	}
	return f, nil
}
