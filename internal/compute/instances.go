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

package compute

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tombee/ec2actions/internal/query"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

const (
	// DefaultInstanceType replaces a "Not relevant" instance type.
	DefaultInstanceType = "t2.micro"

	// UpdatedMessage is the result of an update that left the instance stopped.
	UpdatedMessage = "Instance successfully updated."
)

// Instance summarizes one instance returned by DescribeInstancesInRegion.
type Instance struct {
	InstanceID       string            `json:"instanceId"`
	InstanceType     string            `json:"instanceType"`
	State            string            `json:"state"`
	ImageID          string            `json:"imageId,omitempty"`
	AvailabilityZone string            `json:"availabilityZone,omitempty"`
	PrivateIPAddress string            `json:"privateIpAddress,omitempty"`
	PublicIPAddress  string            `json:"publicIpAddress,omitempty"`
	ReservationID    string            `json:"reservationId"`
	LaunchTime       *time.Time        `json:"launchTime,omitempty"`
	Tags             map[string]string `json:"tags,omitempty"`
}

// Identity is the caller identity behind the configured credentials.
type Identity struct {
	Account string `json:"account"`
	ARN     string `json:"arn"`
	UserID  string `json:"userId"`
}

// UpdateInstanceTypeInput holds the arguments of UpdateInstanceType.
type UpdateInstanceTypeInput struct {
	InstanceID        string
	InstanceType      string
	CheckStateTimeout time.Duration
	PollingInterval   time.Duration
}

// DescribeRegions returns the sorted names of the regions available to the
// account.
func (s *Service) DescribeRegions(ctx context.Context) ([]string, error) {
	out, err := s.ec2.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fromSDKError(err)
	}
	names := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		names = append(names, aws.ToString(r.RegionName))
	}
	sort.Strings(names)
	return names, nil
}

// DescribeInstancesInRegion lists the instances in the service region that
// match every filter. No filters lists all instances.
func (s *Service) DescribeInstancesInRegion(ctx context.Context, filters []query.Filter) ([]Instance, error) {
	input := &ec2.DescribeInstancesInput{}
	for _, f := range filters {
		input.Filters = append(input.Filters, types.Filter{
			Name:   aws.String(f.Name),
			Values: f.Values,
		})
	}

	var instances []Instance
	paginator := ec2.NewDescribeInstancesPaginator(s.ec2, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fromSDKError(err)
		}
		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, convertInstance(aws.ToString(reservation.ReservationId), inst))
			}
		}
	}
	return instances, nil
}

func convertInstance(reservationID string, inst types.Instance) Instance {
	out := Instance{
		InstanceID:       aws.ToString(inst.InstanceId),
		InstanceType:     string(inst.InstanceType),
		ImageID:          aws.ToString(inst.ImageId),
		PrivateIPAddress: aws.ToString(inst.PrivateIpAddress),
		PublicIPAddress:  aws.ToString(inst.PublicIpAddress),
		ReservationID:    reservationID,
		LaunchTime:       inst.LaunchTime,
	}
	if inst.State != nil {
		out.State = string(inst.State.Name)
	}
	if inst.Placement != nil {
		out.AvailabilityZone = aws.ToString(inst.Placement.AvailabilityZone)
	}
	if len(inst.Tags) > 0 {
		out.Tags = make(map[string]string, len(inst.Tags))
		for _, tag := range inst.Tags {
			out.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return out
}

// UpdateInstanceType changes the type of an instance. A running instance is
// stopped first, waited on until stopped, and started again after the
// change. The returned text describes the final state transition.
func (s *Service) UpdateInstanceType(ctx context.Context, in UpdateInstanceTypeInput) (string, error) {
	const action = "UpdateInstanceType"
	if in.InstanceID == "" {
		return "", ec2errors.Required("instanceId")
	}
	instanceType := in.InstanceType
	if instanceType == "" {
		instanceType = DefaultInstanceType
	}

	previous, err := s.instanceState(ctx, in.InstanceID)
	if err != nil {
		return "", err
	}
	logger := s.logger.With("instance_id", in.InstanceID, "previous_state", string(previous))

	switch previous {
	case types.InstanceStateNameRunning, types.InstanceStateNameStopping:
		if previous == types.InstanceStateNameRunning {
			logger.Debug("stopping instance")
			if _, err := s.ec2.StopInstances(ctx, &ec2.StopInstancesInput{
				InstanceIds: []string{in.InstanceID},
			}); err != nil {
				return "", fromSDKError(err)
			}
		}
		if err := s.waitStopped(ctx, in); err != nil {
			return "", err
		}
	case types.InstanceStateNameStopped:
	default:
		return "", ec2errors.Request(action, "InstanceId",
			fmt.Sprintf("instance %s is %s; it must be running or stopped", in.InstanceID, previous))
	}

	if _, err := s.ec2.ModifyInstanceAttribute(ctx, &ec2.ModifyInstanceAttributeInput{
		InstanceId:   aws.String(in.InstanceID),
		InstanceType: &types.AttributeValue{Value: aws.String(instanceType)},
	}); err != nil {
		return "", fromSDKError(err)
	}
	logger.Info("instance type updated", "instance_type", instanceType)

	if previous != types.InstanceStateNameRunning {
		return UpdatedMessage, nil
	}

	out, err := s.ec2.StartInstances(ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{in.InstanceID},
	})
	if err != nil {
		return "", fromSDKError(err)
	}
	return describeStateChanges(out.StartingInstances), nil
}

// instanceState returns the current state of one instance.
func (s *Service) instanceState(ctx context.Context, instanceID string) (types.InstanceStateName, error) {
	out, err := s.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return "", fromSDKError(err)
	}
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			if aws.ToString(inst.InstanceId) == instanceID && inst.State != nil {
				return inst.State.Name, nil
			}
		}
	}
	return "", ec2errors.Request("UpdateInstanceType", "InstanceId",
		fmt.Sprintf("instance %s not found", instanceID))
}

// waitStopped polls every PollingInterval until the instance is stopped or
// CheckStateTimeout elapses.
func (s *Service) waitStopped(ctx context.Context, in UpdateInstanceTypeInput) error {
	waiter := ec2.NewInstanceStoppedWaiter(s.ec2, func(o *ec2.InstanceStoppedWaiterOptions) {
		o.MinDelay = in.PollingInterval
		o.MaxDelay = in.PollingInterval
	})
	err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{in.InstanceID},
	}, in.CheckStateTimeout)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && strings.Contains(err.Error(), "exceeded max wait time") {
		return ec2errors.WithStack(&ec2errors.TimeoutError{
			Operation: "wait for instance " + in.InstanceID + " stopped",
			Duration:  in.CheckStateTimeout,
			Cause:     err,
		})
	}
	return fromSDKError(err)
}

func describeStateChanges(changes []types.InstanceStateChange) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		var from, to types.InstanceStateName
		if c.PreviousState != nil {
			from = c.PreviousState.Name
		}
		if c.CurrentState != nil {
			to = c.CurrentState.Name
		}
		parts = append(parts, fmt.Sprintf("%s: %s -> %s", aws.ToString(c.InstanceId), from, to))
	}
	return strings.Join(parts, ", ")
}

// VerifyCredentials returns the identity the configured credentials belong to.
func (s *Service) VerifyCredentials(ctx context.Context) (Identity, error) {
	out, err := s.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fromSDKError(err)
	}
	return Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
