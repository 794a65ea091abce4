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

import (
	"time"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// DefaultStatePolling is the default for both checkStateTimeout and
// pollingInterval.
const DefaultStatePolling = 20000 * time.Millisecond

// InstanceConfig holds the raw instance inputs.
type InstanceConfig struct {
	InstanceIDsString                 string
	MinCount                          string
	MaxCount                          string
	InstanceStateName                 string
	InstanceStateCode                 string
	MonitoringState                   string
	Tenancy                           string
	InstanceInitiatedShutdownBehavior string
	UserData                          string
	ClientToken                       string
	DisableAPITermination             string
	Monitoring                        string
	ForceStop                         string
	CheckStateTimeout                 string
	PollingInterval                   string
	PlacementGroupName                string
	Architecture                      string
}

// InstanceInputs is the validated form of InstanceConfig.
type InstanceInputs struct {
	InstanceIDsString     string
	MinCount              int
	MaxCount              int
	InstanceStateName     InstanceState
	InstanceStateCode     string
	MonitoringState       MonitoringState
	Tenancy               Tenancy
	ShutdownBehavior      ShutdownBehavior
	UserData              string
	ClientToken           string
	DisableAPITermination string
	Monitoring            string
	ForceStop             string
	CheckStateTimeout     time.Duration
	PollingInterval       time.Duration
	PlacementGroupName    string
	Architecture          Architecture
}

// NewInstanceInputs validates cfg. Counts default to one, the state wait
// settings to 20000 ms. UserData is passed through unchanged.
func NewInstanceInputs(cfg InstanceConfig) (InstanceInputs, error) {
	var (
		in  InstanceInputs
		err error
	)
	if in.MinCount, err = ValidInstancesCount(InputMinCount, cfg.MinCount); err != nil {
		return InstanceInputs{}, err
	}
	if in.MaxCount, err = ValidInstancesCount(InputMaxCount, cfg.MaxCount); err != nil {
		return InstanceInputs{}, err
	}
	if err = ValidateInstanceCounts(in.MinCount, in.MaxCount); err != nil {
		return InstanceInputs{}, err
	}
	if in.InstanceStateName, err = ParseInstanceState(cfg.InstanceStateName); err != nil {
		return InstanceInputs{}, err
	}
	if in.InstanceStateCode, err = ValidInstanceStateCode(cfg.InstanceStateCode); err != nil {
		return InstanceInputs{}, err
	}
	if in.MonitoringState, err = ParseMonitoringState(cfg.MonitoringState); err != nil {
		return InstanceInputs{}, err
	}
	if in.Tenancy, err = ParseTenancy(cfg.Tenancy); err != nil {
		return InstanceInputs{}, err
	}
	if in.ShutdownBehavior, err = ParseShutdownBehavior(cfg.InstanceInitiatedShutdownBehavior); err != nil {
		return InstanceInputs{}, err
	}
	if in.Architecture, err = ParseArchitecture(cfg.Architecture); err != nil {
		return InstanceInputs{}, err
	}
	if in.CheckStateTimeout, err = validMillis(InputCheckStateTimeout, cfg.CheckStateTimeout); err != nil {
		return InstanceInputs{}, err
	}
	if in.PollingInterval, err = validMillis(InputPollingInterval, cfg.PollingInterval); err != nil {
		return InstanceInputs{}, err
	}

	in.InstanceIDsString = DefaultString(cfg.InstanceIDsString, "")
	if !IsBlank(cfg.UserData) {
		in.UserData = cfg.UserData
	}
	in.ClientToken = DefaultString(cfg.ClientToken, "")
	in.DisableAPITermination = RelevantBoolean(cfg.DisableAPITermination)
	in.Monitoring = RelevantBoolean(cfg.Monitoring)
	in.ForceStop = RelevantBoolean(cfg.ForceStop)
	in.PlacementGroupName = DefaultString(cfg.PlacementGroupName, "")
	return in, nil
}

func validMillis(field, raw string) (time.Duration, error) {
	ms, err := ValidLong(field, raw, DefaultStatePolling.Milliseconds())
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, ec2errors.Validation(field, "must be a positive number of milliseconds", "")
	}
	return time.Duration(ms) * time.Millisecond, nil
}
