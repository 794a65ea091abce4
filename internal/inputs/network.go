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
	"net"
	"strconv"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// NetworkConfig holds the raw network interface inputs.
type NetworkConfig struct {
	NetworkInterfaceID             string
	DeviceIndex                    string
	ForceDetach                    string
	Description                    string
	PrivateIPAddress               string
	SecurityGroupIDsString         string
	SecondaryPrivateIPAddressCount string
}

// NetworkInputs is the validated form of NetworkConfig. ForceDetach is a
// relevant boolean: "true", "false" or "" when omitted.
type NetworkInputs struct {
	NetworkInterfaceID             string
	DeviceIndex                    string
	ForceDetach                    string
	Description                    string
	PrivateIPAddress               string
	SecurityGroupIDsString         string
	SecondaryPrivateIPAddressCount string
}

// NewNetworkInputs validates cfg.
func NewNetworkInputs(cfg NetworkConfig) (NetworkInputs, error) {
	idx, err := ValidNonNegative(InputDeviceIndex, cfg.DeviceIndex)
	if err != nil {
		return NetworkInputs{}, err
	}
	ip, err := validIP(InputPrivateIPAddress, cfg.PrivateIPAddress)
	if err != nil {
		return NetworkInputs{}, err
	}
	secondary, err := ValidPositive(InputSecondaryPrivateIPAddressCount, cfg.SecondaryPrivateIPAddressCount)
	if err != nil {
		return NetworkInputs{}, err
	}
	return NetworkInputs{
		NetworkInterfaceID:             DefaultString(cfg.NetworkInterfaceID, ""),
		DeviceIndex:                    idx,
		ForceDetach:                    RelevantBoolean(cfg.ForceDetach),
		Description:                    DefaultString(cfg.Description, ""),
		PrivateIPAddress:               ip,
		SecurityGroupIDsString:         DefaultString(cfg.SecurityGroupIDsString, ""),
		SecondaryPrivateIPAddressCount: secondary,
	}, nil
}

// ElasticIPConfig holds the raw Elastic IP inputs.
type ElasticIPConfig struct {
	Domain             string
	PublicIP           string
	PrivateIPAddress   string
	AllowReassociation string
}

// ElasticIPInputs is the validated form of ElasticIPConfig.
type ElasticIPInputs struct {
	Domain             Domain
	PublicIP           string
	PrivateIPAddress   string
	AllowReassociation string
}

// NewElasticIPInputs validates cfg.
func NewElasticIPInputs(cfg ElasticIPConfig) (ElasticIPInputs, error) {
	domain, err := ParseDomain(cfg.Domain)
	if err != nil {
		return ElasticIPInputs{}, err
	}
	public, err := validIP(InputPublicIP, cfg.PublicIP)
	if err != nil {
		return ElasticIPInputs{}, err
	}
	private, err := validIP(InputPrivateIPAddress, cfg.PrivateIPAddress)
	if err != nil {
		return ElasticIPInputs{}, err
	}
	return ElasticIPInputs{
		Domain:             domain,
		PublicIP:           public,
		PrivateIPAddress:   private,
		AllowReassociation: RelevantBoolean(cfg.AllowReassociation),
	}, nil
}

func validIP(field, raw string) (string, error) {
	s := DefaultString(raw, "")
	if s == "" {
		return "", nil
	}
	if net.ParseIP(s) == nil {
		return "", ec2errors.Validation(field, "not a valid IP address: "+strconv.Quote(raw), "")
	}
	return s, nil
}
