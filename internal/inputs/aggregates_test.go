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
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func TestNewCommonInputsDefaults(t *testing.T) {
	in, err := NewCommonInputs(CommonConfig{
		Endpoint: "ec2.us-west-2.amazonaws.com/",
		Version:  "2016-11-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://ec2.us-west-2.amazonaws.com", in.Endpoint)
	assert.Equal(t, DefaultAPIService, in.APIService)
	assert.Equal(t, ",", in.Delimiter)
	assert.Equal(t, MethodGet, in.HTTPMethod)
	assert.False(t, in.Debug)
	assert.Equal(t, 30*time.Second, in.Timeout)
	assert.False(t, in.Proxy.Enabled())
}

func TestNewCommonInputsKeepsExplicitDelimiter(t *testing.T) {
	in, err := NewCommonInputs(CommonConfig{Delimiter: "|", Timeout: "5", DebugMode: "TRUE"})
	require.NoError(t, err)
	assert.Equal(t, "|", in.Delimiter)
	assert.Equal(t, 5*time.Second, in.Timeout)
	assert.True(t, in.Debug)
}

func TestNewCommonInputsDelimiterNormalized(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"padded", " ; ", ";"},
		{"whitespace only", "   ", DefaultDelimiter},
		{"not relevant", "Not relevant", DefaultDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := NewCommonInputs(CommonConfig{Delimiter: tt.raw})
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Delimiter)
		})
	}
}

func TestNewCommonInputsProxy(t *testing.T) {
	in, err := NewCommonInputs(CommonConfig{
		ProxyHost:     "proxy.local",
		ProxyPort:     "8080",
		ProxyUsername: "bob",
		ProxyPassword: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, Proxy{Host: "proxy.local", Port: 8080, Username: "bob", Password: "hunter2"}, in.Proxy)

	_, err = NewCommonInputs(CommonConfig{ProxyPort: "8080"})
	var verr *ec2errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InputProxyPort, verr.Field)

	_, err = NewCommonInputs(CommonConfig{ProxyHost: "proxy.local"})
	assert.Error(t, err)

	_, err = NewCommonInputs(CommonConfig{ProxyHost: "proxy.local", ProxyPort: "99999"})
	assert.Error(t, err)
}

func TestNewCommonInputsRejects(t *testing.T) {
	tests := []struct {
		name  string
		cfg   CommonConfig
		field string
	}{
		{"bad endpoint scheme", CommonConfig{Endpoint: "ftp://ec2.amazonaws.com"}, InputEndpoint},
		{"bad method", CommonConfig{HTTPClientMethod: "PATCHY"}, InputHTTPClientMethod},
		{"bad timeout", CommonConfig{Timeout: "soon"}, InputTimeout},
		{"zero timeout", CommonConfig{Timeout: "0"}, InputTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCommonInputs(tt.cfg)
			var verr *ec2errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCommonInputsLogValueOmitsSecrets(t *testing.T) {
	in, err := NewCommonInputs(CommonConfig{
		Endpoint:      "https://ec2.amazonaws.com",
		Identity:      "AKIDEXAMPLE",
		Credential:    "wJalrXUtnFEMI/K7MDENG",
		ProxyHost:     "proxy",
		ProxyPort:     "3128",
		ProxyPassword: "hunter2",
	})
	require.NoError(t, err)

	rendered := fmt.Sprint(slog.AnyValue(in).Resolve())
	assert.NotContains(t, rendered, "wJalrXUtnFEMI")
	assert.NotContains(t, rendered, "hunter2")
	assert.Contains(t, rendered, "proxy:3128")
}

func TestNewCustomInputs(t *testing.T) {
	in, err := NewCustomInputs(CustomConfig{
		VolumeID:        " vol-1 ",
		InstanceID:      "Not relevant",
		VolumeType:      "IO1",
		ValueTagsString: "Not relevant",
	})
	require.NoError(t, err)
	assert.Equal(t, "vol-1", in.VolumeID)
	assert.Equal(t, "", in.InstanceID)
	assert.Equal(t, VolumeIo1, in.VolumeType)
	assert.Equal(t, "Not relevant", in.ValueTagsString)

	_, err = NewCustomInputs(CustomConfig{VolumeType: "ssd"})
	assert.Error(t, err)
}

func TestNewVolumeInputs(t *testing.T) {
	in, err := NewVolumeInputs(VolumeConfig{DeviceName: "/dev/sdf", Size: "100", Encrypted: "true"})
	require.NoError(t, err)
	assert.Equal(t, "/dev/sdf", in.DeviceName)
	assert.Equal(t, "100", in.Size)
	assert.Equal(t, "", in.Iops)
	assert.True(t, in.Encrypted)
	assert.False(t, in.Force)

	_, err = NewVolumeInputs(VolumeConfig{Size: "-1"})
	assert.Error(t, err)
	_, err = NewVolumeInputs(VolumeConfig{Iops: "lots"})
	assert.Error(t, err)
}

func TestNewNetworkInputs(t *testing.T) {
	in, err := NewNetworkInputs(NetworkConfig{DeviceIndex: "0", ForceDetach: "maybe", PrivateIPAddress: "10.0.0.5"})
	require.NoError(t, err)
	assert.Equal(t, "0", in.DeviceIndex)
	assert.Equal(t, "", in.ForceDetach)
	assert.Equal(t, "10.0.0.5", in.PrivateIPAddress)

	_, err = NewNetworkInputs(NetworkConfig{PrivateIPAddress: "10.0.0"})
	assert.Error(t, err)
	_, err = NewNetworkInputs(NetworkConfig{DeviceIndex: "-1"})
	assert.Error(t, err)
}

func TestNewElasticIPInputs(t *testing.T) {
	in, err := NewElasticIPInputs(ElasticIPConfig{Domain: "VPC", PublicIP: "203.0.113.7", AllowReassociation: "True"})
	require.NoError(t, err)
	assert.Equal(t, DomainVPC, in.Domain)
	assert.Equal(t, "203.0.113.7", in.PublicIP)
	assert.Equal(t, "true", in.AllowReassociation)
}

func TestNewImageInputs(t *testing.T) {
	in, err := NewImageInputs(ImageConfig{})
	require.NoError(t, err)
	assert.True(t, in.NoReboot)
	assert.Equal(t, ImageType(""), in.Type)

	in, err = NewImageInputs(ImageConfig{ImageNoReboot: "false", IsPublic: "TRUE", PermissionOperation: "ADD"})
	require.NoError(t, err)
	assert.False(t, in.NoReboot)
	assert.Equal(t, "true", in.IsPublic)
	assert.Equal(t, PermissionAdd, in.PermissionOperation)
}

func TestNewInstanceInputs(t *testing.T) {
	in, err := NewInstanceInputs(InstanceConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1, in.MinCount)
	assert.Equal(t, 1, in.MaxCount)
	assert.Equal(t, 20*time.Second, in.CheckStateTimeout)
	assert.Equal(t, 20*time.Second, in.PollingInterval)

	userData := "  IyEvYmluL2Jhc2gK  "
	in, err = NewInstanceInputs(InstanceConfig{MinCount: "2", MaxCount: "4", UserData: userData, PollingInterval: "500"})
	require.NoError(t, err)
	assert.Equal(t, 2, in.MinCount)
	assert.Equal(t, 4, in.MaxCount)
	assert.Equal(t, userData, in.UserData)
	assert.Equal(t, 500*time.Millisecond, in.PollingInterval)

	_, err = NewInstanceInputs(InstanceConfig{MinCount: "5", MaxCount: "2"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "greater than maxCount"))

	_, err = NewInstanceInputs(InstanceConfig{InstanceStateCode: "99"})
	assert.Error(t, err)
}

func TestRawConfigs(t *testing.T) {
	raw := Raw{
		InputEndpoint:          "https://ec2.amazonaws.com",
		InputResourceIDsString: "i-1,i-2",
		InputDescription:       "shared",
	}
	assert.Equal(t, "https://ec2.amazonaws.com", raw.CommonConfig().Endpoint)
	assert.Equal(t, "i-1,i-2", raw.CustomConfig().ResourceIDsString)
	assert.Equal(t, "shared", raw.VolumeConfig().Description)
	assert.Equal(t, "shared", raw.NetworkConfig().Description)
	assert.True(t, raw.Blank(InputVersion))
}
