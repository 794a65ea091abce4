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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func TestParseHTTPMethod(t *testing.T) {
	m, err := ParseHTTPMethod("")
	require.NoError(t, err)
	assert.Equal(t, MethodGet, m)

	m, err = ParseHTTPMethod("post")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, m)

	_, err = ParseHTTPMethod("FETCH")
	var verr *ec2errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, InputHTTPClientMethod, verr.Field)
	assert.Equal(t, "Valid values: DELETE, GET, HEAD, OPTIONS, POST, PUT, TRACE", verr.Suggestion)
}

func TestParseEnumsAreCaseInsensitive(t *testing.T) {
	tenancy, err := ParseTenancy("DEDICATED")
	require.NoError(t, err)
	assert.Equal(t, TenancyDedicated, tenancy)

	arch, err := ParseArchitecture("X86_64")
	require.NoError(t, err)
	assert.Equal(t, ArchX86_64, arch)

	state, err := ParseInstanceState("Shutting-Down")
	require.NoError(t, err)
	assert.Equal(t, InstanceStateShuttingDown, state)

	vt, err := ParseVolumeType("GP3")
	require.NoError(t, err)
	assert.Equal(t, VolumeGp3, vt)

	op, err := ParsePermissionOperation("Remove")
	require.NoError(t, err)
	assert.Equal(t, PermissionRemove, op)
}

func TestParseEnumBlankIsNotRelevant(t *testing.T) {
	for _, raw := range []string{"", "  ", "Not relevant"} {
		d, err := ParseDomain(raw)
		require.NoError(t, err)
		assert.Equal(t, Domain(""), d)
	}
}

func TestParseEnumRejectsUnknown(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
		field string
		valid string
	}{
		{"image type", func() error { _, err := ParseImageType("disk"); return err }, InputImageType, "machine, kernel, ramdisk"},
		{"image state", func() error { _, err := ParseImageState("gone"); return err }, InputImageState, "available, pending, failed, deregistered"},
		{"shutdown", func() error { _, err := ParseShutdownBehavior("halt"); return err }, InputInstanceInitiatedShutdownBehavior, "stop, terminate"},
		{"monitoring", func() error { _, err := ParseMonitoringState("on"); return err }, InputMonitoringState, "disabled, disabling, enabled, pending"},
		{"domain", func() error { _, err := ParseDomain("classic"); return err }, InputDomain, "standard, vpc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *ec2errors.ValidationError
			require.ErrorAs(t, tt.parse(), &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, verr.Suggestion, tt.valid)
		})
	}
}
