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

package credentials

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tombee/ec2actions/internal/commands/shared"
)

const (
	testIdentity = "AKIDEXAMPLE"
	testSecret   = "wJalrXUtnFEMI/K7MDENG/bPxRfiCYEXAMPLEKEY"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCredentials_SetGetDelete(t *testing.T) {
	keyring.MockInit()

	out, err := execute(t, testSecret+"\n", "set", testIdentity)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored secret access key for AKIDEXAMPLE")

	out, err = execute(t, "", "get", testIdentity)
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE: wJal...EKEY\n", out)
	assert.NotContains(t, out, testSecret)

	out, err = execute(t, "", "delete", testIdentity)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")

	_, err = execute(t, "", "get", testIdentity)
	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, shared.ExitActionFailed, exitErr.Code)
	assert.Contains(t, exitErr.Error(), "no credential stored for AKIDEXAMPLE")
}

func TestCredentials_SetEmpty(t *testing.T) {
	keyring.MockInit()

	_, err := execute(t, "  \n", "set", testIdentity)
	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, shared.ExitUsage, exitErr.Code)
}

func TestCredentials_DeleteMissing(t *testing.T) {
	keyring.MockInit()

	_, err := execute(t, "", "delete", "AKIDMISSING")
	var exitErr *shared.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Error(), "no credential stored for AKIDMISSING")
}

func TestCredentials_GetFromEnvironment(t *testing.T) {
	keyring.MockInit()
	t.Setenv("EC2ACTIONS_SECRET_CREDENTIALS_AKIDENV", "envsecretvalue1234")

	out, err := execute(t, "", "get", "AKIDENV")
	require.NoError(t, err)
	assert.Equal(t, "AKIDENV: envs...1234\n", out)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "abcd...mnop", maskSecret("abcdefghijklmnop"))
}
