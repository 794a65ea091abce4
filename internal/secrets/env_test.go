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


package secrets

import (
	"context"
	"errors"
	"testing"
)

func TestEnvKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"credentials/AKIAEXAMPLE", "EC2ACTIONS_SECRET_CREDENTIALS_AKIAEXAMPLE"},
		{"proxy-password", "EC2ACTIONS_SECRET_PROXY_PASSWORD"},
		{"a.b/c", "EC2ACTIONS_SECRET_A_B_C"},
	}
	for _, tt := range tests {
		if got := EnvKey(tt.key); got != tt.want {
			t.Errorf("EnvKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEnvBackend_Get(t *testing.T) {
	t.Setenv("EC2ACTIONS_SECRET_CREDENTIALS_AKIAEXAMPLE", "wJalrXUtnFEMI")
	t.Setenv("EC2ACTIONS_SECRET_EMPTY", "")

	backend := NewEnvBackend()
	ctx := context.Background()

	got, err := backend.Get(ctx, "credentials/AKIAEXAMPLE")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "wJalrXUtnFEMI" {
		t.Errorf("Get() = %q", got)
	}

	if _, err := backend.Get(ctx, "empty"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("empty variable error = %v, want ErrSecretNotFound", err)
	}
	if _, err := backend.Get(ctx, "missing"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("missing variable error = %v, want ErrSecretNotFound", err)
	}
}

func TestEnvBackend_ReadOnly(t *testing.T) {
	backend := NewEnvBackend()
	ctx := context.Background()

	if !backend.ReadOnly() {
		t.Error("env backend must be read-only")
	}
	if err := backend.Set(ctx, "k", "v"); !errors.Is(err, ErrReadOnlyBackend) {
		t.Errorf("Set() error = %v, want ErrReadOnlyBackend", err)
	}
	if err := backend.Delete(ctx, "k"); !errors.Is(err, ErrReadOnlyBackend) {
		t.Errorf("Delete() error = %v, want ErrReadOnlyBackend", err)
	}
	if backend.Priority() != EnvBackendPriority {
		t.Errorf("Priority() = %d", backend.Priority())
	}
}
