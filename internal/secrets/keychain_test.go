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

	"github.com/zalando/go-keyring"
)

func TestKeychainBackend_Metadata(t *testing.T) {
	keyring.MockInit()
	backend := NewKeychainBackend()

	if backend.Name() != "keychain" {
		t.Errorf("Name() = %v, want keychain", backend.Name())
	}
	if backend.Priority() != KeychainBackendPriority {
		t.Errorf("Priority() = %v, want %v", backend.Priority(), KeychainBackendPriority)
	}
	if !backend.Available() {
		t.Error("mock keyring should be available")
	}
}

func TestKeychainBackend_RoundTrip(t *testing.T) {
	keyring.MockInit()
	backend := NewKeychainBackend()
	ctx := context.Background()
	key := CredentialKey("AKIAEXAMPLE")

	if _, err := backend.Get(ctx, key); !errors.Is(err, ErrSecretNotFound) {
		t.Fatalf("Get() before Set error = %v, want ErrSecretNotFound", err)
	}
	if err := backend.Set(ctx, key, "first"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := backend.Set(ctx, key, "second"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, err := backend.Get(ctx, key)
	if err != nil || got != "second" {
		t.Fatalf("Get() = %q, %v; want second", got, err)
	}
	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := backend.Delete(ctx, key); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrSecretNotFound", err)
	}
}

func TestKeychainBackend_Unavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("dbus: session bus not available"))
	backend := NewKeychainBackend()

	if backend.Available() {
		t.Fatal("backend should be unavailable")
	}
	if _, err := backend.Get(context.Background(), "k"); !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("Get() error = %v, want ErrBackendUnavailable", err)
	}
}

func TestIsKeychainUnavailableError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"The keychain is locked", true},
		{"org.freedesktop.secrets: Secret Service not running", true},
		{"permission denied", true},
		{"item not found", false},
	}
	for _, tt := range tests {
		if got := isKeychainUnavailableError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("isKeychainUnavailableError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
