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

// mockBackend is a test implementation of SecretBackend
type mockBackend struct {
	name      string
	priority  int
	available bool
	readOnly  bool
	getErr    error
	secrets   map[string]string
}

func newMockBackend(name string, priority int) *mockBackend {
	return &mockBackend{
		name:      name,
		priority:  priority,
		available: true,
		secrets:   make(map[string]string),
	}
}

func (m *mockBackend) Name() string { return m.name }

func (m *mockBackend) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	if value, ok := m.secrets[key]; ok {
		return value, nil
	}
	return "", ErrSecretNotFound
}

func (m *mockBackend) Set(ctx context.Context, key string, value string) error {
	if m.readOnly {
		return ErrReadOnlyBackend
	}
	m.secrets[key] = value
	return nil
}

func (m *mockBackend) Delete(ctx context.Context, key string) error {
	if m.readOnly {
		return ErrReadOnlyBackend
	}
	if _, ok := m.secrets[key]; !ok {
		return ErrSecretNotFound
	}
	delete(m.secrets, key)
	return nil
}

func (m *mockBackend) Available() bool { return m.available }
func (m *mockBackend) Priority() int   { return m.priority }
func (m *mockBackend) ReadOnly() bool  { return m.readOnly }

func TestNewResolver_OrdersByPriority(t *testing.T) {
	low := newMockBackend("low", 10)
	high := newMockBackend("high", 100)
	gone := newMockBackend("gone", 1000)
	gone.available = false

	r := NewResolver(low, gone, high)
	got := r.Backends()
	if len(got) != 2 || got[0] != "high" || got[1] != "low" {
		t.Errorf("Backends() = %v, want [high low]", got)
	}
}

func TestResolver_Get(t *testing.T) {
	ctx := context.Background()
	low := newMockBackend("low", 10)
	high := newMockBackend("high", 100)
	low.secrets["shared"] = "from-low"
	high.secrets["shared"] = "from-high"
	low.secrets["only-low"] = "low-value"

	r := NewResolver(low, high)

	if v, err := r.Get(ctx, "shared"); err != nil || v != "from-high" {
		t.Errorf("Get(shared) = %q, %v; want from-high", v, err)
	}
	if v, err := r.Get(ctx, "only-low"); err != nil || v != "low-value" {
		t.Errorf("Get(only-low) = %q, %v; want low-value", v, err)
	}
	if _, err := r.Get(ctx, "missing"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSecretNotFound", err)
	}
}

func TestResolver_GetReportsBackendFailure(t *testing.T) {
	broken := newMockBackend("broken", 100)
	broken.getErr = errors.New("dbus: connection closed")

	_, err := NewResolver(broken).Get(context.Background(), "key")
	if err == nil || errors.Is(err, ErrSecretNotFound) {
		t.Errorf("expected backend failure, got %v", err)
	}
}

func TestResolver_NoBackends(t *testing.T) {
	_, err := NewResolver().Get(context.Background(), "key")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestResolver_SetSkipsReadOnly(t *testing.T) {
	ctx := context.Background()
	env := newMockBackend("env", 100)
	env.readOnly = true
	store := newMockBackend("store", 50)

	r := NewResolver(env, store)
	if err := r.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if store.secrets["k"] != "v" {
		t.Errorf("value not written to writable backend")
	}
	if _, ok := env.secrets["k"]; ok {
		t.Errorf("value written to read-only backend")
	}
}

func TestResolver_SetWithoutWritableBackend(t *testing.T) {
	env := newMockBackend("env", 100)
	env.readOnly = true

	err := NewResolver(env).Set(context.Background(), "k", "v")
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("error = %v, want ErrBackendUnavailable", err)
	}
}

func TestResolver_Delete(t *testing.T) {
	ctx := context.Background()
	store := newMockBackend("store", 50)
	store.secrets["k"] = "v"

	r := NewResolver(store)
	if err := r.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := r.Delete(ctx, "k"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("second Delete() error = %v, want ErrSecretNotFound", err)
	}
}
