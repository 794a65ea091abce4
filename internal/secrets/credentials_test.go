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

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func TestCredentialStore(t *testing.T) {
	ctx := context.Background()
	env := newMockBackend("env", 100)
	env.readOnly = true
	env.secrets[CredentialKey("AKIAENV")] = "from-env"
	keychain := newMockBackend("keychain", 50)

	store := NewCredentialStore(NewResolver(env, keychain))

	if err := store.Set(ctx, " AKIASTORED ", "stored-secret"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if keychain.secrets["credentials/AKIASTORED"] != "stored-secret" {
		t.Errorf("credential not stored under trimmed identity: %v", keychain.secrets)
	}

	got, ok, err := store.Lookup(ctx, "AKIASTORED")
	if err != nil || !ok || got != "stored-secret" {
		t.Errorf("Lookup(stored) = %q, %v, %v", got, ok, err)
	}
	got, ok, err = store.Lookup(ctx, "AKIAENV")
	if err != nil || !ok || got != "from-env" {
		t.Errorf("Lookup(env) = %q, %v, %v", got, ok, err)
	}
	_, ok, err = store.Lookup(ctx, "AKIAMISSING")
	if err != nil || ok {
		t.Errorf("Lookup(missing) = %v, %v; want not ok without error", ok, err)
	}

	if err := store.Delete(ctx, "AKIASTORED"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "AKIASTORED"); !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrSecretNotFound", err)
	}
}

func TestCredentialStore_RequiresIdentity(t *testing.T) {
	store := NewCredentialStore(NewResolver(newMockBackend("m", 1)))

	var verr *ec2errors.ValidationError
	if _, err := store.Get(context.Background(), "  "); !errors.As(err, &verr) {
		t.Errorf("Get() error = %v, want ValidationError", err)
	}
	if err := store.Set(context.Background(), "AKIA", ""); !errors.As(err, &verr) || verr.Field != "credential" {
		t.Errorf("Set() error = %v, want ValidationError on credential", err)
	}
}
