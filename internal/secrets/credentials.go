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
	"strings"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// CredentialKey returns the secret key under which the credential of
// identity is stored.
func CredentialKey(identity string) string {
	return "credentials/" + identity
}

// CredentialStore resolves AWS secret access keys by access key ID.
type CredentialStore struct {
	resolver *Resolver
}

// NewCredentialStore creates a credential store over resolver.
func NewCredentialStore(resolver *Resolver) *CredentialStore {
	return &CredentialStore{resolver: resolver}
}

// NewDefaultResolver returns the env and keychain backends, env first.
func NewDefaultResolver() *Resolver {
	return NewResolver(NewEnvBackend(), NewKeychainBackend())
}

// Get returns the credential stored for identity. The error wraps
// ErrSecretNotFound when no backend holds one.
func (s *CredentialStore) Get(ctx context.Context, identity string) (string, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", ec2errors.Required("identity")
	}
	return s.resolver.Get(ctx, CredentialKey(identity))
}

// Lookup is Get with a missing credential reported as ok == false rather
// than as an error.
func (s *CredentialStore) Lookup(ctx context.Context, identity string) (credential string, ok bool, err error) {
	credential, err = s.Get(ctx, identity)
	switch {
	case err == nil:
		return credential, true, nil
	case errors.Is(err, ErrSecretNotFound), errors.Is(err, ErrBackendUnavailable):
		return "", false, nil
	default:
		return "", false, err
	}
}

// Set stores credential for identity in the first writable backend.
func (s *CredentialStore) Set(ctx context.Context, identity, credential string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ec2errors.Required("identity")
	}
	if credential == "" {
		return ec2errors.Required("credential")
	}
	return s.resolver.Set(ctx, CredentialKey(identity), credential)
}

// Delete removes the credential stored for identity.
func (s *CredentialStore) Delete(ctx context.Context, identity string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ec2errors.Required("identity")
	}
	return s.resolver.Delete(ctx, CredentialKey(identity))
}
