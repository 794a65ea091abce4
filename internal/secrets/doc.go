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


/*
Package secrets stores and resolves the secret half of an AWS access key pair.

An action invoked with an identity but a blank credential looks the
credential up here, so workflows and shell history never carry the secret
access key. Secrets are resolved through a priority-ordered chain of backends.

# Backends

	env      - Environment variables (EC2ACTIONS_SECRET_*), read-only
	keychain - OS keychain (macOS Keychain, Linux Secret Service, Windows Credential Manager)

# Usage

	store := secrets.NewCredentialStore(secrets.NewDefaultResolver())

	// ec2actions credentials set AKIAEXAMPLE
	err := store.Set(ctx, "AKIAEXAMPLE", secretAccessKey)

	credential, err := store.Get(ctx, "AKIAEXAMPLE")

# Environment Variables

The env backend looks for variables prefixed with EC2ACTIONS_SECRET_. A
credential stored for identity AKIAEXAMPLE is read from:

	export EC2ACTIONS_SECRET_CREDENTIALS_AKIAEXAMPLE=...

# Error Handling

  - ErrSecretNotFound: Secret doesn't exist in any backend
  - ErrBackendUnavailable: No backends are available
*/
package secrets
