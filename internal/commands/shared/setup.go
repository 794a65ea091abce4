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

package shared

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/tombee/ec2actions/internal/config"
	"github.com/tombee/ec2actions/internal/log"
	"github.com/tombee/ec2actions/internal/secrets"
	"github.com/tombee/ec2actions/internal/tracing"
)

// LoadConfig loads the file named by --config, or the default config file
// when the flag is unset. The returned path is empty when no file was read.
func LoadConfig() (*config.Config, string, error) {
	if path := GetConfigPath(); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, "", NewActionFailedError("failed to load configuration", err)
		}
		return cfg, path, nil
	}

	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, "", NewActionFailedError("failed to load configuration", err)
	}
	return cfg, path, nil
}

// NewLogger builds the command logger from cfg. --verbose forces debug
// level and --quiet raises it to error.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lc := log.FromEnv()
	lc.Level = cfg.Log.Level
	lc.Format = log.Format(cfg.Log.Format)
	lc.AddSource = lc.AddSource || cfg.Log.AddSource
	lc.Output = w

	switch {
	case GetVerbose():
		lc.Level = "debug"
	case GetQuiet():
		lc.Level = "error"
	}
	return log.New(lc)
}

// NewCredentialStore returns the credential store backed by environment
// variables and the system keychain.
func NewCredentialStore() *secrets.CredentialStore {
	return secrets.NewCredentialStore(secrets.NewDefaultResolver())
}

// SetupTracing installs the tracer provider described by cfg. Console spans
// are written to stderr.
func SetupTracing(ctx context.Context, cfg config.TracingConfig) (*tracing.Provider, error) {
	tc := tracing.DefaultConfig()
	tc.Exporter = cfg.Exporter
	tc.Endpoint = cfg.Endpoint
	tc.Insecure = cfg.Insecure
	tc.SampleRate = cfg.SampleRate
	tc.ServiceVersion = version

	provider, err := tracing.Setup(ctx, tc, os.Stderr)
	if err != nil {
		return nil, NewActionFailedError("failed to set up tracing", err)
	}
	return provider, nil
}
