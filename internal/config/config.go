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


// Package config loads ec2actions configuration from a YAML file and
// EC2ACTIONS_* environment variables.
//
// The defaults section supplies values for action inputs the caller left
// blank. Secrets are never read from the file: credentials come from the
// keychain or the environment through internal/secrets.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tombee/ec2actions/internal/inputs"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

var (
	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config represents the complete ec2actions configuration.
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// DefaultsConfig holds fallback values for action inputs. Each value is
// written in the input's own string form and used only when the invocation
// leaves that input blank.
type DefaultsConfig struct {
	// Endpoint is the EC2 endpoint URL.
	// Environment: EC2ACTIONS_ENDPOINT
	Endpoint string `yaml:"endpoint,omitempty"`

	// Identity is the access key ID whose credential is looked up in the
	// keychain.
	// Environment: EC2ACTIONS_IDENTITY
	Identity string `yaml:"identity,omitempty"`

	// Version is the EC2 API version (e.g., 2016-11-15).
	// Environment: EC2ACTIONS_VERSION
	Version string `yaml:"version,omitempty"`

	// Region names the region for signing and SDK calls.
	// Environment: EC2ACTIONS_REGION
	Region string `yaml:"region,omitempty"`

	// Delimiter separates list inputs.
	// Environment: EC2ACTIONS_DELIMITER
	Delimiter string `yaml:"delimiter,omitempty"`

	// ProxyHost, ProxyPort and ProxyUsername route requests through a proxy.
	// The proxy password is a secret and is not accepted here.
	// Environment: EC2ACTIONS_PROXY_HOST, EC2ACTIONS_PROXY_PORT, EC2ACTIONS_PROXY_USERNAME
	ProxyHost     string `yaml:"proxy_host,omitempty"`
	ProxyPort     string `yaml:"proxy_port,omitempty"`
	ProxyUsername string `yaml:"proxy_username,omitempty"`

	// Timeout is the request timeout in seconds.
	// Environment: EC2ACTIONS_TIMEOUT
	Timeout string `yaml:"timeout,omitempty"`

	// DebugMode logs each exchange at info level.
	// Environment: EC2ACTIONS_DEBUG_MODE
	DebugMode string `yaml:"debug_mode,omitempty"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error).
	// Environment: LOG_LEVEL
	// Default: info
	Level string `yaml:"level"`

	// Format sets the output format (json, text).
	// Environment: LOG_FORMAT
	// Default: json
	Format string `yaml:"format"`

	// AddSource adds source file and line information to logs.
	// Environment: LOG_SOURCE
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// ServerConfig configures "ec2actions serve".
type ServerConfig struct {
	// Listen is the TCP address to bind.
	// Environment: EC2ACTIONS_LISTEN
	// Default: 127.0.0.1:9876
	Listen string `yaml:"listen"`

	// RateLimit paces outbound AWS requests, as <count>/<unit>
	// (e.g., 20/second). Empty disables pacing.
	// Environment: EC2ACTIONS_RATE_LIMIT
	RateLimit string `yaml:"rate_limit,omitempty"`

	// APIKey, when set, must be presented as a bearer token.
	// Environment: EC2ACTIONS_API_KEY
	APIKey string `yaml:"api_key,omitempty"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TracingConfig configures span export.
type TracingConfig struct {
	// Exporter is one of none, console, otlp.
	// Environment: EC2ACTIONS_TRACING_EXPORTER
	// Default: none
	Exporter string `yaml:"exporter"`

	// Endpoint is the OTLP/HTTP receiver (for exporter=otlp).
	// Environment: EC2ACTIONS_TRACING_ENDPOINT
	Endpoint string `yaml:"endpoint,omitempty"`

	// Insecure disables TLS towards the receiver.
	Insecure bool `yaml:"insecure,omitempty"`

	// SampleRate is the fraction of invocations traced.
	// Default: 1.0
	SampleRate float64 `yaml:"sample_rate"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Listen:          "127.0.0.1:9876",
			ShutdownTimeout: 10 * time.Second,
		},
		Tracing: TracingConfig{
			Exporter:   "none",
			SampleRate: 1.0,
		},
	}
}

// Load loads configuration from an optional YAML file and the environment.
// Environment variables take precedence over file-based configuration.
// If configPath is empty, only environment variables are used.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		if err := cfg.loadFromFile(configPath); err != nil {
			return nil, &ec2errors.ConfigError{
				Key:    "config_file",
				Reason: fmt.Sprintf("failed to load from %s", configPath),
				Cause:  err,
			}
		}
	}

	cfg.applyDefaults()
	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, &ec2errors.ConfigError{
			Key:    "validation",
			Reason: "configuration validation failed",
			Cause:  err,
		}
	}
	return cfg, nil
}

// LoadDefault loads the file at ConfigPath when it exists, and the
// environment either way.
func LoadDefault() (*Config, string, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg, err := Load("")
		return cfg, "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg, err := Load("")
		return cfg, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// applyDefaults fills in zero values left by a minimal file.
func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
	if c.Server.Listen == "" {
		c.Server.Listen = defaults.Server.Listen
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Tracing.Exporter == "" {
		c.Tracing.Exporter = defaults.Tracing.Exporter
	}
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = defaults.Tracing.SampleRate
	}
}

// loadFromFile loads configuration from a YAML file.
func (c *Config) loadFromFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	envString := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}

	envString("EC2ACTIONS_ENDPOINT", &c.Defaults.Endpoint)
	envString("EC2ACTIONS_IDENTITY", &c.Defaults.Identity)
	envString("EC2ACTIONS_VERSION", &c.Defaults.Version)
	envString("EC2ACTIONS_REGION", &c.Defaults.Region)
	envString("EC2ACTIONS_DELIMITER", &c.Defaults.Delimiter)
	envString("EC2ACTIONS_PROXY_HOST", &c.Defaults.ProxyHost)
	envString("EC2ACTIONS_PROXY_PORT", &c.Defaults.ProxyPort)
	envString("EC2ACTIONS_PROXY_USERNAME", &c.Defaults.ProxyUsername)
	envString("EC2ACTIONS_TIMEOUT", &c.Defaults.Timeout)
	envString("EC2ACTIONS_DEBUG_MODE", &c.Defaults.DebugMode)

	// Log configuration
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = strings.ToLower(val)
	}
	if val := os.Getenv("LOG_SOURCE"); val != "" {
		c.Log.AddSource = val == "1" || strings.ToLower(val) == "true"
	}

	// Server configuration
	envString("EC2ACTIONS_LISTEN", &c.Server.Listen)
	envString("EC2ACTIONS_RATE_LIMIT", &c.Server.RateLimit)
	envString("EC2ACTIONS_API_KEY", &c.Server.APIKey)

	// Tracing configuration
	if val := os.Getenv("EC2ACTIONS_TRACING_EXPORTER"); val != "" {
		c.Tracing.Exporter = strings.ToLower(val)
	}
	envString("EC2ACTIONS_TRACING_ENDPOINT", &c.Tracing.Endpoint)
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q (valid: trace, debug, info, warn, error)", c.Log.Level))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q (valid: json, text)", c.Log.Format))
	}

	if c.Defaults.ProxyPort != "" {
		if port, err := strconv.Atoi(c.Defaults.ProxyPort); err != nil || port < 1 || port > 65535 {
			errs = append(errs, fmt.Sprintf("invalid defaults.proxy_port %q, must be between 1 and 65535", c.Defaults.ProxyPort))
		}
	}
	if c.Defaults.Timeout != "" {
		if secs, err := strconv.Atoi(c.Defaults.Timeout); err != nil || secs <= 0 {
			errs = append(errs, fmt.Sprintf("invalid defaults.timeout %q, must be a positive number of seconds", c.Defaults.Timeout))
		}
	}

	if c.Server.RateLimit != "" {
		if _, err := ParseRateLimit(c.Server.RateLimit); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, "server.shutdown_timeout cannot be negative")
	}

	switch c.Tracing.Exporter {
	case "none", "console":
	case "otlp":
		if c.Tracing.Endpoint == "" {
			errs = append(errs, "tracing.endpoint is required for the otlp exporter")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid tracing exporter %q (valid: none, console, otlp)", c.Tracing.Exporter))
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, "tracing.sample_rate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// Inputs returns the configured defaults keyed by input name. Unset
// defaults are omitted.
func (d DefaultsConfig) Inputs() map[string]string {
	all := map[string]string{
		inputs.InputEndpoint:      d.Endpoint,
		inputs.InputIdentity:      d.Identity,
		inputs.InputVersion:       d.Version,
		inputs.InputRegion:        d.Region,
		inputs.InputDelimiter:     d.Delimiter,
		inputs.InputProxyHost:     d.ProxyHost,
		inputs.InputProxyPort:     d.ProxyPort,
		inputs.InputProxyUsername: d.ProxyUsername,
		inputs.InputTimeout:       d.Timeout,
		inputs.InputDebugMode:     d.DebugMode,
	}
	out := make(map[string]string, len(all))
	for name, value := range all {
		if value != "" {
			out[name] = value
		}
	}
	return out
}

// ParseRateLimit converts "<count>/<unit>" into events per second. Units
// are second, minute, hour and day.
func ParseRateLimit(rateLimit string) (float64, error) {
	parts := strings.Split(rateLimit, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid rate_limit format %q, expected format: <count>/<unit> (e.g., 20/second, 100/minute)", rateLimit)
	}

	count, err := strconv.Atoi(parts[0])
	if err != nil || count <= 0 {
		return 0, fmt.Errorf("invalid rate_limit count %q, must be a positive integer", parts[0])
	}

	units := map[string]time.Duration{
		"second": time.Second,
		"minute": time.Minute,
		"hour":   time.Hour,
		"day":    24 * time.Hour,
	}
	unit, ok := units[parts[1]]
	if !ok {
		return 0, fmt.Errorf("invalid rate_limit unit %q, must be one of: second, minute, hour, day", parts[1])
	}
	return float64(count) / unit.Seconds(), nil
}
