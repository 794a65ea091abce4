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


package tracing

import (
	"fmt"
	"time"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterNone    = "none"
	ExporterConsole = "console"
	ExporterOTLP    = "otlp"
)

// Config holds tracing configuration.
type Config struct {
	// Exporter selects where spans go: "none", "console" or "otlp"
	// (default: "none").
	Exporter string

	// Endpoint is the OTLP/HTTP receiver host:port (for exporter=otlp).
	Endpoint string

	// Insecure disables TLS for the OTLP receiver (development only).
	Insecure bool

	// Headers are additional HTTP headers sent to the OTLP receiver.
	Headers map[string]string

	// ServiceName identifies this service in traces.
	ServiceName string

	// ServiceVersion is the application version.
	ServiceVersion string

	// SampleRate is the fraction of root spans recorded (0.0 - 1.0).
	SampleRate float64

	// BatchInterval is how often to flush spans (default: 5s).
	BatchInterval time.Duration
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Exporter:       ExporterNone,
		ServiceName:    "ec2actions",
		ServiceVersion: "unknown",
		SampleRate:     1.0,
		BatchInterval:  5 * time.Second,
	}
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	switch c.Exporter {
	case "", ExporterNone, ExporterConsole:
	case ExporterOTLP:
		if c.Endpoint == "" {
			return fmt.Errorf("tracing endpoint is required for the otlp exporter")
		}
	default:
		return fmt.Errorf("unknown tracing exporter %q (valid: none, console, otlp)", c.Exporter)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be between 0 and 1, got %v", c.SampleRate)
	}
	return nil
}
