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

package errors

import (
	"fmt"
	"time"
)

// ValidationError represents user input validation failures.
// Use this for invalid enum values, malformed counts, misaligned lists
// and missing required inputs.
type ValidationError struct {
	// Field identifies which input failed validation
	Field string

	// Message is the human-readable error description
	Message string

	// Suggestion provides actionable guidance for fixing the error,
	// usually the list of accepted values
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation failed: %s", e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s. %s", msg, e.Suggestion)
	}
	return msg
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// RequestError represents a request that cannot be constructed from
// otherwise valid inputs: mutually exclusive identifiers, caller overrides
// that collide with parameters the action owns, reserved headers.
type RequestError struct {
	// Action is the AWS action being built (e.g., "ReleaseAddress")
	Action string

	// Parameter is the query parameter or header at fault, if any
	Parameter string

	// Reason explains what is wrong with the request
	Reason string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	switch {
	case e.Action != "" && e.Parameter != "":
		return fmt.Sprintf("invalid %s request: %s: %s", e.Action, e.Parameter, e.Reason)
	case e.Action != "":
		return fmt.Sprintf("invalid %s request: %s", e.Action, e.Reason)
	case e.Parameter != "":
		return fmt.Sprintf("invalid request: %s: %s", e.Parameter, e.Reason)
	default:
		return fmt.Sprintf("invalid request: %s", e.Reason)
	}
}

// ErrorType implements ErrorClassifier.
func (e *RequestError) ErrorType() string { return "request" }

// IsRetryable implements ErrorClassifier.
func (e *RequestError) IsRetryable() bool { return false }

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "defaults.endpoint")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// IsUserVisible implements UserVisibleError.
func (e *ConfigError) IsUserVisible() bool { return true }

// UserMessage implements UserVisibleError.
func (e *ConfigError) UserMessage() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Error(), e.Cause)
	}
	return e.Error()
}

// Suggestion implements UserVisibleError.
func (e *ConfigError) Suggestion() string {
	return "Check $XDG_CONFIG_HOME/ec2actions/config.yaml (or the file passed with --config) and EC2ACTIONS_* environment variables"
}

// TimeoutError represents operation timeouts.
// Use this when an operation exceeds its configured timeout, such as
// waiting for an instance to reach a state.
type TimeoutError struct {
	// Operation describes what timed out (e.g., "wait for instance stopped")
	Operation string

	// Duration is how long the operation ran before timing out
	Duration time.Duration

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s operation timed out after %v", e.Operation, e.Duration)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
