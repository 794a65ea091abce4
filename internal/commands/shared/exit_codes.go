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
	"errors"
	"fmt"
	"io"
	"os"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// Exit codes for ec2actions commands
const (
	ExitSuccess = 0
	// ExitActionFailed covers a returnCode of "-1" as well as setup errors.
	ExitActionFailed = 1
	// ExitUsage covers bad flags, arguments and input files.
	ExitUsage = 2
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return e.Cause.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewActionFailedError creates an error for a failed operation or setup step
func NewActionFailedError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitActionFailed,
		Message: msg,
		Cause:   cause,
	}
}

// NewUsageError creates an error for invalid command-line usage
func NewUsageError(msg string, cause error) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: msg,
		Cause:   cause,
	}
}

// HandleExitError checks if an error is an ExitError and exits with the appropriate code
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(reportError(os.Stderr, err))
}

// reportError writes err and any suggestion to w and returns the exit code.
func reportError(w io.Writer, err error) int {
	code := ExitActionFailed
	msg := err.Error()

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		msg = exitErr.Error()
	}

	// An empty message means the command already reported the failure.
	if msg != "" {
		fmt.Fprintln(w, "Error:", msg)
	}
	if suggestion := ec2errors.SuggestionOf(err); suggestion != "" {
		fmt.Fprintf(w, "\nSuggestion: %s\n", suggestion)
	}
	return code
}
