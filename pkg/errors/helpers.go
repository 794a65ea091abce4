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
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Wrap creates a new error that wraps the given error with additional context
// and records the call stack. If err is nil, returns nil.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "doing something")
//	}
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, message)
}

// Wrapf creates a new error that wraps the given error with formatted context.
// If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with the current call stack unless it already
// carries one. If err is nil, returns nil.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if HasStack(err) {
		return err
	}
	return pkgerrors.WithStack(err)
}

// HasStack reports whether any error in err's chain records a call stack.
func HasStack(err error) bool {
	type stackTracer interface {
		StackTrace() pkgerrors.StackTrace
	}
	var st stackTracer
	return errors.As(err, &st)
}

// Trace renders err with its message chain and the deepest recorded
// call stack, in the "%+v" format of github.com/pkg/errors.
func Trace(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%+v", WithStack(err))
}

// Validation returns a ValidationError with a recorded call stack.
func Validation(field, message, suggestion string) error {
	return pkgerrors.WithStack(&ValidationError{
		Field:      field,
		Message:    message,
		Suggestion: suggestion,
	})
}

// Required returns the ValidationError used for a missing required input.
func Required(field string) error {
	return Validation(field, "required input is missing or blank", "")
}

// Request returns a RequestError with a recorded call stack.
func Request(action, parameter, reason string) error {
	return pkgerrors.WithStack(&RequestError{
		Action:    action,
		Parameter: parameter,
		Reason:    reason,
	})
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target type,
// and if one is found, sets target to that error value and returns true.
//
// Usage:
//
//	var validationErr *ValidationError
//	if errors.As(err, &validationErr) {
//	    log.Printf("invalid input: %s", validationErr.Field)
//	}
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err,
// if err's type contains an Unwrap method returning error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message and a recorded call stack.
func New(message string) error {
	return pkgerrors.New(message)
}

// Errorf formats an error message and records the call stack.
func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}
