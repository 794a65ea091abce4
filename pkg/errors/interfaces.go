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

// UserVisibleError defines errors that should be displayed to end users
// with user-friendly messages and actionable suggestions.
type UserVisibleError interface {
	error

	// IsUserVisible returns true if this error should be shown to users.
	IsUserVisible() bool

	// UserMessage returns a user-friendly error message.
	UserMessage() string

	// Suggestion returns actionable guidance for resolving the error.
	// Returns empty string if no suggestion is available.
	Suggestion() string
}

// ErrorClassifier defines methods for programmatic error handling.
// Errors that implement this interface can be classified by type
// for metrics labels and error reporting.
type ErrorClassifier interface {
	error

	// ErrorType returns a string identifying the error category.
	// Examples: "validation", "request", "connection", "client"
	ErrorType() string

	// IsRetryable reports whether a caller-level retry could succeed.
	// Nothing in this module retries on its own.
	IsRetryable() bool
}

// Classify returns the error category of err, or "internal" when no error
// in the chain implements ErrorClassifier.
func Classify(err error) string {
	var classifier ErrorClassifier
	if As(err, &classifier) {
		return classifier.ErrorType()
	}
	return "internal"
}

// SuggestionOf returns the first suggestion found in err's chain, from a
// ValidationError or a UserVisibleError.
func SuggestionOf(err error) string {
	for err != nil {
		switch e := err.(type) {
		case *ValidationError:
			if e.Suggestion != "" {
				return e.Suggestion
			}
		case UserVisibleError:
			if e.IsUserVisible() && e.Suggestion() != "" {
				return e.Suggestion()
			}
		}
		err = Unwrap(err)
	}
	return ""
}
