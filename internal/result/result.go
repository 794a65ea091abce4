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

// Package result converts action outcomes into the string-keyed result map
// returned to the workflow engine.
package result

import (
	"fmt"
	"strings"

	"github.com/tombee/ec2actions/internal/operation/transport"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// Result keys and return codes.
const (
	KeyReturnCode   = "returnCode"
	KeyReturnResult = "returnResult"
	KeyException    = "exception"

	Success = "0"
	Failure = "-1"
)

// Result is the outcome of one action invocation.
type Result map[string]string

// Succeeded reports whether the returnCode is Success.
func (r Result) Succeeded() bool {
	return r[KeyReturnCode] == Success
}

// ReturnResult returns the returnResult entry.
func (r Result) ReturnResult() string {
	return r[KeyReturnResult]
}

// Exception returns the exception entry, empty on success.
func (r Result) Exception() string {
	return r[KeyException]
}

// FromResponse maps a successful response to a result carrying its body.
func FromResponse(resp *transport.Response) Result {
	if resp == nil {
		return Result{KeyReturnCode: Success, KeyReturnResult: ""}
	}
	return Result{
		KeyReturnCode:   Success,
		KeyReturnResult: string(resp.Body),
	}
}

// FromString maps a successful non-HTTP outcome, such as an SDK call, to a
// result.
func FromString(s string) Result {
	return Result{KeyReturnCode: Success, KeyReturnResult: s}
}

// FromError maps a failure to a result. AWS error responses report
// "Code: Message"; unparseable error bodies are returned verbatim; any other
// error reports its message. The exception holds the error with its stack.
func FromError(err error) (r Result) {
	defer func() {
		if p := recover(); p != nil {
			r = Result{
				KeyReturnCode:   Failure,
				KeyReturnResult: "internal error while formatting failure",
				KeyException:    fmt.Sprint(p),
			}
		}
	}()

	if err == nil {
		err = ec2errors.New("unknown failure")
	}
	return Result{
		KeyReturnCode:   Failure,
		KeyReturnResult: failureMessage(err),
		KeyException:    ec2errors.Trace(err),
	}
}

// Map is total over (response, error): a non-nil error wins, otherwise the
// response is a success.
func Map(resp *transport.Response, err error) (r Result) {
	defer func() {
		if p := recover(); p != nil {
			r = Result{
				KeyReturnCode:   Failure,
				KeyReturnResult: "internal error while mapping result",
				KeyException:    fmt.Sprint(p),
			}
		}
	}()
	if err != nil {
		return FromError(err)
	}
	return FromResponse(resp)
}

func failureMessage(err error) string {
	var te *transport.TransportError
	if ec2errors.As(err, &te) && te.StatusCode != 0 {
		if te.Code != "" {
			return te.Message
		}
		if body := strings.TrimSpace(te.Body); body != "" {
			return body
		}
		return te.Message
	}
	return err.Error()
}
