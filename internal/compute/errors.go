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

package compute

import (
	"context"
	"errors"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go"

	"github.com/tombee/ec2actions/internal/operation/transport"
)

// fromSDKError converts an SDK client failure into a *transport.TransportError.
func fromSDKError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		return &transport.TransportError{
			Type:    transport.ErrorTypeCancelled,
			Message: "request cancelled",
			Cause:   err,
		}
	case errors.Is(err, context.DeadlineExceeded):
		return &transport.TransportError{
			Type:      transport.ErrorTypeTimeout,
			Message:   "request timed out",
			Retryable: true,
			Cause:     err,
		}
	}

	var (
		statusCode int
		requestID  string
	)
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		statusCode = respErr.HTTPStatusCode()
		requestID = respErr.ServiceRequestID()
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		te := transport.ClassifyAWSError(statusCode, apiErr.ErrorCode(), apiErr.ErrorMessage(), requestID)
		te.Cause = err
		return te
	}

	if statusCode != 0 {
		te := transport.ClassifyAWSError(statusCode, "", err.Error(), requestID)
		te.Cause = err
		return te
	}

	return &transport.TransportError{
		Type:      transport.ErrorTypeConnection,
		Message:   err.Error(),
		Retryable: true,
		Cause:     err,
	}
}
