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

package log

import (
	"context"
	"log/slog"
	"time"
)

// ActionRequest describes an action invocation for logging purposes.
type ActionRequest struct {
	// Operation is the operation name (e.g., "create_tags").
	Operation string

	// RequestID is the unique ID for this invocation.
	RequestID string

	// Source identifies the caller (e.g., "cli", "http 10.0.0.4:5312").
	Source string

	// Metadata contains additional request fields. Callers must not put
	// secrets here.
	Metadata map[string]any
}

// ActionResponse describes the outcome of an action invocation.
type ActionResponse struct {
	// ReturnCode is the returnCode of the result map.
	ReturnCode string

	// Error is the failure message if the invocation failed.
	Error string

	// DurationMs is the duration of the invocation in milliseconds.
	DurationMs int64

	// Metadata contains additional response fields.
	Metadata map[string]any
}

// LogActionRequest logs the start of an action invocation.
func LogActionRequest(ctx context.Context, logger *slog.Logger, req *ActionRequest) {
	attrs := []any{
		EventKey, "action_request",
		OperationKey, req.Operation,
	}
	if req.Source != "" {
		attrs = append(attrs, "source", req.Source)
	}
	if req.RequestID != "" {
		attrs = append(attrs, RequestIDKey, req.RequestID)
	}
	for k, v := range req.Metadata {
		attrs = append(attrs, k, v)
	}

	logger.DebugContext(ctx, "action invoked", attrs...)
}

// LogActionResponse logs the outcome of an action invocation.
func LogActionResponse(ctx context.Context, logger *slog.Logger, req *ActionRequest, resp *ActionResponse) {
	attrs := []any{
		EventKey, "action_response",
		OperationKey, req.Operation,
		"return_code", resp.ReturnCode,
		DurationKey, resp.DurationMs,
	}
	if req.RequestID != "" {
		attrs = append(attrs, RequestIDKey, req.RequestID)
	}
	if resp.Error != "" {
		attrs = append(attrs, "error", resp.Error)
	}
	for k, v := range resp.Metadata {
		attrs = append(attrs, k, v)
	}

	level := slog.LevelInfo
	message := "action completed"
	if resp.ReturnCode != "0" {
		level = slog.LevelWarn
		message = "action failed"
	}

	logger.Log(ctx, level, message, attrs...)
}

// ActionMiddleware wraps action invocations with request/response logging.
type ActionMiddleware struct {
	logger *slog.Logger
}

// NewActionMiddleware creates a new action logging middleware.
func NewActionMiddleware(logger *slog.Logger) *ActionMiddleware {
	return &ActionMiddleware{
		logger: logger,
	}
}

// Handler runs handler between the request and response log lines.
// The handler returns the result's returnCode and, on failure, its message.
func (m *ActionMiddleware) Handler(ctx context.Context, req *ActionRequest, handler func(ctx context.Context) (returnCode, errMsg string)) {
	start := time.Now()
	if req.RequestID == "" {
		req.RequestID = RequestIDFromContext(ctx)
	}

	LogActionRequest(ctx, m.logger, req)
	code, msg := handler(ctx)

	LogActionResponse(ctx, m.logger, req, &ActionResponse{
		ReturnCode: code,
		Error:      msg,
		DurationMs: time.Since(start).Milliseconds(),
	})
}
