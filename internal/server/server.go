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


// Package server exposes the EC2 action over HTTP for "ec2actions serve".
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tombee/ec2actions/internal/action/ec2"
	"github.com/tombee/ec2actions/internal/log"
	"github.com/tombee/ec2actions/internal/tracing"
)

// maxBodyBytes bounds the JSON input object of one invocation.
const maxBodyBytes = 1 << 20

// RequestIDHeader carries the invocation request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the router.
type Config struct {
	// Action runs the operations (required)
	Action *ec2.Action

	// Version is reported by the health endpoint
	Version string

	// APIKey returns the bearer token clients must present. An empty key
	// disables authentication. Called per request so reloads apply.
	APIKey func() string

	// Logger receives request logs (default: slog.Default())
	Logger *slog.Logger
}

// Router wraps an http.ServeMux with logging, tracing and authentication.
type Router struct {
	mux    *http.ServeMux
	config Config
	auth   *BearerAuthenticator
	logger *slog.Logger
}

// NewRouter creates a new HTTP router with all API endpoints.
func NewRouter(cfg Config) (*Router, error) {
	if cfg.Action == nil {
		return nil, errors.New("action is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   NewBearerAuthenticator(),
		logger: log.WithComponent(logger, "server"),
	}

	r.mux.HandleFunc("GET /v1/health", r.handleHealth)
	r.mux.HandleFunc("GET /v1/operations", r.requireAuth(r.handleOperations))
	r.mux.HandleFunc("POST /v1/actions/{operation}", r.requireAuth(r.handleAction))
	r.mux.Handle("GET /metrics", promhttp.Handler())

	return r, nil
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		defer func() {
			r.logger.Info("request completed",
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.Int64(log.DurationKey, time.Since(start).Milliseconds()),
			)
		}()
		r.mux.ServeHTTP(w, req)
	})

	handler = tracing.HTTPMiddleware(handler)
	handler.ServeHTTP(w, req)
}

func (r *Router) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if r.config.APIKey == nil {
			next(w, req)
			return
		}
		key := r.config.APIKey()
		if key == "" {
			next(w, req)
			return
		}
		if err := r.auth.Authenticate(req, key); err != nil {
			r.logger.Warn("authentication failed",
				slog.String("path", req.URL.Path),
				slog.String("remote", req.RemoteAddr),
				slog.String("reason", err.Error()),
			)
			w.Header().Set("WWW-Authenticate", `Bearer realm="ec2actions"`)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, req)
	}
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": r.config.Version,
	})
}

func (r *Router) handleOperations(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, ec2.Operations())
}

// handleAction runs one operation. The body is a JSON object of string
// inputs; the response is the result map. A "-1" result is still a 200:
// the failure is reported in the map.
func (r *Router) handleAction(w http.ResponseWriter, req *http.Request) {
	operation := req.PathValue("operation")
	if _, ok := ec2.LookupOperation(operation); !ok {
		writeJSON(w, http.StatusNotFound, r.config.Action.Execute(req.Context(), operation, nil))
		return
	}

	inputs, err := decodeInputs(w, req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requestID := req.Header.Get(RequestIDHeader)
	if requestID == "" {
		requestID = log.NewRequestID()
	}
	w.Header().Set(RequestIDHeader, requestID)

	ctx := log.ContextWithRequestID(req.Context(), requestID)
	ctx = ec2.WithSource(ctx, "http "+req.RemoteAddr)

	res := r.config.Action.Execute(ctx, operation, inputs)
	writeJSON(w, http.StatusOK, res)
}

func decodeInputs(w http.ResponseWriter, req *http.Request) (map[string]string, error) {
	body := http.MaxBytesReader(w, req.Body, maxBodyBytes)
	dec := json.NewDecoder(body)

	var inputs map[string]string
	if err := dec.Decode(&inputs); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, errors.New("request body must be a JSON object of string inputs: " + err.Error())
	}
	if inputs == nil {
		inputs = map[string]string{}
	}
	return inputs, nil
}

// Serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func Serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Compute operations may wait for instance state changes.
		WriteTimeout: 15 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
