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


// Package tracing configures OpenTelemetry tracing for action invocations.
//
// Setup installs a global tracer provider. Instrumented code calls Tracer
// and never needs to know whether spans are exported: with the "none"
// exporter the global provider stays a no-op.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/ec2actions/internal/tracing/export"
)

// Provider owns the SDK tracer provider installed by Setup.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup builds the exporter named by cfg and installs a global tracer
// provider. Console output goes to w. Extra options are applied after the
// defaults, which lets tests install a synchronous exporter.
func Setup(ctx context.Context, cfg Config, w io.Writer, opts ...sdktrace.TracerProviderOption) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if (cfg.Exporter == "" || cfg.Exporter == ExporterNone) && len(opts) == 0 {
		return &Provider{}, nil
	}

	// Empty schema URL avoids conflicts when merging with the default resource.
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			"",
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	allOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
	}

	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case ExporterConsole:
		exporter, err = export.NewConsoleExporter(export.ConsoleConfig{Writer: w, PrettyPrint: true})
	case ExporterOTLP:
		exporter, err = export.NewOTLPHTTPExporter(ctx, export.OTLPHTTPConfig{
			Endpoint: cfg.Endpoint,
			Insecure: cfg.Insecure,
			Headers:  cfg.Headers,
		})
	}
	if err != nil {
		return nil, err
	}
	if exporter != nil {
		allOpts = append(allOpts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(cfg.BatchInterval)))
	}

	tp := sdktrace.NewTracerProvider(append(allOpts, opts...)...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{tp: tp}, nil
}

// Enabled reports whether spans are being recorded and exported.
func (p *Provider) Enabled() bool {
	return p.tp != nil
}

// Shutdown flushes any pending spans and releases resources.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.Shutdown(ctx)
}

// ForceFlush exports all pending spans synchronously.
func (p *Provider) ForceFlush(ctx context.Context) error {
	if p.tp == nil {
		return nil
	}
	return p.tp.ForceFlush(ctx)
}

// Tracer returns a tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// EndSpan records the outcome of span and ends it. A non-empty failure
// marks the span as an error.
func EndSpan(span trace.Span, failure string, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	if failure != "" {
		span.SetStatus(codes.Error, failure)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
