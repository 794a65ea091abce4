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
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "default", cfg: DefaultConfig()},
		{name: "console", cfg: Config{Exporter: ExporterConsole, SampleRate: 1}},
		{name: "otlp without endpoint", cfg: Config{Exporter: ExporterOTLP}, wantErr: "endpoint is required"},
		{name: "unknown exporter", cfg: Config{Exporter: "jaeger"}, wantErr: "unknown tracing exporter"},
		{name: "bad rate", cfg: Config{SampleRate: 2}, wantErr: "sample rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetup_None(t *testing.T) {
	p, err := Setup(context.Background(), DefaultConfig(), nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.ForceFlush(context.Background()))
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_RecordsSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	p, err := Setup(context.Background(), DefaultConfig(), nil, sdktrace.WithSyncer(exporter))
	require.NoError(t, err)
	defer p.Shutdown(context.Background())
	require.True(t, p.Enabled())

	_, span := Tracer("test").Start(context.Background(), "ec2.create_tags")
	EndSpan(span, "", attribute.String("ec2.return_code", "0"))

	_, span = Tracer("test").Start(context.Background(), "ec2.attach_volume")
	EndSpan(span, "validation failed on deviceName")

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "ec2.create_tags", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String("ec2.return_code", "0"))
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Equal(t, "validation failed on deviceName", spans[1].Status.Description)
}

func TestSetup_Console(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Exporter = ExporterConsole

	p, err := Setup(context.Background(), cfg, &buf)
	require.NoError(t, err)

	_, span := Tracer("test").Start(context.Background(), "ec2.describe_regions")
	EndSpan(span, "")
	require.NoError(t, p.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), "ec2.describe_regions")
}

func TestSetup_InvalidConfig(t *testing.T) {
	_, err := Setup(context.Background(), Config{Exporter: "zipkin"}, nil)
	assert.Error(t, err)
}

func TestEndSpan_NilAttributes(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	EndSpan(span, errors.New("boom").Error())

	require.Len(t, exporter.GetSpans(), 1)
	assert.Equal(t, codes.Error, exporter.GetSpans()[0].Status.Code)
}
