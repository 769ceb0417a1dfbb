// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(context.Background(), Config{ServiceName: "docsgate", ExporterType: "grpc"})
	require.NoError(t, err)
	assert.Nil(t, provider.tp)

	_, span := otel.Tracer("test").Start(context.Background(), "noop-check")
	assert.False(t, span.IsRecording())
	span.End()

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_InvalidExporter(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Enabled: true, ServiceName: "docsgate", ExporterType: "zipkin"})
	require.Error(t, err)
	assert.Equal(t, "unsupported exporter type: zipkin (supported: grpc, http)", err.Error())
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{2.0, "AlwaysOnSampler"},
		{0.0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased"},
	}
	for _, tt := range tests {
		got := sampler(tt.rate).Description()
		assert.True(t, strings.HasPrefix(got, tt.want), "rate %v: %s", tt.rate, got)
	}
}

func TestShutdown_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, (&Provider{}).Shutdown(ctx))
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[string(a.Key)] = a.Value
	}
	return m
}

func TestHTTPAttributes(t *testing.T) {
	m := attrMap(HTTPAttributes("GET", "/*", "/docs/intro", 200))
	require.Len(t, m, 4)
	assert.Equal(t, "GET", m[HTTPMethodKey].AsString())
	assert.Equal(t, "/*", m[HTTPRouteKey].AsString())
	assert.Equal(t, "/docs/intro", m[HTTPURLKey].AsString())
	assert.Equal(t, int64(200), m[HTTPStatusCodeKey].AsInt64())
}

func TestRedirectAndPageAttributes(t *testing.T) {
	m := attrMap(RedirectAttributes("/docs/old", "/docs/new", 301))
	assert.Equal(t, "/docs/old", m[RedirectFromKey].AsString())
	assert.Equal(t, "/docs/new", m[RedirectToKey].AsString())
	assert.Equal(t, int64(301), m[RedirectStatusKey].AsInt64())

	m = attrMap(PageAttributes("/docs/intro.html", true))
	assert.True(t, m[PageCacheHitKey].AsBool())

	m = attrMap(ErrorAttributes("render"))
	assert.True(t, m[ErrorKey].AsBool())
	assert.Equal(t, "render", m[ErrorTypeKey].AsString())
}
