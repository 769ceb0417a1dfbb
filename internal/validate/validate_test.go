// SPDX-License-Identifier: MIT
package validate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid https", "https://docs.minaprotocol.com", false},
		{"valid http with port", "http://localhost:3000", false},
		{"empty url", "", true},
		{"no host", "https://", true},
		{"invalid scheme", "ftp://example.com", true},
		{"no scheme", "docs.minaprotocol.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.URL("site.url", tt.value, []string{"http", "https"})
			assert.Equal(t, tt.wantErr, !v.IsValid(), "errors: %v", v.Err())
		})
	}
}

func TestValidator_URLPath(t *testing.T) {
	for value, wantErr := range map[string]bool{
		"/":        false,
		"/docs/":   false,
		"":         true,
		"docs/":    true,
		"/docs":    true,
		"/d?x=1/":  true,
		"/a b/":    true,
	} {
		v := New()
		v.URLPath("site.baseUrl", value)
		assert.Equal(t, wantErr, !v.IsValid(), "value %q", value)
	}
}

func TestValidator_ListenAddr(t *testing.T) {
	for value, wantErr := range map[string]bool{
		":8080":          false,
		"127.0.0.1:9090": false,
		"[::1]:80":       false,
		"":               true,
		"8080":           true,
		":http":          true,
		":70000":         true,
	} {
		v := New()
		v.ListenAddr("server.listenAddr", value)
		assert.Equal(t, wantErr, !v.IsValid(), "value %q", value)
	}
}

func TestValidator_Directory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	v := New()
	v.Directory("ok", dir)
	assert.True(t, v.IsValid())

	v.Directory("missing", filepath.Join(dir, "nope"))
	v.Directory("file", file)
	v.Directory("empty", "")
	require.Len(t, v.Errors(), 3)
	assert.Equal(t, "missing", v.Errors()[0].Field)
	assert.Equal(t, "path is not a directory", v.Errors()[1].Message)
}

func TestValidator_OneOfRangePositive(t *testing.T) {
	v := New()
	v.OneOf("cache.backend", "memory", []string{"memory", "redis"})
	v.Range("redirects.status", 301, 300, 308)
	v.Positive("ratelimit.requests", 10)
	assert.True(t, v.IsValid())

	v.OneOf("cache.backend", "disk", []string{"memory", "redis"})
	v.Range("redirects.status", 200, 300, 308)
	v.Positive("ratelimit.requests", 0)
	v.NotEmpty("search.indexName", "  ")
	v.Custom("analytics.gtm", "x", errors.New("bad id"))
	assert.Len(t, v.Errors(), 5)
}

func TestValidator_Err(t *testing.T) {
	v := New()
	assert.NoError(t, v.Err())

	v.AddError("a", "first", 1)
	v.AddError("b", "second", 2)

	err := v.Err()
	require.Error(t, err)
	assert.Equal(t, "validation failed for a: first; validation failed for b: second", err.Error())

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors(), 2)

	// the returned error is detached from later additions
	v.AddError("c", "third", 3)
	assert.Len(t, ve.Errors(), 2)
}

func TestLogLevel(t *testing.T) {
	for _, l := range LogLevels() {
		assert.True(t, LogLevel(l).IsValid())
	}
	assert.False(t, LogLevel("trace").IsValid())
}
