// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fallthroughHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("page"))
	})
}

func TestMiddleware(t *testing.T) {
	table := NewTable(DefaultRules())
	h := Middleware(table, MiddlewareConfig{})(fallthroughHandler())

	tests := []struct {
		name         string
		method       string
		target       string
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "legacy path redirects",
			method:       http.MethodGet,
			target:       "/about-mina/overview",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/about-mina",
		},
		{
			name:         "query string preserved",
			method:       http.MethodGet,
			target:       "/tutorials?ref=nav",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/zkapps/tutorials/hello-world?ref=nav",
		},
		{
			name:         "HEAD redirects",
			method:       http.MethodHead,
			target:       "/snapps",
			wantStatus:   http.StatusMovedPermanently,
			wantLocation: "/zkapps",
		},
		{
			name:       "unknown path falls through",
			method:     http.MethodGet,
			target:     "/not-a-real-path",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST falls through",
			method:     http.MethodPost,
			target:     "/snapps",
			wantStatus: http.StatusOK,
		},
		{
			name:       "trailing slash is not matched without a normalizer",
			method:     http.MethodGet,
			target:     "/snapps/",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}

func TestMiddleware_StatusAndNormalizer(t *testing.T) {
	table := NewTable([]Rule{{From: "/old", To: "/new"}})
	h := Middleware(table, MiddlewareConfig{
		Status:    http.StatusPermanentRedirect,
		Normalize: func(p string) string { return strings.TrimSuffix(p, "/") },
	})(fallthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/old/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/new", rec.Header().Get("Location"))
}

func TestMiddleware_BasePath(t *testing.T) {
	table := NewTable([]Rule{{From: "/old", To: "/new"}})
	h := Middleware(table, MiddlewareConfig{
		BasePath: "/docs/",
		Normalize: func(p string) string {
			rel, ok := strings.CutPrefix(p, "/docs")
			if !ok {
				return ""
			}
			return rel
		},
	})(fallthroughHandler())

	req := httptest.NewRequest(http.MethodGet, "/docs/old?x=1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/docs/new?x=1", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/old", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, "paths outside the base are not looked up")
}
