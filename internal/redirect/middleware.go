// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"net/http"
	"strings"

	"github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/metrics"
	"github.com/o1-labs/docsgate/internal/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// MiddlewareConfig configures the HTTP surface of a Table.
type MiddlewareConfig struct {
	// Status is the redirect status code. Defaults to 301.
	Status int
	// Normalize maps the raw request path to the form stored in the table.
	// Nil means the path is used as-is. An empty result skips the lookup.
	Normalize func(string) string
	// BasePath is prefixed to every target when the site is not served
	// from the root, e.g. "/docs/".
	BasePath string
}

// Middleware answers requests for legacy paths with a redirect to the
// canonical path, keeping the query string. Everything else is passed to next.
func Middleware(t *Table, cfg MiddlewareConfig) func(http.Handler) http.Handler {
	status := cfg.Status
	if status == 0 {
		status = http.StatusMovedPermanently
	}
	normalize := cfg.Normalize
	if normalize == nil {
		normalize = func(p string) string { return p }
	}

	prefix := strings.TrimSuffix(cfg.BasePath, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			from := normalize(r.URL.Path)
			if from == "" {
				next.ServeHTTP(w, r)
				return
			}
			to, ok := t.Lookup(from)
			metrics.RecordRedirectLookup(ok)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			target := prefix + to
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			logger := log.WithComponentFromContext(r.Context(), "redirect")
			logger.Debug().
				Str(log.FieldEvent, "redirect.hit").
				Str(log.FieldFrom, from).
				Str(log.FieldTo, to).
				Int(log.FieldStatus, status).
				Msg("redirecting legacy path")
			metrics.IncRedirectServed(from)
			trace.SpanFromContext(r.Context()).SetAttributes(telemetry.RedirectAttributes(from, target, status)...)

			w.Header().Set("Cache-Control", "public, max-age=3600")
			http.Redirect(w, r, target, status)
		})
	}
}
