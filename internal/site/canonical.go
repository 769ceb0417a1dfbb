// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package site

import (
	"net/http"

	"github.com/o1-labs/docsgate/internal/normalize"
)

// CanonicalSlash redirects GET and HEAD requests whose path differs from its
// canonical form (duplicate slashes, dot segments, trailing-slash policy) with
// 308 Permanent Redirect, keeping the query string.
func CanonicalSlash(trailingSlash bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			if normalize.HasTraversal(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			want := normalize.Canonical(r.URL.Path, trailingSlash)
			if want == r.URL.Path {
				next.ServeHTTP(w, r)
				return
			}

			target := want
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}
