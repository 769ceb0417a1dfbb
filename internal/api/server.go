// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api wires the docs edge HTTP surface: probes, the public JSON
// endpoints, legacy redirects and the static site.
package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/control/middleware"
	"github.com/o1-labs/docsgate/internal/health"
	"github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/normalize"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/search"
	"github.com/o1-labs/docsgate/internal/site"
)

// TracingService names the server spans of the docs edge.
const TracingService = "docsgate-http"

// Server holds the collaborators behind the HTTP router.
type Server struct {
	cfg      config.AppConfig
	table    *redirect.Table
	pages    http.Handler
	health   *health.Manager
	search   search.Settings
	siteJSON []byte
	proxies  []*net.IPNet
}

// ServerOption allows functional configuration of the Server.
type ServerOption func(*Server)

// WithHealthManager replaces the default probe manager, which has no checkers.
func WithHealthManager(m *health.Manager) ServerOption {
	return func(s *Server) {
		s.health = m
	}
}

// New creates a Server. pages serves everything the redirect table does not
// claim, usually a *site.Server.
func New(cfg config.AppConfig, table *redirect.Table, pages http.Handler, opts ...ServerOption) (*Server, error) {
	if table == nil {
		return nil, fmt.Errorf("api: redirect table is required")
	}
	if pages == nil {
		return nil, fmt.Errorf("api: site handler is required")
	}

	siteJSON, err := json.Marshal(cfg.Site)
	if err != nil {
		return nil, fmt.Errorf("encode site config: %w", err)
	}
	proxies, err := middleware.ParseCIDRs(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		table:    table,
		pages:    pages,
		search:   cfg.Search.Settings(),
		siteJSON: siteJSON,
		proxies:  proxies,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.health == nil {
		s.health = health.NewManager(cfg.Version)
	}
	return s, nil
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		CSP:                   middleware.DefaultCSP,
		TrustedProxies:        s.proxies,
		EnableMetrics:         true,
		TracingService:        TracingService,
		EnableLogging:         true,
	})
	r.Use(chimw.GetHead)

	// The site catch-all accepts HEAD, so GetHead never reaches GET-only probes.
	for _, m := range []string{http.MethodGet, http.MethodHead} {
		r.MethodFunc(m, "/healthz", s.health.ServeHealth)
		r.MethodFunc(m, "/readyz", s.health.ServeReady)
	}

	r.Route("/api", func(r chi.Router) {
		if rl := s.cfg.RateLimit; rl.Enabled {
			r.Use(middleware.RateLimit(middleware.RateLimitConfig{
				RequestLimit: rl.Requests,
				WindowSize:   rl.Window,
			}))
		}
		r.Get("/site", s.handleSiteConfig)
		r.Get("/search-config", search.Handler(s.search).ServeHTTP)
	})

	r.Group(func(r chi.Router) {
		r.Use(redirect.Middleware(s.table, redirect.MiddlewareConfig{
			Status:    s.cfg.Redirects.Status,
			Normalize: s.redirectKey,
			BasePath:  s.cfg.Site.BaseURL,
		}))
		r.Use(site.CanonicalSlash(s.cfg.Site.TrailingSlash))
		r.Handle("/*", s.pages)
	})

	return r
}

// redirectKey maps a request path to the form stored in the redirect table.
// Paths outside the base URL or with traversal segments never match.
func (s *Server) redirectKey(p string) string {
	if normalize.HasTraversal(p) {
		return ""
	}
	rel, ok := normalize.StripBase(p, s.cfg.Site.BaseURL)
	if !ok {
		return ""
	}
	return normalize.Path(rel)
}

func (s *Server) handleSiteConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(s.siteJSON); err != nil {
		log.FromContext(r.Context()).Debug().Err(err).Str(log.FieldEvent, "site_config.write_failed").Msg("failed to write site config")
	}
}
