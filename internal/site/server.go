// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package site serves the pre-built documentation site.
package site

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/o1-labs/docsgate/internal/cache"
	"github.com/o1-labs/docsgate/internal/fsutil"
	"github.com/o1-labs/docsgate/internal/inject"
	"github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/metrics"
	"github.com/o1-labs/docsgate/internal/normalize"
	"github.com/o1-labs/docsgate/internal/telemetry"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// NotFoundPage is the file rendered for unknown paths.
const NotFoundPage = "404.html"

var (
	// ErrNotFound is returned by Resolve when no file serves a path.
	ErrNotFound = errors.New("page not found")
	// ErrHidden is returned by Resolve for dotfiles and dot directories.
	ErrHidden = errors.New("hidden path")
)

// Options configures a Server.
type Options struct {
	// Root is the build output directory.
	Root string
	// BaseURL is the URL prefix the site is published under, "/" by default.
	BaseURL string
	// Tags are spliced into every served HTML page.
	Tags inject.Tags
	// Cache holds rewritten pages keyed by file. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	Logger   *zerolog.Logger
}

// Server resolves clean URLs against the build directory. HTML pages are
// rewritten with the configured tags; every other file is served as-is.
type Server struct {
	root   string
	base   string
	tags   inject.Tags
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger zerolog.Logger
	// denied throttles warnings for rejected paths; the counters see every one.
	denied rate.Sometimes
}

// NewServer creates a Server. The root does not need to exist yet; requests
// answer 404 until a build is present.
func NewServer(opts Options) *Server {
	c := opts.Cache
	if c == nil {
		c = cache.NewNoOpCache()
	}
	base := opts.BaseURL
	if base == "" {
		base = "/"
	}
	logger := log.WithComponent("site")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Server{
		root:   opts.Root,
		base:   base,
		tags:   opts.Tags,
		cache:  c,
		ttl:    opts.CacheTTL,
		logger: logger,
		denied: rate.Sometimes{Interval: time.Second},
	}
}

// Root returns the build directory.
func (s *Server) Root() string { return s.root }

// Invalidate drops every rendered page.
func (s *Server) Invalidate() {
	s.cache.Clear()
	metrics.IncPageCacheInvalidation()
	s.logger.Info().Str(log.FieldEvent, "site.cache_invalidated").Msg("page cache cleared")
}

// Resolve maps a normalized, base-relative URL path to a file under the root.
// Candidates are tried in order: the exact file, "<path>.html" and
// "<path>/index.html".
func (s *Server) Resolve(urlPath string) (string, error) {
	rel := strings.TrimPrefix(normalize.Path(urlPath), "/")
	if hidden(rel) {
		return "", ErrHidden
	}

	var candidates []string
	if rel == "" {
		candidates = []string{"index.html"}
	} else {
		candidates = []string{rel, rel + ".html", path.Join(rel, "index.html")}
	}

	for _, c := range candidates {
		full, err := fsutil.ConfineRelPath(s.root, c)
		if err != nil {
			if errors.Is(err, fsutil.ErrEscapesRoot) {
				return "", err
			}
			continue
		}
		if fsutil.IsRegularFile(full) == nil {
			return full, nil
		}
	}
	return "", ErrNotFound
}

// Exists reports whether a served page exists for urlPath.
func (s *Server) Exists(urlPath string) bool {
	_, err := s.Resolve(urlPath)
	return err == nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	logger := log.WithContext(r.Context(), s.logger)

	if normalize.HasTraversal(r.URL.Path) {
		metrics.IncFileRequestDenied("traversal")
		s.denied.Do(func() {
			logger.Warn().
				Str(log.FieldEvent, "site.traversal_denied").
				Str(log.FieldPath, r.URL.Path).
				Msg("rejected path traversal attempt")
		})
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	rel, ok := normalize.StripBase(normalize.Path(r.URL.Path), s.base)
	if !ok {
		s.serveNotFound(w, r)
		return
	}

	file, err := s.Resolve(rel)
	if err != nil {
		if errors.Is(err, ErrHidden) {
			metrics.IncFileRequestDenied("hidden")
		}
		if errors.Is(err, fsutil.ErrEscapesRoot) {
			metrics.IncFileRequestDenied("symlink_escape")
			s.denied.Do(func() {
				logger.Warn().
					Err(err).
					Str(log.FieldEvent, "site.escape_denied").
					Str(log.FieldPath, r.URL.Path).
					Msg("rejected file outside site root")
			})
		}
		s.serveNotFound(w, r)
		return
	}

	if isHTML(file) {
		if err := s.servePage(w, r, file, http.StatusOK); err != nil {
			logger.Error().Err(err).Str(log.FieldPath, r.URL.Path).Msg("failed to render page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	s.serveAsset(w, r, file)
}

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	metrics.IncPageServed("not_found")
	file, err := fsutil.ConfineRelPath(s.root, NotFoundPage)
	if err == nil && fsutil.IsRegularFile(file) == nil {
		if err := s.servePage(w, r, file, http.StatusNotFound); err == nil {
			return
		}
	}
	http.NotFound(w, r)
}

// servePage writes a rewritten HTML page. Only 200 responses go through
// ServeContent so conditional requests keep working for real pages.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, file string, status int) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	body, err := s.render(r.Context(), file)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != http.StatusOK {
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if r.Method != http.MethodHead {
			_, _ = w.Write(body)
		}
		return nil
	}

	metrics.IncPageServed("page")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")
	http.ServeContent(w, r, "", info.ModTime(), bytes.NewReader(body))
	return nil
}

// render returns the rewritten page for file, from cache when possible.
// Concurrent misses for the same file share one render.
func (s *Server) render(ctx context.Context, file string) ([]byte, error) {
	span := trace.SpanFromContext(ctx)
	if body, ok := s.cache.Get(file); ok {
		metrics.RecordPageCache(true)
		span.SetAttributes(telemetry.PageAttributes(file, true)...)
		return body, nil
	}
	metrics.RecordPageCache(false)
	span.SetAttributes(telemetry.PageAttributes(file, false)...)

	v, err, _ := s.group.Do(file, func() (any, error) {
		// #nosec G304 -- file was confined to the site root by Resolve
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		body, err := inject.Rewrite(raw, s.tags)
		if err != nil {
			return nil, fmt.Errorf("rewrite page: %w", err)
		}
		s.cache.Set(file, body, s.ttl)
		return body, nil
	})
	metrics.RecordPageRender(err)
	if err != nil {
		span.SetAttributes(telemetry.ErrorAttributes("render")...)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, file string) {
	// #nosec G304 -- file was confined to the site root by Resolve
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.serveNotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	metrics.IncPageServed("asset")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func isHTML(file string) bool {
	ext := filepath.Ext(file)
	return strings.EqualFold(ext, ".html") || strings.EqualFold(ext, ".htm")
}

// hidden reports whether rel has a dot-prefixed segment. ".well-known" is
// the one dot directory sites publish on purpose.
func hidden(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") && seg != ".well-known" {
			return true
		}
	}
	return false
}
