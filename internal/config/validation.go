// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"

	"github.com/o1-labs/docsgate/internal/inject"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/validate"
)

var redirectStatuses = []int{
	http.StatusMovedPermanently,
	http.StatusFound,
	http.StatusTemporaryRedirect,
	http.StatusPermanentRedirect,
}

// Validate checks a resolved configuration. The site directory itself is not
// required to exist here; readiness reports a missing build instead.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("logLevel", strings.ToLower(cfg.LogLevel), validate.LogLevels())
	v.NotEmpty("siteDir", cfg.SiteDir)

	v.URL("site.url", cfg.Site.URL, []string{"http", "https"})
	v.URLPath("site.baseUrl", cfg.Site.BaseURL)
	v.NotEmpty("site.title", cfg.Site.Title)
	v.OneOf("site.onBrokenLinks", cfg.Site.OnBrokenLinks, []string{"throw", "warn", "ignore"})
	if _, err := inject.NewMetadata(cfg.Site.Metadata); err != nil {
		v.AddError("site.metadata", err.Error(), len(cfg.Site.Metadata))
	}
	if _, err := inject.NewStylesheets(cfg.Site.Stylesheets); err != nil {
		v.AddError("site.stylesheets", err.Error(), len(cfg.Site.Stylesheets))
	}

	// Search credentials may be explicitly empty.
	v.NotEmpty("search.indexName", cfg.Search.IndexName)

	if cfg.Analytics.GTMContainerID != "" {
		_, err := inject.NewGoogleTagManager(cfg.Analytics.GTMContainerID)
		v.Custom("analytics.gtmContainerId", cfg.Analytics.GTMContainerID, err)
	}
	if cfg.Analytics.Hotjar.SiteID != 0 {
		_, err := inject.NewHotjar(cfg.Analytics.Hotjar.SiteID, cfg.Analytics.Hotjar.SnippetVersion)
		v.Custom("analytics.hotjar", cfg.Analytics.Hotjar.SiteID, err)
	}

	if !slices.Contains(redirectStatuses, cfg.Redirects.Status) {
		v.AddError("redirects.status", fmt.Sprintf("must be one of %v", redirectStatuses), cfg.Redirects.Status)
	}
	v.Custom("redirects", len(cfg.Redirects.Extra), redirect.Validate(cfg.Rules()))

	v.ListenAddr("server.listenAddr", cfg.Server.ListenAddr)
	if cfg.Server.MetricsAddr != "" {
		v.ListenAddr("server.metricsAddr", cfg.Server.MetricsAddr)
		if cfg.Server.MetricsAddr == cfg.Server.ListenAddr {
			v.AddError("server.metricsAddr", "must differ from server.listenAddr", cfg.Server.MetricsAddr)
		}
	}
	v.Positive("server.maxHeaderBytes", cfg.Server.MaxHeaderBytes)
	for _, p := range cfg.Server.TrustedProxies {
		if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
			v.AddError("server.trustedProxies", "must be an IP or CIDR", p)
		}
	}

	v.OneOf("cache.backend", cfg.Cache.Backend, []string{"memory", "redis", "none"})
	if cfg.Cache.TTL < 0 {
		v.AddError("cache.ttl", "must not be negative", cfg.Cache.TTL.String())
	}
	if cfg.Cache.Backend == "redis" {
		v.NotEmpty("cache.redis.addr", cfg.Cache.Redis.Addr)
		v.Range("cache.redis.db", cfg.Cache.Redis.DB, 0, 15)
	}

	if cfg.RateLimit.Enabled {
		v.Positive("rateLimit.requests", cfg.RateLimit.Requests)
		if cfg.RateLimit.Window <= 0 {
			v.AddError("rateLimit.window", "must be positive", cfg.RateLimit.Window.String())
		}
	}

	if cfg.Tracing.Enabled {
		v.OneOf("tracing.exporter", cfg.Tracing.Exporter, []string{"grpc", "http"})
		v.NotEmpty("tracing.endpoint", cfg.Tracing.Endpoint)
		if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
			v.AddError("tracing.sampleRate", "must be between 0 and 1", cfg.Tracing.SampleRate)
		}
	}

	return v.Err()
}
