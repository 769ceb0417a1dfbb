// SPDX-License-Identifier: MIT

// Package daemon assembles the docs edge from its configuration and runs it.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/o1-labs/docsgate/internal/api"
	"github.com/o1-labs/docsgate/internal/cache"
	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/health"
	"github.com/o1-labs/docsgate/internal/inject"
	"github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/metrics"
	"github.com/o1-labs/docsgate/internal/platform/httpx"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/resilience"
	"github.com/o1-labs/docsgate/internal/search"
	"github.com/o1-labs/docsgate/internal/site"
	"github.com/o1-labs/docsgate/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// ServiceName identifies the process in logs and traces.
const ServiceName = "docsgate"

const (
	searchProbeTimeout     = 5 * time.Second
	searchBreakerThreshold = 3
	searchBreakerReset     = time.Minute
)

// Bootstrap wires every component described by cfg and returns an App ready
// to Run. Resources acquired before a failure are released.
func Bootstrap(ctx context.Context, cfg config.AppConfig) (_ *App, err error) {
	logger := log.WithComponent("daemon")

	var cleanups []func(context.Context) error
	defer func() {
		if err == nil {
			return
		}
		for i := len(cleanups) - 1; i >= 0; i-- {
			_ = cleanups[i](context.WithoutCancel(ctx))
		}
	}()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    ServiceName,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	cleanups = append(cleanups, tp.Shutdown)

	pageCache, cacheProbe, err := newCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	cleanups = append(cleanups, func(context.Context) error { return pageCache.Close() })

	providers, err := cfg.TagProviders()
	if err != nil {
		return nil, fmt.Errorf("build tag providers: %w", err)
	}
	pages := site.NewServer(site.Options{
		Root:     cfg.SiteDir,
		BaseURL:  cfg.Site.BaseURL,
		Tags:     inject.Compose(providers...),
		Cache:    pageCache,
		CacheTTL: cfg.Cache.TTL,
	})

	table := redirect.NewTable(cfg.Rules())
	metrics.SetRedirectRules(table.Len())

	hm := newHealthManager(cfg, cacheProbe)

	srv, err := api.New(cfg, table, pages, api.WithHealthManager(hm))
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	serverCfg := cfg.Server
	serverCfg.ListenAddr, err = config.BindListenAddr(cfg.Server.ListenAddr, cfg.Server.BindInterface)
	if err != nil {
		return nil, fmt.Errorf("resolve listen address: %w", err)
	}

	var metricsHandler http.Handler
	if serverCfg.MetricsAddr != "" {
		metricsHandler = promhttp.Handler()
	}

	mgr, err := NewManager(serverCfg, Deps{
		Logger:         logger,
		Handler:        srv.Handler(),
		MetricsHandler: metricsHandler,
	})
	if err != nil {
		return nil, err
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)
	mgr.RegisterShutdownHook("cache", func(context.Context) error { return pageCache.Close() })

	var runners []Runner
	if cfg.Cache.Watch && cfg.Cache.Backend != "none" {
		w, werr := site.NewWatcher(cfg.SiteDir, site.DefaultDebounce, pages.Invalidate)
		if werr != nil {
			logger.Warn().Err(werr).
				Str(log.FieldEvent, "site.watcher_start_failed").
				Str(log.FieldSiteDir, cfg.SiteDir).
				Msg("site watcher unavailable, rendered pages expire by TTL only")
		} else {
			runners = append(runners, w)
		}
	}

	logStartup(logger, cfg, serverCfg.ListenAddr, table.Len())
	return NewApp(logger, mgr, pages.Invalidate, runners...), nil
}

// newCache builds the rendered page cache backend. The probe is non-nil for
// backends with a remote dependency.
func newCache(cfg config.CacheConfig) (cache.Cache, func(context.Context) error, error) {
	switch cfg.Backend {
	case "none":
		return cache.NewNoOpCache(), nil, nil
	case "redis":
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log.WithComponent("cache"))
		if err != nil {
			return nil, nil, fmt.Errorf("init redis cache: %w", err)
		}
		return rc, rc.HealthCheck, nil
	case "memory", "":
		return cache.NewMemoryCache(cfg.CleanupInterval), nil, nil
	default:
		return nil, nil, errors.New("unknown cache backend: " + cfg.Backend)
	}
}

// newHealthManager registers the readiness checkers. The redirect check
// reports on the configured rules, before NewTable drops duplicates.
func newHealthManager(cfg config.AppConfig, cacheProbe func(context.Context) error) *health.Manager {
	hm := health.NewManager(cfg.Version)
	hm.RegisterChecker(health.NewSiteDirChecker(cfg.SiteDir))

	rulesErr := redirect.Validate(cfg.Rules())
	hm.RegisterChecker(health.NewFuncChecker("redirects", health.StatusUnhealthy, func(context.Context) error {
		return rulesErr
	}))

	if cacheProbe != nil {
		hm.RegisterChecker(health.NewFuncChecker("cache", health.StatusDegraded, cacheProbe))
	}
	if cfg.Search.HealthCheck && cfg.Search.AppID != "" {
		hm.RegisterChecker(search.NewChecker(cfg.Search.Settings(), httpx.NewClient(searchProbeTimeout),
			search.WithBreaker(resilience.NewCircuitBreaker("search", searchBreakerThreshold, searchBreakerReset))))
	}
	return hm
}

func logStartup(logger zerolog.Logger, cfg config.AppConfig, listen string, rules int) {
	logger.Info().
		Str(log.FieldEvent, "daemon.configured").
		Str(log.FieldVersion, cfg.Version).
		Str("listen", listen).
		Str(log.FieldSiteDir, cfg.SiteDir).
		Str(log.FieldBaseURL, cfg.Site.BaseURL).
		Str("cache_backend", cfg.Cache.Backend).
		Int("redirect_rules", rules).
		Bool("tracing", cfg.Tracing.Enabled).
		Msg("docs edge configured")

	if cfg.Search.AppID == "" || cfg.Search.APIKey == "" {
		logger.Warn().
			Str(log.FieldEvent, "search.credentials_empty").
			Msg("search credentials are empty, the search widget will not work")
	}
}
