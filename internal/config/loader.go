// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading with precedence
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader. An empty configPath loads
// from defaults and environment only.
func NewLoader(configPath, version string) *Loader {
	return &Loader{
		configPath: configPath,
		version:    version,
	}
}

// Load loads configuration with precedence: ENV > File > Defaults.
// Order is fixed: defaults, strict file parse, env overrides, validation.
func (l *Loader) Load() (AppConfig, error) {
	cfg := Defaults()

	if l.configPath != "" {
		if err := loadFile(l.configPath, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("load config file: %w", err)
		}
	}

	mergeEnv(&cfg)
	cfg.Version = l.version

	if abs, err := filepath.Abs(cfg.SiteDir); err == nil {
		cfg.SiteDir = abs
	}

	if err := Validate(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// loadFile decodes a YAML file on top of cfg with STRICT parsing.
// Unknown fields cause an error to prevent silent misconfiguration.
func loadFile(path string, cfg *AppConfig) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("%w: %s (only YAML supported)", ErrUnsupportedFormat, ext)
	}

	// #nosec G304 -- configuration file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	return decodeStrict(data, cfg)
}

func decodeStrict(data []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("strict config parse error: %w: %w", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrMultipleDocuments
	}
	return nil
}

// mergeEnv applies environment overrides. Each lookup falls back to the value
// already resolved from defaults and file.
func mergeEnv(cfg *AppConfig) {
	cfg.LogLevel = ParseString("DOCSGATE_LOG_LEVEL", cfg.LogLevel)
	cfg.SiteDir = ParseString("DOCSGATE_SITE_DIR", cfg.SiteDir)

	cfg.Site.URL = ParseString("DOCSGATE_SITE_URL", cfg.Site.URL)
	cfg.Site.BaseURL = ParseString("DOCSGATE_BASE_URL", cfg.Site.BaseURL)

	// Search credentials keep their historical unprefixed names, and an
	// explicitly empty value is honored.
	cfg.Search.AppID = LookupString("ALGOLIA_APP_ID", cfg.Search.AppID)
	cfg.Search.APIKey = LookupString("ALGOLIA_SEARCH_API_KEY", cfg.Search.APIKey)
	cfg.Search.HealthCheck = ParseBool("DOCSGATE_SEARCH_HEALTHCHECK", cfg.Search.HealthCheck)

	cfg.Analytics.GTMContainerID = ParseString("DOCSGATE_GTM_CONTAINER_ID", cfg.Analytics.GTMContainerID)
	cfg.Analytics.Hotjar.SiteID = ParseInt("DOCSGATE_HOTJAR_SITE_ID", cfg.Analytics.Hotjar.SiteID)

	cfg.Redirects.Status = ParseInt("DOCSGATE_REDIRECT_STATUS", cfg.Redirects.Status)

	cfg.Server.ListenAddr = ParseString("DOCSGATE_LISTEN", cfg.Server.ListenAddr)
	cfg.Server.MetricsAddr = ParseString("DOCSGATE_METRICS_LISTEN", cfg.Server.MetricsAddr)
	cfg.Server.BindInterface = ParseString("DOCSGATE_BIND_INTERFACE", cfg.Server.BindInterface)
	cfg.Server.ReadTimeout = ParseDuration("DOCSGATE_SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = ParseDuration("DOCSGATE_SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = ParseDuration("DOCSGATE_SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = ParseDuration("DOCSGATE_SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	if cfg.Server.ShutdownTimeout < minShutdownTimeout {
		cfg.Server.ShutdownTimeout = minShutdownTimeout
	}
	if proxies := ParseString("DOCSGATE_TRUSTED_PROXIES", ""); proxies != "" {
		cfg.Server.TrustedProxies = splitList(proxies)
	}

	cfg.Cache.Backend = ParseString("DOCSGATE_CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.TTL = ParseDuration("DOCSGATE_CACHE_TTL", cfg.Cache.TTL)
	cfg.Cache.Watch = ParseBool("DOCSGATE_CACHE_WATCH", cfg.Cache.Watch)
	cfg.Cache.Redis.Addr = ParseString("DOCSGATE_REDIS_ADDR", cfg.Cache.Redis.Addr)
	cfg.Cache.Redis.Password = ParseString("DOCSGATE_REDIS_PASSWORD", cfg.Cache.Redis.Password)
	cfg.Cache.Redis.DB = ParseInt("DOCSGATE_REDIS_DB", cfg.Cache.Redis.DB)

	cfg.RateLimit.Enabled = ParseBool("DOCSGATE_RATELIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Requests = ParseInt("DOCSGATE_RATELIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window = ParseDuration("DOCSGATE_RATELIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.Tracing.Enabled = ParseBool("DOCSGATE_TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = ParseString("DOCSGATE_TRACING_EXPORTER", cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = ParseString("DOCSGATE_TRACING_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.SampleRate = ParseFloat("DOCSGATE_TRACING_SAMPLE_RATE", cfg.Tracing.SampleRate)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
