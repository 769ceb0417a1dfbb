// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := NewLoader("", "v1.2.3").Load()
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Version)
	assert.Equal(t, "Mina Documentation", cfg.Site.Title)
	assert.Equal(t, "https://docs.minaprotocol.com", cfg.Site.URL)
	assert.Equal(t, "/", cfg.Site.BaseURL)
	assert.False(t, cfg.Site.TrailingSlash)
	assert.Equal(t, "en", cfg.Site.I18n.DefaultLocale)
	assert.Len(t, cfg.Site.Metadata, 6)
	assert.Len(t, cfg.Site.Stylesheets, 1)

	assert.Equal(t, DefaultAlgoliaAppID, cfg.Search.AppID)
	assert.Equal(t, DefaultAlgoliaAPIKey, cfg.Search.APIKey)
	assert.Equal(t, "mina", cfg.Search.IndexName)
	assert.False(t, cfg.Search.ContextualSearch)

	assert.Equal(t, "GTM-MJBCZX9", cfg.Analytics.GTMContainerID)
	assert.Equal(t, 3229818, cfg.Analytics.Hotjar.SiteID)
	assert.Equal(t, http.StatusMovedPermanently, cfg.Redirects.Status)
	assert.True(t, filepath.IsAbs(cfg.SiteDir))
	assert.Len(t, cfg.Rules(), 40)
}

func TestLoad_AlgoliaEnv(t *testing.T) {
	t.Setenv("ALGOLIA_APP_ID", "APP123")
	t.Setenv("ALGOLIA_SEARCH_API_KEY", "key456")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, "APP123", cfg.Search.AppID)
	assert.Equal(t, "key456", cfg.Search.APIKey)
}

func TestLoad_AlgoliaEnvEmptyIsKept(t *testing.T) {
	t.Setenv("ALGOLIA_APP_ID", "")
	t.Setenv("ALGOLIA_SEARCH_API_KEY", "")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Search.AppID)
	assert.Empty(t, cfg.Search.APIKey)
}

func TestLoad_AlgoliaEnvAbsentUsesDefaults(t *testing.T) {
	for _, key := range []string{"ALGOLIA_APP_ID", "ALGOLIA_SEARCH_API_KEY"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAlgoliaAppID, cfg.Search.AppID)
	assert.Equal(t, DefaultAlgoliaAPIKey, cfg.Search.APIKey)
}

func TestLoad_File(t *testing.T) {
	cfg, err := NewLoader("testdata/valid.yaml", "").Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://docs.example.org", cfg.Site.URL)
	assert.Equal(t, "/docs/", cfg.Site.BaseURL)
	assert.True(t, cfg.Site.TrailingSlash)
	// untouched fields keep their defaults
	assert.Equal(t, "Mina Documentation", cfg.Site.Title)
	assert.Equal(t, "mina-staging", cfg.Search.IndexName)
	assert.True(t, cfg.Search.ContextualSearch)
	assert.Equal(t, "GTM-TEST01", cfg.Analytics.GTMContainerID)
	assert.Zero(t, cfg.Analytics.Hotjar.SiteID)
	assert.Equal(t, http.StatusPermanentRedirect, cfg.Redirects.Status)
	assert.Equal(t, []redirect.Rule{{From: "/old-faq", To: "/faq"}}, cfg.Redirects.Extra)
	assert.Len(t, cfg.Rules(), 41)
	assert.Equal(t, ":9000", cfg.Server.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("DOCSGATE_LISTEN", ":7000")
	t.Setenv("DOCSGATE_CACHE_BACKEND", "memory")
	t.Setenv("DOCSGATE_REDIRECT_STATUS", "302")

	cfg, err := NewLoader("testdata/valid.yaml", "").Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.ListenAddr)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, http.StatusFound, cfg.Redirects.Status)
}

func TestLoad_StrictUnknownField(t *testing.T) {
	_, err := NewLoader("testdata/unknown_field.yaml", "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoad_MultipleDocuments(t *testing.T) {
	_, err := NewLoader("testdata/multi_doc.yaml", "").Load()
	assert.ErrorIs(t, err, ErrMultipleDocuments)
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, err := NewLoader(path, "").Load()
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults().Site, cfg.Site)
}

func TestLoad_RedirectChainRejected(t *testing.T) {
	_, err := NewLoader("testdata/chain.yaml", "").Load()
	require.Error(t, err)

	var ve validate.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "redirects", ve.Errors()[0].Field)
	assert.Contains(t, err.Error(), redirect.ErrChain.Error())
}

func TestLoad_ShutdownTimeoutFloor(t *testing.T) {
	t.Setenv("DOCSGATE_SERVER_SHUTDOWN_TIMEOUT", "1s")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, minShutdownTimeout, cfg.Server.ShutdownTimeout)
}

func TestLoad_TrustedProxiesEnv(t *testing.T) {
	t.Setenv("DOCSGATE_TRUSTED_PROXIES", " 10.0.0.1, ,172.16.0.0/12 ")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "172.16.0.0/12"}, cfg.Server.TrustedProxies)
}

func TestLoad_DefaultsAreFresh(t *testing.T) {
	a := Defaults()
	a.Site.Metadata[0].Content = "mutated"
	assert.NotEqual(t, "mutated", Defaults().Site.Metadata[0].Content)
}
