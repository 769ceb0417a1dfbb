// SPDX-License-Identifier: MIT

package daemon

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/health"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache_Backends(t *testing.T) {
	c, probe, err := newCache(config.CacheConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.Nil(t, probe)
	c.Set("k", []byte("v"), 0)
	_, ok := c.Get("k")
	assert.True(t, ok)
	require.NoError(t, c.Close())

	c, probe, err = newCache(config.CacheConfig{Backend: "none"})
	require.NoError(t, err)
	assert.Nil(t, probe)
	c.Set("k", []byte("v"), 0)
	_, ok = c.Get("k")
	assert.False(t, ok)

	_, _, err = newCache(config.CacheConfig{Backend: "disk"})
	assert.Error(t, err)
}

func TestNewCache_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, probe, err := newCache(config.CacheConfig{
		Backend: "redis",
		Redis:   config.RedisConfig{Addr: mr.Addr()},
	})
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	require.NotNil(t, probe)
	assert.NoError(t, probe(context.Background()))

	c.Set("/build/index.html", []byte("<html>"), time.Minute)
	assert.True(t, mr.Exists("docsgate:page:/build/index.html"))

	mr.Close()
	assert.Error(t, probe(context.Background()))
}

func TestNewCache_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := newCache(config.CacheConfig{Backend: "redis", Redis: config.RedisConfig{Addr: addr}})
	assert.Error(t, err)
}

func TestBootstrap_ServesSite(t *testing.T) {
	root := t.TempDir()
	for name, body := range map[string]string{
		"index.html":  "<html><head><title>Home</title></head><body>home</body></html>",
		"zkapps.html": "<html><head><title>zkApps</title></head><body>zk</body></html>",
		"404.html":    "<html><head></head><body>missing</body></html>",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0o644))
	}

	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.SiteDir = root
	cfg.Server.ListenAddr = reserveListenAddr(t)
	cfg.Server.MetricsAddr = reserveListenAddr(t)
	cfg.Server.ShutdownTimeout = 2 * time.Second
	cfg.Tracing.Enabled = false

	app, err := Bootstrap(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	defer func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("app did not stop")
		}
	}()

	require.NoError(t, waitForListen(cfg.Server.ListenAddr, 2*time.Second))
	base := "http://" + cfg.Server.ListenAddr

	client := &http.Client{
		Timeout:   2 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(base + "/snapps")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/zkapps", resp.Header.Get("Location"))

	code, body := fetch(t, base+"/zkapps")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "GTM-MJBCZX9")

	code, _ = fetch(t, base+"/readyz")
	assert.Equal(t, http.StatusOK, code)

	require.NoError(t, waitForListen(cfg.Server.MetricsAddr, 2*time.Second))
	resp, err = client.Get("http://" + cfg.Server.MetricsAddr + "/metrics")
	require.NoError(t, err)
	scrape, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(scrape), "docsgate_redirect_rules")
}

func TestBootstrap_InvalidTracingExporter(t *testing.T) {
	cfg := config.Defaults()
	cfg.SiteDir = t.TempDir()
	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = "zipkin"

	_, err := Bootstrap(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewHealthManager_ReportsDuplicateRules(t *testing.T) {
	cfg := config.Defaults()
	cfg.SiteDir = t.TempDir()
	cfg.Redirects.Extra = []redirect.Rule{
		{From: "/old-faq", To: "/faq"},
		{From: "/old-faq", To: "/zkapps"},
	}

	ready := newHealthManager(cfg, nil).Ready(context.Background())
	assert.False(t, ready.Ready)
	require.Contains(t, ready.Checks, "redirects")
	assert.Equal(t, health.StatusUnhealthy, ready.Checks["redirects"].Status)
	assert.Contains(t, ready.Checks["redirects"].Error, redirect.ErrDuplicateFrom.Error())
}

func TestNewHealthManager_Checkers(t *testing.T) {
	cfg := config.Defaults()
	cfg.SiteDir = t.TempDir()
	cfg.Search.HealthCheck = true
	cfg.Search.AppID = ""

	ready := newHealthManager(cfg, func(context.Context) error { return nil }).Ready(context.Background())
	assert.True(t, ready.Ready)
	assert.Contains(t, ready.Checks, "cache")
	assert.Contains(t, ready.Checks, "redirects")
	assert.NotContains(t, ready.Checks, "search", "no probe without an application id")
}
