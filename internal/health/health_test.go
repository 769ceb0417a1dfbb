// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockChecker returns a fixed result.
type mockChecker struct {
	name   string
	status Status
	err    string
}

func (m *mockChecker) Name() string { return m.name }

func (m *mockChecker) Check(_ context.Context) CheckResult {
	return CheckResult{Status: m.status, Error: m.err}
}

// blockingChecker waits for its context to end.
type blockingChecker struct{}

func (blockingChecker) Name() string { return "blocking" }

func (blockingChecker) Check(ctx context.Context) CheckResult {
	<-ctx.Done()
	return CheckResult{Status: StatusUnhealthy, Error: ctx.Err().Error()}
}

func TestManager_Health(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "healthy", status: StatusHealthy})
	m.RegisterChecker(&mockChecker{name: "degraded", status: StatusDegraded})

	resp := m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.Nil(t, resp.Checks)

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusDegraded, resp.Status)
	require.Len(t, resp.Checks, 2)
	assert.Equal(t, StatusDegraded, resp.Checks["degraded"].Status)
}

func TestManager_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []Checker
		wantReady  bool
		wantStatus Status
	}{
		{"no checkers", nil, true, StatusHealthy},
		{"all healthy", []Checker{&mockChecker{name: "a", status: StatusHealthy}}, true, StatusHealthy},
		{"degraded still ready", []Checker{
			&mockChecker{name: "a", status: StatusHealthy},
			&mockChecker{name: "b", status: StatusDegraded},
		}, true, StatusDegraded},
		{"unhealthy wins", []Checker{
			&mockChecker{name: "a", status: StatusDegraded},
			&mockChecker{name: "b", status: StatusUnhealthy},
		}, false, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager("test")
			for _, c := range tt.checkers {
				m.RegisterChecker(c)
			}
			resp := m.Ready(context.Background())
			assert.Equal(t, tt.wantReady, resp.Ready)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Checks, len(tt.checkers))
		})
	}
}

func TestManager_CheckTimeout(t *testing.T) {
	m := NewManager("test")
	m.timeout = 20 * time.Millisecond
	m.RegisterChecker(blockingChecker{})

	start := time.Now()
	resp := m.Ready(context.Background())
	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, resp.Ready)
	assert.Equal(t, context.DeadlineExceeded.Error(), resp.Checks["blocking"].Error)
}

func TestManager_ServeHealth(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "broken", status: StatusUnhealthy})

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz?verbose=true", nil))

	assert.Equal(t, http.StatusOK, rec.Code, "liveness is always 200")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, StatusUnhealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
}

func TestManager_ServeReady(t *testing.T) {
	m := NewManager("v1.0.0")
	m.RegisterChecker(&mockChecker{name: "site_dir", status: StatusUnhealthy, err: "directory not found"})

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp ReadinessResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Ready)
	assert.Equal(t, "directory not found", resp.Checks["site_dir"].Error)
}

func TestSiteDirChecker(t *testing.T) {
	dir := t.TempDir()
	c := NewSiteDirChecker(dir)
	assert.Equal(t, "site_dir", c.Name())

	assert.Equal(t, StatusDegraded, c.Check(context.Background()).Status)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))
	assert.Equal(t, StatusHealthy, c.Check(context.Background()).Status)

	missing := NewSiteDirChecker(filepath.Join(dir, "missing")).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, missing.Status)
	assert.Equal(t, "directory not found", missing.Error)

	file := NewSiteDirChecker(filepath.Join(dir, "index.html")).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, file.Status)
}

func TestFuncChecker(t *testing.T) {
	ok := NewFuncChecker("redirects", StatusUnhealthy, func(context.Context) error { return nil })
	assert.Equal(t, "redirects", ok.Name())
	assert.Equal(t, StatusHealthy, ok.Check(context.Background()).Status)

	failing := NewFuncChecker("cache", StatusDegraded, func(context.Context) error { return errors.New("connection refused") })
	res := failing.Check(context.Background())
	assert.Equal(t, StatusDegraded, res.Status)
	assert.Equal(t, "connection refused", res.Error)
}
