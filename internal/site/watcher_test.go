// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package site

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWatcher(t *testing.T, root string) (*atomic.Int32, func()) {
	t.Helper()
	var calls atomic.Int32
	w, err := NewWatcher(root, 20*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return &calls, func() {
		cancel()
		require.NoError(t, <-done)
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := buildSite(t)
	calls, stop := startWatcher(t, root)
	defer stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte(page("v")), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst collapses into one callback")
}

func TestWatcher_NewDirectories(t *testing.T) {
	defer goleak.VerifyNone(t)

	root := buildSite(t)
	calls, stop := startWatcher(t, root)
	defer stop()

	dir := filepath.Join(root, "api-reference")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte(page("API")), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	parent := t.TempDir()
	root := filepath.Join(parent, "build")
	require.NoError(t, os.Mkdir(root, 0o755))
	calls, stop := startWatcher(t, root)
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(parent, "other.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "build"), 0, func() {})
	assert.Error(t, err)
}
