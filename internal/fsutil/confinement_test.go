// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfineRelPath(t *testing.T) {
	root := t.TempDir()
	realRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "docs", "page.html"), []byte("x"), 0o644))

	tests := []struct {
		name    string
		rel     string
		want    string
		wantErr bool
	}{
		{name: "existing file", rel: "docs/page.html", want: filepath.Join(realRoot, "docs", "page.html")},
		{name: "missing file in existing dir", rel: "docs/new.html", want: filepath.Join(realRoot, "docs", "new.html")},
		{name: "missing nested dirs", rel: "a/b/c.html", want: filepath.Join(realRoot, "a", "b", "c.html")},
		{name: "cleaned inner traversal", rel: "docs/../docs/page.html", want: filepath.Join(realRoot, "docs", "page.html")},
		{name: "traversal", rel: "../etc/passwd", wantErr: true},
		{name: "absolute", rel: "/etc/passwd", wantErr: true},
		{name: "backslash", rel: `docs\page.html`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConfineRelPath(root, tt.rel)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfineRelPath_SymlinkEscape(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret"), []byte("x"), 0o644))
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := ConfineRelPath(root, "link/secret")
	assert.ErrorIs(t, err, ErrEscapesRoot)
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.NoError(t, IsRegularFile(file))
	assert.Error(t, IsRegularFile(dir))
	assert.Error(t, IsRegularFile(filepath.Join(dir, "missing")))
}
