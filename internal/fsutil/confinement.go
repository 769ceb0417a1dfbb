// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package fsutil keeps file access inside a configured root directory.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEscapesRoot is returned when a path resolves outside its root.
var ErrEscapesRoot = errors.New("path escapes root")

// ConfineRelPath joins root and relTarget and returns the resolved path,
// failing if the result (after following symlinks) lies outside root.
// relTarget must be relative. Targets that do not exist yet are resolved
// through their nearest parent so callers may use the result for writes.
func ConfineRelPath(root, relTarget string) (string, error) {
	if strings.Contains(relTarget, "\\") {
		return "", fmt.Errorf("path contains backslash: %s", relTarget)
	}

	cleanRel := filepath.Clean(relTarget)
	if filepath.IsAbs(cleanRel) {
		return "", fmt.Errorf("target path must be relative: %s", relTarget)
	}
	if cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEscapesRoot, relTarget)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return "", err
		}
		realRoot = absRoot
	}

	return resolveWithin(realRoot, filepath.Join(realRoot, cleanRel))
}

// resolveWithin resolves symlinks in fullPath and checks it stays under realRoot.
func resolveWithin(realRoot, fullPath string) (string, error) {
	var realPath string
	if _, err := os.Lstat(fullPath); err == nil {
		rp, err := filepath.EvalSymlinks(fullPath)
		if err != nil {
			return "", fmt.Errorf("resolve path: %w", err)
		}
		realPath = rp
	} else {
		// Not there yet: resolve the nearest existing ancestor instead.
		dir := filepath.Dir(fullPath)
		suffix := filepath.Base(fullPath)
		for {
			rp, err := filepath.EvalSymlinks(dir)
			if err == nil {
				realPath = filepath.Join(rp, suffix)
				break
			}
			if !os.IsNotExist(err) {
				return "", fmt.Errorf("resolve parent path: %w", err)
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				realPath = fullPath
				break
			}
			suffix = filepath.Join(filepath.Base(dir), suffix)
			dir = parent
		}
	}

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil {
		return "", fmt.Errorf("rel computation failed: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w via symlinks: %s", ErrEscapesRoot, realPath)
	}
	return realPath, nil
}

// IsRegularFile reports an error unless path exists and is a regular file.
func IsRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}
