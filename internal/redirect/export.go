// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/o1-labs/docsgate/internal/fsutil"
	"github.com/o1-labs/docsgate/internal/log"
)

var pageTemplate = template.Must(template.New("redirect").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="UTF-8">
    <meta http-equiv="refresh" content="0; url={{.To}}">
    <link rel="canonical" href="{{.To}}" />
  </head>
  <script>
    window.location.href = {{.To}} + window.location.search + window.location.hash;
  </script>
</html>
`))

// ExportOptions controls where static redirect pages are written.
type ExportOptions struct {
	// Dir is the root of the built site.
	Dir string
	// BaseURL is the path prefix the site is served under. Defaults to "/".
	BaseURL string
	// TrailingSlash selects "<from>/index.html" over "<from>.html".
	TrailingSlash bool
}

// ExportResult lists the files written and the sources that were skipped
// because a real page already occupies the file.
type ExportResult struct {
	Written []string
	Skipped []string
}

// Export writes one static redirect page per rule so the site keeps
// redirecting when it is served without this process in front of it.
// Existing files are never overwritten. Each page is written atomically.
func Export(ctx context.Context, t *Table, opts ExportOptions) (ExportResult, error) {
	var res ExportResult
	if opts.Dir == "" {
		return res, errors.New("export dir is required")
	}
	base := opts.BaseURL
	if base == "" {
		base = "/"
	}

	logger := log.WithComponentFromContext(ctx, "redirect")

	for _, r := range t.Rules() {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rel := pageFile(r.From, opts.TrailingSlash)
		if rel == "" {
			res.Skipped = append(res.Skipped, r.From)
			continue
		}

		dst, err := fsutil.ConfineRelPath(opts.Dir, rel)
		if err != nil {
			return res, fmt.Errorf("confine %q: %w", r.From, err)
		}
		if _, err := os.Stat(dst); err == nil {
			logger.Warn().
				Str(log.FieldEvent, "redirect.export_skipped").
				Str(log.FieldFrom, r.From).
				Str(log.FieldPath, dst).
				Msg("page exists, not overwriting with redirect")
			res.Skipped = append(res.Skipped, r.From)
			continue
		}

		if err := writePage(dst, path.Join(base, r.To)); err != nil {
			return res, fmt.Errorf("write redirect page for %q: %w", r.From, err)
		}
		res.Written = append(res.Written, dst)
	}

	logger.Info().
		Str(log.FieldEvent, "redirect.exported").
		Int("written", len(res.Written)).
		Int("skipped", len(res.Skipped)).
		Msg("static redirect pages exported")

	return res, nil
}

func pageFile(from string, trailingSlash bool) string {
	p := strings.Trim(from, "/")
	if p == "" {
		return ""
	}
	if trailingSlash {
		return filepath.Join(filepath.FromSlash(p), "index.html")
	}
	return filepath.FromSlash(p) + ".html"
}

func writePage(dst, to string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	pending, err := renameio.NewPendingFile(dst, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if err := pageTemplate.Execute(pending, struct{ To string }{To: to}); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return pending.CloseAtomicallyReplace()
}
