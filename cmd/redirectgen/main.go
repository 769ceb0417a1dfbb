// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// redirectgen writes a static HTML redirect page for every redirect rule into
// a built site, so the legacy paths keep working when the site is hosted
// without docsgate in front of it.
//
// Usage:
//
//	redirectgen -f config.yaml -out ./build
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/daemon"
	xglog "github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/version"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var (
		file        string
		outDir      string
		showVersion bool
	)

	fs := flag.NewFlagSet("redirectgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&file, "file", "", "path to YAML configuration file (defaults and env when empty)")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&outDir, "out", "", "site directory to write into (defaults to siteDir)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	xglog.Configure(xglog.Config{
		Level:   "warn",
		Output:  stderr,
		Service: daemon.ServiceName,
		Version: version.Version,
	})

	cfg, err := config.NewLoader(file, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if outDir == "" {
		outDir = cfg.SiteDir
	}

	res, err := redirect.Export(ctx, redirect.NewTable(cfg.Rules()), redirect.ExportOptions{
		Dir:           outDir,
		BaseURL:       cfg.Site.BaseURL,
		TrailingSlash: cfg.Site.TrailingSlash,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Export failed: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "wrote %d redirect pages to %s (%d skipped)\n", len(res.Written), outDir, len(res.Skipped))
	return 0
}
