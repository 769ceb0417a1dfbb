// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// validate is a CLI tool to validate docsgate YAML configuration files and,
// optionally, check every redirect destination against a built site.
//
// Usage:
//
//	validate -f config.yaml
//	validate --file config.yaml --site-dir ./build
//
// Exit codes:
//   - 0: Configuration is valid
//   - 1: Configuration is invalid (parse, validation or broken redirect target)
//   - 2: Usage error (missing required flag)
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/redirect"
	"github.com/o1-labs/docsgate/internal/site"
	"github.com/o1-labs/docsgate/internal/validate"
	"github.com/o1-labs/docsgate/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		file        string
		siteDir     string
		showVersion bool
	)

	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&siteDir, "site-dir", "", "built site to check redirect destinations against")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if showVersion {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Usage:")
		fmt.Fprintln(stderr, "  validate -f config.yaml")
		fmt.Fprintln(stderr, "  validate --file config.yaml --site-dir ./build")
		return 2
	}

	// Load parses strictly and validates, including the redirect table.
	cfg, err := config.NewLoader(file, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error in %s:\n", file)
		fmt.Fprintf(stderr, "  %v\n", err)
		return 1
	}

	if siteDir != "" {
		v := validate.New()
		v.Directory("site-dir", siteDir)
		if err := v.Err(); err != nil {
			fmt.Fprintf(stderr, "Site directory error:\n  %v\n", err)
			return 1
		}
	}

	if siteDir != "" && cfg.Site.OnBrokenLinks != "ignore" {
		pages := site.NewServer(site.Options{Root: siteDir, BaseURL: cfg.Site.BaseURL})
		if err := redirect.Lint(redirect.NewTable(cfg.Rules()), pages.Exists); err != nil {
			if cfg.Site.OnBrokenLinks == "throw" {
				fmt.Fprintf(stderr, "Broken redirect targets in %s:\n", siteDir)
				printJoined(stderr, err)
				return 1
			}
			fmt.Fprintf(stderr, "Warning: broken redirect targets in %s:\n", siteDir)
			printJoined(stderr, err)
		}
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", file)
	return 0
}

func printJoined(w io.Writer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintf(w, "  %v\n", e)
		}
		return
	}
	fmt.Fprintf(w, "  %v\n", err)
}
