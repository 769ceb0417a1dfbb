// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/o1-labs/docsgate/internal/config"
	"github.com/o1-labs/docsgate/internal/daemon"
	xglog "github.com/o1-labs/docsgate/internal/log"
	"github.com/o1-labs/docsgate/internal/version"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Configure logger with safe defaults until config is loaded
	xglog.Configure(xglog.Config{
		Level:   "info",
		Service: daemon.ServiceName,
		Version: version.Version,
	})

	logger := xglog.WithComponent("daemon")

	path := strings.TrimSpace(*configPath)
	if path == "" {
		path = strings.TrimSpace(config.ParseString("DOCSGATE_CONFIG", ""))
	}

	// Load configuration with precedence: ENV > File > Defaults
	cfg, err := config.NewLoader(path, version.Version).Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", path).
			Msg("failed to load configuration")
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: daemon.ServiceName,
		Version: cfg.Version,
	})
	logger = xglog.WithComponent("daemon")

	source := "env+defaults"
	if path != "" {
		source = "file"
	}
	logger.Info().
		Str(xglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str("path", path).
		Msg("configuration loaded")

	ctx, stop := daemon.WaitForShutdown()
	defer stop()

	app, err := daemon.Bootstrap(ctx, cfg)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "daemon.bootstrap_failed").
			Msg("failed to start")
	}

	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str(xglog.FieldEvent, "daemon.exited").
			Msg("daemon stopped with error")
	}

	logger.Info().
		Str(xglog.FieldEvent, "daemon.stopped").
		Msg("shutdown complete")
}
