// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/o1-labs/docsgate/internal/log"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Runner is a background subsystem bound to the daemon context, such as the
// site directory watcher.
type Runner interface {
	Run(ctx context.Context) error
}

// App owns the long-lived runtime: background runners, the reload signal,
// and the server Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	runners      []Runner
	invalidate   func()
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. invalidate, if set, runs whenever
// the process receives SIGHUP.
func NewApp(logger zerolog.Logger, manager Manager, invalidate func(), runners ...Runner) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		runners:      runners,
		invalidate:   invalidate,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned subsystems and blocks until ctx is cancelled or the
// servers fail.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, r := range a.runners {
		g.Go(func() error {
			// Runners are best-effort; the site keeps serving without them.
			if err := r.Run(ctx); err != nil {
				a.logger.Warn().Err(err).Str(log.FieldEvent, "runner.failed").Msg("background runner stopped")
			}
			return nil
		})
	}

	if a.invalidate != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hup := make(chan os.Signal, 1)
			signal.Notify(hup, a.reloadSignal)
			defer signal.Stop(hup)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hup:
					a.logger.Info().
						Str(log.FieldEvent, "site.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, invalidating rendered pages")
					a.invalidate()
				}
			}
		})
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}

// WaitForShutdown returns a context cancelled on SIGINT or SIGTERM.
func WaitForShutdown() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
