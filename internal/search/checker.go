// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package search

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/o1-labs/docsgate/internal/health"
	"github.com/o1-labs/docsgate/internal/resilience"
)

// Checker probes the hosted search service. An unreachable service degrades
// readiness but never fails it: pages still serve without search.
type Checker struct {
	settings Settings
	client   *http.Client
	endpoint string
	breaker  *resilience.CircuitBreaker
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithBreaker stops probing while the breaker is open, so a failing search
// service is not hit on every readiness poll.
func WithBreaker(cb *resilience.CircuitBreaker) CheckerOption {
	return func(c *Checker) { c.breaker = cb }
}

// NewChecker creates a Checker that probes the DSN of settings.
func NewChecker(settings Settings, client *http.Client, opts ...CheckerOption) *Checker {
	c := &Checker{
		settings: settings,
		client:   client,
		endpoint: settings.DSN() + "/1/isalive",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements health.Checker.
func (c *Checker) Name() string { return "search" }

// Check reports degraded, not unhealthy, when the search service is down:
// the site still serves without search.
func (c *Checker) Check(ctx context.Context) health.CheckResult {
	probe := c.probe
	if c.breaker != nil {
		probe = func(ctx context.Context) error { return c.breaker.Execute(ctx, c.probe) }
	}
	if err := probe(ctx); err != nil {
		return health.CheckResult{
			Status:  health.StatusDegraded,
			Message: "search service unreachable",
			Error:   err.Error(),
		}
	}
	return health.CheckResult{Status: health.StatusHealthy, Message: c.settings.IndexName}
}

func (c *Checker) probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Algolia-Application-Id", c.settings.AppID)
	req.Header.Set("X-Algolia-API-Key", c.settings.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
