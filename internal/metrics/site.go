// SPDX-License-Identifier: MIT

// Package metrics holds the Prometheus collectors for the documentation edge.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Redirect metrics
	redirectLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_redirect_lookups_total",
		Help: "Redirect table lookups by outcome",
	}, []string{"outcome"}) // outcome=hit|miss

	redirectsServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_redirects_served_total",
		Help: "Redirects answered per legacy path",
	}, []string{"from"}) // bounded by the static table size

	redirectRules = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docsgate_redirect_rules",
		Help: "Number of effective redirect rules loaded at start-up",
	})

	// Site metrics
	pagesServedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_pages_served_total",
		Help: "Site responses by kind",
	}, []string{"kind"}) // kind=page|asset|not_found

	pageRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_page_renders_total",
		Help: "HTML tag-injection renders by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	pageCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_page_cache_total",
		Help: "Rendered page cache lookups by result",
	}, []string{"result"}) // result=hit|miss

	pageCacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docsgate_page_cache_invalidations_total",
		Help: "Number of page cache invalidations triggered by site rebuilds",
	})

	fileRequestsDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docsgate_file_requests_denied_total",
		Help: "Site file requests rejected by path checks",
	}, []string{"reason"})
)

// RecordRedirectLookup counts a redirect table lookup.
func RecordRedirectLookup(hit bool) {
	if hit {
		redirectLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	redirectLookupsTotal.WithLabelValues("miss").Inc()
}

// IncRedirectServed counts a redirect answered for a legacy path.
func IncRedirectServed(from string) { redirectsServedTotal.WithLabelValues(from).Inc() }

// SetRedirectRules records the effective rule count.
func SetRedirectRules(n int) { redirectRules.Set(float64(n)) }

// IncPageServed counts a site response. kind is page, asset or not_found.
func IncPageServed(kind string) { pagesServedTotal.WithLabelValues(kind).Inc() }

// RecordPageRender counts an HTML render.
func RecordPageRender(err error) {
	if err != nil {
		pageRendersTotal.WithLabelValues("failure").Inc()
		return
	}
	pageRendersTotal.WithLabelValues("success").Inc()
}

// RecordPageCache counts a rendered page cache lookup.
func RecordPageCache(hit bool) {
	if hit {
		pageCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	pageCacheTotal.WithLabelValues("miss").Inc()
}

// IncPageCacheInvalidation counts a cache clear triggered by the site watcher.
func IncPageCacheInvalidation() { pageCacheInvalidations.Inc() }

// IncFileRequestDenied counts a rejected file request.
func IncFileRequestDenied(reason string) { fileRequestsDenied.WithLabelValues(reason).Inc() }
