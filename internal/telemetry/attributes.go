// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Common attribute keys for consistent tracing across the service.
const (
	// HTTP attributes
	HTTPMethodKey     = "http.method"
	HTTPStatusCodeKey = "http.status_code"
	HTTPRouteKey      = "http.route"
	HTTPURLKey        = "http.url"
	HTTPRequestIDKey  = "http.request_id"

	// Redirect attributes
	RedirectFromKey   = "redirect.from"
	RedirectToKey     = "redirect.to"
	RedirectStatusKey = "redirect.status"

	// Page attributes
	PagePathKey     = "page.path"
	PageCacheHitKey = "page.cache_hit"

	// Error attributes
	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// HTTPAttributes creates common HTTP span attributes.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(HTTPMethodKey, method),
		attribute.String(HTTPRouteKey, route),
		attribute.String(HTTPURLKey, url),
		attribute.Int(HTTPStatusCodeKey, statusCode),
	}
}

// RedirectAttributes describes a served redirect.
func RedirectAttributes(from, to string, status int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(RedirectFromKey, from),
		attribute.String(RedirectToKey, to),
		attribute.Int(RedirectStatusKey, status),
	}
}

// PageAttributes describes a rendered documentation page.
func PageAttributes(path string, cacheHit bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(PagePathKey, path),
		attribute.Bool(PageCacheHitKey, cacheHit),
	}
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
