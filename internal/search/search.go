// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package search exposes the hosted search settings to the client widget.
package search

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/o1-labs/docsgate/internal/log"
)

// Settings is the public configuration of the hosted search widget. The API
// key is a search-only key and is safe to publish.
type Settings struct {
	AppID            string `json:"appId"`
	APIKey           string `json:"apiKey"`
	IndexName        string `json:"indexName"`
	ContextualSearch bool   `json:"contextualSearch"`
}

// DSN returns the read endpoint of the hosted search service for AppID.
func (s Settings) DSN() string {
	return "https://" + strings.ToLower(s.AppID) + "-dsn.algolia.net"
}

// Handler serves the settings as JSON. The body is encoded once.
func Handler(s Settings) http.Handler {
	body, err := json.Marshal(s)
	if err != nil {
		panic(err) // plain string and bool fields always marshal
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		if _, err := w.Write(body); err != nil {
			logger := log.WithComponentFromContext(r.Context(), "search")
			logger.Debug().Err(err).Msg("failed to write search settings")
		}
	})
}
