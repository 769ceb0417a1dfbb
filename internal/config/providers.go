// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"

	"github.com/o1-labs/docsgate/internal/inject"
	"github.com/o1-labs/docsgate/internal/search"
)

// TagProviders builds the head-injection providers in registration order:
// analytics first, then metadata and stylesheets.
func (c AppConfig) TagProviders() ([]inject.Provider, error) {
	var providers []inject.Provider

	if id := c.Analytics.GTMContainerID; id != "" {
		gtm, err := inject.NewGoogleTagManager(id)
		if err != nil {
			return nil, fmt.Errorf("google tag manager: %w", err)
		}
		providers = append(providers, gtm)
	}
	if hj := c.Analytics.Hotjar; hj.SiteID != 0 {
		p, err := inject.NewHotjar(hj.SiteID, hj.SnippetVersion)
		if err != nil {
			return nil, fmt.Errorf("hotjar: %w", err)
		}
		providers = append(providers, p)
	}

	md, err := inject.NewMetadata(c.Site.Metadata)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	ss, err := inject.NewStylesheets(c.Site.Stylesheets)
	if err != nil {
		return nil, fmt.Errorf("stylesheets: %w", err)
	}
	return append(providers, md, ss), nil
}

// Settings returns the public part of the search configuration.
func (c SearchConfig) Settings() search.Settings {
	return search.Settings{
		AppID:            c.AppID,
		APIKey:           c.APIKey,
		IndexName:        c.IndexName,
		ContextualSearch: c.ContextualSearch,
	}
}
