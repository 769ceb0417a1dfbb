// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"net/http"
	"time"

	"github.com/o1-labs/docsgate/internal/inject"
)

const (
	// DefaultAlgoliaAppID is used when ALGOLIA_APP_ID is absent.
	DefaultAlgoliaAppID = "mina-appId"
	// DefaultAlgoliaAPIKey is used when ALGOLIA_SEARCH_API_KEY is absent.
	DefaultAlgoliaAPIKey = "mina-apiKey"

	defaultSiteURL     = "https://docs.minaprotocol.com"
	defaultTitle       = "Mina Documentation"
	defaultTagline     = "Website for documentation about Mina Protocol"
	defaultLogoURL     = "https://docs.minaprotocol.com/img/common/mina-logo.png"
	defaultListenAddr  = ":8080"
	defaultSiteDir     = "build"
	defaultCacheTTL    = 10 * time.Minute
	defaultCacheSweep  = time.Minute
	defaultRateLimit   = 120
	defaultRateWindow  = time.Minute
	defaultSampleRate  = 0.1
	defaultGTMID       = "GTM-MJBCZX9"
	defaultHotjarID    = 3229818
	defaultHotjarSnipV = 6
)

// Defaults returns the built-in configuration of the Mina documentation site.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel: "info",
		SiteDir:  defaultSiteDir,
		Site: SiteConfig{
			Title:            defaultTitle,
			Tagline:          defaultTagline,
			URL:              defaultSiteURL,
			BaseURL:          "/",
			Favicon:          "img/favicon.ico",
			OrganizationName: "o1-labs",
			ProjectName:      "docs2",
			TrailingSlash:    false,
			OnBrokenLinks:    "throw",
			EditURL:          "https://github.com/o1-labs/docs2/edit/main",
			I18n: I18nConfig{
				DefaultLocale: "en",
				Locales:       []string{"en"},
			},
			Metadata: []inject.MetaTag{
				{Name: "keywords", Content: "Snarkyjs, ZkApps, Zero Knowledge Proofs, Zkp, Smart Contracts"},
				{Name: "image", Property: "image", Content: defaultLogoURL},
				{Name: "og:image", Property: "og:image", Content: defaultLogoURL},
				{Name: "twitter:image", Property: "twitter:image", Content: defaultLogoURL},
				{Name: "twitter:title", Content: defaultTitle},
				{Name: "twitter:description", Content: defaultTagline},
			},
			Stylesheets: []inject.Stylesheet{{
				Href:        "https://cdn.jsdelivr.net/npm/katex@0.13.24/dist/katex.min.css",
				Type:        "text/css",
				Integrity:   "sha384-odtC+0UGzzFL/6PNoE8rX/SPcQDXBJ+uRepguP4QkPCm2LBxH3FA3y+fKSiJ+AmM",
				CrossOrigin: "anonymous",
			}},
			Navbar: NavbarConfig{
				Logo: NavbarLogo{Alt: "Mina Logo", Src: "svg/common/mina_logo.svg", Href: "/"},
				Items: []NavbarItem{
					{Type: "html", Position: "left", ClassName: "navbar-docs-copy", Value: `<a href="/"><h3 style="margin:0">Docs</h3></a>`},
					{Type: "search", Position: "left"},
					{Type: "html", Position: "right", Value: `<a href="https://github.com/MinaProtocol/mina"><img class="navbar-icon" src="/svg/socials/github_24x24.svg"/></a>`},
					{Type: "html", Position: "right", Value: `<a href="https://bit.ly/MinaDiscord"><img class="navbar-icon" src="/svg/socials/discord_dark_24x24.svg"/></a>`},
				},
			},
			ColorMode: ColorModeConfig{
				DefaultMode:               "light",
				DisableSwitch:             true,
				RespectPrefersColorScheme: false,
			},
			Sidebar: SidebarConfig{AutoCollapseCategories: true},
		},
		Search: SearchConfig{
			AppID:            DefaultAlgoliaAppID,
			APIKey:           DefaultAlgoliaAPIKey,
			IndexName:        "mina",
			ContextualSearch: false,
		},
		Analytics: AnalyticsConfig{
			GTMContainerID: defaultGTMID,
			Hotjar: HotjarConfig{
				SiteID:         defaultHotjarID,
				SnippetVersion: defaultHotjarSnipV,
			},
		},
		Redirects: RedirectsConfig{
			Status: http.StatusMovedPermanently,
		},
		Server: ServerConfig{
			ListenAddr:      defaultListenAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			MaxHeaderBytes:  defaultMaxHeaderBytes,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			TTL:             defaultCacheTTL,
			CleanupInterval: defaultCacheSweep,
			Watch:           true,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: defaultRateLimit,
			Window:   defaultRateWindow,
		},
		Tracing: TracingConfig{
			Exporter:    "grpc",
			Endpoint:    "localhost:4317",
			SampleRate:  defaultSampleRate,
			Environment: "production",
		},
	}
}
