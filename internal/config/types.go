// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"time"

	"github.com/o1-labs/docsgate/internal/inject"
	"github.com/o1-labs/docsgate/internal/redirect"
)

// AppConfig is the fully resolved service configuration.
type AppConfig struct {
	Version   string          `yaml:"-" json:"-"`
	LogLevel  string          `yaml:"logLevel"`
	SiteDir   string          `yaml:"siteDir"`
	Site      SiteConfig      `yaml:"site"`
	Search    SearchConfig    `yaml:"search"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Redirects RedirectsConfig `yaml:"redirects"`
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// SiteConfig is the public site metadata served at /api/site.
type SiteConfig struct {
	Title            string              `yaml:"title" json:"title"`
	Tagline          string              `yaml:"tagline" json:"tagline"`
	URL              string              `yaml:"url" json:"url"`
	BaseURL          string              `yaml:"baseUrl" json:"baseUrl"`
	Favicon          string              `yaml:"favicon" json:"favicon"`
	OrganizationName string              `yaml:"organizationName" json:"organizationName"`
	ProjectName      string              `yaml:"projectName" json:"projectName"`
	TrailingSlash    bool                `yaml:"trailingSlash" json:"trailingSlash"`
	OnBrokenLinks    string              `yaml:"onBrokenLinks" json:"onBrokenLinks"`
	EditURL          string              `yaml:"editUrl" json:"editUrl"`
	I18n             I18nConfig          `yaml:"i18n" json:"i18n"`
	Metadata         []inject.MetaTag    `yaml:"metadata" json:"metadata"`
	Stylesheets      []inject.Stylesheet `yaml:"stylesheets" json:"stylesheets"`
	Navbar           NavbarConfig        `yaml:"navbar" json:"navbar"`
	ColorMode        ColorModeConfig     `yaml:"colorMode" json:"colorMode"`
	Sidebar          SidebarConfig       `yaml:"sidebar" json:"sidebar"`
}

type I18nConfig struct {
	DefaultLocale string   `yaml:"defaultLocale" json:"defaultLocale"`
	Locales       []string `yaml:"locales" json:"locales"`
}

type NavbarConfig struct {
	Logo  NavbarLogo   `yaml:"logo" json:"logo"`
	Items []NavbarItem `yaml:"items" json:"items"`
}

type NavbarLogo struct {
	Alt  string `yaml:"alt" json:"alt"`
	Src  string `yaml:"src" json:"src"`
	Href string `yaml:"href" json:"href"`
}

// NavbarItem is either an "html" item carrying raw markup or a "search" slot.
type NavbarItem struct {
	Type      string `yaml:"type" json:"type"`
	Position  string `yaml:"position" json:"position"`
	ClassName string `yaml:"className,omitempty" json:"className,omitempty"`
	Value     string `yaml:"value,omitempty" json:"value,omitempty"`
}

type ColorModeConfig struct {
	DefaultMode               string `yaml:"defaultMode" json:"defaultMode"`
	DisableSwitch             bool   `yaml:"disableSwitch" json:"disableSwitch"`
	RespectPrefersColorScheme bool   `yaml:"respectPrefersColorScheme" json:"respectPrefersColorScheme"`
}

type SidebarConfig struct {
	AutoCollapseCategories bool `yaml:"autoCollapseCategories" json:"autoCollapseCategories"`
}

// SearchConfig configures the hosted search widget.
type SearchConfig struct {
	AppID            string `yaml:"appId"`
	APIKey           string `yaml:"apiKey"`
	IndexName        string `yaml:"indexName"`
	ContextualSearch bool   `yaml:"contextualSearch"`
	// HealthCheck enables the readiness probe against the hosted search service.
	HealthCheck bool `yaml:"healthCheck"`
}

// AnalyticsConfig selects the tag providers spliced into served pages.
// An empty container ID or a zero site ID disables the provider.
type AnalyticsConfig struct {
	GTMContainerID string       `yaml:"gtmContainerId"`
	Hotjar         HotjarConfig `yaml:"hotjar"`
}

type HotjarConfig struct {
	SiteID         int `yaml:"siteId"`
	SnippetVersion int `yaml:"snippetVersion"`
}

type RedirectsConfig struct {
	// Status is the HTTP status used for redirect responses.
	Status int `yaml:"status"`
	// DisableDefaults drops the embedded redirect table.
	DisableDefaults bool `yaml:"disableDefaults"`
	// Extra rules are appended after the embedded table.
	Extra []redirect.Rule `yaml:"extra"`
}

type CacheConfig struct {
	// Backend is "memory", "redis" or "none".
	Backend         string        `yaml:"backend"`
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
	// Watch clears the cache whenever the site directory changes.
	Watch bool        `yaml:"watch"`
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Exporter    string  `yaml:"exporter"`
	Endpoint    string  `yaml:"endpoint"`
	SampleRate  float64 `yaml:"sampleRate"`
	Environment string  `yaml:"environment"`
}

// Rules returns the effective redirect rule list: the embedded table
// (unless disabled) followed by the configured extras.
func (c AppConfig) Rules() []redirect.Rule {
	var rules []redirect.Rule
	if !c.Redirects.DisableDefaults {
		rules = redirect.DefaultRules()
	}
	return append(rules, c.Redirects.Extra...)
}
