// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package inject

import (
	"errors"
	"fmt"
	"html/template"
	"regexp"
)

var (
	// ErrInvalidContainerID is returned for malformed Tag Manager container IDs.
	ErrInvalidContainerID = errors.New("invalid tag manager container id")
	// ErrInvalidSiteID is returned for non-positive Hotjar site IDs.
	ErrInvalidSiteID = errors.New("invalid hotjar site id")
)

var containerIDPattern = regexp.MustCompile(`^GTM-[A-Z0-9]+$`)

var (
	gtmHeadTemplate = template.Must(template.New("gtm.head").Parse(
		`<script>(function(w,d,s,l,i){w[l]=w[l]||[];w[l].push({'gtm.start':
new Date().getTime(),event:'gtm.js'});var f=d.getElementsByTagName(s)[0],
j=d.createElement(s),dl=l!='dataLayer'?'&l='+l:'';j.async=true;j.src=
'https://www.googletagmanager.com/gtm.js?id='+i+dl;f.parentNode.insertBefore(j,f);
})(window,document,'script','dataLayer',{{.}});</script>`))

	gtmBodyTemplate = template.Must(template.New("gtm.body").Parse(
		`<noscript><iframe src="https://www.googletagmanager.com/ns.html?id={{.}}"
height="0" width="0" style="display:none;visibility:hidden"></iframe></noscript>`))

	hotjarTemplate = template.Must(template.New("hotjar").Parse(
		`<script>
  (function(h,o,t,j,a,r){
    h.hj=h.hj||function(){(h.hj.q=h.hj.q||[]).push(arguments)};
    h._hjSettings={hjid:{{.SiteID}},hjsv:{{.SnippetVersion}}};
    a=o.getElementsByTagName('head')[0];
    r=o.createElement('script');r.async=1;
    r.src=t+h._hjSettings.hjid+j+h._hjSettings.hjsv;
    a.appendChild(r);
  })(window,document,'https://static.hotjar.com/c/hotjar-','.js?sv=');
</script>`))
)

// GoogleTagManager injects the Tag Manager loader and its no-script fallback.
type GoogleTagManager struct {
	tags Tags
}

// NewGoogleTagManager renders the snippets for containerID (e.g. "GTM-MJBCZX9").
func NewGoogleTagManager(containerID string) (*GoogleTagManager, error) {
	if !containerIDPattern.MatchString(containerID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContainerID, containerID)
	}
	head, err := render(gtmHeadTemplate, containerID)
	if err != nil {
		return nil, err
	}
	body, err := render(gtmBodyTemplate, containerID)
	if err != nil {
		return nil, err
	}
	return &GoogleTagManager{tags: Tags{Head: []string{head}, PreBody: []string{body}}}, nil
}

// HTMLTags implements Provider.
func (g *GoogleTagManager) HTMLTags() Tags { return g.tags }

// Hotjar injects the Hotjar tracking loader.
type Hotjar struct {
	tags Tags
}

// NewHotjar renders the loader for the given site and snippet version.
// A zero snippetVersion defaults to 6.
func NewHotjar(siteID, snippetVersion int) (*Hotjar, error) {
	if siteID <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSiteID, siteID)
	}
	if snippetVersion <= 0 {
		snippetVersion = 6
	}
	head, err := render(hotjarTemplate, struct {
		SiteID         int
		SnippetVersion int
	}{siteID, snippetVersion})
	if err != nil {
		return nil, err
	}
	return &Hotjar{tags: Tags{Head: []string{head}}}, nil
}

// HTMLTags implements Provider.
func (h *Hotjar) HTMLTags() Tags { return h.tags }
