// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package inject produces markup fragments that are spliced into every
// served HTML page: analytics snippets, metadata and stylesheet links.
package inject

import (
	"bytes"
	"fmt"
	"html/template"
)

// Tags is the payload a Provider contributes to a page.
type Tags struct {
	// Head fragments are inserted immediately before </head>.
	Head []string
	// PreBody fragments are inserted immediately after the <body> start tag.
	PreBody []string
}

// Empty reports whether there is nothing to inject.
func (t Tags) Empty() bool {
	return len(t.Head) == 0 && len(t.PreBody) == 0
}

// Provider contributes markup fragments for page-head construction.
// It is invoked once while the page set is assembled; implementations return
// well-formed markup and carry no per-request state.
type Provider interface {
	HTMLTags() Tags
}

// Compose concatenates the tags of all providers in registration order.
// Nil providers are skipped.
func Compose(providers ...Provider) Tags {
	var out Tags
	for _, p := range providers {
		if p == nil {
			continue
		}
		t := p.HTMLTags()
		out.Head = append(out.Head, t.Head...)
		out.PreBody = append(out.PreBody, t.PreBody...)
	}
	return out
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
