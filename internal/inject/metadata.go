// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package inject

import (
	"errors"
	"html/template"
)

// MetaTag is one <meta> element. Empty attributes are omitted.
type MetaTag struct {
	Name     string `yaml:"name" json:"name,omitempty"`
	Property string `yaml:"property" json:"property,omitempty"`
	Content  string `yaml:"content" json:"content"`
}

// Stylesheet is one external <link rel="stylesheet"> element.
type Stylesheet struct {
	Href        string `yaml:"href" json:"href"`
	Type        string `yaml:"type" json:"type,omitempty"`
	Integrity   string `yaml:"integrity" json:"integrity,omitempty"`
	CrossOrigin string `yaml:"crossorigin" json:"crossorigin,omitempty"`
}

var (
	metaTemplate = template.Must(template.New("meta").Parse(
		`<meta{{if .Name}} name="{{.Name}}"{{end}}{{if .Property}} property="{{.Property}}"{{end}} content="{{.Content}}">`))

	stylesheetTemplate = template.Must(template.New("stylesheet").Parse(
		`<link rel="stylesheet" href="{{.Href}}"{{if .Type}} type="{{.Type}}"{{end}}{{if .Integrity}} integrity="{{.Integrity}}"{{end}}{{if .CrossOrigin}} crossorigin="{{.CrossOrigin}}"{{end}}>`))
)

// Metadata renders site-wide <meta> tags.
type Metadata struct {
	tags Tags
}

// NewMetadata renders one fragment per meta tag. Tags without a name or
// property are rejected.
func NewMetadata(meta []MetaTag) (*Metadata, error) {
	head := make([]string, 0, len(meta))
	for _, m := range meta {
		if m.Name == "" && m.Property == "" {
			return nil, errors.New("meta tag needs a name or property")
		}
		frag, err := render(metaTemplate, m)
		if err != nil {
			return nil, err
		}
		head = append(head, frag)
	}
	return &Metadata{tags: Tags{Head: head}}, nil
}

// HTMLTags implements Provider.
func (m *Metadata) HTMLTags() Tags { return m.tags }

// Stylesheets renders external stylesheet links.
type Stylesheets struct {
	tags Tags
}

// NewStylesheets renders one <link> per stylesheet.
func NewStylesheets(sheets []Stylesheet) (*Stylesheets, error) {
	head := make([]string, 0, len(sheets))
	for _, s := range sheets {
		if s.Href == "" {
			return nil, errors.New("stylesheet href is required")
		}
		frag, err := render(stylesheetTemplate, s)
		if err != nil {
			return nil, err
		}
		head = append(head, frag)
	}
	return &Stylesheets{tags: Tags{Head: head}}, nil
}

// HTMLTags implements Provider.
func (s *Stylesheets) HTMLTags() Tags { return s.tags }
