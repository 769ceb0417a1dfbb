// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed redirects.yaml
var defaultRedirectsYAML []byte

type document struct {
	Redirects []Rule `yaml:"redirects"`
}

// Parse decodes a redirect declaration document. Unknown keys and trailing
// documents are rejected so typos fail the build instead of silently
// dropping a rule.
func Parse(data []byte) ([]Rule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse redirects: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse redirects: multiple documents or trailing content")
	}
	return doc.Redirects, nil
}

// DefaultRules returns the redirect declarations shipped with the binary.
func DefaultRules() []Rule {
	rules, err := Parse(defaultRedirectsYAML)
	if err != nil {
		// The embedded document is covered by tests; a failure here is a build defect.
		panic(err)
	}
	return rules
}
