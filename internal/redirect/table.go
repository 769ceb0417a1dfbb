// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package redirect resolves legacy documentation paths to their canonical
// destinations.
//
// A Table is built once at start-up and never mutated afterwards, so Lookup
// needs no locking and may be called from any number of goroutines.
package redirect

// Rule maps a legacy path to the canonical path that now serves its content.
type Rule struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Table is an immutable, exact-match redirect table.
type Table struct {
	byFrom map[string]string
	rules  []Rule
}

// NewTable builds a table from rules in declaration order.
// If a From value is declared more than once the first declaration wins;
// later duplicates are dropped. Use Validate to reject such input at build time.
func NewTable(rules []Rule) *Table {
	t := &Table{
		byFrom: make(map[string]string, len(rules)),
		rules:  make([]Rule, 0, len(rules)),
	}
	for _, r := range rules {
		if _, dup := t.byFrom[r.From]; dup {
			continue
		}
		t.byFrom[r.From] = r.To
		t.rules = append(t.rules, r)
	}
	return t
}

// Lookup returns the canonical path for an already normalized request path.
// Matching is exact: no wildcards, no case folding and no trailing-slash
// tolerance. A miss is not an error; the caller falls through to normal routing.
func (t *Table) Lookup(path string) (string, bool) {
	if t == nil {
		return "", false
	}
	to, ok := t.byFrom[path]
	return to, ok
}

// Rules returns a copy of the effective rules in declaration order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of effective rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}
