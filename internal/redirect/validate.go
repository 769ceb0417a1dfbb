// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package redirect

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPath classifies rules whose from/to is not an absolute URL path.
	ErrInvalidPath = errors.New("invalid redirect path")
	// ErrDuplicateFrom classifies a legacy path declared more than once.
	ErrDuplicateFrom = errors.New("duplicate redirect source")
	// ErrChain classifies a rule whose destination is itself a redirect source.
	ErrChain = errors.New("redirect chain")
	// ErrDanglingTarget classifies a destination that no built page serves.
	ErrDanglingTarget = errors.New("dangling redirect target")
)

// Validate checks a rule set for the properties the table relies on:
// every path is absolute, every From is unique and no To is another rule's From.
// All violations are reported together.
func Validate(rules []Rule) error {
	var errs []error

	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		if err := checkPath(r.From); err != nil {
			errs = append(errs, fmt.Errorf("rule %d from %q: %w", i, r.From, err))
		}
		if err := checkPath(r.To); err != nil {
			errs = append(errs, fmt.Errorf("rule %d to %q: %w", i, r.To, err))
		}
		if first, dup := seen[r.From]; dup {
			errs = append(errs, fmt.Errorf("rule %d: %w: %q already declared by rule %d", i, ErrDuplicateFrom, r.From, first))
			continue
		}
		seen[r.From] = i
	}

	for i, r := range rules {
		if j, ok := seen[r.To]; ok {
			errs = append(errs, fmt.Errorf("rule %d: %w: %q -> %q -> %q", i, ErrChain, r.From, r.To, rules[j].To))
		}
	}

	return errors.Join(errs...)
}

// Lint reports every destination for which exists returns false.
// It is a build-time check against the generated site, never run per request.
func Lint(t *Table, exists func(path string) bool) error {
	var errs []error
	for _, r := range t.Rules() {
		if !exists(r.To) {
			errs = append(errs, fmt.Errorf("%w: %q -> %q", ErrDanglingTarget, r.From, r.To))
		}
	}
	return errors.Join(errs...)
}

func checkPath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("%w: empty", ErrInvalidPath)
	case !strings.HasPrefix(p, "/"):
		return fmt.Errorf("%w: must start with /", ErrInvalidPath)
	case strings.ContainsAny(p, "?#"):
		return fmt.Errorf("%w: query and fragment are not allowed", ErrInvalidPath)
	case strings.ContainsAny(p, " \t\r\n"):
		return fmt.Errorf("%w: whitespace is not allowed", ErrInvalidPath)
	}
	return nil
}
