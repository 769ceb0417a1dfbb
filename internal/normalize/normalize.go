// Package normalize canonicalizes request paths before they reach the
// redirect table and the site file resolver.
package normalize

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token trims Unicode whitespace and invisible edge characters.
func Token(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) ||
			r == '\u200B' || // Zero Width Space
			r == '\u200C' || // Zero Width Non-Joiner
			r == '\u200D' || // Zero Width Joiner
			r == '\uFEFF' // Zero Width Non-Breaking Space (BOM)
	})
}

// Path returns the canonical form of a URL path: rooted, cleaned of duplicate
// slashes and dot segments, without a trailing slash unless it is the root.
// Case is preserved; lookups stay case-sensitive.
func Path(p string) string {
	p = Token(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// WithSlash returns Path(p) with a trailing slash, for sites that publish
// directory-style URLs.
func WithSlash(p string) string {
	p = Path(p)
	if p == "/" {
		return p
	}
	return p + "/"
}

// Canonical applies the site's trailing-slash policy to p. Paths whose last
// segment has a file extension never get a trailing slash.
func Canonical(p string, trailingSlash bool) string {
	p = Path(p)
	if trailingSlash && path.Ext(p) == "" {
		return WithSlash(p)
	}
	return p
}

// StripBase removes a base URL prefix such as "/docs/" from p. It reports
// false when p lies outside the base.
func StripBase(p, base string) (string, bool) {
	base = strings.TrimSuffix(base, "/")
	if base == "" {
		return p, true
	}
	if p == base {
		return "/", true
	}
	rest, ok := strings.CutPrefix(p, base+"/")
	if !ok {
		return "", false
	}
	return "/" + rest, true
}

// HasTraversal reports whether the raw path contains a ".." segment, either
// literally or after Unicode compatibility folding (e.g. fullwidth dots), or
// a NUL byte or backslash.
func HasTraversal(raw string) bool {
	if strings.ContainsAny(raw, "\x00\\") {
		return true
	}
	folded := norm.NFKC.String(raw)
	if strings.ContainsAny(folded, "\x00\\") {
		return true
	}
	for _, seg := range strings.Split(folded, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}
