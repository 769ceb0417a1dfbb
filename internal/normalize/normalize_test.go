package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/tutorials/", "/tutorials"},
		{"tutorials", "/tutorials"},
		{"//about-mina//overview/", "/about-mina/overview"},
		{"/a/./b/../c", "/a/c"},
		{" /about-mina\u200B", "/about-mina"},
		{"/Zkapps/Tutorials", "/Zkapps/Tutorials"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Path(tt.in), "input %q", tt.in)
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "/docs", Canonical("/docs/", false))
	assert.Equal(t, "/docs/", Canonical("/docs", true))
	assert.Equal(t, "/", Canonical("/", true))
	assert.Equal(t, "/", Canonical("", false))
	assert.Equal(t, "/img/logo.png", Canonical("/img/logo.png", true))
}

func TestStripBase(t *testing.T) {
	tests := []struct {
		p, base, want string
		ok            bool
	}{
		{"/about", "/", "/about", true},
		{"/docs/about", "/docs/", "/about", true},
		{"/docs", "/docs/", "/", true},
		{"/docs/", "/docs/", "/", true},
		{"/docsx/about", "/docs/", "", false},
		{"/about", "/docs/", "", false},
	}
	for _, tt := range tests {
		got, ok := StripBase(tt.p, tt.base)
		assert.Equal(t, tt.ok, ok, "path %q", tt.p)
		assert.Equal(t, tt.want, got, "path %q", tt.p)
	}
}

func TestPath_Idempotent(t *testing.T) {
	for _, p := range []string{"/a//b/", "x/../y", "/", "/zkapps/tutorials/hello-world"} {
		once := Path(p)
		assert.Equal(t, once, Path(once))
	}
}

func TestHasTraversal(t *testing.T) {
	for raw, want := range map[string]bool{
		"/docs/page":          false,
		"/docs/..hidden":      false,
		"/docs/../etc/passwd": true,
		"/..":                 true,
		"/docs/\uFF0E\uFF0E/x": true,
		"/docs\\..\\x":        true,
		"/docs/\x00":          true,
	} {
		assert.Equal(t, want, HasTraversal(raw), "raw %q", raw)
	}
}
