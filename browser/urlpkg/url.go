// Package urlpkg implements the URL type and parser used throughout the
// browser engine (spec §3, §4.6): scheme://host/path[?query][#fragment],
// plus the vfs:// scheme, with base-URL resolution for missing schemes.
package urlpkg

import (
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
)

// URL is a parsed resource locator.
type URL struct {
	Scheme   string
	Host     string
	Port     int
	Path     string
	Query    string
	Fragment string
}

// String reassembles the URL into its canonical textual form.
func (u URL) String() string {
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(u.Host)
	b.WriteString(u.Path)
	if u.Query != "" {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// Parse parses raw as an absolute URL. If raw has no scheme (no non-empty
// run of scheme characters before its first ':'), it is resolved against
// base.
func Parse(raw string, base *URL) (URL, error) {
	if !hasScheme(raw) {
		if base == nil {
			return URL{}, oasiserr.New(oasiserr.Config, "Parse: relative URL with no base")
		}
		return resolveRelative(raw, *base), nil
	}
	return parseAbsolute(raw)
}

func hasScheme(raw string) bool {
	idx := strings.Index(raw, ":")
	if idx <= 0 {
		return false
	}
	scheme := raw[:idx]
	for _, r := range scheme {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

func parseAbsolute(raw string) (URL, error) {
	schemeEnd := strings.Index(raw, ":")
	if schemeEnd < 0 {
		return URL{}, oasiserr.New(oasiserr.Config, "Parse: missing scheme")
	}
	scheme := strings.ToLower(raw[:schemeEnd])
	rest := raw[schemeEnd+1:]
	rest = strings.TrimPrefix(rest, "//")

	u := URL{Scheme: scheme}

	if frag := strings.IndexByte(rest, '#'); frag >= 0 {
		u.Fragment = rest[frag+1:]
		rest = rest[:frag]
	}
	if q := strings.IndexByte(rest, '?'); q >= 0 {
		u.Query = rest[q+1:]
		rest = rest[:q]
	}

	pathStart := strings.IndexByte(rest, '/')
	if pathStart < 0 {
		u.Host = rest
		u.Path = "/"
	} else {
		u.Host = rest[:pathStart]
		u.Path = rest[pathStart:]
	}

	if colon := strings.IndexByte(u.Host, ':'); colon >= 0 {
		port := u.Host[colon+1:]
		u.Host = u.Host[:colon]
		u.Port = parsePort(port)
	}
	if u.Port == 0 {
		u.Port = defaultPort(scheme)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}

func parsePort(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func defaultPort(scheme string) int {
	switch scheme {
	case "http":
		return 80
	case "https":
		return 443
	case "gemini":
		return 1965
	default:
		return 0
	}
}

// resolveRelative resolves a scheme-less reference against base. Supports
// absolute paths ("/x"), fragment-only references ("#x"), and plain
// relative paths resolved against base's directory.
func resolveRelative(raw string, base URL) URL {
	u := base
	u.Query = ""
	u.Fragment = ""

	if strings.HasPrefix(raw, "#") {
		u.Fragment = raw[1:]
		return u
	}
	if frag := strings.IndexByte(raw, '#'); frag >= 0 {
		u.Fragment = raw[frag+1:]
		raw = raw[:frag]
	}
	if q := strings.IndexByte(raw, '?'); q >= 0 {
		u.Query = raw[q+1:]
		raw = raw[:q]
	}

	if strings.HasPrefix(raw, "/") {
		u.Path = raw
	} else if raw != "" {
		dir := base.Path
		if i := strings.LastIndexByte(dir, '/'); i >= 0 {
			dir = dir[:i+1]
		} else {
			dir = "/"
		}
		u.Path = dir + raw
	}
	return u
}
