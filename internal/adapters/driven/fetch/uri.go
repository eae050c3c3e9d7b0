package fetch

import (
	"net/url"
	"strings"
)

// IsURI reports whether s is an absolute URI that names a resource: a scheme
// of at least two characters followed by a host, or a file: or urn: URI.
// Single-letter schemes are rejected so Windows drive paths are not URIs.
func IsURI(s string) bool {
	if strings.TrimSpace(s) != s || s == "" {
		return false
	}

	u, err := url.Parse(s)
	if err != nil || len(u.Scheme) < 2 {
		return false
	}
	if !validScheme(u.Scheme) {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return u.Path != ""
	case "urn":
		return u.Opaque != ""
	default:
		return u.Host != ""
	}
}

// validScheme checks the RFC 3986 scheme grammar.
func validScheme(scheme string) bool {
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
