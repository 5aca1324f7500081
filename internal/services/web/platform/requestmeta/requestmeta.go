// Package requestmeta resolves the request scheme for cookie policy.
package requestmeta

import (
	"net/http"
	"strings"
)

// SchemePolicy controls how the request scheme is resolved.
//
// X-Forwarded-Proto is only honored when TrustForwardedProto is set, which a
// deployment behind a TLS-terminating proxy opts into.
type SchemePolicy struct {
	TrustForwardedProto bool
}

// IsHTTPS reports whether a request should be treated as HTTPS under policy.
func IsHTTPS(r *http.Request, policy SchemePolicy) bool {
	return Scheme(r, policy) == "https"
}

// Scheme returns "http" or "https" for r, or "" for a nil request.
func Scheme(r *http.Request, policy SchemePolicy) string {
	if r == nil {
		return ""
	}
	if policy.TrustForwardedProto {
		if forwarded := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); forwarded == "http" || forwarded == "https" {
			return forwarded
		}
	}
	if r.URL != nil {
		if scheme := strings.ToLower(strings.TrimSpace(r.URL.Scheme)); scheme == "http" || scheme == "https" {
			return scheme
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
