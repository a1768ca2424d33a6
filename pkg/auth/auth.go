// Package auth applies catalog credentials to outgoing HTTP requests.
package auth

import "net/http"

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// HeaderAuthType represents custom header-based authentication.
	HeaderAuthType Type = "header"
)

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply adds custom headers to the HTTP request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns the authentication type (HeaderAuthType).
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// APIKey returns a HeaderAuth sending key under header, or nil when key is
// empty so that unauthenticated requests carry no header at all.
func APIKey(header, key string) Authenticator {
	if key == "" {
		return nil
	}
	return HeaderAuth{Headers: map[string]string{header: key}}
}

// Apply runs a against req when a is non-nil.
func Apply(a Authenticator, req *http.Request) error {
	if a == nil {
		return nil
	}
	return a.Apply(req)
}
