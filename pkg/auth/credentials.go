// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package auth

import (
	"net/http"
)

// Headers set on every upstream request.
const (
	// HeaderAPIKey carries the private CurseForge credential.
	HeaderAPIKey    = "x-api-key"
	// HeaderUserAgent identifies the proxy to the upstream.
	HeaderUserAgent = "User-Agent"
	// HeaderAccept asks the upstream for JSON.
	HeaderAccept    = "Accept"
)

// Credentials injects the private upstream credential and the fixed client
// identifier into outbound requests.
type Credentials struct {
	Key       string
	UserAgent string
}

// NewCredentials constructs the header injector for the given key and client id.
func NewCredentials(key, userAgent string) *Credentials {
	return &Credentials{
		Key:       key,
		UserAgent: userAgent,
	}
}

// Configured reports whether a credential is available.
func (c *Credentials) Configured() bool {
	return c.Key != ""
}

// Attach mutates the request by setting the credential, client identifier
// and accept headers. The key header is sent even when empty so the upstream
// answers with its own authentication error.
func (c *Credentials) Attach(req *http.Request) {
	req.Header.Set(HeaderAccept, "application/json")
	req.Header.Set(HeaderAPIKey, c.Key)
	if c.UserAgent != "" {
		req.Header.Set(HeaderUserAgent, c.UserAgent)
	}
}
