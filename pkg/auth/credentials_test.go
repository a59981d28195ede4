// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package auth

import (
	"net/http"
	"net/url"
	"testing"
)

func TestCredentialsAttach(t *testing.T) {
	u, err := url.Parse("https://example.com/v1/mods/search?gameId=432")
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}

	req := &http.Request{
		Method: http.MethodGet,
		URL:    u,
		Header: make(http.Header),
	}
	req.Header.Set(HeaderUserAgent, "Go-http-client/1.1")

	creds := NewCredentials("key123", "ReaLauncher-Proxy/1.0.0")
	creds.Attach(req)

	want := map[string]string{
		HeaderAPIKey:    "key123",
		HeaderUserAgent: "ReaLauncher-Proxy/1.0.0",
		HeaderAccept:    "application/json",
	}

	for k, v := range want {
		if got := req.Header.Get(k); got != v {
			t.Errorf("%s header mismatch: got %q, want %q", k, got, v)
		}
	}
	if !creds.Configured() {
		t.Errorf("expected credentials to be configured")
	}
}

func TestCredentialsAttachWithoutKey(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}

	creds := NewCredentials("", "")
	creds.Attach(req)

	if creds.Configured() {
		t.Fatalf("empty key must not be reported as configured")
	}
	if _, ok := req.Header[http.CanonicalHeaderKey(HeaderAPIKey)]; !ok {
		t.Fatalf("key header should still be present")
	}
	if got := req.Header.Get(HeaderUserAgent); got != "" {
		t.Fatalf("unexpected user agent %q", got)
	}
}
