// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

// Package curseforge is the outbound side of the proxy: an HTTP client for
// the CurseForge v1 API that injects the private credential on every call
// and reports upstream failures as *UpstreamError.
package curseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/auth"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/config"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/metrics"
)

// Resource names used for logging and metric labels.
const (
	ResourceSearch   = "search"
	ResourceMod      = "mod"
	ResourceModFiles = "mod_files"
)

// maxBodySize bounds how much of an upstream body is buffered.
const maxBodySize = 16 << 20

// Client performs GET calls against the upstream API. It is safe for
// concurrent use; nothing in it changes after New returns.
type Client struct {
	// baseURL is the upstream API root, e.g. https://api.curseforge.com/v1.
	baseURL *url.URL
	// client performs outbound HTTP requests with tuned transport settings.
	client *http.Client
	// creds injects the API key and client identifier headers.
	creds *auth.Credentials
	// timeout is the deadline applied to every call.
	timeout time.Duration
	// metrics records per-resource call counts and latency; may be nil.
	metrics *metrics.Metrics
	// logger is used when the request context carries none.
	logger zerolog.Logger
}

// New constructs a Client backed by an http.Client with pooled connections.
func New(cfg config.Config, m *metrics.Metrics) *Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 30 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: cloneURL(cfg.Upstream),
		client:  &http.Client{Transport: transport},
		creds:   auth.NewCredentials(cfg.APIKey, cfg.UserAgent),
		timeout: cfg.RequestTimeout,
		metrics: m,
		logger:  log.With().Str("component", "curseforge").Logger(),
	}
}

// Search runs GET /mods/search with already translated parameters.
func (c *Client) Search(ctx context.Context, params url.Values) (SearchResponse, error) {
	body, err := c.Call(ctx, ResourceSearch, params, "mods", "search")
	if err != nil {
		return SearchResponse{}, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}
	return resp, nil
}

// Mod runs GET /mods/{id} and returns the unwrapped data member.
func (c *Client) Mod(ctx context.Context, modID string) (json.RawMessage, error) {
	body, err := c.Call(ctx, ResourceMod, nil, "mods", modID)
	if err != nil {
		return nil, err
	}
	return unwrap(body)
}

// ModFiles runs GET /mods/{id}/files and returns the unwrapped data member.
// Filter members are forwarded only when set.
func (c *Client) ModFiles(ctx context.Context, modID string, filter FilesFilter) (json.RawMessage, error) {
	params := url.Values{}
	if filter.GameVersion != "" {
		params.Set("gameVersion", filter.GameVersion)
	}
	if filter.ModLoaderType != "" {
		params.Set("modLoaderType", filter.ModLoaderType)
	}

	body, err := c.Call(ctx, ResourceModFiles, params, "mods", modID, "files")
	if err != nil {
		return nil, err
	}
	return unwrap(body)
}

// Call issues GET <base>/<segments...>?<params> with the credential attached
// and returns the raw body of a 2xx answer. Any other outcome is an
// *UpstreamError. Segments are path-escaped individually.
func (c *Client) Call(ctx context.Context, resource string, params url.Values, segments ...string) (json.RawMessage, error) {
	target := c.endpoint(params, segments...)
	event := c.loggerFor(ctx).With().
		Str("resource", resource).
		Str("upstream_path", target.Path).
		Logger()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, transportError(fmt.Errorf("build upstream request: %w", err))
	}
	c.creds.Attach(req)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(resource, 0, time.Since(start))
		event.Error().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("upstream request failed")
		return nil, transportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			event.Error().
				Err(closeErr).
				Msg("close upstream response body failed")
		}
	}()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.metrics.ObserveUpstream(resource, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		const maxLogBody = 64 * 1024
		event.Warn().
			Int("status", resp.StatusCode).
			Bytes("upstream_body", body[:min(len(body), maxLogBody)]).
			Msg("upstream returned error")
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: body}
	}
	if readErr != nil {
		event.Error().
			Err(readErr).
			Int("status", resp.StatusCode).
			Msg("failed to read upstream body")
		return nil, transportError(fmt.Errorf("read upstream body: %w", readErr))
	}

	event.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream call completed")

	return body, nil
}

// endpoint resolves the path segments against the base URL. Each segment is
// escaped so a slash cannot split it, but dot segments are kept as-is; callers
// reject "." and ".." before they get here.
func (c *Client) endpoint(params url.Values, segments ...string) *url.URL {
	target := cloneURL(c.baseURL)

	rawPath := strings.TrimSuffix(c.baseURL.EscapedPath(), "/")
	for _, seg := range segments {
		rawPath += "/" + url.PathEscape(seg)
	}
	if p, err := url.PathUnescape(rawPath); err == nil {
		target.Path = p
		target.RawPath = rawPath
	}
	target.RawQuery = params.Encode()
	target.Fragment = ""

	return target
}

func (c *Client) loggerFor(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l.With().Str("component", "curseforge").Logger()
	}
	return c.logger
}

// unwrap returns the data member of an upstream envelope.
func unwrap(body []byte) (json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode upstream envelope: %w", err)
	}
	if env.Data == nil {
		return json.RawMessage("null"), nil
	}
	return env.Data, nil
}

// cloneURL makes a shallow copy of the provided URL pointer.
func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{}
	}
	clone := *u
	return &clone
}
