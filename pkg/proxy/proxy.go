// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/config"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/curseforge"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/metrics"
)

// Upstream is the subset of the CurseForge client the route handlers need.
type Upstream interface {
	Search(ctx context.Context, params url.Values) (curseforge.SearchResponse, error)
	Mod(ctx context.Context, modID string) (json.RawMessage, error)
	ModFiles(ctx context.Context, modID string, filter curseforge.FilesFilter) (json.RawMessage, error)
}

// Proxy serves the inbound API. It holds no per-request state, so a single
// instance serves all requests concurrently.
type Proxy struct {
	// cfg is the immutable runtime configuration.
	cfg config.Config
	// upstream performs the credentialed calls to CurseForge.
	upstream Upstream
	// metrics records inbound request metrics; may be nil.
	metrics *metrics.Metrics
	// origins is the CORS allow-list.
	origins map[string]struct{}
	// logger emits structured logs for observability.
	logger zerolog.Logger
	// now stamps health responses.
	now func() time.Time
	// router dispatches to the route handlers through the middleware chain.
	router http.Handler
}

// New constructs the proxy handler for the given configuration and upstream.
func New(cfg config.Config, upstream Upstream, m *metrics.Metrics) http.Handler {
	origins := make(map[string]struct{})
	for _, o := range cfg.AllowedOrigins() {
		origins[o] = struct{}{}
	}

	p := &Proxy{
		cfg:      cfg,
		upstream: upstream,
		metrics:  m,
		origins:  origins,
		logger:   log.With().Str("component", "proxy").Logger(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}

	p.router = p.routes()

	return p
}

// ServeHTTP dispatches the request through the middleware chain.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.router.ServeHTTP(w, r)
}

// routes wires the middleware chain (outermost first):
//
//	RealIP -> request logging -> metrics -> panic recovery -> CORS -> handler
func (p *Proxy) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(p.logRequests)
	r.Use(p.metrics.Middleware)
	r.Use(p.recoverPanics)
	r.Use(p.cors)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/health", p.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", p.handleSearch)
		r.Get("/mod/{modId}", p.handleMod)
		r.Get("/mod/{modId}/files", p.handleModFiles)
	})

	return r
}
