// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package proxy

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/curseforge"
	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/search"
)

// healthTimeFormat is ISO-8601 with millisecond precision.
const healthTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error any `json:"error"`
}

func (p *Proxy) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:           "ok",
		Timestamp:        p.now().Format(healthTimeFormat),
		APIKeyConfigured: p.cfg.APIKeyConfigured(),
	})
}

// handleSearch translates the canonical query, runs the upstream search and
// answers with the normalized page.
func (p *Proxy) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := search.Translate(search.QueryFromValues(r.URL.Query()))

	event := zerolog.Ctx(r.Context())
	event.Debug().
		Str("params", params.Encode()).
		Msg("search request")

	resp, err := p.upstream.Search(r.Context(), params)
	if err != nil {
		p.respondFailure(w, r, "search", err)
		return
	}

	out := search.Normalize(resp)
	event.Debug().
		Int("hits", len(out.Hits)).
		Int64("total_hits", out.TotalHits).
		Msg("search normalized")

	respondJSON(w, r, http.StatusOK, out)
}

// handleMod passes the upstream mod detail through.
func (p *Proxy) handleMod(w http.ResponseWriter, r *http.Request) {
	modID, ok := modIDParam(w, r)
	if !ok {
		return
	}
	zerolog.Ctx(r.Context()).Debug().Str("mod_id", modID).Msg("get mod")

	data, err := p.upstream.Mod(r.Context(), modID)
	if err != nil {
		p.respondFailure(w, r, "get mod", err)
		return
	}
	respondJSON(w, r, http.StatusOK, data)
}

// handleModFiles passes the upstream file listing through, forwarding the
// optional gameVersion and modLoaderType filters.
func (p *Proxy) handleModFiles(w http.ResponseWriter, r *http.Request) {
	modID, ok := modIDParam(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	filter := curseforge.FilesFilter{
		GameVersion:   query.Get("gameVersion"),
		ModLoaderType: query.Get("modLoaderType"),
	}
	zerolog.Ctx(r.Context()).Debug().
		Str("mod_id", modID).
		Str("game_version", filter.GameVersion).
		Str("mod_loader_type", filter.ModLoaderType).
		Msg("get mod files")

	data, err := p.upstream.ModFiles(r.Context(), modID, filter)
	if err != nil {
		p.respondFailure(w, r, "get mod files", err)
		return
	}
	respondJSON(w, r, http.StatusOK, data)
}

// modIDParam returns the decoded mod id from the path. Dot segments are
// answered with 400 since the upstream would resolve them to another resource.
func modIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	modID, err := url.PathUnescape(chi.URLParam(r, "modId"))
	if err != nil || modID == "" || modID == "." || modID == ".." {
		zerolog.Ctx(r.Context()).Warn().
			Str("mod_id", chi.URLParam(r, "modId")).
			Msg("rejected invalid mod id")
		respondError(w, r, http.StatusBadRequest, "Invalid mod id")
		return "", false
	}
	return modID, true
}

// respondFailure surfaces an upstream failure with the upstream status and
// body. Anything else becomes a 500 carrying the error message.
func (p *Proxy) respondFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	event := zerolog.Ctx(r.Context())

	var upErr *curseforge.UpstreamError
	if errors.As(err, &upErr) {
		if r.Context().Err() != nil {
			event.Info().Err(err).Str("op", op).Msg("client went away before upstream answered")
		} else {
			event.Error().Err(err).Str("op", op).Int("status", upErr.StatusCode).Msg("upstream call failed")
		}
		respondJSON(w, r, upErr.StatusCode, errorResponse{Error: upErr.Detail()})
		return
	}

	event.Error().Err(err).Str("op", op).Msg("request failed")
	respondJSON(w, r, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, errorResponse{Error: message})
}
