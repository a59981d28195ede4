// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package search

import (
	"encoding/json"
	"strconv"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/curseforge"
)

const (
	// Source tags every summary produced from the upstream.
	Source = "curseforge"
	// sourcePrefix namespaces upstream ids in the canonical schema.
	sourcePrefix = "cf-"
)

// Summary is one canonical search hit. Pointer fields are emitted as null
// when the upstream item has no value for them.
type Summary struct {
	ProjectID     string      `json:"project_id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	IconURL       *string     `json:"icon_url"`
	Author        *string     `json:"author"`
	Downloads     json.Number `json:"downloads"`
	DateModified  string      `json:"date_modified"`
	LatestVersion *int64      `json:"latest_version"`
	Source        string      `json:"source"`
	Categories    []string    `json:"categories"`
	Slug          string      `json:"slug"`
}

// Response is the canonical search response.
type Response struct {
	Hits      []Summary `json:"hits"`
	TotalHits int64     `json:"total_hits"`
}

// ProjectID returns the namespaced canonical id for an upstream mod id.
func ProjectID(id int64) string {
	return sourcePrefix + strconv.FormatInt(id, 10)
}

// Normalize reshapes an upstream search page. Hit order is preserved and
// total_hits comes from the pagination envelope, not the page length.
func Normalize(resp curseforge.SearchResponse) Response {
	hits := make([]Summary, 0, len(resp.Data))
	for _, mod := range resp.Data {
		hits = append(hits, Summarize(mod))
	}
	return Response{
		Hits:      hits,
		TotalHits: resp.Pagination.TotalCount,
	}
}

// Summarize maps a single upstream mod.
func Summarize(mod curseforge.Mod) Summary {
	return Summary{
		ProjectID:     ProjectID(mod.ID),
		Title:         mod.Name,
		Description:   mod.Summary,
		IconURL:       iconURL(mod.Logo),
		Author:        primaryAuthor(mod.Authors),
		Downloads:     mod.DownloadCount,
		DateModified:  mod.DateModified,
		LatestVersion: latestFileID(mod.LatestFiles),
		Source:        Source,
		Categories:    categoryNames(mod.Categories),
		Slug:          mod.Slug,
	}
}

func iconURL(logo *curseforge.Asset) *string {
	if logo == nil || logo.URL == "" {
		return nil
	}
	return &logo.URL
}

func primaryAuthor(authors []curseforge.Author) *string {
	if len(authors) == 0 || authors[0].Name == "" {
		return nil
	}
	return &authors[0].Name
}

func latestFileID(files []curseforge.File) *int64 {
	if len(files) == 0 {
		return nil
	}
	id := files[0].ID
	return &id
}

// categoryNames is nil only when the upstream sent no category list; an
// empty list stays an empty array.
func categoryNames(categories []curseforge.Category) []string {
	if categories == nil {
		return nil
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
