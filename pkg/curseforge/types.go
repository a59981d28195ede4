// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package curseforge

import "encoding/json"

// Wire types for the subset of the CurseForge v1 API the proxy reads.
// Only the search payload is decoded field by field; detail and file
// listings are forwarded as raw JSON.

// Envelope wraps every upstream response body.
type Envelope struct {
	Data json.RawMessage `json:"data"`
}

// SearchResponse is the body of GET /mods/search.
type SearchResponse struct {
	Data       []Mod      `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination is the paging envelope returned alongside search results.
type Pagination struct {
	Index       int   `json:"index"`
	PageSize    int   `json:"pageSize"`
	ResultCount int   `json:"resultCount"`
	TotalCount  int64 `json:"totalCount"`
}

// Mod is one search hit. Optional members are pointers or slices so a
// missing value is distinguishable from a zero value.
type Mod struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Summary       string      `json:"summary"`
	DownloadCount json.Number `json:"downloadCount"`
	DateModified  string      `json:"dateModified"`
	Logo          *Asset      `json:"logo"`
	Authors       []Author    `json:"authors"`
	LatestFiles   []File      `json:"latestFiles"`
	Categories    []Category  `json:"categories"`
}

// Asset is an image such as a mod logo.
type Asset struct {
	ID           int64  `json:"id"`
	ThumbnailURL string `json:"thumbnailUrl"`
	URL          string `json:"url"`
}

// Author is a mod author.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// File is a downloadable mod file.
type File struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"displayName"`
	FileName    string `json:"fileName"`
}

// Category is a mod category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FilesFilter narrows GET /mods/{id}/files. Empty members are not sent.
type FilesFilter struct {
	GameVersion   string
	ModLoaderType string
}
