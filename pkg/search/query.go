// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package search

import (
	"net/url"
	"strconv"
)

const (
	// GameID is the upstream catalog for Minecraft.
	GameID = 432
	// DefaultClassID is the upstream "mod" class.
	DefaultClassID = 6
	// DefaultPageSize applies when the caller does not ask for one.
	DefaultPageSize = 20
	// DefaultIndex is the first result offset.
	DefaultIndex = 0

	// allCategories disables the category filter instead of naming one.
	allCategories = "0"
)

// Query is an inbound search in the canonical vocabulary. Every field keeps
// the caller's raw text; an empty string means the parameter was not given.
// Values are not range checked here, the upstream rejects bad ones.
type Query struct {
	Query         string
	ClassID       string
	GameVersion   string
	ModLoaderType string
	CategoryID    string
	SortField     string
	SortOrder     string
	PageSize      string
	Index         string
	Offset        string
}

// QueryFromValues reads a Query from inbound query-string values.
func QueryFromValues(v url.Values) Query {
	return Query{
		Query:         v.Get("query"),
		ClassID:       v.Get("classId"),
		GameVersion:   v.Get("gameVersion"),
		ModLoaderType: v.Get("modLoaderType"),
		CategoryID:    v.Get("categoryId"),
		SortField:     v.Get("sortField"),
		SortOrder:     v.Get("sortOrder"),
		PageSize:      v.Get("pageSize"),
		Index:         v.Get("index"),
		Offset:        v.Get("offset"),
	}
}

// Start is the result offset to request: index, else offset, else 0.
func (q Query) Start() string {
	switch {
	case q.Index != "":
		return q.Index
	case q.Offset != "":
		return q.Offset
	default:
		return strconv.Itoa(DefaultIndex)
	}
}

// Translate maps q onto the upstream /mods/search parameters.
func Translate(q Query) url.Values {
	params := url.Values{}
	params.Set("gameId", strconv.Itoa(GameID))
	setIf(params, "searchFilter", q.Query)
	params.Set("classId", orDefault(q.ClassID, DefaultClassID))
	setIf(params, "gameVersion", q.GameVersion)
	setIf(params, "modLoaderType", q.ModLoaderType)
	if q.CategoryID != allCategories {
		setIf(params, "categoryId", q.CategoryID)
	}
	setIf(params, "sortField", q.SortField)
	setIf(params, "sortOrder", q.SortOrder)
	params.Set("pageSize", orDefault(q.PageSize, DefaultPageSize))
	params.Set("index", q.Start())
	return params
}

func setIf(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func orDefault(value string, fallback int) string {
	if value == "" {
		return strconv.Itoa(fallback)
	}
	return value
}
