// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package search

import (
	"net/url"
	"testing"
)

func TestTranslateDefaults(t *testing.T) {
	params := Translate(Query{})

	want := url.Values{
		"gameId":   {"432"},
		"classId":  {"6"},
		"pageSize": {"20"},
		"index":    {"0"},
	}
	if got := params.Encode(); got != want.Encode() {
		t.Fatalf("default params mismatch:\n got  %s\n want %s", got, want.Encode())
	}
}

func TestTranslatePassesThroughFilters(t *testing.T) {
	q := Query{
		Query:         "storage",
		ClassID:       "12",
		GameVersion:   "1.20.1",
		ModLoaderType: "4",
		CategoryID:    "420",
		SortField:     "2",
		SortOrder:     "desc",
		PageSize:      "50",
		Index:         "100",
	}

	params := Translate(q)

	want := map[string]string{
		"gameId":        "432",
		"searchFilter":  "storage",
		"classId":       "12",
		"gameVersion":   "1.20.1",
		"modLoaderType": "4",
		"categoryId":    "420",
		"sortField":     "2",
		"sortOrder":     "desc",
		"pageSize":      "50",
		"index":         "100",
	}
	for k, v := range want {
		if got := params.Get(k); got != v {
			t.Errorf("%s: got %q, want %q", k, got, v)
		}
	}
	if len(params) != len(want) {
		t.Errorf("unexpected extra params: %v", params)
	}
}

func TestTranslateCategorySentinel(t *testing.T) {
	cases := []struct {
		category string
		present  bool
	}{
		{category: "0", present: false},
		{category: "", present: false},
		{category: "00", present: true},
		{category: "6945", present: true},
		{category: "-1", present: true},
		{category: " 0", present: true},
	}

	for _, tc := range cases {
		params := Translate(Query{CategoryID: tc.category})
		_, ok := params["categoryId"]
		if ok != tc.present {
			t.Errorf("categoryId %q: present=%v, want %v", tc.category, ok, tc.present)
		}
		if ok && params.Get("categoryId") != tc.category {
			t.Errorf("categoryId %q forwarded as %q", tc.category, params.Get("categoryId"))
		}
	}
}

func TestTranslateOffsetAliasing(t *testing.T) {
	cases := []struct {
		name   string
		index  string
		offset string
		want   string
	}{
		{name: "neither", want: "0"},
		{name: "offset only", offset: "40", want: "40"},
		{name: "index only", index: "60", want: "60"},
		{name: "both prefers index", index: "60", offset: "40", want: "60"},
		{name: "index zero still wins", index: "0", offset: "40", want: "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := Translate(Query{Index: tc.index, Offset: tc.offset})
			if got := params["index"]; len(got) != 1 || got[0] != tc.want {
				t.Fatalf("index: got %v, want [%s]", got, tc.want)
			}
			if _, ok := params["offset"]; ok {
				t.Fatalf("offset must never be forwarded as its own key")
			}
		})
	}
}

func TestQueryFromValues(t *testing.T) {
	v, err := url.ParseQuery("query=storage&categoryId=0&pageSize=10&offset=20&sortOrder=asc")
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}

	q := QueryFromValues(v)
	if q.Query != "storage" || q.CategoryID != "0" || q.PageSize != "10" || q.Offset != "20" || q.SortOrder != "asc" {
		t.Fatalf("unexpected query %+v", q)
	}

	params := Translate(q)
	if _, ok := params["categoryId"]; ok {
		t.Fatalf("category sentinel must be dropped")
	}
	if params.Get("pageSize") != "10" || params.Get("index") != "20" {
		t.Fatalf("unexpected params %v", params)
	}
}
