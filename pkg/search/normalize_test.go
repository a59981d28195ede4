// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package search

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/ReaQwQ/CurseForgeProxyServer/pkg/curseforge"
)

const samplePage = `{
  "data": [
    {
      "id": 12345,
      "name": "Storage Drawers",
      "slug": "storage-drawers",
      "summary": "Drawers for storage",
      "downloadCount": 98765432,
      "dateModified": "2024-05-01T10:00:00.123Z",
      "logo": {"id": 1, "url": "https://media.example.com/logo.png"},
      "authors": [{"id": 7, "name": "Texelsaur"}, {"id": 8, "name": "Other"}],
      "latestFiles": [{"id": 5550001}, {"id": 5550000}],
      "categories": [{"id": 420, "name": "Storage"}, {"id": 421, "name": "Cosmetic"}]
    },
    {
      "id": 7,
      "name": "Bare",
      "slug": "bare",
      "summary": "",
      "downloadCount": 0,
      "dateModified": "2020-01-01T00:00:00Z"
    }
  ],
  "pagination": {"index": 0, "pageSize": 2, "resultCount": 2, "totalCount": 57}
}`

func decodePage(t *testing.T, raw string) curseforge.SearchResponse {
	t.Helper()
	var resp curseforge.SearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("decode sample page: %v", err)
	}
	return resp
}

func TestProjectID(t *testing.T) {
	if got := ProjectID(12345); got != "cf-12345" {
		t.Fatalf("got %q, want cf-12345", got)
	}
}

func TestNormalizeCountsAndOrder(t *testing.T) {
	out := Normalize(decodePage(t, samplePage))

	if len(out.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(out.Hits))
	}
	if out.TotalHits != 57 {
		t.Fatalf("total_hits must come from the pagination envelope, got %d", out.TotalHits)
	}
	if out.Hits[0].ProjectID != "cf-12345" || out.Hits[1].ProjectID != "cf-7" {
		t.Fatalf("order not preserved: %s, %s", out.Hits[0].ProjectID, out.Hits[1].ProjectID)
	}
}

func TestNormalizeFullItem(t *testing.T) {
	hit := Normalize(decodePage(t, samplePage)).Hits[0]

	if hit.Title != "Storage Drawers" || hit.Description != "Drawers for storage" || hit.Slug != "storage-drawers" {
		t.Errorf("text fields mismatch: %+v", hit)
	}
	if hit.IconURL == nil || *hit.IconURL != "https://media.example.com/logo.png" {
		t.Errorf("icon_url: %v", hit.IconURL)
	}
	if hit.Author == nil || *hit.Author != "Texelsaur" {
		t.Errorf("author should be the first author, got %v", hit.Author)
	}
	if hit.LatestVersion == nil || *hit.LatestVersion != 5550001 {
		t.Errorf("latest_version should be the first file id, got %v", hit.LatestVersion)
	}
	if hit.Downloads.String() != "98765432" {
		t.Errorf("downloads: got %s", hit.Downloads)
	}
	if hit.DateModified != "2024-05-01T10:00:00.123Z" {
		t.Errorf("date_modified: got %s", hit.DateModified)
	}
	if hit.Source != "curseforge" {
		t.Errorf("source: got %s", hit.Source)
	}
	if want := []string{"Storage", "Cosmetic"}; !reflect.DeepEqual(hit.Categories, want) {
		t.Errorf("categories: got %v, want %v", hit.Categories, want)
	}
}

func TestNormalizeMissingOptionalFields(t *testing.T) {
	cases := map[string]struct {
		mod   string
		check func(t *testing.T, s Summary)
	}{
		"no logo": {
			mod: `{"id":1}`,
			check: func(t *testing.T, s Summary) {
				if s.IconURL != nil {
					t.Errorf("icon_url should be nil, got %q", *s.IconURL)
				}
			},
		},
		"logo without url": {
			mod: `{"id":1,"logo":{"id":3}}`,
			check: func(t *testing.T, s Summary) {
				if s.IconURL != nil {
					t.Errorf("icon_url should be nil, got %q", *s.IconURL)
				}
			},
		},
		"empty authors": {
			mod: `{"id":1,"authors":[]}`,
			check: func(t *testing.T, s Summary) {
				if s.Author != nil {
					t.Errorf("author should be nil, got %q", *s.Author)
				}
			},
		},
		"no files": {
			mod: `{"id":1,"latestFiles":null}`,
			check: func(t *testing.T, s Summary) {
				if s.LatestVersion != nil {
					t.Errorf("latest_version should be nil, got %d", *s.LatestVersion)
				}
			},
		},
		"no categories": {
			mod: `{"id":1}`,
			check: func(t *testing.T, s Summary) {
				if s.Categories != nil {
					t.Errorf("categories should be nil, got %v", s.Categories)
				}
			},
		},
		"empty categories": {
			mod: `{"id":1,"categories":[]}`,
			check: func(t *testing.T, s Summary) {
				if s.Categories == nil || len(s.Categories) != 0 {
					t.Errorf("categories should be an empty list, got %#v", s.Categories)
				}
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var mod curseforge.Mod
			if err := json.Unmarshal([]byte(tc.mod), &mod); err != nil {
				t.Fatalf("decode mod: %v", err)
			}
			tc.check(t, Summarize(mod))
		})
	}
}

func TestNormalizeJSONShape(t *testing.T) {
	out := Normalize(decodePage(t, samplePage))

	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Hits      []map[string]any `json:"hits"`
		TotalHits int              `json:"total_hits"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	bare := decoded.Hits[1]
	for _, key := range []string{"icon_url", "author", "latest_version", "categories"} {
		v, ok := bare[key]
		if !ok {
			t.Errorf("%s should be present", key)
			continue
		}
		if v != nil {
			t.Errorf("%s should be null, got %v", key, v)
		}
	}
	if bare["downloads"] != float64(0) {
		t.Errorf("downloads: got %v", bare["downloads"])
	}
	if decoded.TotalHits != 57 {
		t.Errorf("total_hits: got %d", decoded.TotalHits)
	}
}

func TestNormalizeEmptyPage(t *testing.T) {
	out := Normalize(curseforge.SearchResponse{Pagination: curseforge.Pagination{TotalCount: 3}})

	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"hits":[],"total_hits":3}` {
		t.Fatalf("unexpected body %s", raw)
	}
}
