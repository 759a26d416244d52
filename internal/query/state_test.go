package query

import (
	"testing"

	"blogtty/internal/api"
)

func TestParseEncodeRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"category=cat-1",
		"tag=tag-9",
		"search=golang",
		"category=cat-1&page=3",
		"sort=createdAt%2Casc",
		"category=cat-1&page=2&sort=createdAt%2Casc",
	}
	for _, raw := range cases {
		s := Parse(raw)
		if got := Parse(s.Encode()); !got.Equal(s) {
			t.Fatalf("Parse(%q) round trip: expected %+v, got %+v", raw, s, got)
		}
	}
}

func TestParseDropsTagWhenBothFiltersPresent(t *testing.T) {
	s := Parse("category=cat-1&tag=tag-2")
	if s.CategoryID != "cat-1" {
		t.Fatalf("expected category kept, got %+v", s)
	}
	if s.TagID != "" {
		t.Fatalf("expected tag dropped, got %+v", s)
	}
}

func TestParseSearchForcesPageOne(t *testing.T) {
	// A shared link with both a search and a page lands on page 1 of the
	// search results.
	s := Parse("search=go&page=5")
	if s.Page != 1 {
		t.Fatalf("expected page 1, got %d", s.Page)
	}
	if s.Search != "go" {
		t.Fatalf("expected search kept, got %+v", s)
	}
}

func TestParseMalformed(t *testing.T) {
	cases := []struct {
		raw      string
		wantPage int
	}{
		{"page=abc", 1},
		{"page=-2", 1},
		{"page=0", 1},
		{"%zz", 1},
	}
	for _, tc := range cases {
		s := Parse(tc.raw)
		if s.Page != tc.wantPage {
			t.Fatalf("Parse(%q): expected page %d, got %d", tc.raw, tc.wantPage, s.Page)
		}
	}
}

func TestEncodeOmitsDefaults(t *testing.T) {
	if got := (State{}).Encode(); got != "" {
		t.Fatalf("empty state: expected empty encoding, got %q", got)
	}
	s := State{Sort: api.DefaultSort, Page: 1}
	if got := s.Encode(); got != "" {
		t.Fatalf("default sort and page: expected empty encoding, got %q", got)
	}
}

func TestWithSearchResetsPage(t *testing.T) {
	s := State{CategoryID: "cat-1", Page: 4}
	s = s.WithSearch("golang")
	if s.Page != 1 {
		t.Fatalf("expected page reset to 1, got %d", s.Page)
	}
	// Filter survives in the state so clearing the search restores it.
	if s.CategoryID != "cat-1" {
		t.Fatalf("expected category kept, got %+v", s)
	}
}

func TestWithSearchSameTextIsNoOp(t *testing.T) {
	s := State{Search: "golang", Page: 3}
	// Page 3 with an active search never occurs through the UI, but the
	// no-op must still not touch it.
	got := s.WithSearch("  golang ")
	if got != s {
		t.Fatalf("expected no-op, got %+v", got)
	}
}

func TestFiltersAreMutuallyExclusive(t *testing.T) {
	s := State{CategoryID: "cat-1", Search: "x", Page: 2}
	s = s.WithTag("tag-7")
	if s.CategoryID != "" || s.TagID != "tag-7" {
		t.Fatalf("expected only tag filter, got %+v", s)
	}
	if s.Search != "" || s.Page != 1 {
		t.Fatalf("expected search cleared and page reset, got %+v", s)
	}

	s = s.WithCategory("cat-2")
	if s.TagID != "" || s.CategoryID != "cat-2" {
		t.Fatalf("expected only category filter, got %+v", s)
	}
}

func TestSortPreservedAcrossFilterChange(t *testing.T) {
	s := State{Sort: "createdAt,asc", TagID: "tag-1"}
	s = s.WithCategory("cat-1")
	if s.Sort != "createdAt,asc" {
		t.Fatalf("expected sort kept, got %+v", s)
	}
}

func TestRouteSearchWins(t *testing.T) {
	s := State{Search: "go", CategoryID: "cat-1"}
	if s.Route() != RouteSearch {
		t.Fatalf("expected search route, got %v", s.Route())
	}
	s.Search = "  "
	if s.Route() != RouteListing {
		t.Fatalf("expected listing route, got %v", s.Route())
	}
}

func TestListParamsDefaults(t *testing.T) {
	p := (State{CategoryID: "cat-1"}).ListParams()
	if p.Page != 1 || p.Size != api.DefaultPageSize || p.Sort != api.DefaultSort {
		t.Fatalf("unexpected params: %+v", p)
	}
	if p.CategoryID != "cat-1" || p.TagID != "" {
		t.Fatalf("unexpected filter params: %+v", p)
	}
}

func TestSearchParams(t *testing.T) {
	title, p := (State{Search: " go ", Page: 2}).SearchParams()
	if title != "go" {
		t.Fatalf("expected trimmed title, got %q", title)
	}
	if p.Page != 2 || p.Size != api.DefaultPageSize {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestWithSortResetsPage(t *testing.T) {
	s := State{Page: 5}
	s = s.WithSort("createdAt,asc")
	if s.Page != 1 || s.Sort != "createdAt,asc" {
		t.Fatalf("unexpected state: %+v", s)
	}
	// Same sort is a no-op, paging survives.
	s = s.WithPage(3)
	if got := s.WithSort("createdAt,asc"); got.Page != 3 {
		t.Fatalf("expected page kept on same sort, got %+v", got)
	}
}
