// Package query keeps the listing query (search text, category/tag
// filter, sort, page) in one canonical value. The encoded query string
// is the shareable ground truth, the same string the web front-end
// kept in its URL. Every transition that the UI can make is a
// method here, so the invariants live in exactly one place:
//
//   - page resets to 1 whenever the search text changes
//   - category and tag are mutually exclusive, never combined
//   - non-empty search takes precedence over both filters
//
// Debouncing and in-flight fetch bookkeeping belong to the caller; this
// package is timer-free.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"blogtty/internal/api"
)

// Route says which backend listing a state resolves to.
type Route int

const (
	// RouteListing is GET /posts with optional category/tag filter.
	RouteListing Route = iota
	// RouteSearch is GET /posts/search; filters are ignored on this path.
	RouteSearch
)

// State is the canonical listing query. The zero value means: no search,
// no filter, default sort, page 1.
type State struct {
	Search     string
	CategoryID string
	TagID      string
	Sort       string
	Page       int // 1-based; 0 is treated as 1
}

func (s State) page() int {
	if s.Page < 1 {
		return 1
	}
	return s.Page
}

func (s State) sort() string {
	if s.Sort == "" {
		return api.DefaultSort
	}
	return s.Sort
}

// Parse reads a canonical query string ("search=...&category=...&tag=...
// &sort=...&page=N"). Unknown params are ignored; a malformed page falls
// back to 1. The result is normalized, so a shared link carrying both a
// search and a page lands on page 1 of the search results rather than a
// possibly out-of-range page.
func Parse(rawQuery string) State {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return State{}
	}
	s := State{
		Search:     strings.TrimSpace(v.Get("search")),
		CategoryID: strings.TrimSpace(v.Get("category")),
		TagID:      strings.TrimSpace(v.Get("tag")),
		Sort:       strings.TrimSpace(v.Get("sort")),
		Page:       1,
	}
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p >= 1 {
		s.Page = p
	}
	// Category and tag never combine; keep category, the first filter the
	// sidebar renders, when a hand-edited link carries both.
	if s.CategoryID != "" && s.TagID != "" {
		s.TagID = ""
	}
	return s.Normalize()
}

// Encode renders the canonical query string. Defaults are omitted so the
// empty state encodes to "".
func (s State) Encode() string {
	v := url.Values{}
	if t := strings.TrimSpace(s.Search); t != "" {
		v.Set("search", t)
	}
	if s.CategoryID != "" {
		v.Set("category", s.CategoryID)
	}
	if s.TagID != "" {
		v.Set("tag", s.TagID)
	}
	if s.Sort != "" && s.Sort != api.DefaultSort {
		v.Set("sort", s.Sort)
	}
	if s.page() != 1 {
		v.Set("page", strconv.Itoa(s.page()))
	}
	return v.Encode()
}

// Normalize forces page back to 1 while a search is active. This is the
// "replace, not push" page reset: it rewrites the state in place instead
// of being a user-visible navigation.
func (s State) Normalize() State {
	if strings.TrimSpace(s.Search) != "" && s.page() != 1 {
		s.Page = 1
	}
	if s.Page < 1 {
		s.Page = 1
	}
	return s
}

// WithSearch applies a (debounced) search text. Any change to the text
// resets the page to 1; setting the same text is a no-op so redundant
// writes don't reset paging.
func (s State) WithSearch(text string) State {
	text = strings.TrimSpace(text)
	if text == s.Search {
		return s
	}
	s.Search = text
	s.Page = 1
	return s
}

// WithCategory selects a category filter and clears everything else:
// the tag filter (mutually exclusive), the search text, and the page.
// An empty id clears the filter.
func (s State) WithCategory(id string) State {
	return State{CategoryID: id, Sort: s.Sort, Page: 1}
}

// WithTag selects a tag filter; same clearing rules as WithCategory.
func (s State) WithTag(id string) State {
	return State{TagID: id, Sort: s.Sort, Page: 1}
}

// WithPage moves to a 1-based page, keeping everything else.
func (s State) WithPage(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s.Normalize()
}

// WithSort changes the sort order and resets to the first page.
func (s State) WithSort(sort string) State {
	if sort == s.sort() {
		return s
	}
	s.Sort = sort
	s.Page = 1
	return s
}

// Route picks the fetch path: a non-empty search always wins and the
// filters are ignored for that request (they stay in the state so
// clearing the search restores the filtered listing).
func (s State) Route() Route {
	if strings.TrimSpace(s.Search) != "" {
		return RouteSearch
	}
	return RouteListing
}

// ListParams builds the /posts parameters for a listing-route state.
func (s State) ListParams() api.ListPostsParams {
	return api.ListPostsParams{
		CategoryID: s.CategoryID,
		TagID:      s.TagID,
		Page:       s.page(),
		Size:       api.DefaultPageSize,
		Sort:       s.sort(),
	}
}

// SearchParams builds the /posts/search parameters for a search-route
// state.
func (s State) SearchParams() (title string, params api.PageParams) {
	return strings.TrimSpace(s.Search), api.PageParams{
		Page: s.page(),
		Size: api.DefaultPageSize,
		Sort: s.sort(),
	}
}

// Equal compares two states after normalization, treating default sort
// and page as equal to their zero forms.
func (s State) Equal(o State) bool {
	a, b := s.Normalize(), o.Normalize()
	return a.Search == b.Search &&
		a.CategoryID == b.CategoryID &&
		a.TagID == b.TagID &&
		a.sort() == b.sort() &&
		a.page() == b.page()
}
