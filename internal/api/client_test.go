package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler, cfg Config) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg.BaseURL = srv.URL
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	return c, srv
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for empty BaseURL")
	}
}

func TestRequestPathAndBearer(t *testing.T) {
	var gotPath, gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(AuthUser{ID: "u1"})
	}), Config{
		TokenSource: func() string { return "tok-123" },
	})

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatalf("Me: unexpected error: %v", err)
	}
	if gotPath != "/api/v1/auth/me" {
		t.Fatalf("expected /api/v1/auth/me, got %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestNoBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Page[Post]{})
	}), Config{
		TokenSource: func() string { return "" },
	})

	if _, err := c.ListPosts(context.Background(), ListPostsParams{}); err != nil {
		t.Fatalf("ListPosts: unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTokenSourceReadAtRequestTime(t *testing.T) {
	var gotAuth string
	token := ""
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Page[Post]{})
	}), Config{
		TokenSource: func() string { return token },
	})

	ctx := context.Background()
	if _, err := c.ListPosts(ctx, ListPostsParams{}); err != nil {
		t.Fatalf("ListPosts: unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected anonymous first request, got %q", gotAuth)
	}

	token = "fresh"
	if _, err := c.ListPosts(ctx, ListPostsParams{}); err != nil {
		t.Fatalf("ListPosts: unexpected error: %v", err)
	}
	if gotAuth != "Bearer fresh" {
		t.Fatalf("expected new token picked up, got %q", gotAuth)
	}
}

func TestPageConversion(t *testing.T) {
	cases := []struct {
		uiPage   int
		wantWire string
	}{
		{0, "0"},
		{1, "0"},
		{2, "1"},
		{5, "4"},
	}
	for _, tc := range cases {
		var got string
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Query().Get("page")
			json.NewEncoder(w).Encode(Page[Post]{PageNumber: wirePage(tc.uiPage)})
		}), Config{})

		page, err := c.ListPosts(context.Background(), ListPostsParams{Page: tc.uiPage})
		if err != nil {
			t.Fatalf("ListPosts(page=%d): unexpected error: %v", tc.uiPage, err)
		}
		if got != tc.wantWire {
			t.Fatalf("ListPosts(page=%d): expected wire page %q, got %q", tc.uiPage, tc.wantWire, got)
		}
		wantUI := tc.uiPage
		if wantUI < 1 {
			wantUI = 1
		}
		if page.UIPage() != wantUI {
			t.Fatalf("ListPosts(page=%d): expected UIPage %d, got %d", tc.uiPage, wantUI, page.UIPage())
		}
	}
}

func TestListPostsQueryParams(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"categoryId": q.Get("categoryId"),
			"tagId":      q.Get("tagId"),
			"size":       q.Get("size"),
			"sort":       q.Get("sort"),
		}
		json.NewEncoder(w).Encode(Page[Post]{})
	}), Config{})

	_, err := c.ListPosts(context.Background(), ListPostsParams{
		CategoryID: "cat-1",
		Sort:       DefaultSort,
	})
	if err != nil {
		t.Fatalf("ListPosts: unexpected error: %v", err)
	}
	if got["categoryId"] != "cat-1" || got["tagId"] != "" {
		t.Fatalf("unexpected filter params: %+v", got)
	}
	if got["size"] != "10" {
		t.Fatalf("expected default size 10, got %q", got["size"])
	}
	if got["sort"] != DefaultSort {
		t.Fatalf("expected default sort, got %q", got["sort"])
	}
}

func TestSearchPostsTitleParam(t *testing.T) {
	var gotPath, gotTitle string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotTitle = r.URL.Query().Get("title")
		json.NewEncoder(w).Encode(Page[Post]{})
	}), Config{})

	if _, err := c.SearchPosts(context.Background(), "hello go", PageParams{}); err != nil {
		t.Fatalf("SearchPosts: unexpected error: %v", err)
	}
	if gotPath != "/api/v1/posts/search" {
		t.Fatalf("expected search path, got %q", gotPath)
	}
	if gotTitle != "hello go" {
		t.Fatalf("expected title param, got %q", gotTitle)
	}
}

func TestErrorNormalization(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"status":  400,
			"message": "Title is required",
			"errors":  []map[string]string{{"field": "title", "message": "must not be blank"}},
		})
	}), Config{})

	_, err := c.CreatePost(context.Background(), CreatePostRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != 400 || apiErr.Message != "Title is required" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if len(apiErr.FieldErrors) != 1 || apiErr.FieldErrors[0].Field != "title" {
		t.Fatalf("unexpected field errors: %+v", apiErr.FieldErrors)
	}
}

func TestErrorUnparseableBodyFallsBack(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}), Config{})

	_, err := c.ListCategories(context.Background())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != 500 || apiErr.Message != GenericMessage {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestTransportErrorHasStatusZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	_, err = c.ListTags(context.Background())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != 0 || apiErr.Message != GenericMessage {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
	if IsUnauthorized(err) {
		t.Fatal("transport error must not look like a 401")
	}
}

func TestUnauthorizedRunsHookOnce(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"status": 401, "message": "Unauthorized"})
	}), Config{
		OnUnauthorized: func() { calls++ },
	})

	_, err := c.ListDrafts(context.Background(), PageParams{})
	if !IsUnauthorized(err) {
		t.Fatalf("expected 401, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected hook to run once, ran %d times", calls)
	}
}

func TestCreateTagsBody(t *testing.T) {
	var got struct {
		Names []string `json:"names"`
	}
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode([]Tag{{ID: "t1", Name: "go"}, {ID: "t2", Name: "cli"}})
	}), Config{})

	tags, err := c.CreateTags(context.Background(), []string{"go", "cli"})
	if err != nil {
		t.Fatalf("CreateTags: unexpected error: %v", err)
	}
	if len(got.Names) != 2 || got.Names[0] != "go" {
		t.Fatalf("unexpected request body: %+v", got)
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
}

func TestDeleteUserMethodAndPath(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), Config{})

	if err := c.DeleteUser(context.Background(), "u-42"); err != nil {
		t.Fatalf("DeleteUser: unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/users/u-42" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestHasRole(t *testing.T) {
	u := AuthUser{Roles: []Role{{ID: "r1", Name: "AUTHOR"}, {ID: "r2", Name: AdminRole}}}
	if !u.HasRole(AdminRole) {
		t.Fatal("expected admin role")
	}
	if u.HasRole("EDITOR") {
		t.Fatal("unexpected role")
	}
}
