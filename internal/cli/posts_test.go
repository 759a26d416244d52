package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"blogtty/internal/api"
)

// runCmd executes the root command against a fake backend and returns
// stdout plus the queries the backend saw.
func runCmd(t *testing.T, args ...string) (string, []*url.URL) {
	t.Helper()
	t.Setenv("BLOGTTY_CONFIG_DIR", t.TempDir())
	t.Setenv("BLOGTTY_SERVER", "")

	var seen []*url.URL
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := *r.URL
		seen = append(seen, &u)
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/posts"):
			json.NewEncoder(w).Encode(api.Page[api.Post]{TotalPages: 1})
		default:
			json.NewEncoder(w).Encode([]any{})
		}
	}))
	t.Cleanup(srv.Close)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(%v): %v (stderr: %s)", args, err, errOut.String())
	}
	return out.String(), seen
}

func TestPostsListQueryFlagComposition(t *testing.T) {
	// --query seeds the state, individual flags override parts of it.
	_, seen := runCmd(t, "posts", "list", "--query", "category=cat-1&page=3", "--page", "2")
	if len(seen) != 1 {
		t.Fatalf("expected one request, got %d", len(seen))
	}
	q := seen[0].Query()
	if seen[0].Path != "/api/v1/posts" {
		t.Fatalf("expected listing path, got %q", seen[0].Path)
	}
	if q.Get("categoryId") != "cat-1" {
		t.Fatalf("expected category filter, got %v", q)
	}
	// UI page 2 is wire page 1.
	if q.Get("page") != "1" {
		t.Fatalf("expected wire page 1, got %q", q.Get("page"))
	}
}

func TestPostsListSearchTakesSearchRoute(t *testing.T) {
	_, seen := runCmd(t, "posts", "list", "--query", "category=cat-1", "--search", "golang")
	if len(seen) != 1 {
		t.Fatalf("expected one request, got %d", len(seen))
	}
	if seen[0].Path != "/api/v1/posts/search" {
		t.Fatalf("expected search path, got %q", seen[0].Path)
	}
	q := seen[0].Query()
	if q.Get("title") != "golang" {
		t.Fatalf("expected title param, got %v", q)
	}
	// The search route never carries the filters.
	if q.Get("categoryId") != "" {
		t.Fatalf("filters must not reach the search route, got %v", q)
	}
}

func TestPostsListFilterFlagsExclusive(t *testing.T) {
	// --tag after --category replaces the filter, mirroring sidebar
	// navigation.
	_, seen := runCmd(t, "posts", "list", "--category", "cat-1", "--tag", "tag-9")
	q := seen[0].Query()
	if q.Get("tagId") != "tag-9" || q.Get("categoryId") != "" {
		t.Fatalf("expected tag filter only, got %v", q)
	}
}

func TestPostsListOutputIsJSON(t *testing.T) {
	out, _ := runCmd(t, "posts", "list")
	var page api.Page[api.Post]
	if err := json.Unmarshal([]byte(out), &page); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}
}
