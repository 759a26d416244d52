package tui

import (
	"fmt"
	"strings"
	"time"

	"blogtty/internal/api"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type postItem struct {
	post api.Post
}

func (i postItem) FilterValue() string { return i.post.Title }

func (i postItem) Title() string {
	t := strings.TrimSpace(i.post.Title)
	if t == "" {
		t = "(untitled)"
	}
	if i.post.Status == api.PostStatusDraft {
		return t + "  " + styleMeta().Render("[draft]")
	}
	return t
}

func (i postItem) Description() string {
	parts := make([]string, 0, 4)
	if i.post.Author != nil {
		if name := strings.TrimSpace(i.post.Author.Name); name != "" {
			parts = append(parts, name)
		}
	}
	if c := strings.TrimSpace(i.post.Category.Name); c != "" {
		parts = append(parts, c)
	}
	if !i.post.CreatedAt.IsZero() {
		parts = append(parts, i.post.CreatedAt.Format("2006-01-02"))
	}
	if n := len(i.post.Tags); n == 1 {
		parts = append(parts, "1 tag")
	} else if n > 1 {
		parts = append(parts, fmt.Sprintf("%d tags", n))
	}
	return strings.Join(parts, "  ·  ")
}

func styleMeta() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMetaFg)
}

func formatPostDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func newPostList() list.Model {
	l := list.New(nil, newPostRowDelegate(), 0, 0)
	// Paging, status and help are rendered by the surrounding view, so
	// keep the list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// Filtering is server-side through the search box; the list's own
	// fuzzy filter would only ever see one page.
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("post", "posts")
	// ESC is "back/blur" here, q quits from the top level only.
	l.KeyMap.Quit.SetKeys("q")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)

	return l
}

func postListItems(page api.Page[api.Post]) []list.Item {
	items := make([]list.Item, 0, len(page.Content))
	for _, p := range page.Content {
		items = append(items, postItem{post: p})
	}
	return items
}
