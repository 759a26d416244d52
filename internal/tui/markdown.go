package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style + wrap width. WithAutoStyle is
	// avoided on purpose: it can issue terminal queries that block on
	// some terminals, and the post detail view re-renders on every
	// resize.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders a post body for the detail view. On renderer
// failure the raw markdown is returned; a readable fallback beats an
// error screen for a read-only view.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// markdownStyle keeps glamour's palette aligned with the TUI theme so a
// forced light theme doesn't get dark-palette post bodies.
func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("BLOGTTY_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
