package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// postRowDelegate renders a post as a title line plus a muted meta line
// (author, category, date). Rows are padded to the full list width so
// the selection background forms a solid block.
type postRowDelegate struct {
	normal       lipgloss.Style
	normalMeta   lipgloss.Style
	selected     lipgloss.Style
	selectedMeta lipgloss.Style
}

func newPostRowDelegate() postRowDelegate {
	return postRowDelegate{
		normal:     lipgloss.NewStyle(),
		normalMeta: lipgloss.NewStyle().Foreground(colorMuted),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		selectedMeta: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg),
	}
}

func (d postRowDelegate) Height() int  { return 2 }
func (d postRowDelegate) Spacing() int { return 1 }
func (d postRowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func fitLine(s string, w int) string {
	lineW := xansi.StringWidth(s)
	if lineW < w {
		return s + strings.Repeat(" ", w-lineW)
	}
	if lineW > w {
		return xansi.Cut(s, 0, w)
	}
	return s
}

func (d postRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(postItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}

	title, meta := d.normal, d.normalMeta
	if index == m.Index() {
		title, meta = d.selected, d.selectedMeta
	}

	fmt.Fprint(w, title.Render(fitLine(it.Title(), contentW)))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, meta.Render(fitLine("  "+it.Description(), contentW)))
}
