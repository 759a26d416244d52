package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const sidebarWidth = 28

type sidebarEntryKind int

const (
	sbHome sidebarEntryKind = iota
	sbDrafts
	sbTagsAdmin
	sbUsersAdmin
	sbHeading
	sbCategory
	sbTag
	sbMoreCategories
	sbMoreTags
)

type sidebarEntry struct {
	kind  sidebarEntryKind
	label string
	id    string
}

// sidebarEntries builds the selectable rows top to bottom: navigation
// first, then categories, then tags, each capped by its visible count
// with a "show more" row while entries remain hidden. Headings are in
// the slice so indexes line up with rendering, but the cursor skips
// them.
func (m *appModel) sidebarEntries() []sidebarEntry {
	entries := []sidebarEntry{{kind: sbHome, label: "Home"}}

	if m.deps.Session.IsAuthenticated() {
		entries = append(entries, sidebarEntry{kind: sbDrafts, label: "Drafts"})
	}
	if m.deps.Session.IsAdmin() {
		entries = append(entries,
			sidebarEntry{kind: sbTagsAdmin, label: "Tags"},
			sidebarEntry{kind: sbUsersAdmin, label: "Users"},
		)
	}

	entries = append(entries, sidebarEntry{kind: sbHeading, label: "Categories"})
	shown := m.visibleCategories
	if shown > len(m.categories) {
		shown = len(m.categories)
	}
	for _, c := range m.categories[:shown] {
		entries = append(entries, sidebarEntry{kind: sbCategory, label: c.Name, id: c.ID})
	}
	if shown < len(m.categories) {
		entries = append(entries, sidebarEntry{
			kind:  sbMoreCategories,
			label: fmt.Sprintf("show more (%d)", len(m.categories)-shown),
		})
	}

	entries = append(entries, sidebarEntry{kind: sbHeading, label: "Tags"})
	shown = m.visibleTags
	if shown > len(m.tags) {
		shown = len(m.tags)
	}
	for _, t := range m.tags[:shown] {
		entries = append(entries, sidebarEntry{kind: sbTag, label: t.Name, id: t.ID})
	}
	if shown < len(m.tags) {
		entries = append(entries, sidebarEntry{
			kind:  sbMoreTags,
			label: fmt.Sprintf("show more (%d)", len(m.tags)-shown),
		})
	}

	return entries
}

func (e sidebarEntry) selectable() bool { return e.kind != sbHeading }

// moveSidebarCursor moves the cursor to the next selectable entry in
// the given direction, clamping at the ends.
func (m *appModel) moveSidebarCursor(delta int) {
	entries := m.sidebarEntries()
	if len(entries) == 0 {
		return
	}
	i := m.sidebarIdx
	for {
		i += delta
		if i < 0 || i >= len(entries) {
			return
		}
		if entries[i].selectable() {
			m.sidebarIdx = i
			return
		}
	}
}

// clampSidebarCursor repairs the cursor after the entry list changed
// shape (login, logout, sidebar refetch).
func (m *appModel) clampSidebarCursor() {
	entries := m.sidebarEntries()
	if m.sidebarIdx >= len(entries) {
		m.sidebarIdx = len(entries) - 1
	}
	if m.sidebarIdx < 0 {
		m.sidebarIdx = 0
	}
	for m.sidebarIdx > 0 && !entries[m.sidebarIdx].selectable() {
		m.sidebarIdx--
	}
	if !entries[m.sidebarIdx].selectable() {
		m.moveSidebarCursor(1)
	}
}

func (m *appModel) renderSidebar(height int) string {
	entries := m.sidebarEntries()
	focused := m.focus == focusSidebar && m.modal == modalNone

	heading := styleMuted().Bold(true)
	sel := lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	active := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	more := styleMuted()

	var b strings.Builder
	for i, e := range entries {
		var line string
		switch e.kind {
		case sbHeading:
			line = heading.Render(strings.ToUpper(e.label))
			if i > 0 {
				line = "\n" + line
			}
		case sbMoreCategories, sbMoreTags:
			line = "  " + more.Render(e.label)
		case sbCategory:
			line = "  " + e.label
			if m.qs.CategoryID == e.id {
				line = "  " + active.Render(e.label)
			}
		case sbTag:
			line = "  #" + e.label
			if m.qs.TagID == e.id {
				line = "  " + active.Render("#"+e.label)
			}
		default:
			line = e.label
		}

		if focused && i == m.sidebarIdx {
			line = sel.Render(fitLine(line, sidebarWidth-1))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	st := lipgloss.NewStyle().
		Width(sidebarWidth).
		Height(height).
		Padding(0, 1)
	return st.Render(b.String())
}
