package tui

import (
	"fmt"
	"strings"

	"blogtty/internal/api"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// tagModalState is the "add tags" form: type a name, enter or comma
// turns it into a chip, submit creates the whole batch at once.
type tagModalState struct {
	input textinput.Model
	chips []string
	err   string
	busy  bool
}

func newTagModalState() tagModalState {
	s := tagModalState{}
	s.input = textinput.New()
	s.input.Placeholder = "Tag name"
	s.input.CharLimit = 40
	s.input.Width = 32
	s.input.Focus()
	return s
}

// commitChip moves the current input text into the chip list. Names are
// lowercased and deduplicated; the backend treats tag names as
// case-insensitive identifiers.
func (s *tagModalState) commitChip() {
	name := strings.ToLower(strings.TrimSpace(s.input.Value()))
	s.input.SetValue("")
	if name == "" {
		return
	}
	for _, c := range s.chips {
		if c == name {
			return
		}
	}
	s.chips = append(s.chips, name)
}

func (s *tagModalState) removeLastChip() {
	if len(s.chips) > 0 {
		s.chips = s.chips[:len(s.chips)-1]
	}
}

func (m *appModel) selectedAdminTag() *api.Tag {
	if m.tagsIdx < 0 || m.tagsIdx >= len(m.adminTags) {
		return nil
	}
	return &m.adminTags[m.tagsIdx]
}

func (m *appModel) renderTagsView(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Tags"))
	b.WriteString("\n\n")

	switch {
	case m.tagsLoading:
		b.WriteString(styleMuted().Render(m.spinner.View() + " loading tags..."))
	case m.tagsErr != "":
		b.WriteString(styleError().Render(m.tagsErr))
	case len(m.adminTags) == 0:
		b.WriteString(styleMuted().Render("No tags yet. Press a to add some."))
	default:
		sel := lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true)

		for i, t := range m.adminTags {
			count := styleMeta().Render(fmt.Sprintf("%d posts", t.PostCount))
			if t.PostCount == 1 {
				count = styleMeta().Render("1 post")
			}
			line := fmt.Sprintf("  #%-20s %s", t.Name, count)
			if i == m.tagsIdx {
				line = sel.Render(fitLine(line, width-2))
			}
			b.WriteString(line)
			if t.PostCount > 0 && i == m.tagsIdx {
				b.WriteString("  " + styleMuted().Render("(in use, cannot delete)"))
			}
			b.WriteString("\n")
		}
	}

	help := styleMuted().Render("a: add tags   d: delete   esc: back")
	body := lipgloss.NewStyle().Width(width).Height(height - 1).Render(b.String())
	return body + "\n" + help
}

func (m *appModel) renderAddTagsModal() string {
	s := &m.tagForm

	lines := make([]string, 0, 8)
	if len(s.chips) > 0 {
		chip := lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorSelectedFg).
			Background(colorSelectedBg)
		rendered := make([]string, 0, len(s.chips))
		for _, c := range s.chips {
			rendered = append(rendered, chip.Render("#"+c))
		}
		lines = append(lines, strings.Join(rendered, " "), "")
	}
	lines = append(lines, s.input.View())

	if s.err != "" {
		lines = append(lines, "", styleError().Render(s.err))
	}
	if s.busy {
		lines = append(lines, "", styleMuted().Render(m.spinner.View()+" saving..."))
	}

	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("enter/comma: add chip   backspace on empty: remove last   ctrl+s: save   esc: cancel")
	lines = append(lines, "", help)

	return renderModalBox(m.width, "Add tags", strings.Join(lines, "\n"))
}
