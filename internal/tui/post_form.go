package tui

import (
	"fmt"
	"strings"

	"blogtty/internal/api"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	postFieldTitle = iota
	postFieldContent
	postFieldCategory
	postFieldTags
	postFieldStatus
)

// postModalState is the create/edit post form. Category is a single
// pick from the sidebar's category list, tags a checklist over the
// known tags. editingID empty means create.
type postModalState struct {
	editingID string
	title     textinput.Model
	content   textarea.Model
	focus     int
	catIdx    int
	tagIdx    int
	tags      map[string]bool
	draft     bool
	err       string
	busy      bool
}

func newPostModalState(p *api.Post, categories []api.Category) postModalState {
	s := postModalState{tags: map[string]bool{}}

	s.title = textinput.New()
	s.title.Placeholder = "Title"
	s.title.CharLimit = 200
	s.title.Width = 48

	s.content = textarea.New()
	s.content.Placeholder = "Write markdown..."
	s.content.CharLimit = 0
	s.content.SetWidth(60)
	s.content.SetHeight(8)

	if p != nil {
		s.editingID = p.ID
		s.title.SetValue(p.Title)
		s.content.SetValue(p.Content)
		s.draft = p.Status == api.PostStatusDraft
		for i, c := range categories {
			if c.ID == p.Category.ID {
				s.catIdx = i
			}
		}
		for _, t := range p.Tags {
			s.tags[t.ID] = true
		}
	}

	s.applyFocus()
	return s
}

func (s *postModalState) applyFocus() {
	s.title.Blur()
	s.content.Blur()
	switch s.focus {
	case postFieldTitle:
		s.title.Focus()
	case postFieldContent:
		s.content.Focus()
	}
}

func (s *postModalState) cycleFocus(delta int) {
	s.focus = (s.focus + delta + 5) % 5
	s.applyFocus()
}

func (s *postModalState) selectedTagIDs() []string {
	ids := make([]string, 0, len(s.tags))
	for id, on := range s.tags {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *postModalState) validate(categories []api.Category) string {
	if strings.TrimSpace(s.title.Value()) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(s.content.Value()) == "" {
		return "Content is required"
	}
	if len(categories) == 0 || s.catIdx < 0 || s.catIdx >= len(categories) {
		return "Pick a category"
	}
	return ""
}

func (s *postModalState) request(categories []api.Category) api.CreatePostRequest {
	status := api.PostStatusPublished
	if s.draft {
		status = api.PostStatusDraft
	}
	return api.CreatePostRequest{
		Title:      strings.TrimSpace(s.title.Value()),
		Content:    s.content.Value(),
		CategoryID: categories[s.catIdx].ID,
		TagIDs:     s.selectedTagIDs(),
		Status:     status,
	}
}

func (m *appModel) renderPostModal() string {
	s := &m.postForm

	title := "New post"
	if s.editingID != "" {
		title = "Edit post"
	}

	focusMark := func(field int, label string) string {
		if s.focus == field {
			return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(label)
		}
		return styleMuted().Render(label)
	}

	lines := []string{
		s.title.View(),
		"",
		s.content.View(),
		"",
		focusMark(postFieldCategory, "Category"),
	}

	for i, c := range m.categories {
		row := "( ) " + c.Name
		if i == s.catIdx {
			row = "(x) " + c.Name
		}
		if s.focus == postFieldCategory && i == s.catIdx {
			row = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render(row)
		}
		lines = append(lines, row)
	}

	lines = append(lines, "", focusMark(postFieldTags, "Tags"))
	for i, t := range m.tags {
		box := "[ ]"
		if s.tags[t.ID] {
			box = "[x]"
		}
		row := fmt.Sprintf("%s #%s", box, t.Name)
		if s.focus == postFieldTags && i == s.tagIdx {
			row = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render(row)
		}
		lines = append(lines, row)
	}

	statusLabel := "Status: published"
	if s.draft {
		statusLabel = "Status: draft"
	}
	lines = append(lines, "", focusMark(postFieldStatus, statusLabel))

	if s.err != "" {
		lines = append(lines, "", styleError().Render(s.err))
	}
	if s.busy {
		lines = append(lines, "", styleMuted().Render(m.spinner.View()+" saving..."))
	}

	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("tab: next field   up/down: move   space: pick/toggle   ctrl+s: save   esc: cancel")
	lines = append(lines, "", help)

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
