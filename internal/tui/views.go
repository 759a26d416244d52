package tui

import (
	"fmt"
	"strings"

	"blogtty/internal/api"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	notice := m.renderNoticeLine()

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - lipgloss.Height(notice)
	if bodyH < 4 {
		bodyH = 4
	}

	var body string
	switch m.view {
	case viewPost:
		body = m.renderPostDetail(m.width, bodyH)
	case viewTags:
		body = m.renderTagsView(m.width-2, bodyH)
	case viewUsers:
		body = m.renderUsersView(m.width-2, bodyH)
	default:
		mainW := m.width - sidebarWidth - 1
		if mainW < 30 {
			mainW = 30
		}
		sidebar := m.renderSidebar(bodyH)
		main := m.renderPostListing(mainW, bodyH)
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)
	}

	screen := strings.Join([]string{header, body, notice, footer}, "\n")

	if m.modal != modalNone {
		var box string
		switch m.modal {
		case modalAuth:
			box = m.renderAuthModal()
		case modalAddTags:
			box = m.renderAddTagsModal()
		case modalUser:
			box = m.renderUserModal()
		case modalPost:
			box = m.renderPostModal()
		case modalConfirm:
			box = renderConfirmModal(m.width, m.confirm)
		}
		return overlayCentered(m.width, m.height, dimBackground(screen), box)
	}

	return screen
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("blogtty")

	var who string
	switch {
	case m.deps.Session.Loading():
		who = styleMuted().Render("...")
	case m.deps.Session.IsAuthenticated():
		u := m.deps.Session.User()
		who = u.Name
		if m.deps.Session.IsAdmin() {
			who += styleMeta().Render(" (admin)")
		}
	default:
		who = styleMuted().Render("anonymous  a: sign in")
	}

	left := title + "  " + m.searchInput.View()
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(who) - 1
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + who

	// The encoded query state is the shareable address of the current
	// listing; anyone can paste it back via --query.
	q := m.qs.Encode()
	if q == "" {
		q = "(default listing)"
	}
	qLine := styleMuted().Render("query: " + q)

	return line + "\n" + qLine
}

func (m appModel) renderNoticeLine() string {
	if m.notice == "" {
		return ""
	}
	return styleError().Render(m.notice)
}

func (m appModel) renderFooter() string {
	var keys []string
	switch {
	case m.view == viewPost:
		keys = []string{"up/down: scroll", "esc: back", "q: quit"}
	case m.view == viewDrafts:
		keys = []string{"enter: open", "left/right: page", "esc: back", "q: quit"}
	case m.focus == focusSidebar:
		keys = []string{"up/down: move", "enter: select", "tab: list", "q: quit"}
	default:
		keys = []string{"/: search", "enter: open", "left/right: page", "o: order", "tab: sidebar"}
		if m.deps.Session.IsAuthenticated() {
			keys = append(keys, "n: new", "e: edit", "d: delete", "x: sign out")
		} else {
			keys = append(keys, "a: sign in")
		}
		keys = append(keys, "q: quit")
	}
	return styleMuted().Render(strings.Join(keys, "   "))
}

// renderPostListing is the main pane for both home and drafts: the post
// list plus a one-line pager.
func (m appModel) renderPostListing(width, height int) string {
	page := m.posts
	empty := "No posts found."
	if m.view == viewDrafts {
		page = m.drafts
		empty = "No drafts."
	}

	// A failed or in-flight fetch keeps the last good page on screen;
	// only an empty pane gets replaced by the status text.
	var body string
	switch {
	case len(page.Content) > 0:
		body = m.postsList.View()
		if m.loadingPosts {
			body = styleMuted().Render(m.spinner.View()+" refreshing...") + "\n" + body
		} else if m.postsErr != "" {
			body = styleError().Render(m.postsErr) + "\n" + body
		}
	case m.loadingPosts:
		body = styleMuted().Render(m.spinner.View() + " loading posts...")
	case m.postsErr != "":
		body = styleError().Render(m.postsErr)
	default:
		body = styleMuted().Render(empty)
	}

	pager := ""
	if page.TotalPages > 1 {
		pager = styleMuted().Render(fmt.Sprintf("page %d of %d  (%d posts)", page.UIPage(), page.TotalPages, page.TotalElements))
	}

	st := lipgloss.NewStyle().Width(width).Height(height - 1)
	return st.Render(body) + "\n" + pager
}

func (m appModel) renderPostDetail(width, height int) string {
	if m.openPost == nil {
		return styleMuted().Render(m.spinner.View() + " loading post...")
	}
	p := m.openPost

	title := lipgloss.NewStyle().Bold(true).Render(p.Title)
	if p.Status == api.PostStatusDraft {
		title += "  " + styleMeta().Render("[draft]")
	}

	meta := make([]string, 0, 4)
	if p.Author != nil && p.Author.Name != "" {
		meta = append(meta, p.Author.Name)
	}
	if p.Category.Name != "" {
		meta = append(meta, p.Category.Name)
	}
	if d := formatPostDate(p.CreatedAt); d != "" {
		meta = append(meta, d)
	}
	if p.ReadingTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min read", p.ReadingTime))
	}
	metaLine := styleMuted().Render(strings.Join(meta, "  ·  "))

	tagLine := ""
	if len(p.Tags) > 0 {
		names := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			names = append(names, "#"+t.Name)
		}
		tagLine = styleMeta().Render(strings.Join(names, " "))
	}

	rendered := renderMarkdown(p.Content, width-4)
	lines := strings.Split(rendered, "\n")

	// Scroll window over the rendered body.
	avail := height - 4
	if avail < 3 {
		avail = 3
	}
	top := m.detailScroll
	if top > len(lines)-avail {
		top = len(lines) - avail
	}
	if top < 0 {
		top = 0
	}
	end := top + avail
	if end > len(lines) {
		end = len(lines)
	}
	bodyView := strings.Join(lines[top:end], "\n")

	parts := []string{title, metaLine}
	if tagLine != "" {
		parts = append(parts, tagLine)
	}
	parts = append(parts, "", bodyView)

	return lipgloss.NewStyle().Width(width).Padding(0, 2).Render(strings.Join(parts, "\n"))
}

// maxDetailScroll bounds detail scrolling so the last page stays on
// screen.
func (m *appModel) maxDetailScroll(width, height int) int {
	if m.openPost == nil {
		return 0
	}
	lines := strings.Count(renderMarkdown(m.openPost.Content, width-4), "\n") + 1
	maxScroll := lines - (height - 4)
	if maxScroll < 0 {
		return 0
	}
	return maxScroll
}
