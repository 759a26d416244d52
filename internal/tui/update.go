package tui

import (
	"strings"

	"blogtty/internal/api"
	"blogtty/internal/query"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	mp := &m

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		mp.width = msg.Width
		mp.height = msg.Height
		mp.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		mp.spinner, cmd = mp.spinner.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		mp.clampSidebarCursor()
		return m, nil

	case postsMsg:
		if msg.seq != mp.fetchSeq {
			return m, nil
		}
		mp.loadingPosts = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			mp.postsErr = api.ErrorMessage(msg.err)
			return m, nil
		}
		mp.posts = msg.page
		if mp.view == viewHome {
			mp.postsList.SetItems(postListItems(msg.page))
			mp.postsList.Select(0)
		}
		return m, nil

	case draftsMsg:
		if msg.seq != mp.fetchSeq {
			return m, nil
		}
		mp.loadingPosts = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			mp.postsErr = api.ErrorMessage(msg.err)
			return m, nil
		}
		mp.drafts = msg.page
		mp.draftsPage = msg.page.UIPage()
		if mp.view == viewDrafts {
			mp.postsList.SetItems(postListItems(msg.page))
			mp.postsList.Select(0)
		}
		return m, nil

	case sidebarMsg:
		if msg.seq != mp.sidebarSeq {
			return m, nil
		}
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			// The sidebar is ornamental when it can't load; the main
			// listing still works, so don't block the screen on it.
			return m, nil
		}
		mp.categories = msg.categories
		mp.tags = msg.tags
		mp.clampSidebarCursor()
		return m, nil

	case searchDebounceMsg:
		if msg.seq != mp.searchSeq {
			return m, nil
		}
		next := mp.qs.WithSearch(mp.searchInput.Value())
		if next.Equal(mp.qs) {
			return m, nil
		}
		mp.qs = next.Normalize()
		return m, mp.startFetchPosts()

	case postMsg:
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			mp.notice = api.ErrorMessage(msg.err)
			return m, nil
		}
		post := msg.post
		mp.openPost = &post
		mp.detailScroll = 0
		if mp.view != viewPost {
			mp.detailReturn = mp.view
		}
		mp.view = viewPost
		return m, nil

	case authResultMsg:
		mp.auth.busy = false
		if msg.err != nil {
			mp.auth.err = msg.err.Error()
			return m, nil
		}
		mp.modal = modalNone
		mp.notice = ""
		mp.clampSidebarCursor()
		if u := mp.deps.Session.User(); u != nil {
			mp.notice = "Signed in as " + u.Name
		}
		return m, nil

	case postMutatedMsg:
		mp.postForm.busy = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			if mp.modal == modalPost {
				mp.postForm.err = api.ErrorMessage(msg.err)
			} else {
				mp.notice = api.ErrorMessage(msg.err)
			}
			return m, nil
		}
		mp.modal = modalNone
		if msg.deleted {
			mp.notice = "Post deleted."
		}
		// Post changes move category/tag post counts too.
		mp.deps.Signal.Bump()
		refetch := mp.startFetchPosts()
		if mp.view == viewDrafts {
			refetch = mp.startFetchDrafts()
		}
		return m, tea.Batch(refetch, mp.maybeRefreshSidebar())

	case tagsAdminMsg:
		mp.tagsLoading = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			mp.tagsErr = api.ErrorMessage(msg.err)
			return m, nil
		}
		mp.tagsErr = ""
		mp.adminTags = msg.tags
		if mp.tagsIdx >= len(mp.adminTags) {
			mp.tagsIdx = len(mp.adminTags) - 1
		}
		if mp.tagsIdx < 0 {
			mp.tagsIdx = 0
		}
		return m, nil

	case tagsMutatedMsg:
		mp.tagForm.busy = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			if mp.modal == modalAddTags {
				// Keep the chips; the user fixes and resubmits.
				mp.tagForm.err = api.ErrorMessage(msg.err)
			} else {
				mp.tagsErr = api.ErrorMessage(msg.err)
			}
			return m, nil
		}
		if mp.modal == modalAddTags {
			mp.modal = modalNone
		}
		mp.deps.Signal.Bump()
		mp.tagsLoading = true
		return m, tea.Batch(mp.startFetchAdminTags(), mp.maybeRefreshSidebar())

	case usersAdminMsg:
		mp.usersLoading = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			mp.usersErr = api.ErrorMessage(msg.err)
			return m, nil
		}
		mp.usersErr = ""
		mp.users = msg.users
		mp.roles = msg.roles
		if mp.usersIdx >= len(mp.users) {
			mp.usersIdx = len(mp.users) - 1
		}
		if mp.usersIdx < 0 {
			mp.usersIdx = 0
		}
		return m, nil

	case userMutatedMsg:
		mp.userForm.busy = false
		if msg.err != nil {
			if api.IsUnauthorized(msg.err) {
				return m, mp.handleSessionExpired()
			}
			if mp.modal == modalUser {
				mp.userForm.err = api.ErrorMessage(msg.err)
			} else {
				mp.usersErr = api.ErrorMessage(msg.err)
			}
			return m, nil
		}
		mp.modal = modalNone
		// User changes can reassign post authorship downstream; the
		// other screens learn about it through the signal.
		mp.deps.Signal.Bump()
		mp.usersLoading = true
		return m, tea.Batch(mp.startFetchUsersAndRoles(), mp.maybeRefreshSidebar())

	case tea.KeyMsg:
		return mp.updateKey(msg)
	}

	return m, nil
}

func (m *appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return *m, tea.Quit
	}

	if m.modal != modalNone {
		return m.updateModalKey(msg)
	}
	if m.searchInput.Focused() {
		return m.updateSearchKey(msg)
	}

	switch m.view {
	case viewPost:
		return m.updateDetailKey(msg)
	case viewTags:
		return m.updateTagsKey(msg)
	case viewUsers:
		return m.updateUsersKey(msg)
	}

	if m.focus == focusSidebar {
		return m.updateSidebarKey(msg)
	}
	return m.updateListingKey(msg)
}

// updateListingKey handles the main pane on home and drafts.
func (m *appModel) updateListingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return *m, tea.Quit

	case "/":
		if m.view == viewHome {
			m.notice = ""
			m.searchInput.Focus()
			return *m, nil
		}

	case "tab":
		m.focus = focusSidebar
		m.clampSidebarCursor()
		return *m, nil

	case "esc":
		if m.view == viewDrafts {
			m.view = viewHome
			m.postsList.SetItems(postListItems(m.posts))
			m.postsList.Select(0)
			return *m, nil
		}

	case "enter":
		if it, ok := m.postsList.SelectedItem().(postItem); ok {
			m.detailReturn = m.view
			return *m, m.startFetchPost(it.post.ID)
		}

	case "left", "h":
		return *m, m.pagePrev()

	case "right", "l":
		return *m, m.pageNext()

	case "o":
		if m.view == viewHome {
			next := m.qs.WithSort(toggledSort(m.qs.Sort))
			if !next.Equal(m.qs) {
				m.qs = next
				return *m, m.startFetchPosts()
			}
			return *m, nil
		}

	case "r":
		if m.view == viewDrafts {
			return *m, m.startFetchDrafts()
		}
		return *m, tea.Batch(m.startFetchPosts(), m.startFetchSidebar())

	case "a":
		if !m.deps.Session.IsAuthenticated() {
			m.auth = newAuthModalState(authModeLogin)
			m.modal = modalAuth
			return *m, nil
		}

	case "n":
		if m.deps.Session.IsAuthenticated() {
			m.postForm = newPostModalState(nil, m.categories)
			m.modal = modalPost
			return *m, nil
		}

	case "e":
		if m.deps.Session.IsAuthenticated() {
			if it, ok := m.postsList.SelectedItem().(postItem); ok {
				p := it.post
				m.postForm = newPostModalState(&p, m.categories)
				m.modal = modalPost
			}
			return *m, nil
		}

	case "d":
		if m.deps.Session.IsAuthenticated() {
			if it, ok := m.postsList.SelectedItem().(postItem); ok {
				m.confirm = confirmState{
					title:        "Delete post",
					body:         "Delete \"" + it.post.Title + "\"? This cannot be undone.",
					confirmLabel: "Delete",
					action:       confirmDeletePost,
					targetID:     it.post.ID,
				}
				m.modal = modalConfirm
			}
			return *m, nil
		}

	case "x":
		if m.deps.Session.IsAuthenticated() {
			m.confirm = confirmState{
				title:        "Sign out",
				body:         "Sign out of this account?",
				confirmLabel: "Sign out",
				action:       confirmLogout,
			}
			m.modal = modalConfirm
			return *m, nil
		}
	}

	var cmd tea.Cmd
	m.postsList, cmd = m.postsList.Update(msg)
	return *m, cmd
}

func toggledSort(current string) string {
	if current == "createdAt,asc" {
		return api.DefaultSort
	}
	return "createdAt,asc"
}

func (m *appModel) pagePrev() tea.Cmd {
	if m.view == viewDrafts {
		if m.draftsPage <= 1 {
			return nil
		}
		m.draftsPage--
		return m.startFetchDrafts()
	}
	if m.qs.Page <= 1 {
		return nil
	}
	m.qs = m.qs.WithPage(m.qs.Page - 1)
	return m.startFetchPosts()
}

func (m *appModel) pageNext() tea.Cmd {
	if m.view == viewDrafts {
		if m.draftsPage >= m.drafts.TotalPages {
			return nil
		}
		m.draftsPage++
		return m.startFetchDrafts()
	}
	cur := m.posts.UIPage()
	if cur >= m.posts.TotalPages {
		return nil
	}
	m.qs = m.qs.WithPage(cur + 1)
	return m.startFetchPosts()
}

func (m *appModel) updateSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.Blur()
		return *m, nil
	case "enter":
		// Commit immediately; bump the seq so a pending debounce timer
		// from the last keystroke fires into the void.
		m.searchInput.Blur()
		m.searchSeq++
		next := m.qs.WithSearch(m.searchInput.Value())
		if next.Equal(m.qs) {
			return *m, nil
		}
		m.qs = next.Normalize()
		return *m, m.startFetchPosts()
	case "tab":
		m.searchInput.Blur()
		m.focus = focusSidebar
		m.clampSidebarCursor()
		return *m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		return *m, tea.Batch(cmd, m.armSearchDebounce())
	}
	return *m, cmd
}

func (m *appModel) updateSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return *m, tea.Quit
	case "tab", "esc":
		m.focus = focusMain
		return *m, nil
	case "up", "k", "ctrl+p":
		m.moveSidebarCursor(-1)
		return *m, nil
	case "down", "j", "ctrl+n":
		m.moveSidebarCursor(1)
		return *m, nil
	case "enter":
		return m.activateSidebarEntry()
	}
	return *m, nil
}

func (m *appModel) activateSidebarEntry() (tea.Model, tea.Cmd) {
	entries := m.sidebarEntries()
	if m.sidebarIdx < 0 || m.sidebarIdx >= len(entries) {
		return *m, nil
	}
	e := entries[m.sidebarIdx]
	m.notice = ""

	switch e.kind {
	case sbHome:
		m.qs = query.State{}
		m.searchInput.SetValue("")
		m.view = viewHome
		m.focus = focusMain
		return *m, m.startFetchPosts()

	case sbDrafts:
		m.view = viewDrafts
		m.focus = focusMain
		m.draftsPage = 1
		return *m, m.startFetchDrafts()

	case sbTagsAdmin:
		m.view = viewTags
		m.focus = focusMain
		m.tagsLoading = true
		m.tagsErr = ""
		return *m, m.startFetchAdminTags()

	case sbUsersAdmin:
		m.view = viewUsers
		m.focus = focusMain
		m.usersLoading = true
		m.usersErr = ""
		return *m, m.startFetchUsersAndRoles()

	case sbCategory:
		m.qs = m.qs.WithCategory(e.id)
		m.searchInput.SetValue("")
		m.view = viewHome
		m.focus = focusMain
		return *m, m.startFetchPosts()

	case sbTag:
		m.qs = m.qs.WithTag(e.id)
		m.searchInput.SetValue("")
		m.view = viewHome
		m.focus = focusMain
		return *m, m.startFetchPosts()

	case sbMoreCategories:
		m.visibleCategories += sidebarShowStep
		return *m, nil

	case sbMoreTags:
		m.visibleTags += sidebarShowStep
		return *m, nil
	}
	return *m, nil
}

func (m *appModel) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	maxScroll := m.maxDetailScroll(m.width, m.height-4)
	switch msg.String() {
	case "q":
		return *m, tea.Quit
	case "esc":
		m.view = m.detailReturn
		m.openPost = nil
		if m.view == viewDrafts {
			m.postsList.SetItems(postListItems(m.drafts))
		} else {
			m.postsList.SetItems(postListItems(m.posts))
		}
		return *m, nil
	case "up", "k":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
	case "down", "j":
		if m.detailScroll < maxScroll {
			m.detailScroll++
		}
	case "pgup", "b":
		m.detailScroll -= 10
		if m.detailScroll < 0 {
			m.detailScroll = 0
		}
	case "pgdown", "f", " ":
		m.detailScroll += 10
		if m.detailScroll > maxScroll {
			m.detailScroll = maxScroll
		}
	case "g", "home":
		m.detailScroll = 0
	case "G", "end":
		m.detailScroll = maxScroll
	}
	return *m, nil
}

func (m *appModel) updateTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return *m, tea.Quit
	case "esc":
		m.view = viewHome
		m.postsList.SetItems(postListItems(m.posts))
		return *m, nil
	case "up", "k", "ctrl+p":
		if m.tagsIdx > 0 {
			m.tagsIdx--
		}
	case "down", "j", "ctrl+n":
		if m.tagsIdx < len(m.adminTags)-1 {
			m.tagsIdx++
		}
	case "a":
		m.tagForm = newTagModalState()
		m.modal = modalAddTags
	case "d":
		t := m.selectedAdminTag()
		if t == nil {
			return *m, nil
		}
		if t.PostCount > 0 {
			m.notice = "Cannot delete #" + t.Name + ": it is used by posts."
			return *m, nil
		}
		m.confirm = confirmState{
			title:        "Delete tag",
			body:         "Delete tag #" + t.Name + "? This cannot be undone.",
			confirmLabel: "Delete",
			action:       confirmDeleteTag,
			targetID:     t.ID,
		}
		m.modal = modalConfirm
	case "r":
		m.tagsLoading = true
		return *m, m.startFetchAdminTags()
	}
	return *m, nil
}

func (m *appModel) updateUsersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return *m, tea.Quit
	case "esc":
		m.view = viewHome
		m.postsList.SetItems(postListItems(m.posts))
		return *m, nil
	case "up", "k", "ctrl+p":
		if m.usersIdx > 0 {
			m.usersIdx--
		}
	case "down", "j", "ctrl+n":
		if m.usersIdx < len(m.users)-1 {
			m.usersIdx++
		}
	case "a":
		m.userForm = newUserModalState(nil)
		m.modal = modalUser
	case "e":
		u := m.selectedUser()
		if u == nil {
			return *m, nil
		}
		if m.isSelf(u) {
			m.notice = "You cannot edit your own account here."
			return *m, nil
		}
		m.userForm = newUserModalState(u)
		m.modal = modalUser
	case "d":
		u := m.selectedUser()
		if u == nil {
			return *m, nil
		}
		if m.isSelf(u) {
			m.notice = "You cannot delete your own account."
			return *m, nil
		}
		m.confirm = confirmState{
			title:        "Delete user",
			body:         "Delete " + u.Name + " (" + u.Email + ")? This cannot be undone.",
			confirmLabel: "Delete",
			action:       confirmDeleteUser,
			targetID:     u.ID,
		}
		m.modal = modalConfirm
	case "r":
		m.usersLoading = true
		return *m, m.startFetchUsersAndRoles()
	}
	return *m, nil
}

func (m *appModel) updateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalAuth:
		return m.updateAuthModalKey(msg)
	case modalAddTags:
		return m.updateAddTagsModalKey(msg)
	case modalUser:
		return m.updateUserModalKey(msg)
	case modalPost:
		return m.updatePostModalKey(msg)
	case modalConfirm:
		return m.updateConfirmModalKey(msg)
	}
	return *m, nil
}

func (m *appModel) updateAuthModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.auth
	if s.busy {
		return *m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return *m, nil
	case "ctrl+t":
		s.toggleMode()
		return *m, nil
	case "tab", "down":
		s.cycleFocus(1)
		return *m, nil
	case "shift+tab", "up":
		s.cycleFocus(-1)
		return *m, nil
	case "enter":
		if msgErr := s.validate(); msgErr != "" {
			s.err = msgErr
			return *m, nil
		}
		s.err = ""
		s.busy = true
		email := strings.TrimSpace(s.email.Value())
		pass := s.pass.Value()
		if s.mode == authModeSignup {
			name := strings.TrimSpace(s.name.Value())
			return *m, m.startSignup(name, email, pass)
		}
		return *m, m.startLogin(email, pass)
	}

	fs := s.fields()
	var cmd tea.Cmd
	*fs[s.focus], cmd = fs[s.focus].Update(msg)
	return *m, cmd
}

func (m *appModel) updateAddTagsModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.tagForm
	if s.busy {
		return *m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return *m, nil
	case "enter", ",":
		s.commitChip()
		return *m, nil
	case "backspace":
		if s.input.Value() == "" {
			s.removeLastChip()
			return *m, nil
		}
	case "ctrl+s":
		s.commitChip()
		if len(s.chips) == 0 {
			s.err = "Add at least one tag"
			return *m, nil
		}
		s.err = ""
		s.busy = true
		return *m, m.startCreateTags(s.chips)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return *m, cmd
}

func (m *appModel) updateUserModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.userForm
	if s.busy {
		return *m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return *m, nil
	case "tab":
		s.cycleFocus(1)
		return *m, nil
	case "shift+tab":
		s.cycleFocus(-1)
		return *m, nil
	case "ctrl+s":
		if msgErr := s.validate(); msgErr != "" {
			s.err = msgErr
			return *m, nil
		}
		s.err = ""
		s.busy = true
		return *m, m.startSaveUser(s.editingID, s.request())
	}

	if s.focus == userFieldRoles {
		switch msg.String() {
		case "up", "k":
			if s.roleIdx > 0 {
				s.roleIdx--
			}
		case "down", "j":
			if s.roleIdx < len(m.roles)-1 {
				s.roleIdx++
			}
		case " ", "enter":
			if s.roleIdx >= 0 && s.roleIdx < len(m.roles) {
				id := m.roles[s.roleIdx].ID
				s.roles[id] = !s.roles[id]
			}
		}
		return *m, nil
	}

	fields := []*textinput.Model{&s.name, &s.email, &s.pass}
	var cmd tea.Cmd
	*fields[s.focus], cmd = fields[s.focus].Update(msg)
	return *m, cmd
}

func (m *appModel) updatePostModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := &m.postForm
	if s.busy {
		return *m, nil
	}

	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return *m, nil
	case "tab":
		s.cycleFocus(1)
		return *m, nil
	case "shift+tab":
		s.cycleFocus(-1)
		return *m, nil
	case "ctrl+s":
		if msgErr := s.validate(m.categories); msgErr != "" {
			s.err = msgErr
			return *m, nil
		}
		s.err = ""
		s.busy = true
		return *m, m.startSavePost(s.editingID, s.request(m.categories))
	}

	switch s.focus {
	case postFieldCategory:
		switch msg.String() {
		case "up", "k":
			if s.catIdx > 0 {
				s.catIdx--
			}
		case "down", "j":
			if s.catIdx < len(m.categories)-1 {
				s.catIdx++
			}
		}
		return *m, nil

	case postFieldTags:
		switch msg.String() {
		case "up", "k":
			if s.tagIdx > 0 {
				s.tagIdx--
			}
		case "down", "j":
			if s.tagIdx < len(m.tags)-1 {
				s.tagIdx++
			}
		case " ", "enter":
			if s.tagIdx >= 0 && s.tagIdx < len(m.tags) {
				id := m.tags[s.tagIdx].ID
				s.tags[id] = !s.tags[id]
			}
		}
		return *m, nil

	case postFieldStatus:
		switch msg.String() {
		case " ", "enter":
			s.draft = !s.draft
		}
		return *m, nil

	case postFieldContent:
		// Enter and friends go straight to the textarea so multi-line
		// content works.
		var cmd tea.Cmd
		s.content, cmd = s.content.Update(msg)
		return *m, cmd
	}

	var cmd tea.Cmd
	s.title, cmd = s.title.Update(msg)
	return *m, cmd
}

func (m *appModel) updateConfirmModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		m.confirm = confirmState{}
		return *m, nil
	case "tab", "left", "right":
		if m.confirm.focus == confirmFocusConfirm {
			m.confirm.focus = confirmFocusCancel
		} else {
			m.confirm.focus = confirmFocusConfirm
		}
		return *m, nil
	case "enter":
		if m.confirm.focus == confirmFocusCancel {
			m.modal = modalNone
			m.confirm = confirmState{}
			return *m, nil
		}
		action, target := m.confirm.action, m.confirm.targetID
		m.modal = modalNone
		m.confirm = confirmState{}
		switch action {
		case confirmDeletePost:
			return *m, m.startDeletePost(target)
		case confirmDeleteTag:
			return *m, m.startDeleteTag(target)
		case confirmDeleteUser:
			return *m, m.startDeleteUser(target)
		case confirmLogout:
			m.deps.Session.Logout()
			m.view = viewHome
			m.focus = focusMain
			m.notice = "Signed out."
			m.drafts = api.Page[api.Post]{}
			m.users = nil
			m.adminTags = nil
			m.clampSidebarCursor()
			return *m, nil
		}
	}
	return *m, nil
}
