package tui

import (
	"context"
	"time"

	"blogtty/internal/api"
	"blogtty/internal/query"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 10 * time.Second

// Every list fetch carries the seq it was issued under; responses whose
// seq no longer matches the model's counter are dropped, so a slow
// early request can never overwrite the result of a newer one.
type postsMsg struct {
	seq  int
	page api.Page[api.Post]
	err  error
}

type sidebarMsg struct {
	seq        int
	categories []api.Category
	tags       []api.Tag
	err        error
}

type draftsMsg struct {
	seq  int
	page api.Page[api.Post]
	err  error
}

type postMsg struct {
	post api.Post
	err  error
}

type sessionRestoredMsg struct{}

type searchDebounceMsg struct{ seq int }

type authResultMsg struct {
	signup bool
	err    error
}

type postMutatedMsg struct {
	deleted bool
	err     error
}

type tagsAdminMsg struct {
	tags []api.Tag
	err  error
}

type tagsMutatedMsg struct{ err error }

type usersAdminMsg struct {
	users []api.User
	roles []api.Role
	err   error
}

type userMutatedMsg struct{ err error }

func fetchCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), fetchTimeout)
}

// startFetchPosts issues exactly one fetch for the given query state.
// The search route wins over the filtered listing; the two are never
// combined in one request.
func (m *appModel) startFetchPosts() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	m.loadingPosts = true
	m.postsErr = ""
	st := m.qs
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()

		var (
			page api.Page[api.Post]
			err  error
		)
		if st.Route() == query.RouteSearch {
			title, params := st.SearchParams()
			page, err = client.SearchPosts(ctx, title, params)
		} else {
			page, err = client.ListPosts(ctx, st.ListParams())
		}
		return postsMsg{seq: seq, page: page, err: err}
	}
}

func (m *appModel) startFetchSidebar() tea.Cmd {
	m.sidebarSeq++
	seq := m.sidebarSeq
	m.seenRefresh = m.deps.Signal.Count()
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()

		categories, err := client.ListCategories(ctx)
		if err != nil {
			return sidebarMsg{seq: seq, err: err}
		}
		tags, err := client.ListTags(ctx)
		if err != nil {
			return sidebarMsg{seq: seq, err: err}
		}
		return sidebarMsg{seq: seq, categories: categories, tags: tags}
	}
}

func (m *appModel) startFetchDrafts() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	m.loadingPosts = true
	m.postsErr = ""
	page := m.draftsPage
	client := m.deps.Client

	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		resp, err := client.ListDrafts(ctx, api.PageParams{Page: page})
		return draftsMsg{seq: seq, page: resp, err: err}
	}
}

func (m *appModel) startFetchPost(id string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		post, err := client.GetPost(ctx, id)
		return postMsg{post: post, err: err}
	}
}

// startRestoreSession runs the silent startup restore: a persisted token
// is either exchanged for a profile or cleared without bothering the
// user.
func (m *appModel) startRestoreSession() tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		sess.Restore(ctx)
		return sessionRestoredMsg{}
	}
}

func (m *appModel) startLogin(email, password string) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		return authResultMsg{err: sess.Login(ctx, email, password)}
	}
}

func (m *appModel) startSignup(name, email, password string) tea.Cmd {
	sess := m.deps.Session
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		return authResultMsg{signup: true, err: sess.Signup(ctx, name, email, password)}
	}
}

func (m *appModel) startSavePost(editingID string, req api.CreatePostRequest) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		var err error
		if editingID != "" {
			_, err = client.UpdatePost(ctx, editingID, api.UpdatePostRequest{ID: editingID, CreatePostRequest: req})
		} else {
			_, err = client.CreatePost(ctx, req)
		}
		return postMutatedMsg{err: err}
	}
}

func (m *appModel) startDeletePost(id string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		return postMutatedMsg{deleted: true, err: client.DeletePost(ctx, id)}
	}
}

func (m *appModel) startFetchAdminTags() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		tags, err := client.ListTags(ctx)
		return tagsAdminMsg{tags: tags, err: err}
	}
}

func (m *appModel) startCreateTags(names []string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		_, err := client.CreateTags(ctx, names)
		return tagsMutatedMsg{err: err}
	}
}

func (m *appModel) startDeleteTag(id string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		return tagsMutatedMsg{err: client.DeleteTag(ctx, id)}
	}
}

func (m *appModel) startFetchUsersAndRoles() tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		users, err := client.ListUsers(ctx)
		if err != nil {
			return usersAdminMsg{err: err}
		}
		roles, err := client.ListRoles(ctx)
		if err != nil {
			return usersAdminMsg{err: err}
		}
		return usersAdminMsg{users: users, roles: roles}
	}
}

func (m *appModel) startSaveUser(editingID string, req api.CreateUserRequest) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		var err error
		if editingID != "" {
			_, err = client.UpdateUser(ctx, editingID, api.UpdateUserRequest{ID: editingID, CreateUserRequest: req})
		} else {
			_, err = client.CreateUser(ctx, req)
		}
		return userMutatedMsg{err: err}
	}
}

func (m *appModel) startDeleteUser(id string) tea.Cmd {
	client := m.deps.Client
	return func() tea.Msg {
		ctx, cancel := fetchCtx()
		defer cancel()
		return userMutatedMsg{err: client.DeleteUser(ctx, id)}
	}
}

// armSearchDebounce (re)starts the fixed search delay. Each keystroke
// bumps searchSeq, so only the timer armed by the final keystroke in a
// burst still matches when it fires; earlier timers are cancelled by
// the seq check, last write wins.
func (m *appModel) armSearchDebounce() tea.Cmd {
	m.searchSeq++
	seq := m.searchSeq
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
}

const searchDebounce = 500 * time.Millisecond
