package tui

import (
	"blogtty/internal/api"
	"blogtty/internal/query"
	"blogtty/internal/refresh"
	"blogtty/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Deps is everything the TUI needs from the outside: the one API client
// and the one session manager, both constructed at startup and passed
// in. Tests substitute a client pointed at a fake server.
type Deps struct {
	Client  *api.Client
	Session *session.Manager
	Signal  *refresh.Signal
}

type view int

const (
	viewHome view = iota
	viewPost
	viewDrafts
	viewTags
	viewUsers
)

type focusArea int

const (
	focusMain focusArea = iota
	focusSidebar
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAuth
	modalAddTags
	modalUser
	modalPost
	modalConfirm
)

type appModel struct {
	deps Deps

	width  int
	height int

	view  view
	focus focusArea
	modal modalKind

	// Listing query state. qs is the single source of truth; its Encode()
	// form is the shareable query string shown in the header.
	qs query.State

	// Search box. searchSeq invalidates older debounce timers, fetchSeq
	// invalidates older in-flight list fetches.
	searchInput textinput.Model
	searchSeq   int
	fetchSeq    int

	spinner      spinner.Model
	loadingPosts bool
	postsErr     string
	notice       string

	posts     api.Page[api.Post]
	postsList list.Model

	drafts     api.Page[api.Post]
	draftsPage int

	// Sidebar data; seenRefresh tracks the refresh signal count the
	// sidebar was last fetched under.
	sidebarSeq        int
	categories        []api.Category
	tags              []api.Tag
	sidebarIdx        int
	visibleCategories int
	visibleTags       int
	seenRefresh       uint64

	openPost     *api.Post
	detailScroll int
	// detailReturn is the view esc goes back to from the post detail.
	detailReturn view

	adminTags   []api.Tag
	tagsIdx     int
	tagsErr     string
	tagsLoading bool

	users        []api.User
	roles        []api.Role
	usersIdx     int
	usersErr     string
	usersLoading bool

	auth     authModalState
	tagForm  tagModalState
	userForm userModalState
	postForm postModalState
	confirm  confirmState

	// Armed in newAppModel so the seq counters the commands captured
	// live on the model Init is called on.
	initCmds []tea.Cmd
}

// sidebarShowStep is how many categories/tags are revealed per
// "show more" press.
const sidebarShowStep = 4

func newAppModel(deps Deps, initialQuery string) appModel {
	if deps.Signal == nil {
		deps.Signal = &refresh.Signal{}
	}

	m := appModel{
		deps: deps,
		view: viewHome,
		qs:   query.Parse(initialQuery),

		draftsPage:        1,
		visibleCategories: sidebarShowStep,
		visibleTags:       sidebarShowStep,
	}

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search posts"
	m.searchInput.Prompt = "/ "
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 32
	// Mirror the query state into the box, skipping the redundant write
	// when they already agree.
	if m.searchInput.Value() != m.qs.Search {
		m.searchInput.SetValue(m.qs.Search)
	}

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.postsList = newPostList()

	m.initCmds = []tea.Cmd{
		m.startRestoreSession(),
		m.startFetchPosts(),
		m.startFetchSidebar(),
		m.spinner.Tick,
	}

	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

// Run starts the interactive TUI, optionally on a shared query string
// (the same format `posts list --query` accepts).
func Run(deps Deps, initialQuery string) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(deps, initialQuery)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *appModel) resize() {
	h := m.height - 7 // header, notice line, footer
	if h < 8 {
		h = 8
	}
	w := m.width - sidebarWidth - 2
	if w < 40 {
		w = 40
	}
	m.postsList.SetSize(w, h)
}

// maybeRefreshSidebar refetches the sidebar collections when the
// refresh signal moved since the last sidebar fetch. Mutation screens
// bump the signal; they never reach into the sidebar directly.
func (m *appModel) maybeRefreshSidebar() tea.Cmd {
	if m.deps.Signal.Count() == m.seenRefresh {
		return nil
	}
	m.visibleCategories = sidebarShowStep
	m.visibleTags = sidebarShowStep
	return m.startFetchSidebar()
}

// handleSessionExpired is the UI side of the 401 policy: storage is
// already wiped by the client hook, so drop back to the anonymous home
// view. Not an inline error; the status line says what happened.
func (m *appModel) handleSessionExpired() tea.Cmd {
	m.notice = "Session expired. Please sign in again."
	m.view = viewHome
	m.modal = modalNone
	m.drafts = api.Page[api.Post]{}
	m.users = nil
	m.adminTags = nil
	return m.startFetchPosts()
}
