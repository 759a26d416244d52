package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

type authMode int

const (
	authModeLogin authMode = iota
	authModeSignup
)

// authModalState is the sign-in / sign-up form. The same state object
// serves both modes; login just skips the name field. Field contents
// survive a failed submit so the user can correct one field instead of
// retyping everything.
type authModalState struct {
	mode  authMode
	name  textinput.Model
	email textinput.Model
	pass  textinput.Model
	focus int
	err   string
	busy  bool
}

func newAuthModalState(mode authMode) authModalState {
	s := authModalState{mode: mode}

	s.name = textinput.New()
	s.name.Placeholder = "Name"
	s.name.CharLimit = 80
	s.name.Width = 40

	s.email = textinput.New()
	s.email.Placeholder = "Email"
	s.email.CharLimit = 120
	s.email.Width = 40

	s.pass = textinput.New()
	s.pass.Placeholder = "Password"
	s.pass.CharLimit = 120
	s.pass.Width = 40
	s.pass.EchoMode = textinput.EchoPassword
	s.pass.EchoCharacter = '*'

	s.applyFocus()
	return s
}

// fields returns the visible inputs in tab order.
func (s *authModalState) fields() []*textinput.Model {
	if s.mode == authModeSignup {
		return []*textinput.Model{&s.name, &s.email, &s.pass}
	}
	return []*textinput.Model{&s.email, &s.pass}
}

func (s *authModalState) applyFocus() {
	fs := s.fields()
	if s.focus < 0 {
		s.focus = 0
	}
	if s.focus >= len(fs) {
		s.focus = len(fs) - 1
	}
	for i, f := range fs {
		if i == s.focus {
			f.Focus()
		} else {
			f.Blur()
		}
	}
}

func (s *authModalState) cycleFocus(delta int) {
	fs := s.fields()
	s.focus = (s.focus + delta + len(fs)) % len(fs)
	s.applyFocus()
}

// toggleMode flips login <-> signup, keeping whatever was already typed.
func (s *authModalState) toggleMode() {
	if s.mode == authModeLogin {
		s.mode = authModeSignup
	} else {
		s.mode = authModeLogin
	}
	s.err = ""
	s.focus = 0
	s.applyFocus()
}

// validate returns the first client-side problem, or "".
func (s *authModalState) validate() string {
	if s.mode == authModeSignup && strings.TrimSpace(s.name.Value()) == "" {
		return "Name is required"
	}
	email := strings.TrimSpace(s.email.Value())
	if email == "" {
		return "Email is required"
	}
	if !strings.Contains(email, "@") {
		return "Email looks invalid"
	}
	if s.pass.Value() == "" {
		return "Password is required"
	}
	return ""
}

func (m *appModel) renderAuthModal() string {
	s := &m.auth

	title := "Sign in"
	toggleHint := "ctrl+t: create an account instead"
	if s.mode == authModeSignup {
		title = "Create account"
		toggleHint = "ctrl+t: sign in instead"
	}

	lines := make([]string, 0, 10)
	for _, f := range s.fields() {
		lines = append(lines, f.View())
	}

	if s.err != "" {
		lines = append(lines, "", styleError().Render(s.err))
	}
	if s.busy {
		lines = append(lines, "", styleMuted().Render(m.spinner.View()+" signing in..."))
	}

	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("tab: next field   enter: submit   " + toggleHint + "   esc: close")
	lines = append(lines, "", help)

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
