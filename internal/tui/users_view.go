package tui

import (
	"fmt"
	"strings"

	"blogtty/internal/api"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

const (
	userFieldName = iota
	userFieldEmail
	userFieldPassword
	userFieldRoles
)

// userModalState is the create/edit user form. editingID is empty for
// create. Role selection is a checklist driven by the roles catalog
// fetched alongside the user list.
type userModalState struct {
	editingID string
	name      textinput.Model
	email     textinput.Model
	pass      textinput.Model
	focus     int
	roleIdx   int
	roles     map[string]bool
	err       string
	busy      bool
}

func newUserModalState(u *api.User) userModalState {
	s := userModalState{roles: map[string]bool{}}

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

	if u != nil {
		s.editingID = u.ID
		s.name.SetValue(u.Name)
		s.email.SetValue(u.Email)
		s.pass.Placeholder = "Password (leave empty to keep)"
		for _, r := range u.Roles {
			s.roles[r.ID] = true
		}
	}

	s.applyFocus()
	return s
}

func (s *userModalState) applyFocus() {
	s.name.Blur()
	s.email.Blur()
	s.pass.Blur()
	switch s.focus {
	case userFieldName:
		s.name.Focus()
	case userFieldEmail:
		s.email.Focus()
	case userFieldPassword:
		s.pass.Focus()
	}
}

func (s *userModalState) cycleFocus(delta int) {
	s.focus = (s.focus + delta + 4) % 4
	s.applyFocus()
}

func (s *userModalState) selectedRoleIDs() []string {
	ids := make([]string, 0, len(s.roles))
	for id, on := range s.roles {
		if on {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *userModalState) validate() string {
	if strings.TrimSpace(s.name.Value()) == "" {
		return "Name is required"
	}
	email := strings.TrimSpace(s.email.Value())
	if email == "" {
		return "Email is required"
	}
	if !strings.Contains(email, "@") {
		return "Email looks invalid"
	}
	if s.editingID == "" && s.pass.Value() == "" {
		return "Password is required"
	}
	if len(s.selectedRoleIDs()) == 0 {
		return "Pick at least one role"
	}
	return ""
}

func (s *userModalState) request() api.CreateUserRequest {
	return api.CreateUserRequest{
		Name:     strings.TrimSpace(s.name.Value()),
		Email:    strings.TrimSpace(s.email.Value()),
		Password: s.pass.Value(),
		RoleIDs:  s.selectedRoleIDs(),
	}
}

func (m *appModel) selectedUser() *api.User {
	if m.usersIdx < 0 || m.usersIdx >= len(m.users) {
		return nil
	}
	return &m.users[m.usersIdx]
}

// isSelf reports whether the given user is the signed-in account. Edit
// and delete are disabled for your own row; locking yourself out of the
// admin view is not a recoverable mistake in this client.
func (m *appModel) isSelf(u *api.User) bool {
	if u == nil {
		return false
	}
	me := m.deps.Session.User()
	return me != nil && me.ID == u.ID
}

func roleNames(roles []api.Role) string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func (m *appModel) renderUsersView(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Users"))
	b.WriteString("\n\n")

	switch {
	case m.usersLoading:
		b.WriteString(styleMuted().Render(m.spinner.View() + " loading users..."))
	case m.usersErr != "":
		b.WriteString(styleError().Render(m.usersErr))
	case len(m.users) == 0:
		b.WriteString(styleMuted().Render("No users."))
	default:
		sel := lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true)

		for i, u := range m.users {
			marker := " "
			if m.isSelf(&u) {
				marker = "*"
			}
			line := fmt.Sprintf(" %s %-24s %-30s %s", marker, u.Name, u.Email, styleMeta().Render(roleNames(u.Roles)))
			if i == m.usersIdx {
				line = sel.Render(fitLine(line, width-2))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("* you; your own account cannot be edited or deleted here"))
	}

	help := styleMuted().Render("a: add user   e: edit   d: delete   esc: back")
	body := lipgloss.NewStyle().Width(width).Height(height - 1).Render(b.String())
	return body + "\n" + help
}

func (m *appModel) renderUserModal() string {
	s := &m.userForm

	title := "Add user"
	if s.editingID != "" {
		title = "Edit user"
	}

	lines := []string{
		s.name.View(),
		s.email.View(),
		s.pass.View(),
		"",
		styleMuted().Render("Roles"),
	}

	for i, r := range m.roles {
		box := "[ ]"
		if s.roles[r.ID] {
			box = "[x]"
		}
		row := fmt.Sprintf("%s %s", box, r.Name)
		if s.focus == userFieldRoles && i == s.roleIdx {
			row = lipgloss.NewStyle().
				Foreground(colorSelectedFg).
				Background(colorSelectedBg).
				Render(row)
		}
		lines = append(lines, row)
	}

	if s.err != "" {
		lines = append(lines, "", styleError().Render(s.err))
	}
	if s.busy {
		lines = append(lines, "", styleMuted().Render(m.spinner.View()+" saving..."))
	}

	bodyW := modalBodyWidth(m.width)
	help := styleMuted().Width(bodyW).Render("tab: next field   space: toggle role   ctrl+s: save   esc: cancel")
	lines = append(lines, "", help)

	return renderModalBox(m.width, title, strings.Join(lines, "\n"))
}
