package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeletePost
	confirmDeleteTag
	confirmDeleteUser
	confirmLogout
)

// confirmState carries one pending destructive action; targetID is the
// entity the action applies to (empty for logout).
type confirmState struct {
	title        string
	body         string
	confirmLabel string
	action       confirmAction
	targetID     string
	focus        confirmModalFocus
}

func renderConfirmModal(width int, c confirmState) string {
	// No borders: some terminals show background artifacts when nesting
	// bordered components inside a modal with a background color.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	label := c.confirmLabel
	if label == "" {
		label = "Confirm"
	}

	confirm := btnBase.Render(label)
	cancel := btnBase.Render("Cancel")
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render(label)
	}
	if c.focus == confirmFocusCancel {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		c.body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, c.title, content)
}
