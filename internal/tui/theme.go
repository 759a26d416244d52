package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal
// backgrounds, so colors are lipgloss.AdaptiveColor pairs and "faint"
// styling is only applied on dark backgrounds (faint text on light
// terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they stay visible
	// on light terminals.
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	// Inline error text (failed fetches, form validation).
	colorError lipgloss.TerminalColor = ac("160", "203")

	// Draft badge and other secondary metadata in lists.
	colorMetaFg lipgloss.TerminalColor = ac("238", "250")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. Only NO_COLOR is honored; CLICOLOR handling is for
// non-interactive output and can accidentally strip a TUI.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection for terminals
// that don't report it reliably.
//
// Priority:
// 1) BLOGTTY_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic (format like "15;0" = fg;bg)
func applyThemePreference() {
	if v := strings.TrimSpace(os.Getenv("BLOGTTY_TUI_THEME")); v != "" {
		switch strings.ToLower(v) {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		bgStr := strings.TrimSpace(parts[len(parts)-1])
		if bg, err := strconv.Atoi(bgStr); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
			return
		}
	}
}
