package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func TestDimBackgroundStripsInnerStyles(t *testing.T) {
	oldProfile := lipgloss.ColorProfile()
	oldBG := lipgloss.HasDarkBackground()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(oldProfile)
		lipgloss.SetHasDarkBackground(oldBG)
	})
	lipgloss.SetHasDarkBackground(true)

	// Give the inner content a strong color. If dimBackground does not
	// strip ANSI codes first, the inner style can override the scrim.
	in := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("HELLO")
	out := dimBackground(in)

	if !strings.Contains(out, "38;5;241") {
		t.Fatalf("expected dimmed foreground (38;5;241) in output; got %q", out)
	}
	if strings.Contains(out, "38;5;196") {
		t.Fatalf("expected inner foreground (38;5;196) to be stripped; got %q", out)
	}
}

func TestOverlayCenteredKeepsBackdrop(t *testing.T) {
	bgLine := strings.Repeat("b", 20)
	bg := strings.Join([]string{bgLine, bgLine, bgLine, bgLine, bgLine}, "\n")

	out := overlayCentered(20, 5, bg, "XXXX")
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}

	mid := lines[2]
	if !strings.Contains(mid, "XXXX") {
		t.Fatalf("expected overlay content in the middle row, got %q", mid)
	}
	if !strings.HasPrefix(mid, "bbbb") || !strings.HasSuffix(mid, "bbbb") {
		t.Fatalf("expected backdrop visible around the overlay, got %q", mid)
	}
	if lines[0] != bgLine || lines[4] != bgLine {
		t.Fatal("expected untouched rows to keep the backdrop")
	}
}
