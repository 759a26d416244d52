package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 72 {
		w = 72
	}
	if w < 32 {
		w = 32
	}
	return w
}

// renderModalBox draws a titled surface for modal content. No borders:
// some terminals show background artifacts when nesting bordered
// components inside a modal with a background color.
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Padding(0, 1).
		Background(colorControlBg).
		Foreground(colorSurfaceFg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Background(colorSurfaceBg).
		Foreground(colorSurfaceFg).
		Render(content)

	return strings.Join([]string{header, body}, "\n")
}

// dimBackground repaints the screen as a flat grey scrim so the modal
// above reads as the only active surface. Inner ANSI styles are
// stripped first; left in place they would override the scrim color.
func dimBackground(s string) string {
	scrim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		lines[i] = scrim.Render(xansi.Strip(ln))
	}
	return strings.Join(lines, "\n")
}

// overlayCentered splices fg over the middle of bg, keeping the
// surrounding bg cells visible.
func overlayCentered(width, height int, bg, fg string) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	fgLines := strings.Split(fg, "\n")
	fgW := lipgloss.Width(fg)
	top := (height - len(fgLines)) / 2
	if top < 0 {
		top = 0
	}
	left := (width - fgW) / 2
	if left < 0 {
		left = 0
	}

	for i, fl := range fgLines {
		row := top + i
		if row >= len(bgLines) {
			break
		}
		line := bgLines[row]
		if pad := width - xansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lineW := xansi.StringWidth(fl)
		bgLines[row] = xansi.Cut(line, 0, left) + fl + xansi.Cut(line, left+lineW, width)
	}
	return strings.Join(bgLines, "\n")
}
