package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// padRight pads s to width display cells.
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

func repeat(c rune, n int) string {
	return strings.Repeat(string(c), n)
}
