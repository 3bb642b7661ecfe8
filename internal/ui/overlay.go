// Package ui provides shared rendering helpers for the TUI.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// dimStyle recolors background content behind a modal. Existing ANSI
// codes are stripped first; SGR faint alone does not combine reliably
// with colored text in common terminals.
var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

// Overlay composites a modal over a dimmed background, centered in a
// width x height cell area.
func Overlay(background, modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")
	modalWidth := 0
	for _, line := range modalLines {
		if w := ansi.StringWidth(line); w > modalWidth {
			modalWidth = w
		}
	}

	startX := (width - modalWidth) / 2
	if startX < 0 {
		startX = 0
	}
	startY := (height - len(modalLines)) / 2
	if startY < 0 {
		startY = 0
	}

	bgLines := strings.Split(background, "\n")
	rows := make([]string, 0, height)
	for y := 0; y < height; y++ {
		var bg string
		if y < len(bgLines) {
			bg = ansi.Strip(bgLines[y])
		}
		mi := y - startY
		if mi < 0 || mi >= len(modalLines) {
			rows = append(rows, dimStyle.Render(bg))
			continue
		}
		rows = append(rows, overlayRow(bg, modalLines[mi], startX, modalWidth, width))
	}
	return strings.Join(rows, "\n")
}

// overlayRow splices one modal line into a stripped background line at
// column startX, dimming the background visible on either side.
func overlayRow(bg, modal string, startX, modalWidth, totalWidth int) string {
	var b strings.Builder

	if startX > 0 {
		left := ansi.Truncate(bg, startX, "")
		b.WriteString(dimStyle.Render(left))
		if pad := startX - ansi.StringWidth(left); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}

	b.WriteString(modal)

	rightX := startX + modalWidth
	if bgWidth := ansi.StringWidth(bg); rightX < totalWidth && bgWidth > rightX {
		b.WriteString(dimStyle.Render(ansi.Cut(bg, rightX, bgWidth)))
	}

	return b.String()
}
