package ui

import (
	"strings"

	"kashi/internal/styles"
)

// ConfirmDialog is a reusable yes/no prompt rendered as a modal box for
// compositing with Overlay. The caller owns the key handling; Accept and
// Decline only describe the keys in the hint row.
type ConfirmDialog struct {
	Title   string
	Message string
	Accept  string // e.g. "y or enter to quit"
	Decline string // e.g. "n or esc to stay"
}

// View renders the dialog.
func (d ConfirmDialog) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(d.Message)

	hint := d.Accept
	if d.Decline != "" {
		hint += ", " + d.Decline
	}
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Subtle.Render("Press " + hint))
	}
	return styles.ModalBox.Render(b.String())
}
