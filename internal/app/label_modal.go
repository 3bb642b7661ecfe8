package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kashi/internal/styles"
)

// openLabelEditor opens the section label prompt for the target line,
// prefilled with the line's current label.
func (m Model) openLabelEditor() (tea.Model, tea.Cmd) {
	li, ok := m.sess.PartTarget()
	if !ok {
		return m, showErrorToast("No line to label", 2*time.Second)
	}

	ti := textinput.New()
	ti.Placeholder = "chorus, verse 2, bridge"
	ti.SetValue(m.sess.Data().Lines[li].Part)
	ti.CharLimit = 50
	ti.Width = 40
	ti.Focus()

	m.labelInput = ti
	m.labelEditActive = true
	return m, textinput.Blink
}

// handleLabelEditKey routes keys while the label prompt is open.
func (m Model) handleLabelEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.labelEditActive = false
		return m, nil

	case "ctrl+c":
		m.showQuitConfirm = true
		return m, nil

	case "enter":
		label := strings.TrimSpace(m.labelInput.Value())
		m.sess.SetPartLabel(label)
		m.labelEditActive = false
		if label == "" {
			return m, showToast("Section label cleared", 2*time.Second)
		}
		return m, showToast("Section label set: "+label, 2*time.Second)
	}

	var cmd tea.Cmd
	m.labelInput, cmd = m.labelInput.Update(msg)
	return m, cmd
}

// renderLabelEditModal renders the section label prompt.
func (m Model) renderLabelEditModal() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Section label"))
	b.WriteString("\n")
	b.WriteString(m.labelInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle.Render("Press enter to apply, esc to cancel"))
	return styles.ModalBox.Render(b.String())
}
