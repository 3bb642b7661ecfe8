package app

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"kashi/internal/keymap"
	"kashi/internal/session"
	"kashi/internal/styles"
	"kashi/internal/timeline"
	"kashi/internal/ui"
)

const (
	headerHeight = 3 // title bar + status line + spacing
	footerHeight = 1
	minWidth     = 40
	minHeight    = 10

	// Rows the Focus view reserves for the animated line above the
	// keyframe panel.
	focusStageHeight = 10

	// scrollMargin keeps the interesting line this many rows below the
	// top of the list when auto-scrolling.
	scrollMargin = 5
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show warning if terminal is too small
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render(msg))
	}

	// Calculate content area
	contentHeight := m.height - headerHeight
	if m.cfg.UI.ShowFooter {
		contentHeight -= footerHeight
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	// Build layout
	var b strings.Builder

	// Header
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	// Main content, padded and clipped to exactly contentHeight rows so
	// the footer stays pinned to the bottom
	content := m.renderContent(contentHeight)
	b.WriteString(lipgloss.NewStyle().
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content))

	// Footer
	if m.cfg.UI.ShowFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	view := b.String()

	// Render the active modal over the dimmed base view
	switch m.activeModal() {
	case ModalHelp:
		return ui.Overlay(view, m.renderHelpModal(), m.width, m.height)
	case ModalQuitConfirm:
		return ui.Overlay(view, m.renderQuitConfirmModal(), m.width, m.height)
	case ModalLabelEdit:
		return ui.Overlay(view, m.renderLabelEditModal(), m.width, m.height)
	}

	return view
}

// renderHeader draws the title bar and the transport status line.
func (m Model) renderHeader() string {
	title := styles.BarTitle.Render(" kashi")

	dot := "  "
	if m.dirty() {
		dot = " " + styles.DirtyDot.Render("●")
	}

	left := title + dot + " " + m.modeChip()

	clock := styles.BarText.Render(fmt.Sprintf("Time %.2fs | Relative %.2fs ",
		m.sess.Now(), m.sess.RelativeTime()))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}

	bar := styles.Header.Width(m.width).MaxWidth(m.width).
		Render(left + strings.Repeat(" ", gap) + clock)
	info := styles.Footer.Width(m.width).MaxWidth(m.width).
		Render(m.headerInfo())
	return bar + "\n" + info
}

// modeChip renders the current view name. In Focus view the color tracks
// the transport: green while playing, yellow while paused.
func (m Model) modeChip() string {
	label := strings.ToUpper(m.sess.View().String())
	if m.sess.View() != session.ViewFocus {
		return styles.ModeChipBrowse.Render(label)
	}
	if m.sess.Playing() {
		return styles.ModeChipPlaying.Render(label)
	}
	return styles.ModeChipPaused.Render(label)
}

// headerInfo is the second header row: contextual transport state.
func (m Model) headerInfo() string {
	switch {
	case m.sess.View() == session.ViewList && m.sess.ManualScroll():
		return " MANUAL SCROLL (esc returns to auto)"
	case m.sess.View() == session.ViewFocus:
		if li, ok := m.sess.TargetLineIndex(); ok {
			return fmt.Sprintf(" Line %d of %d", li+1, len(m.sess.Data().Lines))
		}
		return " No line under the playhead"
	default:
		return " "
	}
}

// renderContent draws the main area for the current view. Text Edit is
// the list view with an in-row cursor.
func (m Model) renderContent(height int) string {
	if m.sess.View() == session.ViewFocus {
		return m.renderFocusView(height)
	}
	return m.renderListView(height)
}

// renderListView draws every line with its stamp and state prefix,
// windowed so the interesting line stays near the top.
func (m Model) renderListView(height int) string {
	data := m.sess.Data()
	if len(data.Lines) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render("No lines yet"))
	}

	activeIdx, activeOK := m.sess.ActiveLineIndex()
	editedIdx := -1
	if m.sess.View() == session.ViewTextEdit {
		if li, ok := m.sess.Focus(); ok {
			editedIdx = li
		}
	}

	rows := make([]string, 0, len(data.Lines))
	for i := range data.Lines {
		rows = append(rows, m.renderListRow(data, i, activeOK && i == activeIdx, i == editedIdx))
	}

	top := m.listScrollTop()
	if top > len(rows)-1 {
		top = len(rows) - 1
	}
	end := top + height
	if end > len(rows) {
		end = len(rows)
	}
	return strings.Join(rows[top:end], "\n")
}

// listScrollTop picks the first visible row: the edited line in Text
// Edit, otherwise the session's scroll selection, held scrollMargin rows
// from the top.
func (m Model) listScrollTop() int {
	target := m.sess.Scroll()
	if m.sess.View() == session.ViewTextEdit {
		if li, ok := m.sess.Focus(); ok {
			target = li
		}
	}
	if target > scrollMargin {
		return target - scrollMargin
	}
	return 0
}

// renderListRow draws one line of the list. The line under the playhead
// sweeps, the edited line carries the cursor, idle lines dim.
func (m Model) renderListRow(data *timeline.Data, i int, playing, editingRow bool) string {
	ln := &data.Lines[i]

	selected := editingRow || (m.sess.ManualScroll() && i == m.sess.Scroll())

	var prefix string
	switch {
	case playing:
		prefix = styles.PrefixPlaying.Render(" >> ")
	case selected:
		prefix = styles.PrefixSelected.Render(" -> ")
	default:
		prefix = "    "
	}

	stamp := styles.TimeStamp.Render(fmt.Sprintf("[%.2f] ", ln.Start))

	// Section labels show on the row where the section starts.
	suffix := ""
	if ln.Part != "" && (i == 0 || data.Lines[i-1].Part != ln.Part) {
		suffix = " " + styles.PartLabel.Render("["+ln.Part+"]")
	}

	avail := m.width - 4 - lipgloss.Width(stamp) - lipgloss.Width(suffix)
	if avail < 1 {
		avail = 1
	}

	var text string
	switch {
	case editingRow:
		text = m.renderEditedLine(ln, avail)
	case playing:
		text = renderSweepLine(ln, m.sess.Now()-ln.Start, avail)
	case selected:
		text = styles.LineSelected.Render(runewidth.Truncate(ln.Text, avail, "…"))
	default:
		text = styles.LineIdle.Render(runewidth.Truncate(ln.Text, avail, "…"))
	}

	return prefix + stamp + text + suffix
}

// renderEditedLine draws the row under edit with a block cursor. A
// cursor sitting past the last character renders as a highlighted blank.
func (m Model) renderEditedLine(ln *timeline.Line, avail int) string {
	runes := []rune(ln.Text)
	col := m.sess.CursorCol()

	var b strings.Builder
	used := 0
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		if used+w > avail {
			break
		}
		if i == col {
			b.WriteString(styles.CursorCell.Render(string(r)))
		} else {
			b.WriteString(styles.EditText.Render(string(r)))
		}
		used += w
	}
	if col >= len(runes) && used < avail {
		b.WriteString(styles.CursorCell.Render(" "))
	}
	return b.String()
}

// renderSweepLine draws text with the karaoke sweep: cells at or behind
// the interpolated position in full white, the cells ahead fading along
// the glow ramp.
func renderSweepLine(ln *timeline.Line, rel float64, avail int) string {
	target := ln.CurrentIndex(rel)

	var b strings.Builder
	used := 0
	for i, r := range []rune(ln.Text) {
		w := runewidth.RuneWidth(r)
		if used+w > avail {
			break
		}
		if d := float64(i) - target; d > 0 {
			b.WriteString(styles.SweepGlow(d).Render(string(r)))
		} else {
			b.WriteString(styles.SweepPlayed.Render(string(r)))
		}
		used += w
	}
	return b.String()
}

// renderFocusView centers the animated line above the keyframe panel.
func (m Model) renderFocusView(height int) string {
	li, ok := m.sess.TargetLineIndex()
	if !ok {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render("Waiting for the next line..."))
	}
	ln := &m.sess.Data().Lines[li]

	stageHeight := focusStageHeight
	panelHeight := height - stageHeight
	if panelHeight < 4 {
		panelHeight = 4
		stageHeight = height - panelHeight
		if stageHeight < 1 {
			stageHeight = 1
		}
	}

	stage := lipgloss.Place(m.width, stageHeight, lipgloss.Center, lipgloss.Center,
		renderSweepLine(ln, m.sess.RelativeTime(), m.width-2))
	panel := m.renderKeyframePanel(ln, li, panelHeight)
	return stage + "\n" + panel
}

// renderKeyframePanel draws the keyframe chips, the edit mode banner,
// and a hint line under a full-width rule.
func (m Model) renderKeyframePanel(ln *timeline.Line, li, height int) string {
	rel := m.sess.RelativeTime()
	selectedKF, hasSelected := m.sess.ActiveKeyframe()

	chipRow := styles.Muted.Render("No keyframes on this line")
	if len(ln.Keyframes) > 0 {
		chips := make([]string, 0, len(ln.Keyframes))
		for ki, kf := range ln.Keyframes {
			pct := 0.0
			if n := ln.RuneLen(); n > 0 {
				pct = kf.Index / float64(n) * 100
			}
			chip := fmt.Sprintf(" [KF%d: %.2fs|%.0f%%] ", ki, kf.Time, pct)

			st := styles.KeyframeFar
			if math.Abs(kf.Time-rel) < 0.1 {
				st = styles.KeyframeNear
			}
			if hasSelected && ki == selectedKF {
				st = st.Underline(true)
			}
			chips = append(chips, st.Render(chip))
		}
		chipRow = strings.Join(chips, "")
	}
	chipRow = lipgloss.NewStyle().MaxWidth(m.width).Render(chipRow)

	banner := styles.EditorBanner.Render(fmt.Sprintf(" LINE %d | EDIT: %s ",
		li+1, strings.ToUpper(m.sess.Edit().String())))

	hint := styles.Muted.Render("t time/progress  f add  g delete  j/k jump  up/down adjust")

	rows := []string{
		styles.Subtle.Render(strings.Repeat("─", m.width)),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, chipRow),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, banner),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, hint),
	}
	for i, row := range rows {
		rows[i] = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return lipgloss.NewStyle().
		Height(height).
		MaxHeight(height).
		Render(strings.Join(rows, "\n"))
}

// renderFooter draws key hints for the current context, the transient
// status toast, and the line counter.
func (m Model) renderFooter() string {
	items := m.footerHintItems()

	status := ""
	if m.statusMsg != "" {
		st := styles.ToastSuccess
		if m.statusIsErr {
			st = styles.ToastError
		}
		status = st.Render(m.statusMsg)
	}

	counter := styles.BarText.Render(fmt.Sprintf("%d lines ", len(m.sess.Data().Lines)))

	// Drop trailing hints rather than wrapping the bar.
	var left string
	gap := 0
	for {
		left = " " + strings.Join(items, "  ")
		gap = m.width - lipgloss.Width(left) - lipgloss.Width(status) - lipgloss.Width(counter)
		if gap >= 2 || len(items) == 0 {
			break
		}
		items = items[:len(items)-1]
	}
	if gap < 2 {
		gap = 2
	}

	half := gap / 2
	bar := left + strings.Repeat(" ", half) + status + strings.Repeat(" ", gap-half) + counter
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(bar)
}

// footerHintItems picks the core hints for the active context. The full
// binding table lives in the help overlay.
func (m Model) footerHintItems() []string {
	var commands []string
	switch m.sess.View() {
	case session.ViewFocus:
		commands = []string{"toggle-play", "toggle-edit-mode", "add-keyframe",
			"jump-next-keyframe", "cycle-view", "toggle-help"}
	case session.ViewTextEdit:
		commands = []string{"split-line", "undo", "move-line-up", "cycle-view"}
	default:
		commands = []string{"toggle-play", "edit-text", "copy-doc", "edit-label",
			"toggle-help", "quit"}
	}

	context := m.keyContext()
	items := make([]string, 0, len(commands))
	for _, c := range commands {
		if h := m.hintFor(context, c); h != "" {
			items = append(items, h)
		}
	}
	return items
}

// hintFor builds a "key label" hint for a command, preferring the
// context binding over the shared one. Empty when the command is
// unbound, so rebound commands drop out instead of lying.
func (m Model) hintFor(context, command string) string {
	bindings := m.keymap.BindingsForContext(context)
	bindings = append(bindings, m.keymap.BindingsForContext("global")...)
	for _, b := range bindings {
		if b.Command == command {
			return styles.KeyHint.Render(displayKey(b.Key)) + " " +
				styles.BarText.Render(commandLabel(command))
		}
	}
	return ""
}

// displayKey renders a binding key for humans.
func displayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// commandLabel turns a command ID into display text.
func commandLabel(command string) string {
	return strings.ReplaceAll(command, "-", " ")
}

// renderHelpModal shows every binding grouped by context.
func (m Model) renderHelpModal() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n")

	sections := []struct {
		title   string
		context string
	}{
		{"Everywhere", "global"},
		{"List view", "list"},
		{"Focus view", "focus"},
		{"Text edit", "textedit"},
	}
	for _, s := range sections {
		bindings := m.keymap.BindingsForContext(s.context)
		if len(bindings) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(styles.PanelHeader.Render(s.title))
		b.WriteString("\n")
		b.WriteString(renderBindingSection(bindings))
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Press ? or esc to close"))
	return styles.ModalBox.Render(b.String())
}

// renderBindingSection renders one row per command with its keys
// aggregated, preserving first-binding order.
func renderBindingSection(bindings []keymap.Binding) string {
	keysByCommand := make(map[string][]string)
	var order []string
	for _, bd := range bindings {
		if _, ok := keysByCommand[bd.Command]; !ok {
			order = append(order, bd.Command)
		}
		keysByCommand[bd.Command] = append(keysByCommand[bd.Command], displayKey(bd.Key))
	}

	var b strings.Builder
	for _, command := range order {
		keyStr := strings.Join(keysByCommand[command], ", ")
		fmt.Fprintf(&b, "  %-11s %s\n", keyStr, commandLabel(command))
	}
	return b.String()
}

// renderQuitConfirmModal asks before exiting.
func (m Model) renderQuitConfirmModal() string {
	return ui.ConfirmDialog{
		Title:   "Quit?",
		Message: "The document is written to stdout on exit.",
		Accept:  "y or enter to quit",
		Decline: "n or esc to stay",
	}.View()
}
