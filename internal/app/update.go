package app

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/cespare/xxhash/v2"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case FrameMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			m.sess.Advance(now.Sub(m.lastFrame))
		}
		m.lastFrame = now
		if m.statusMsg != "" && now.After(m.statusExpiry) {
			m.statusMsg = ""
		}
		return m, frameCmd(m.cfg.Playback.FrameInterval)

	case ToastMsg:
		m.statusMsg = msg.Message
		m.statusIsErr = msg.IsError
		m.statusExpiry = time.Now().Add(msg.Duration)
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes a key press: the open modal first, then the view's
// binding context, then the shared context. In Text Edit, unbound rune
// keys insert text instead of falling through to the shared bindings.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalHelp:
		switch msg.String() {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil

	case ModalQuitConfirm:
		switch msg.String() {
		case "y", "enter":
			return m, tea.Quit
		case "n", "esc":
			m.showQuitConfirm = false
		}
		return m, nil

	case ModalLabelEdit:
		return m.handleLabelEditKey(msg)
	}

	key := msg.String()
	context := m.keyContext()

	if command, ok := m.keymap.Lookup(context, key); ok {
		return m.runCommand(command)
	}

	if context == "textedit" {
		if msg.Alt {
			return m, nil
		}
		switch msg.Type {
		case tea.KeySpace:
			m.sess.InsertRune(' ')
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.sess.InsertRune(r)
			}
		}
		return m, nil
	}

	if command, ok := m.keymap.Lookup("global", key); ok {
		return m.runCommand(command)
	}

	return m, nil
}

// runCommand executes a named command resolved from the key registry.
func (m Model) runCommand(command string) (tea.Model, tea.Cmd) {
	switch command {
	// Transport
	case "toggle-play":
		m.sess.TogglePlay()
	case "seek-forward":
		m.sess.SeekForward()
	case "seek-back":
		m.sess.SeekBackward()
	case "cycle-view":
		m.sess.CycleView()

	// Document actions
	case "edit-text":
		m.sess.EnterTextEdit()
	case "copy-doc":
		return m.copyDocument()
	case "edit-label":
		return m.openLabelEditor()
	case "toggle-help":
		m.showHelp = true
	case "quit":
		m.showQuitConfirm = true

	// List navigation
	case "list-prev":
		m.sess.SeekList(-1)
	case "list-next":
		m.sess.SeekList(1)

	// Focus navigation and keyframe editing
	case "next-line":
		m.sess.NextLine()
	case "prev-line":
		m.sess.PrevLine()
	case "toggle-edit-mode":
		m.sess.ToggleEditMode()
	case "add-keyframe":
		m.sess.AddKeyframe()
	case "remove-keyframe":
		m.sess.RemoveKeyframe()
	case "adjust-up":
		m.sess.AdjustUp()
	case "adjust-down":
		m.sess.AdjustDown()
	case "jump-next-keyframe":
		m.sess.JumpNextKeyframe()
	case "jump-prev-keyframe":
		m.sess.JumpPrevKeyframe()

	// Text editing
	case "cursor-left":
		m.sess.CursorLeft()
	case "cursor-right":
		m.sess.CursorRight()
	case "cursor-up":
		m.sess.CursorLineUp()
	case "cursor-down":
		m.sess.CursorLineDown()
	case "move-line-up":
		m.sess.MoveLineUp()
	case "move-line-down":
		m.sess.MoveLineDown()
	case "backspace":
		m.sess.Backspace()
	case "split-line":
		m.sess.SplitLine()
	case "undo":
		if !m.sess.CanUndo() {
			return m, showToast("Nothing to undo", 2*time.Second)
		}
		m.sess.Undo()
	}

	return m, nil
}

// copyDocument serializes the document to the system clipboard.
func (m Model) copyDocument() (tea.Model, tea.Cmd) {
	doc := m.sess.Compile()
	if err := clipboard.WriteAll(doc); err != nil {
		return m, showErrorToast("Copy failed: "+err.Error(), 3*time.Second)
	}
	m.exportedHash = xxhash.Sum64String(doc)
	return m, showToast("Copied document to clipboard", 2*time.Second)
}
