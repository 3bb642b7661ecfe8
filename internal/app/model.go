package app

import (
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"kashi/internal/config"
	"kashi/internal/keymap"
	"kashi/internal/session"
)

// ModalKind identifies an app-level modal with explicit priority ordering.
// Lower values = higher priority (checked first for rendering and input routing).
type ModalKind int

const (
	ModalNone        ModalKind = iota // No modal open
	ModalHelp                         // Help overlay (highest priority)
	ModalQuitConfirm                  // Quit confirmation dialog
	ModalLabelEdit                    // Part label editor (lowest priority)
)

// activeModal returns the highest-priority open modal.
// This is the single source of truth for which modal is currently active.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showHelp:
		return ModalHelp
	case m.showQuitConfirm:
		return ModalQuitConfirm
	case m.labelEditActive:
		return ModalLabelEdit
	default:
		return ModalNone
	}
}

// Model is the root Bubble Tea model for the kashi editor.
type Model struct {
	// Configuration
	cfg *config.Config

	// Keymap
	keymap *keymap.Registry

	// Editing session holding the document, playhead, and undo history
	sess *session.Session

	// UI state
	width  int
	height int
	ready  bool

	// Modals
	showHelp        bool
	showQuitConfirm bool
	labelEditActive bool
	labelInput      textinput.Model

	// Playback clock; zero until the first frame arrives
	lastFrame time.Time

	// Transient footer status
	statusMsg    string
	statusIsErr  bool
	statusExpiry time.Time

	// Hash of the last document handed to the clipboard (seeded with the
	// starting document). Anything else means uncopied edits.
	exportedHash uint64
}

// New creates the application model around an editing session.
func New(cfg *config.Config, km *keymap.Registry, sess *session.Session) Model {
	return Model{
		cfg:          cfg,
		keymap:       km,
		sess:         sess,
		exportedHash: xxhash.Sum64String(sess.Compile()),
	}
}

// Init starts the playback clock.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.cfg.Playback.FrameInterval)
}

// keyContext names the binding context for the current view.
func (m Model) keyContext() string {
	switch m.sess.View() {
	case session.ViewFocus:
		return "focus"
	case session.ViewTextEdit:
		return "textedit"
	default:
		return "list"
	}
}

// dirty reports whether the document differs from the last copy handed to
// the clipboard.
func (m Model) dirty() bool {
	return xxhash.Sum64String(m.sess.Compile()) != m.exportedHash
}

// Document returns the serialized document. main prints it on exit.
func (m Model) Document() string {
	return m.sess.Compile()
}
