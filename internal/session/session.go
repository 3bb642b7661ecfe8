// Package session drives the interactive editing state: the simulated
// playhead, the view and edit mode machine, line focus and scroll
// tracking, and the undo stack. It owns no terminal I/O; the TUI layer
// translates key presses into the command methods here and renders from
// the accessors. Commands whose prerequisites are missing (no focused
// line, no selected keyframe) are no-ops rather than errors.
package session

import (
	"math"
	"strings"
	"time"

	"kashi/internal/codec"
	"kashi/internal/timeline"
)

// View is the major interaction mode.
type View int

const (
	ViewList View = iota
	ViewFocus
	ViewTextEdit
)

func (v View) String() string {
	switch v {
	case ViewFocus:
		return "Focus"
	case ViewTextEdit:
		return "Text Edit"
	default:
		return "List"
	}
}

// Edit selects which keyframe field the adjust commands nudge while a
// keyframe is selected in Focus view.
type Edit int

const (
	EditTime Edit = iota
	EditProgress
)

func (e Edit) String() string {
	if e == EditProgress {
		return "Progress"
	}
	return "Time"
}

// Params are the step sizes and floors for the editing commands. The
// defaults are the tool's long-standing feel; config can retune them.
type Params struct {
	SeekStep        float64 // seconds moved by a seek command
	TimeStep        float64 // seconds moved by a time adjust
	ProgressStep    float64 // characters moved by a progress adjust
	MinLineDuration float64 // floor when re-pinning a line end
	SplitDuration   float64 // length given to the right half of a split
}

func DefaultParams() Params {
	return Params{
		SeekStep:        0.5,
		TimeStep:        0.05,
		ProgressStep:    0.5,
		MinLineDuration: 0.01,
		SplitDuration:   2.0,
	}
}

// jumpEpsilon keeps keyframe jumps from re-selecting the keyframe the
// playhead is already sitting on.
const jumpEpsilon = 0.01

// Session is one open document plus everything the editor tracks about it.
type Session struct {
	data   timeline.Data
	params Params

	now     float64
	playing bool

	view View
	edit Edit

	scroll       int
	manualScroll bool

	focus     int // focus-locked line, -1 when unlocked
	activeKF  int // selected keyframe in the focused line, -1 when none
	cursorCol int // text cursor in runes, TextEdit view only

	history []timeline.Data
	histIdx int
}

// New starts a session on data: List view, playhead at zero, paused,
// empty undo history.
func New(data timeline.Data, params Params) *Session {
	return &Session{
		data:     data,
		params:   params,
		focus:    -1,
		activeKF: -1,
	}
}

// Data exposes the document for rendering. Mutation goes through the
// command methods so history and selection stay coherent.
func (s *Session) Data() *timeline.Data { return &s.data }

func (s *Session) Now() float64       { return s.now }
func (s *Session) Playing() bool      { return s.playing }
func (s *Session) View() View         { return s.view }
func (s *Session) Edit() Edit         { return s.edit }
func (s *Session) Scroll() int        { return s.scroll }
func (s *Session) ManualScroll() bool { return s.manualScroll }
func (s *Session) CursorCol() int     { return s.cursorCol }

// Focus reports the focus-locked line, if any.
func (s *Session) Focus() (int, bool) {
	if s.line(s.focus) == nil {
		return 0, false
	}
	return s.focus, true
}

// ActiveKeyframe reports the selected keyframe in the focused line, if any.
func (s *Session) ActiveKeyframe() (int, bool) {
	li, ok := s.TargetLineIndex()
	if !ok {
		return 0, false
	}
	if s.activeKF < 0 || s.activeKF >= len(s.data.Lines[li].Keyframes) {
		return 0, false
	}
	return s.activeKF, true
}

// ActiveLineIndex resolves the line containing the playhead.
func (s *Session) ActiveLineIndex() (int, bool) {
	return s.data.ActiveLineIndex(s.now)
}

// TargetLineIndex resolves the line editing commands apply to: the
// focus-locked line when set, else the line under the playhead.
func (s *Session) TargetLineIndex() (int, bool) {
	if s.line(s.focus) != nil {
		return s.focus, true
	}
	return s.data.ActiveLineIndex(s.now)
}

// RelativeTime is the playhead position within the target line, clamped
// to the line's window. Zero when no line resolves.
func (s *Session) RelativeTime() float64 {
	li, ok := s.TargetLineIndex()
	if !ok {
		return 0
	}
	line := s.data.Lines[li]
	rel := s.now - line.Start
	return math.Min(math.Max(rel, 0), line.End-line.Start)
}

// Compile serializes the current document.
func (s *Session) Compile() string { return codec.Encode(s.data) }

// Advance moves the simulation one frame. While playing the playhead
// accumulates wall-clock time; in Focus view it loops inside the focused
// line's window, and in List view the focus lock is cleared so playback
// flows across lines. Unless the user scrolled manually, the scroll
// position then follows the playhead: the containing line when there is
// one, else the first line already started, else the top.
func (s *Session) Advance(dt time.Duration) {
	if s.playing {
		s.now += dt.Seconds()
		switch s.view {
		case ViewFocus:
			if line := s.line(s.focus); line != nil {
				if s.now > line.End || s.now < line.Start {
					s.now = line.Start
				}
			} else if li, ok := s.data.ActiveLineIndex(s.now); ok {
				s.focus = li
			}
		case ViewList:
			s.focus = -1
		}
	}

	if s.manualScroll {
		return
	}
	if li, ok := s.data.ActiveLineIndex(s.now); ok {
		s.scroll = li
		if s.view == ViewFocus && s.focus < 0 {
			s.focus = li
		}
	} else {
		s.scroll = s.startedLineIndex()
	}
}

// TogglePlay starts or pauses the playhead.
func (s *Session) TogglePlay() { s.playing = !s.playing }

// SeekForward moves the playhead one seek step ahead.
func (s *Session) SeekForward() { s.seekBy(s.params.SeekStep) }

// SeekBackward moves the playhead one seek step back, stopping at zero.
func (s *Session) SeekBackward() { s.seekBy(-s.params.SeekStep) }

func (s *Session) seekBy(delta float64) {
	s.activeKF = -1
	s.now = math.Max(s.now+delta, 0)
	if s.view == ViewFocus {
		s.focus = -1
		if li, ok := s.data.ActiveLineIndex(s.now); ok {
			s.focus = li
		}
	}
}

// CycleView is the escape key: Focus and Text Edit drop back to List,
// List enters Focus on the line under the playhead.
func (s *Session) CycleView() {
	switch s.view {
	case ViewFocus:
		s.view = ViewList
		s.focus = -1
	case ViewList:
		s.view = ViewFocus
		s.manualScroll = false
		s.focus = -1
		if li, ok := s.data.ActiveLineIndex(s.now); ok {
			s.focus = li
		}
		s.activeKF = -1
	case ViewTextEdit:
		s.view = ViewList
		s.focus = -1
	}
}

// EnterTextEdit switches to Text Edit view on the focused line, falling
// back to the scroll selection, with the cursor at the end of the line.
func (s *Session) EnterTextEdit() {
	if s.view == ViewTextEdit {
		return
	}
	s.view = ViewTextEdit
	if s.focus < 0 {
		s.focus = s.scroll
	}
	if line := s.focusedLine(); line != nil {
		s.cursorCol = line.RuneLen()
	}
}

// NextLine moves the focus lock to the next line and seeks to its start.
// Focus view only; no wraparound.
func (s *Session) NextLine() {
	if s.view != ViewFocus {
		return
	}
	if li, ok := s.Focus(); ok && li+1 < len(s.data.Lines) {
		s.focus = li + 1
		s.now = s.data.Lines[li+1].Start
	}
}

// PrevLine moves the focus lock to the previous line and seeks to its start.
func (s *Session) PrevLine() {
	if s.view != ViewFocus {
		return
	}
	if li, ok := s.Focus(); ok && li > 0 {
		s.focus = li - 1
		s.now = s.data.Lines[li-1].Start
	}
}

// SeekList is the List-view page scroll: it pins manual scrolling, moves
// the selection one line, seeks the playhead to that line's start, and
// drops any focus lock or keyframe selection.
func (s *Session) SeekList(dir int) {
	if s.view != ViewList {
		return
	}
	s.manualScroll = true
	if len(s.data.Lines) == 0 {
		return
	}
	idx := s.scroll + dir
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.data.Lines)-1 {
		idx = len(s.data.Lines) - 1
	}
	s.scroll = idx
	s.now = s.data.Lines[idx].Start
	s.focus = -1
	s.activeKF = -1
}

// PartTarget resolves the line a section-label edit applies to: the
// target line when one resolves, else the scroll selection.
func (s *Session) PartTarget() (int, bool) {
	if li, ok := s.TargetLineIndex(); ok {
		return li, true
	}
	if s.line(s.scroll) != nil {
		return s.scroll, true
	}
	return 0, false
}

// SetPartLabel sets the section label on the part target; empty clears
// it. The label is trimmed and sanitized so it cannot corrupt the
// document grammar. Snapshots history when it actually changes anything.
func (s *Session) SetPartLabel(label string) {
	li, ok := s.PartTarget()
	if !ok {
		return
	}
	clean := codec.Sanitize(strings.TrimSpace(label))
	if s.data.Lines[li].Part == clean {
		return
	}
	s.pushHistory()
	s.data.Lines[li].Part = clean
}

// line bounds-checks an index into the document.
func (s *Session) line(i int) *timeline.Line {
	if i < 0 || i >= len(s.data.Lines) {
		return nil
	}
	return &s.data.Lines[i]
}

func (s *Session) focusedLine() *timeline.Line { return s.line(s.focus) }

// startedLineIndex is the scroll fallback when no line contains the
// playhead: the first line whose start has passed, else the top.
func (s *Session) startedLineIndex() int {
	for i := range s.data.Lines {
		if s.now >= s.data.Lines[i].Start {
			return i
		}
	}
	return 0
}
