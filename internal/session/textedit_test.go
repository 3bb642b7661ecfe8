package session

import (
	"testing"

	"kashi/internal/timeline"
)

func editSession() *Session {
	s := New(timeline.Demo(), DefaultParams())
	s.EnterTextEdit() // line 0, cursor at the end
	return s
}

func TestInsertRune(t *testing.T) {
	s := editSession()

	s.InsertRune('!')
	if got := s.Data().Lines[0].Text; got != "City of stars!" {
		t.Errorf("text = %q, want %q", got, "City of stars!")
	}
	if s.CursorCol() != 14 {
		t.Errorf("cursor = %d, want 14", s.CursorCol())
	}

	// Insert mid-line, in rune units.
	s.cursorCol = 4
	s.InsertRune('城')
	if got := s.Data().Lines[0].Text; got != "City城 of stars!" {
		t.Errorf("text = %q, want %q", got, "City城 of stars!")
	}
	if s.CursorCol() != 5 {
		t.Errorf("cursor = %d, want 5", s.CursorCol())
	}
}

func TestInsertRuneOutsideTextEditIsNoop(t *testing.T) {
	s := New(timeline.Demo(), DefaultParams())
	s.InsertRune('x')
	if got := s.Data().Lines[0].Text; got != "City of stars" {
		t.Errorf("List view insert changed text to %q", got)
	}
}

func TestBackspaceInLine(t *testing.T) {
	s := editSession()

	s.Backspace()
	if got := s.Data().Lines[0].Text; got != "City of star" {
		t.Errorf("text = %q, want %q", got, "City of star")
	}
	if s.CursorCol() != 12 {
		t.Errorf("cursor = %d, want 12", s.CursorCol())
	}
}

func TestBackspaceAtLineStartMerges(t *testing.T) {
	s := editSession()
	s.CursorLineDown() // edit line 1
	s.cursorCol = 0

	s.Backspace()

	lines := s.Data().Lines
	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1", len(lines))
	}
	want := "City of stars" + "You never shined so brightly"
	if lines[0].Text != want {
		t.Errorf("merged text = %q, want %q", lines[0].Text, want)
	}
	if li, _ := s.Focus(); li != 0 {
		t.Errorf("focus = %d, want 0", li)
	}
	if s.CursorCol() != 13 {
		t.Errorf("cursor = %d, want 13 (the join point)", s.CursorCol())
	}
	// The surviving line keeps its own window and keyframes; the merged
	// line's keyframes are gone with it.
	if !approx(lines[0].End, 3.42) {
		t.Errorf("merged line end = %v, want 3.42", lines[0].End)
	}
	if got := len(lines[0].Keyframes); got != 3 {
		t.Errorf("merged line keyframes = %d, want 3", got)
	}
	if !s.CanUndo() {
		t.Error("merge did not snapshot history")
	}
}

func TestBackspaceAtFirstLineStartIsNoop(t *testing.T) {
	s := editSession()
	s.cursorCol = 0

	s.Backspace()
	if got := len(s.Data().Lines); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
	if s.CanUndo() {
		t.Error("no-op backspace snapshotted history")
	}
}

func TestSplitLine(t *testing.T) {
	s := editSession()
	s.cursorCol = 4 // "City" | " of stars"

	s.SplitLine()

	lines := s.Data().Lines
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	if lines[0].Text != "City" || lines[1].Text != " of stars" {
		t.Errorf("split halves = %q, %q", lines[0].Text, lines[1].Text)
	}
	// Left half keeps its window; right half starts at the old end with
	// the placeholder duration and no keyframes.
	if !approx(lines[0].End, 3.42) {
		t.Errorf("left end = %v, want 3.42", lines[0].End)
	}
	if !approx(lines[1].Start, 3.42) || !approx(lines[1].End, 5.42) {
		t.Errorf("right window = [%v, %v], want [3.42, 5.42]", lines[1].Start, lines[1].End)
	}
	if len(lines[1].Keyframes) != 0 {
		t.Errorf("right half has %d keyframes, want 0", len(lines[1].Keyframes))
	}
	if lines[1].Part != "" {
		t.Errorf("right half part = %q, want empty", lines[1].Part)
	}
	if li, _ := s.Focus(); li != 1 {
		t.Errorf("focus = %d, want 1 (the new line)", li)
	}
	if s.CursorCol() != 0 {
		t.Errorf("cursor = %d, want 0", s.CursorCol())
	}
}

func TestSplitThenMergeRestoresText(t *testing.T) {
	s := editSession()
	orig := s.Data().Lines[0].Text
	s.cursorCol = 7

	s.SplitLine()
	s.Backspace() // cursor is at 0 on the new line: merge back

	if got := s.Data().Lines[0].Text; got != orig {
		t.Errorf("text after split+merge = %q, want %q", got, orig)
	}
	if got := len(s.Data().Lines); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}

func TestCursorMovement(t *testing.T) {
	s := editSession() // cursor at 13

	s.CursorRight()
	if s.CursorCol() != 13 {
		t.Errorf("cursor past end = %d, want 13", s.CursorCol())
	}
	s.CursorLeft()
	s.CursorLeft()
	if s.CursorCol() != 11 {
		t.Errorf("cursor = %d, want 11", s.CursorCol())
	}

	s.cursorCol = 0
	s.CursorLeft()
	if s.CursorCol() != 0 {
		t.Errorf("cursor before start = %d, want 0", s.CursorCol())
	}
}

func TestCursorLineUpDownClampsColumn(t *testing.T) {
	s := editSession()
	s.CursorLineDown() // line 1, 28 runes
	s.cursorCol = 20

	s.CursorLineUp() // line 0 has 13 runes
	if li, _ := s.Focus(); li != 0 {
		t.Fatalf("focus = %d, want 0", li)
	}
	if s.CursorCol() != 13 {
		t.Errorf("cursor = %d, want 13 (clamped to shorter line)", s.CursorCol())
	}

	s.CursorLineUp() // already at the top
	if li, _ := s.Focus(); li != 0 {
		t.Errorf("CursorLineUp wrapped to %d", li)
	}

	s.CursorLineDown()
	s.CursorLineDown() // already at the bottom
	if li, _ := s.Focus(); li != 1 {
		t.Errorf("focus = %d, want 1", li)
	}
}

func TestMoveLineSwaps(t *testing.T) {
	s := editSession()
	first := s.Data().Lines[0].Text
	second := s.Data().Lines[1].Text

	s.MoveLineDown()
	if got := s.Data().Lines[0].Text; got != second {
		t.Errorf("line 0 = %q, want %q", got, second)
	}
	if li, _ := s.Focus(); li != 1 {
		t.Errorf("focus = %d, want 1 (follows the moved line)", li)
	}
	if !s.CanUndo() {
		t.Error("swap did not snapshot history")
	}

	s.MoveLineDown() // at the bottom: no-op
	if got := s.Data().Lines[1].Text; got != first {
		t.Errorf("line 1 = %q, want %q", got, first)
	}

	s.MoveLineUp()
	if got := s.Data().Lines[0].Text; got != first {
		t.Errorf("line 0 = %q, want %q (swap undone by moving back)", got, first)
	}
	if li, _ := s.Focus(); li != 0 {
		t.Errorf("focus = %d, want 0", li)
	}
}

func TestUndoRestoresSnapshot(t *testing.T) {
	s := editSession()
	before := s.Data().Clone()

	s.cursorCol = 4
	s.SplitLine()
	if dataEqual(before, *s.Data()) {
		t.Fatal("split did not change the document")
	}

	s.Undo()
	if !dataEqual(before, *s.Data()) {
		t.Error("undo did not restore the pre-split document")
	}
}

func TestUndoWalksBack(t *testing.T) {
	s := editSession()
	step0 := s.Data().Clone()

	s.MoveLineDown()
	step1 := s.Data().Clone()

	s.cursorCol = 0
	s.CursorLineUp()
	s.cursorCol = 3
	s.SplitLine()

	s.Undo()
	if !dataEqual(step1, *s.Data()) {
		t.Error("first undo did not restore the post-swap document")
	}
	s.Undo()
	if !dataEqual(step0, *s.Data()) {
		t.Error("second undo did not restore the original document")
	}
	s.Undo() // empty history: no-op
	if !dataEqual(step0, *s.Data()) {
		t.Error("undo on empty history changed the document")
	}
}

func TestUndoThenEditTruncatesForwardHistory(t *testing.T) {
	s := editSession()

	s.cursorCol = 4
	s.SplitLine() // snapshot A
	s.Undo()

	s.MoveLineUp() // snapshot on the restored state, dropping A's branch
	if len(s.history) != 1 {
		t.Fatalf("history length = %d, want 1 (forward branch dropped)", len(s.history))
	}

	s.Undo()
	if got := len(s.Data().Lines); got != 2 {
		t.Errorf("line count after final undo = %d, want 2", got)
	}
	if s.CanUndo() {
		t.Error("history not empty after walking all the way back")
	}
}

func TestTypingDoesNotSnapshot(t *testing.T) {
	s := editSession()
	s.InsertRune('x')
	s.Backspace()
	if s.CanUndo() {
		t.Error("plain typing snapshotted history")
	}
}
