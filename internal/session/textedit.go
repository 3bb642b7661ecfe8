package session

import "kashi/internal/timeline"

// Text Edit commands. All of them require the view and a valid focused
// line; the cursor column is maintained in runes and clamped whenever the
// line under it changes.

// CursorLeft moves the text cursor one character left.
func (s *Session) CursorLeft() {
	if s.view != ViewTextEdit || s.focusedLine() == nil {
		return
	}
	if s.cursorCol > 0 {
		s.cursorCol--
	}
}

// CursorRight moves the text cursor one character right, stopping just
// past the last character.
func (s *Session) CursorRight() {
	if s.view != ViewTextEdit {
		return
	}
	line := s.focusedLine()
	if line == nil {
		return
	}
	if s.cursorCol < line.RuneLen() {
		s.cursorCol++
	}
}

// CursorLineUp moves editing to the previous line, keeping the column
// where possible.
func (s *Session) CursorLineUp() {
	if s.view != ViewTextEdit || s.focusedLine() == nil {
		return
	}
	if s.focus == 0 {
		return
	}
	s.focus--
	if n := s.data.Lines[s.focus].RuneLen(); s.cursorCol > n {
		s.cursorCol = n
	}
}

// CursorLineDown moves editing to the next line, keeping the column
// where possible.
func (s *Session) CursorLineDown() {
	if s.view != ViewTextEdit || s.focusedLine() == nil {
		return
	}
	if s.focus+1 >= len(s.data.Lines) {
		return
	}
	s.focus++
	if n := s.data.Lines[s.focus].RuneLen(); s.cursorCol > n {
		s.cursorCol = n
	}
}

// MoveLineUp swaps the edited line with the one above it, taking the
// focus along. Snapshots history first.
func (s *Session) MoveLineUp() {
	if s.view != ViewTextEdit || s.focusedLine() == nil {
		return
	}
	if s.focus == 0 {
		return
	}
	s.pushHistory()
	s.data.Lines[s.focus], s.data.Lines[s.focus-1] = s.data.Lines[s.focus-1], s.data.Lines[s.focus]
	s.focus--
}

// MoveLineDown swaps the edited line with the one below it.
func (s *Session) MoveLineDown() {
	if s.view != ViewTextEdit || s.focusedLine() == nil {
		return
	}
	if s.focus+1 >= len(s.data.Lines) {
		return
	}
	s.pushHistory()
	s.data.Lines[s.focus], s.data.Lines[s.focus+1] = s.data.Lines[s.focus+1], s.data.Lines[s.focus]
	s.focus++
}

// InsertRune types one character at the cursor.
func (s *Session) InsertRune(r rune) {
	if s.view != ViewTextEdit {
		return
	}
	line := s.focusedLine()
	if line == nil {
		return
	}
	runes := []rune(line.Text)
	if s.cursorCol > len(runes) {
		s.cursorCol = len(runes)
	}
	runes = append(runes[:s.cursorCol], append([]rune{r}, runes[s.cursorCol:]...)...)
	line.Text = string(runes)
	s.cursorCol++
}

// Backspace deletes the character before the cursor. At the start of a
// line it merges the line into the previous one instead: text
// concatenates, the merged-away line's keyframes go with it, and the
// cursor lands on the join. The merge snapshots history.
func (s *Session) Backspace() {
	if s.view != ViewTextEdit {
		return
	}
	line := s.focusedLine()
	if line == nil {
		return
	}

	if s.cursorCol > 0 {
		runes := []rune(line.Text)
		if s.cursorCol <= len(runes) {
			runes = append(runes[:s.cursorCol-1], runes[s.cursorCol:]...)
			line.Text = string(runes)
		}
		s.cursorCol--
		return
	}

	if s.focus == 0 {
		return
	}
	s.pushHistory()
	text := line.Text
	s.data.Lines = append(s.data.Lines[:s.focus], s.data.Lines[s.focus+1:]...)
	prev := &s.data.Lines[s.focus-1]
	joinCol := prev.RuneLen()
	prev.Text += text
	s.focus--
	s.cursorCol = joinCol
}

// SplitLine breaks the edited line at the cursor. The left half keeps the
// line's window and keyframes; the right half becomes a fresh line
// starting at the old end with a placeholder duration and no keyframes.
// Snapshots history.
func (s *Session) SplitLine() {
	if s.view != ViewTextEdit {
		return
	}
	line := s.focusedLine()
	if line == nil {
		return
	}
	s.pushHistory()

	runes := []rune(line.Text)
	if s.cursorCol > len(runes) {
		s.cursorCol = len(runes)
	}
	line.Text = string(runes[:s.cursorCol])
	newLine := timeline.Line{
		Text:  string(runes[s.cursorCol:]),
		Start: line.End,
		End:   line.End + s.params.SplitDuration,
	}

	s.data.Lines = append(s.data.Lines, timeline.Line{})
	copy(s.data.Lines[s.focus+2:], s.data.Lines[s.focus+1:])
	s.data.Lines[s.focus+1] = newLine

	s.focus++
	s.cursorCol = 0
}
