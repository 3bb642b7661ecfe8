package session

// pushHistory snapshots the document before a structure-changing command.
// Undone states past the cursor are dropped first, so history stays a
// straight line: undo, then edit, and the undone branch is gone.
func (s *Session) pushHistory() {
	if s.histIdx < len(s.history) {
		s.history = s.history[:s.histIdx]
	}
	s.history = append(s.history, s.data.Clone())
	s.histIdx = len(s.history)
}

// Undo restores the most recent snapshot. It never snapshots itself, so
// repeated undos walk further back.
func (s *Session) Undo() {
	if s.histIdx == 0 {
		return
	}
	s.histIdx--
	s.data = s.history[s.histIdx].Clone()
}

// CanUndo reports whether an undo would change anything.
func (s *Session) CanUndo() bool { return s.histIdx > 0 }
