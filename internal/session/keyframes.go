package session

import "math"

// The keyframe editor commands live on the Focus view and operate on the
// target line (focus lock, else the line under the playhead). They all
// no-op when no line resolves.

// ToggleEditMode flips the adjust commands between Time and Progress.
func (s *Session) ToggleEditMode() {
	if s.view != ViewFocus {
		return
	}
	if _, ok := s.TargetLineIndex(); !ok {
		return
	}
	if s.edit == EditTime {
		s.edit = EditProgress
	} else {
		s.edit = EditTime
	}
}

// AddKeyframe pins a keyframe at the current relative time, holding
// whatever position the line already interpolates there, so adding a
// keyframe never visibly moves the sweep.
func (s *Session) AddKeyframe() {
	if s.view != ViewFocus {
		return
	}
	li, ok := s.TargetLineIndex()
	if !ok {
		return
	}
	line := &s.data.Lines[li]
	rel := s.now - line.Start
	line.AddKeyframe(rel, line.CurrentIndex(rel))
}

// RemoveKeyframe deletes the keyframe nearest the playhead. A line keeps
// its last keyframe; removal is refused rather than leaving the line
// without timing.
func (s *Session) RemoveKeyframe() {
	if s.view != ViewFocus {
		return
	}
	li, ok := s.TargetLineIndex()
	if !ok {
		return
	}
	line := &s.data.Lines[li]
	if len(line.Keyframes) <= 1 {
		return
	}
	rel := s.now - line.Start
	if ki, ok := line.ClosestKeyframe(rel); ok {
		line.Keyframes = append(line.Keyframes[:ki], line.Keyframes[ki+1:]...)
	}
}

// AdjustUp nudges the selected keyframe's current edit field up.
func (s *Session) AdjustUp() { s.adjustKeyframe(1) }

// AdjustDown nudges the selected keyframe's current edit field down.
func (s *Session) AdjustDown() { s.adjustKeyframe(-1) }

func (s *Session) adjustKeyframe(mult float64) {
	if s.view != ViewFocus {
		return
	}
	li, ok := s.TargetLineIndex()
	if !ok {
		return
	}
	line := &s.data.Lines[li]
	ki := s.activeKF
	if ki < 0 || ki >= len(line.Keyframes) {
		return
	}

	switch s.edit {
	case EditProgress:
		idx := line.Keyframes[ki].Index + s.params.ProgressStep*mult
		line.Keyframes[ki].Index = math.Min(math.Max(idx, 0), float64(line.RuneLen()))
	case EditTime:
		t := math.Max(line.Keyframes[ki].Time+s.params.TimeStep*mult, 0)
		line.Keyframes[ki].Time = t
		// Moving the boundary keyframe stretches the line itself: the
		// end follows the keyframe, floored at a minimum duration, and
		// the keyframe snaps back onto the (possibly floored) end.
		if ki == len(line.Keyframes)-1 {
			line.End = math.Max(line.Start+t, line.Start+s.params.MinLineDuration)
			line.Keyframes[ki].Time = line.End - line.Start
		}
	}
}

// JumpNextKeyframe selects and seeks to the next keyframe past the
// playhead. With none left in the line it hops to the next line's start
// and selects its first keyframe; playback pauses on that hop so the
// editor doesn't immediately drift off the line it landed on.
func (s *Session) JumpNextKeyframe() {
	if s.view != ViewFocus {
		return
	}
	li, ok := s.TargetLineIndex()
	if !ok {
		return
	}
	line := &s.data.Lines[li]
	rel := s.now - line.Start

	for i := range line.Keyframes {
		if line.Keyframes[i].Time > rel+jumpEpsilon {
			s.activeKF = i
			s.now = line.Start + line.Keyframes[i].Time
			return
		}
	}

	if li+1 < len(s.data.Lines) {
		next := &s.data.Lines[li+1]
		s.focus = li + 1
		s.now = next.Start
		s.activeKF = 0
	}
	s.playing = false
}

// JumpPrevKeyframe is the backward counterpart: previous keyframe in the
// line, else the previous line's start with its last keyframe selected.
func (s *Session) JumpPrevKeyframe() {
	if s.view != ViewFocus {
		return
	}
	li, ok := s.TargetLineIndex()
	if !ok {
		return
	}
	line := &s.data.Lines[li]
	rel := s.now - line.Start

	for i := len(line.Keyframes) - 1; i >= 0; i-- {
		if line.Keyframes[i].Time < rel-jumpEpsilon {
			s.activeKF = i
			s.now = line.Start + line.Keyframes[i].Time
			return
		}
	}

	if li > 0 {
		prev := &s.data.Lines[li-1]
		s.focus = li - 1
		s.now = prev.Start
		s.activeKF = len(prev.Keyframes) - 1
	}
	s.playing = false
}
