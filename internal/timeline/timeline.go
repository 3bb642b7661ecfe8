// Package timeline holds the lyric timing model: lines of text with
// time-indexed keyframes that map playback time to a highlight position
// within the line.
package timeline

import (
	"math"
	"sort"
)

// Keyframe pins a highlight position at a moment in a line's local time.
// Time is in seconds relative to the line start. Index is a fractional
// character position in [0, line length]; fractional values land mid-glyph
// so renderers can sweep smoothly.
type Keyframe struct {
	Time  float64
	Index float64
}

// Line is one lyric line with its window on the global timeline.
// Part is an optional section label ("chorus", "verse 2"); empty means
// unlabeled. Keyframes are kept sorted ascending by Time. The last
// keyframe is the boundary keyframe: its time tracks End-Start.
type Line struct {
	Text      string
	Part      string
	Start     float64
	End       float64
	Keyframes []Keyframe
}

// Data is a whole document: lines ordered by start time.
type Data struct {
	Lines []Line
}

// RuneLen is the line length used everywhere a position or percentage is
// computed. Characters, not bytes, so multi-byte text indexes the way it
// renders.
func (l *Line) RuneLen() int {
	n := 0
	for range l.Text {
		n++
	}
	return n
}

// AddKeyframe appends a keyframe and restores time order.
func (l *Line) AddKeyframe(t, index float64) {
	l.Keyframes = append(l.Keyframes, Keyframe{Time: t, Index: index})
	l.SortKeyframes()
}

// AddKeyframePct appends a keyframe at a fractional position of the line,
// so authoring code can say "70% through" without counting characters.
func (l *Line) AddKeyframePct(t, pct float64) {
	l.AddKeyframe(t, float64(l.RuneLen())*pct)
}

// SortKeyframes re-sorts by time. Stable, so keyframes sharing a time keep
// their insertion order.
func (l *Line) SortKeyframes() {
	sort.SliceStable(l.Keyframes, func(i, j int) bool {
		return l.Keyframes[i].Time < l.Keyframes[j].Time
	})
}

// CurrentIndex interpolates the highlight position at rel, seconds from the
// line start. The first keyframe pair bracketing rel wins and the position
// is linear between the pair's indexes. Outside every pair the LAST
// keyframe's index is returned, including times before the first keyframe;
// editors lean on that fallback when scrubbing outside the authored range,
// so it stays.
func (l *Line) CurrentIndex(rel float64) float64 {
	if len(l.Keyframes) == 0 {
		return 0
	}
	for i := 0; i+1 < len(l.Keyframes); i++ {
		k1, k2 := l.Keyframes[i], l.Keyframes[i+1]
		if rel < k1.Time || rel > k2.Time {
			continue
		}
		span := k2.Time - k1.Time
		if span <= 0 {
			// Coincident keyframes mark a jump cut; hold the earlier
			// index rather than dividing by zero.
			return k1.Index
		}
		t := (rel - k1.Time) / span
		return k1.Index + (k2.Index-k1.Index)*t
	}
	return l.Keyframes[len(l.Keyframes)-1].Index
}

// ClosestKeyframe returns the index of the keyframe nearest to rel,
// first one winning ties. ok is false when the line has no keyframes.
func (l *Line) ClosestKeyframe(rel float64) (int, bool) {
	if len(l.Keyframes) == 0 {
		return 0, false
	}
	best := 0
	bestDist := math.Abs(l.Keyframes[0].Time - rel)
	for i := 1; i < len(l.Keyframes); i++ {
		d := math.Abs(l.Keyframes[i].Time - rel)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, true
}

// Duration is the line's length on the global timeline.
func (l *Line) Duration() float64 {
	return l.End - l.Start
}

// AddLine appends a line and returns a pointer to it so callers can attach
// keyframes. The pointer is only valid until the next append.
func (d *Data) AddLine(text string, start, end float64) *Line {
	d.Lines = append(d.Lines, Line{Text: text, Start: start, End: end})
	return &d.Lines[len(d.Lines)-1]
}

// ActiveLineIndex resolves the line whose window contains t: the first line
// with Start <= t <= End. ok is false in the gaps between lines and past
// either edge of the document.
func (d *Data) ActiveLineIndex(t float64) (int, bool) {
	for i := range d.Lines {
		if t >= d.Lines[i].Start && t <= d.Lines[i].End {
			return i, true
		}
	}
	return 0, false
}

// Clone deep-copies the document. Undo snapshots depend on the copy sharing
// nothing with the original.
func (d *Data) Clone() Data {
	out := Data{Lines: make([]Line, len(d.Lines))}
	for i, l := range d.Lines {
		cp := l
		cp.Keyframes = append([]Keyframe(nil), l.Keyframes...)
		out.Lines[i] = cp
	}
	return out
}

// Demo builds the built-in two-line document used to seed a fresh session.
func Demo() Data {
	var d Data

	l1 := d.AddLine("City of stars", 0, 3.42)
	l1.AddKeyframePct(0.0, 0.0)
	l1.AddKeyframePct(1.2, 0.7)
	l1.AddKeyframePct(3.42, 1.0)

	start := 3.42 + 0.5
	l2 := d.AddLine("You never shined so brightly", start, start+7.112)
	l2.AddKeyframePct(0.0, 0.0)
	l2.AddKeyframePct(0.4, 0.20)
	l2.AddKeyframePct(5.4, 0.90)
	l2.AddKeyframePct(7.0, 1.0)

	return d
}
