// Package codec converts between the timeline model and the plain-text
// lyric timing document. The document carries the lyric text up front so it
// stays hand-editable, then a metadata tail with per-line windows and
// keyframes:
//
//	City of stars
//	[chorus]
//	You never shined so brightly
//	[//]
//	[lbl][0.000/3.420,3.920/11.032]
//	[lsk][(0.000/0.000,1.200/0.700,3.420/1.000),(...)]
//
// Keyframe positions are stored as percentages of the line length, so the
// metadata survives small text edits proportionally.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"kashi/internal/timeline"
)

const (
	sepMarker = "[//]"
	tsMarker  = "[lbl]"
	kfMarker  = "[lsk]"
)

// Decode errors. Structural problems fail the whole document; malformed
// numbers inside an otherwise well-formed document do not (they default to
// zero so a mangled field costs one value, not the session).
var (
	ErrMissingSeparator = errors.New("missing [//] separator")
	ErrMissingMarker    = errors.New("missing section marker")
	ErrMissingBracket   = errors.New("missing bracket after section marker")
	ErrCountMismatch    = errors.New("timestamp count does not match line count")
)

// Sanitize strips control characters and the three reserved characters
// / [ ] that would corrupt the document grammar.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) || r == '/' || r == '[' || r == ']' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Encode serializes a document. Line text is sanitized on the way out;
// keyframe indexes are written as percentages of the line's character
// length with three decimals.
func Encode(d timeline.Data) string {
	textParts := make([]string, 0, len(d.Lines))
	tsParts := make([]string, 0, len(d.Lines))
	kfGroups := make([]string, 0, len(d.Lines))

	prevPart := ""
	for i := range d.Lines {
		line := &d.Lines[i]
		clean := Sanitize(line.Text)
		switch {
		case line.Part != "":
			textParts = append(textParts, "\n["+line.Part+"]\n"+clean)
		case prevPart != "":
			// Part labels are sticky on decode, so an unlabeled line
			// after a labeled one needs an explicit clear.
			textParts = append(textParts, "\n[]\n"+clean)
		default:
			textParts = append(textParts, clean)
		}
		prevPart = line.Part

		tsParts = append(tsParts, fmt.Sprintf("%.3f/%.3f", line.Start, line.End))

		n := line.RuneLen()
		entries := make([]string, 0, len(line.Keyframes))
		for _, kf := range line.Keyframes {
			pct := 0.0
			if n > 0 {
				pct = kf.Index / float64(n)
			}
			entries = append(entries, fmt.Sprintf("%.3f/%.3f", kf.Time, pct))
		}
		kfGroups = append(kfGroups, "("+strings.Join(entries, ",")+")")
	}

	return strings.Join(textParts, "\n") +
		"\n" + sepMarker +
		"\n" + tsMarker + "[" + strings.Join(tsParts, ",") + "]" +
		"\n" + kfMarker + "[" + strings.Join(kfGroups, ",") + "]"
}

// Decode parses a document back into a timeline. The text section is read
// line by line: blank lines are skipped, a line wholly wrapped in brackets
// sets the sticky part label for the lines after it ("[]" clears it), and
// everything else becomes a lyric line. The metadata tail is then matched
// up by position.
func Decode(input string) (timeline.Data, error) {
	sections := strings.Split(input, sepMarker)
	if len(sections) < 2 {
		return timeline.Data{}, ErrMissingSeparator
	}
	textSection := strings.TrimSpace(sections[0])
	dataSection := strings.TrimSpace(sections[1])

	var d timeline.Data
	part := ""
	for _, raw := range strings.Split(textSection, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			part = trimmed[1 : len(trimmed)-1]
			continue
		}
		d.Lines = append(d.Lines, timeline.Line{Text: trimmed, Part: part})
	}

	tsRaw, err := section(dataSection, tsMarker)
	if err != nil {
		return timeline.Data{}, err
	}
	pairs := strings.Split(tsRaw, ",")
	if len(pairs) != len(d.Lines) {
		return timeline.Data{}, fmt.Errorf("%d timestamps for %d lines: %w", len(pairs), len(d.Lines), ErrCountMismatch)
	}
	for i, pair := range pairs {
		parts := strings.Split(pair, "/")
		if len(parts) == 2 {
			d.Lines[i].Start = parseFloat(parts[0])
			d.Lines[i].End = parseFloat(parts[1])
		}
	}

	kfRaw, err := section(dataSection, kfMarker)
	if err != nil {
		return timeline.Data{}, err
	}
	for i, group := range strings.Split(kfRaw, "),(") {
		if i >= len(d.Lines) {
			break
		}
		line := &d.Lines[i]
		n := line.RuneLen()
		for _, entry := range strings.Split(strings.Trim(group, "()"), ",") {
			if kf, ok := keyframeFromPct(entry, n); ok {
				line.Keyframes = append(line.Keyframes, kf)
			}
		}
		line.SortKeyframes()
	}

	return d, nil
}

// section pulls the bracketed payload that follows a marker: the content
// between the first "[" after the marker and the next "]". Nested brackets
// are not part of the grammar and are not handled.
func section(data, marker string) (string, error) {
	mi := strings.Index(data, marker)
	if mi < 0 {
		return "", fmt.Errorf("%s: %w", marker, ErrMissingMarker)
	}
	rest := data[mi+len(marker):]
	open := strings.Index(rest, "[")
	if open < 0 {
		return "", fmt.Errorf("%s: %w", marker, ErrMissingBracket)
	}
	length := strings.Index(rest[open+1:], "]")
	if length < 0 {
		return "", fmt.Errorf("%s: %w", marker, ErrMissingBracket)
	}
	return rest[open+1 : open+1+length], nil
}

// keyframeFromPct parses one "time/pct" entry. Entries without a slash are
// skipped; numeric fields that fail to parse default to zero.
func keyframeFromPct(entry string, runeLen int) (timeline.Keyframe, bool) {
	timeStr, pctStr, found := strings.Cut(entry, "/")
	if !found {
		return timeline.Keyframe{}, false
	}
	return timeline.Keyframe{
		Time:  parseFloat(timeStr),
		Index: parseFloat(pctStr) * float64(runeLen),
	}, true
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
