package codec

import (
	"errors"
	"math"
	"strings"
	"testing"

	"kashi/internal/timeline"
)

func TestEncodeDemoDocument(t *testing.T) {
	want := strings.Join([]string{
		"City of stars",
		"You never shined so brightly",
		"[//]",
		"[lbl][0.000/3.420,3.920/11.032]",
		"[lsk][(0.000/0.000,1.200/0.700,3.420/1.000),(0.000/0.000,0.400/0.200,5.400/0.900,7.000/1.000)]",
	}, "\n")

	got := Encode(timeline.Demo())
	if got != want {
		t.Errorf("Encode(demo) =\n%s\nwant\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	orig := timeline.Demo()
	doc := Encode(orig)

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode(Encode(demo)) error: %v", err)
	}
	if len(d.Lines) != len(orig.Lines) {
		t.Fatalf("round trip produced %d lines, want %d", len(d.Lines), len(orig.Lines))
	}
	for i := range orig.Lines {
		want, got := orig.Lines[i], d.Lines[i]
		if got.Text != want.Text {
			t.Errorf("line %d text = %q, want %q", i, got.Text, want.Text)
		}
		if got.Part != want.Part {
			t.Errorf("line %d part = %q, want %q", i, got.Part, want.Part)
		}
		if math.Abs(got.Start-want.Start) > 0.001 || math.Abs(got.End-want.End) > 0.001 {
			t.Errorf("line %d window = [%v, %v], want [%v, %v]", i, got.Start, got.End, want.Start, want.End)
		}
		if len(got.Keyframes) != len(want.Keyframes) {
			t.Fatalf("line %d has %d keyframes, want %d", i, len(got.Keyframes), len(want.Keyframes))
		}
		for j := range want.Keyframes {
			if math.Abs(got.Keyframes[j].Time-want.Keyframes[j].Time) > 0.001 {
				t.Errorf("line %d keyframe %d time = %v, want %v", i, j, got.Keyframes[j].Time, want.Keyframes[j].Time)
			}
			// Index goes through a 3-decimal percentage, so the
			// tolerance scales with line length.
			tol := 0.0006 * float64(want.RuneLen())
			if math.Abs(got.Keyframes[j].Index-want.Keyframes[j].Index) > tol {
				t.Errorf("line %d keyframe %d index = %v, want %v", i, j, got.Keyframes[j].Index, want.Keyframes[j].Index)
			}
		}
	}
}

func TestRoundTripPartLabels(t *testing.T) {
	var d timeline.Data
	d.AddLine("no label yet", 0, 1)
	chorus := d.AddLine("labeled line", 1, 2)
	chorus.Part = "chorus"
	d.AddLine("label cleared again", 2, 3)

	got, err := Decode(Encode(d))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	wantParts := []string{"", "chorus", ""}
	for i, want := range wantParts {
		if got.Lines[i].Part != want {
			t.Errorf("line %d part = %q, want %q", i, got.Lines[i].Part, want)
		}
	}
}

func TestDecodeStickyPart(t *testing.T) {
	doc := `[verse 1]
first line
second line
[//]
[lbl][0.000/1.000,1.000/2.000]
[lsk][(),()]`

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	for i := range d.Lines {
		if d.Lines[i].Part != "verse 1" {
			t.Errorf("line %d part = %q, want %q (labels are sticky)", i, d.Lines[i].Part, "verse 1")
		}
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"reserved characters", "a/b[c]d", "abcd"},
		{"control characters", "tab\there\nand bell\x07", "tabhereand bell"},
		{"clean text untouched", "City of stars", "City of stars"},
		{"multibyte survives", "星の街 (city)", "星の街 (city)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"no separator", "just some text", ErrMissingSeparator},
		{"no timestamp marker", "text\n[//]\nnothing here", ErrMissingMarker},
		{"no bracket after marker", "text\n[//]\n[lbl] 0.0/1.0", ErrMissingBracket},
		{"timestamp count mismatch", "one\ntwo\n[//]\n[lbl][0.000/1.000]\n[lsk][()]", ErrCountMismatch},
		{"no keyframe marker", "one\n[//]\n[lbl][0.000/1.000]", ErrMissingMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeLenientNumbers(t *testing.T) {
	doc := "hello world\n[//]\n[lbl][bogus/2.500]\n[lsk][(x/0.500,1.000/y,skipped,2.000/1.000)]"

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	line := d.Lines[0]
	if line.Start != 0 || math.Abs(line.End-2.5) > 1e-9 {
		t.Errorf("window = [%v, %v], want [0, 2.5] (bad number defaults to 0)", line.Start, line.End)
	}
	// "skipped" has no slash and is dropped; the other three survive with
	// bad fields zeroed.
	if len(line.Keyframes) != 3 {
		t.Fatalf("got %d keyframes, want 3: %v", len(line.Keyframes), line.Keyframes)
	}
	n := float64(line.RuneLen())
	if got := line.Keyframes[0].Time; got != 0 {
		t.Errorf("keyframe 0 time = %v, want 0", got)
	}
	if got := line.Keyframes[0].Index; math.Abs(got-0.5*n) > 1e-9 {
		t.Errorf("keyframe 0 index = %v, want %v", got, 0.5*n)
	}
	if got := line.Keyframes[1].Index; got != 0 {
		t.Errorf("keyframe 1 index = %v, want 0", got)
	}
}

func TestDecodeMalformedTimestampPairLeavesZeroWindow(t *testing.T) {
	doc := "hello\n[//]\n[lbl][no-slash-here]\n[lsk][()]"

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if d.Lines[0].Start != 0 || d.Lines[0].End != 0 {
		t.Errorf("window = [%v, %v], want [0, 0]", d.Lines[0].Start, d.Lines[0].End)
	}
}

func TestDecodeSortsKeyframes(t *testing.T) {
	doc := "hello\n[//]\n[lbl][0.000/3.000]\n[lsk][(2.000/1.000,0.500/0.100,1.000/0.500)]"

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	kfs := d.Lines[0].Keyframes
	for i := 0; i+1 < len(kfs); i++ {
		if kfs[i].Time > kfs[i+1].Time {
			t.Fatalf("keyframes not sorted: %v", kfs)
		}
	}
}

func TestDecodeIgnoresExtraKeyframeGroups(t *testing.T) {
	doc := "only line\n[//]\n[lbl][0.000/1.000]\n[lsk][(0.000/0.000),(9.000/1.000)]"

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(d.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(d.Lines))
	}
	if len(d.Lines[0].Keyframes) != 1 {
		t.Errorf("got %d keyframes, want 1 (extra group ignored)", len(d.Lines[0].Keyframes))
	}
}

func TestDecodeTrimsLineWhitespace(t *testing.T) {
	doc := "   padded line\t\n[//]\n[lbl][0.000/1.000]\n[lsk][()]"

	d, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got := d.Lines[0].Text; got != "padded line" {
		t.Errorf("text = %q, want %q", got, "padded line")
	}
}
