package keymap

import "testing"

func newTestRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookupDefaults(t *testing.T) {
	r := newTestRegistry()

	tests := []struct {
		context string
		key     string
		want    string
	}{
		{"global", " ", "toggle-play"},
		{"global", "q", "quit"},
		{"global", "ctrl+c", "quit"},
		{"global", "?", "toggle-help"},
		{"list", "pgup", "list-prev"},
		{"list", "pgdown", "list-next"},
		{"focus", "f", "add-keyframe"},
		{"focus", "delete", "remove-keyframe"},
		{"focus", "k", "jump-next-keyframe"},
		{"textedit", "enter", "split-line"},
		{"textedit", "ctrl+z", "undo"},
		{"textedit", "alt+up", "move-line-up"},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.context, tt.key)
		if !ok {
			t.Errorf("Lookup(%q, %q): no binding", tt.context, tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%q, %q) = %q, want %q", tt.context, tt.key, got, tt.want)
		}
	}
}

func TestLookupDoesNotCrossContexts(t *testing.T) {
	r := newTestRegistry()

	// Focus commands must not leak into the list context.
	if cmd, ok := r.Lookup("list", "f"); ok {
		t.Errorf("Lookup(list, f) = %q, want no binding", cmd)
	}
	// q is global only; in text edit it inserts a rune instead.
	if cmd, ok := r.Lookup("textedit", "q"); ok {
		t.Errorf("Lookup(textedit, q) = %q, want no binding", cmd)
	}
}

func TestRegisterBindingReplaces(t *testing.T) {
	r := newTestRegistry()
	before := len(r.BindingsForContext("focus"))

	r.RegisterBinding(Binding{Key: "f", Command: "remove-keyframe", Context: "focus"})

	got, ok := r.Lookup("focus", "f")
	if !ok || got != "remove-keyframe" {
		t.Fatalf("Lookup(focus, f) = %q, %v, want remove-keyframe", got, ok)
	}
	if after := len(r.BindingsForContext("focus")); after != before {
		t.Errorf("focus binding count = %d, want %d (replace, not append)", after, before)
	}
}

func TestRegisterBindingIgnoresEmptyFields(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "", Command: "quit", Context: "global"})
	r.RegisterBinding(Binding{Key: "q", Command: "", Context: "global"})
	r.RegisterBinding(Binding{Key: "q", Command: "quit", Context: ""})

	if n := len(r.BindingsForContext("global")); n != 0 {
		t.Errorf("got %d global bindings, want 0", n)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := newTestRegistry()

	r.SetUserOverride("focus/f", "remove-keyframe")
	if got, _ := r.Lookup("focus", "f"); got != "remove-keyframe" {
		t.Errorf("after override, Lookup(focus, f) = %q, want remove-keyframe", got)
	}

	// Overrides may bind keys with no default.
	r.SetUserOverride("global/P", "toggle-play")
	if got, _ := r.Lookup("global", "P"); got != "toggle-play" {
		t.Errorf("Lookup(global, P) = %q, want toggle-play", got)
	}

	// The key part may itself be a slash.
	r.SetUserOverride("list//", "list-next")
	if got, _ := r.Lookup("list", "/"); got != "list-next" {
		t.Errorf("Lookup(list, /) = %q, want list-next", got)
	}
}

func TestSetUserOverrideIgnoresMalformedSpecs(t *testing.T) {
	r := NewRegistry()
	r.SetUserOverride("noslash", "quit")
	r.SetUserOverride("/q", "quit")
	r.SetUserOverride("global/", "quit")

	if n := len(r.BindingsForContext("global")); n != 0 {
		t.Errorf("got %d global bindings, want 0", n)
	}
}

func TestBindingsForContextOrder(t *testing.T) {
	r := newTestRegistry()

	got := r.BindingsForContext("list")
	if len(got) != 2 {
		t.Fatalf("got %d list bindings, want 2", len(got))
	}
	if got[0].Key != "pgup" || got[1].Key != "pgdown" {
		t.Errorf("list bindings out of order: %q, %q", got[0].Key, got[1].Key)
	}

	// Replacing a binding keeps its position.
	r.RegisterBinding(Binding{Key: "pgup", Command: "list-next", Context: "list"})
	got = r.BindingsForContext("list")
	if got[0].Key != "pgup" || got[0].Command != "list-next" {
		t.Errorf("replaced binding moved: got %+v first", got[0])
	}
}
