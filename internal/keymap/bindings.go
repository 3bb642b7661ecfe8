package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings (list and focus views)
		{Key: " ", Command: "toggle-play", Context: "global"},
		{Key: "left", Command: "seek-back", Context: "global"},
		{Key: "right", Command: "seek-forward", Context: "global"},
		{Key: "esc", Command: "cycle-view", Context: "global"},
		{Key: "e", Command: "edit-text", Context: "global"},
		{Key: "s", Command: "copy-doc", Context: "global"},
		{Key: "b", Command: "edit-label", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "q", Command: "quit", Context: "global"},
		{Key: "ctrl+c", Command: "quit", Context: "global"},

		// List context
		{Key: "pgup", Command: "list-prev", Context: "list"},
		{Key: "pgdown", Command: "list-next", Context: "list"},

		// Focus context (playhead navigation and keyframe editing)
		{Key: "n", Command: "next-line", Context: "focus"},
		{Key: "p", Command: "prev-line", Context: "focus"},
		{Key: "t", Command: "toggle-edit-mode", Context: "focus"},
		{Key: "f", Command: "add-keyframe", Context: "focus"},
		{Key: "g", Command: "remove-keyframe", Context: "focus"},
		{Key: "delete", Command: "remove-keyframe", Context: "focus"},
		{Key: "up", Command: "adjust-up", Context: "focus"},
		{Key: "down", Command: "adjust-down", Context: "focus"},
		{Key: "k", Command: "jump-next-keyframe", Context: "focus"},
		{Key: "j", Command: "jump-prev-keyframe", Context: "focus"},

		// Text edit context. Unbound rune keys insert text, so the
		// global q/e/s/b bindings do not apply here.
		{Key: "left", Command: "cursor-left", Context: "textedit"},
		{Key: "right", Command: "cursor-right", Context: "textedit"},
		{Key: "up", Command: "cursor-up", Context: "textedit"},
		{Key: "down", Command: "cursor-down", Context: "textedit"},
		{Key: "alt+up", Command: "move-line-up", Context: "textedit"},
		{Key: "alt+down", Command: "move-line-down", Context: "textedit"},
		{Key: "backspace", Command: "backspace", Context: "textedit"},
		{Key: "enter", Command: "split-line", Context: "textedit"},
		{Key: "ctrl+z", Command: "undo", Context: "textedit"},
		{Key: "esc", Command: "cycle-view", Context: "textedit"},
		{Key: "ctrl+c", Command: "quit", Context: "textedit"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
