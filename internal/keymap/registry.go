package keymap

import "strings"

// Binding maps a key press to a command ID within an input context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry resolves key presses to command IDs per context. Registering
// a binding for an existing context/key pair replaces the old one.
type Registry struct {
	bindings []Binding
	index    map[string]int
}

// NewRegistry returns an empty keymap registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

func bindingID(context, key string) string {
	return context + "/" + key
}

// RegisterBinding adds a binding, replacing any existing binding for the
// same context and key. Bindings with empty fields are ignored.
func (r *Registry) RegisterBinding(b Binding) {
	if b.Key == "" || b.Command == "" || b.Context == "" {
		return
	}
	id := bindingID(b.Context, b.Key)
	if i, ok := r.index[id]; ok {
		r.bindings[i] = b
		return
	}
	r.index[id] = len(r.bindings)
	r.bindings = append(r.bindings, b)
}

// SetUserOverride rebinds a "context/key" spec to a command ID. The key
// part may itself contain a slash, so "textedit//" addresses the / key.
// Malformed specs are ignored.
func (r *Registry) SetUserOverride(spec, commandID string) {
	context, key, ok := strings.Cut(spec, "/")
	if !ok {
		return
	}
	r.RegisterBinding(Binding{Key: key, Command: commandID, Context: context})
}

// Lookup returns the command ID bound to key in the given context.
func (r *Registry) Lookup(context, key string) (string, bool) {
	if i, ok := r.index[bindingID(context, key)]; ok {
		return r.bindings[i].Command, true
	}
	return "", false
}

// BindingsForContext returns the bindings for a context in registration
// order. The footer and help overlay render hints from this.
func (r *Registry) BindingsForContext(context string) []Binding {
	var out []Binding
	for _, b := range r.bindings {
		if b.Context == context {
			out = append(out, b)
		}
	}
	return out
}
