package core

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding maps one or more keys to a named action. Scopes limits where the
// binding applies: a tab scope ("tab:feed"), a screen scope
// ("screen:composer"), "*" for everywhere, or empty for the same.
type KeyBinding struct {
	Keys        []string
	Action      string
	Description string
	Scopes      []string
}

// Help converts the binding into the bubbles help form the footer renders.
func (b KeyBinding) Help() key.Binding {
	if len(b.Keys) == 0 {
		return key.Binding{}
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Description))
}

func (b KeyBinding) appliesTo(scope string) bool {
	if len(b.Scopes) == 0 {
		return true
	}
	for _, s := range b.Scopes {
		if s == "*" || s == scope {
			return true
		}
	}
	return false
}

func (b KeyBinding) matches(pressed string) bool {
	for _, k := range b.Keys {
		if normalizeKey(k) == pressed {
			return true
		}
	}
	return false
}

// KeyRegistry holds the app-wide key map. Bindings are checked in
// registration order, so DefaultKeyBindings establishes precedence and later
// Register calls extend it.
type KeyRegistry struct {
	bindings []KeyBinding
}

func NewKeyRegistry(bindings []KeyBinding) *KeyRegistry {
	return &KeyRegistry{bindings: slices.Clone(bindings)}
}

func (r *KeyRegistry) Register(binding KeyBinding) {
	r.bindings = append(r.bindings, binding)
}

// BindingsForScope returns the bindings active in scope, for the footer.
func (r *KeyRegistry) BindingsForScope(scope string) []KeyBinding {
	out := make([]KeyBinding, 0, len(r.bindings))
	for _, b := range r.bindings {
		if b.appliesTo(scope) {
			out = append(out, b)
		}
	}
	return out
}

// IsAction reports whether the pressed key triggers action in scope.
func (r *KeyRegistry) IsAction(msg tea.KeyMsg, action, scope string) bool {
	pressed := normalizeKey(msg.String())
	for _, b := range r.bindings {
		if b.Action == action && b.appliesTo(scope) && b.matches(pressed) {
			return true
		}
	}
	return false
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
