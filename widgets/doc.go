// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (box chrome, row lists, popup overlay compositor)
//
// Not allowed here:
// - key handling, app state transitions, scope logic, or tab policy
package widgets

// Widget renders itself into a width x height cell.
type Widget interface {
	Render(width, height int) string
}
