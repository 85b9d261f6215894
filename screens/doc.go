// Package screens holds the modal surfaces pushed over the tab layer: auth
// forms, the post detail view, the composer, the command palette, and
// confirmation dialogs. Each screen registers its interactive bindings under
// its own scope; the router tears the scope down when the screen pops.
package screens
