package screens

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/reorder"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/store"
)

func newComposerModel() *core.Model {
	m := core.NewModel(nil, core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil), binding.NewRegistry(nil), nil, nil, nil)
	return &m
}

func newComposerWithImages(t *testing.T, images ...string) *ComposerScreen {
	t.Helper()
	s, _ := NewComposerScreen(newComposerModel(), nil)
	s.images = append(s.images, images...)
	s.ctrl.Attach()
	s.focus = composerImages
	return s
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestComposerKeyboardReorder(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png", "c.png")

	s.Update(key("g"))
	if !s.ctrl.Dragging() {
		t.Fatalf("grab should start a session")
	}
	s.Update(key("down"))
	s.Update(key("down"))
	s.Update(key("enter"))

	want := []string{"b.png", "c.png", "a.png"}
	for i, img := range want {
		if s.images[i] != img {
			t.Fatalf("images = %v, want %v", s.images, want)
		}
	}
	if s.ctrl.Dragging() {
		t.Fatalf("session should end on drop")
	}
	if !s.dirty {
		t.Fatalf("reorder should mark the draft dirty")
	}
}

func TestComposerKeyboardCancelKeepsOrder(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png")
	s.Update(key("g"))
	s.Update(key("down"))
	s.Update(key("esc"))
	if s.images[0] != "a.png" || s.images[1] != "b.png" {
		t.Fatalf("cancel must not reorder, got %v", s.images)
	}
	if s.ctrl.Dragging() {
		t.Fatalf("cancel should drop the session")
	}
}

func TestComposerMouseDragReorder(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png", "c.png")
	s.View(60, 30) // record row layout

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: s.imageTop}
	if handled, _ := s.HandleMouse(s.app, press); !handled {
		t.Fatalf("press on a row should be handled")
	}
	move := tea.MouseMsg{Action: tea.MouseActionMotion, Y: s.imageTop + 2}
	s.HandleMouse(s.app, move)
	if st := s.ctrl.RowState(2); st != reorder.RowHighlight {
		t.Fatalf("hovered row state = %v, want highlight", st)
	}
	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft, Y: s.imageTop + 2}
	s.HandleMouse(s.app, release)

	want := []string{"b.png", "c.png", "a.png"}
	for i, img := range want {
		if s.images[i] != img {
			t.Fatalf("images = %v, want %v", s.images, want)
		}
	}
}

func TestComposerRemoveKeepsRowTargetsInSync(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png", "c.png")
	s.sel = 1
	s.Update(key("d"))
	if len(s.images) != 2 {
		t.Fatalf("expected 2 images, got %v", s.images)
	}
	if s.ctrl.Rows() != 2 {
		t.Fatalf("row targets = %d, want 2", s.ctrl.Rows())
	}
}

func TestComposerMousePressOverwritesKeyboardGrab(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png", "c.png")
	s.View(60, 30)
	s.Update(key("g")) // keyboard grab on row 0

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: s.imageTop + 2}
	s.HandleMouse(s.app, press)

	sess, ok := s.ctrl.Session()
	if !ok || sess.Source != 2 || sess.Modality != reorder.Pointer {
		t.Fatalf("session = %+v, want pointer gesture on row 2", sess)
	}
}

func TestComposerCloseReleasesRowTargets(t *testing.T) {
	s := newComposerWithImages(t, "a.png", "b.png")
	reg := s.app.Bindings()
	list := s.ctrl.List()
	row := s.ctrl.Row(0)

	reg.UnregisterScope(s.Scope())
	s.Close(reg)
	if reg.Valid(list) || reg.Valid(row) {
		t.Fatalf("close should release the reorder targets")
	}
}

func openDraftStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	if err := st.Migrate("../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return st
}

func TestResumeDraftLoadsSelectedRow(t *testing.T) {
	st := openDraftStore(t)
	older := store.Draft{Title: "older draft", Content: "keep me", Images: []string{"a.png"}}
	if err := st.SaveDraft(&older); err != nil {
		t.Fatalf("save older: %v", err)
	}
	newer := store.Draft{Title: "newer draft"}
	if err := st.SaveDraft(&newer); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	m := newComposerModel()
	m.Store = st
	s, _ := NewComposerScreenFromDraft(m, older)
	if got := s.title.Value(); got != "older draft" {
		t.Fatalf("composer loaded %q, user selected %q", got, older.Title)
	}
	if s.draftID != older.ID {
		t.Fatalf("draft id = %q, autosave would write to the wrong row", s.draftID)
	}
	if len(s.images) != 1 || s.images[0] != "a.png" {
		t.Fatalf("images = %v", s.images)
	}
}

func TestNewComposerStartsOnFreshDraft(t *testing.T) {
	st := openDraftStore(t)
	existing := store.Draft{Title: "newer draft"}
	if err := st.SaveDraft(&existing); err != nil {
		t.Fatalf("save: %v", err)
	}

	m := newComposerModel()
	m.Store = st
	s, _ := NewComposerScreen(m, nil)
	if got := s.title.Value(); got != "" {
		t.Fatalf("new composer resumed %q instead of starting empty", got)
	}
	if s.draftID == existing.ID || s.draftID == "" {
		t.Fatalf("draft id = %q, want a fresh row", s.draftID)
	}
}

func TestConfirmRunsActionOnlyOnConfirm(t *testing.T) {
	ran := false
	action := func() tea.Msg { ran = true; return nil }

	decline := NewConfirmScreen("t", "p", action)
	_, cmd, closed := decline.Update(key("n"))
	if !closed {
		t.Fatalf("n should close the dialog")
	}
	if cmd != nil {
		cmd()
	}
	if ran {
		t.Fatalf("declining must not run the action")
	}

	confirm := NewConfirmScreen("t", "p", action)
	_, cmd, closed = confirm.Update(key("enter"))
	if !closed || cmd == nil {
		t.Fatalf("enter should close and return the action")
	}
	cmd()
	if !ran {
		t.Fatalf("confirming should run the action")
	}
}
