package core

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

type routerTab struct{ hits int }

func (t *routerTab) ID() string                    { return "r" }
func (t *routerTab) Title() string                 { return "Router" }
func (t *routerTab) Scope() string                 { return "tab:r" }
func (t *routerTab) Build(m *Model) widgets.Widget { return widgets.Box{Title: "t", Content: "x"} }
func (t *routerTab) Update(m *Model, msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.hits++
	}
	return nil
}

type fakeScreen struct {
	hits  int
	scope string
}

func (s *fakeScreen) Title() string { return "Screen" }
func (s *fakeScreen) Scope() string {
	if s.scope == "" {
		return "screen:test"
	}
	return s.scope
}
func (s *fakeScreen) View(int, int) string { return "screen" }
func (s *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.hits++
		if km.String() == "esc" {
			return s, nil, true
		}
	}
	return s, nil, false
}

func newTestModel(tabs ...Tab) (Model, *binding.Registry) {
	reg := binding.NewRegistry(nil)
	m := NewModel(tabs, NewKeyRegistry(DefaultKeyBindings()), NewCommandRegistry(nil), reg, nil, nil, nil)
	return m, reg
}

func TestScreenGetsKeyBeforeTab(t *testing.T) {
	tab := &routerTab{}
	m, _ := newTestModel(tab)
	screen := &fakeScreen{}
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	updated := next.(Model)
	if screen.hits != 1 {
		t.Fatalf("screen should handle key first")
	}
	if tab.hits != 0 {
		t.Fatalf("tab should not receive key when screen open")
	}
	if updated.screens.Len() != 1 {
		t.Fatalf("screen should remain open")
	}
}

func TestScreenCanPopItself(t *testing.T) {
	tab := &routerTab{}
	m, _ := newTestModel(tab)
	m.PushScreen(&fakeScreen{})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("expected screen to pop on esc")
	}
}

func TestPopReleasesScreenScope(t *testing.T) {
	tab := &routerTab{}
	m, reg := newTestModel(tab)
	screen := &fakeScreen{scope: "screen:detail"}

	el := reg.Target("like-button")
	reg.Register(el, "click", binding.Func(func(e binding.Event) tea.Cmd { return nil }), binding.WithScope(screen.Scope()))
	m.PushScreen(screen)
	if reg.ScopeSize("screen:detail") != 1 {
		t.Fatalf("binding should be registered while screen is open")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("screen should be gone")
	}
	if got := reg.ScopeSize("screen:detail"); got != 0 {
		t.Fatalf("scope size = %d, want 0 after pop", got)
	}
}

type closingScreen struct {
	fakeScreen
	target binding.Target
}

func (s *closingScreen) Close(reg *binding.Registry) {
	reg.ReleaseTarget(s.target)
}

func TestPopClosesScreenTargets(t *testing.T) {
	tab := &routerTab{}
	m, reg := newTestModel(tab)
	screen := &closingScreen{fakeScreen: fakeScreen{scope: "screen:detail"}}
	screen.target = reg.Target("like-button")
	reg.Register(screen.target, "click", binding.Func(func(e binding.Event) tea.Cmd { return nil }), binding.WithScope(screen.Scope()))
	m.PushScreen(screen)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	updated := next.(Model)
	if updated.screens.Len() != 0 {
		t.Fatalf("screen should be gone")
	}
	if reg.Valid(screen.target) {
		t.Fatalf("target should be released when the screen closes")
	}
}

func TestSwitchTabReleasesOldScope(t *testing.T) {
	a, b := &routerTab{}, &routerTab{}
	m, reg := newTestModel(a, b)

	el := reg.Target("feed-row")
	reg.Register(el, "click", binding.Func(func(e binding.Event) tea.Cmd { return nil }), binding.WithScope(a.Scope()))

	m.SwitchTab(1)
	if got := reg.ScopeSize(a.Scope()); got != 0 {
		t.Fatalf("old tab scope size = %d, want 0", got)
	}
}

func TestActiveScopePrefersTopScreen(t *testing.T) {
	tab := &routerTab{}
	m, _ := newTestModel(tab)
	if m.ActiveScope() != "tab:r" {
		t.Fatalf("scope = %q", m.ActiveScope())
	}
	m.PushScreen(&fakeScreen{scope: "screen:composer"})
	if m.ActiveScope() != "screen:composer" {
		t.Fatalf("scope = %q, want screen scope", m.ActiveScope())
	}
}
