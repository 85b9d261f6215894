package binding

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type countHandler struct{ hits int }

func (h *countHandler) HandleEvent(e Event) tea.Cmd {
	h.hits++
	return nil
}

type orderHandler struct {
	name string
	log  *[]string
}

func (h *orderHandler) HandleEvent(e Event) tea.Cmd {
	*h.log = append(*h.log, h.name)
	return nil
}

func TestRegisterDedupesTriple(t *testing.T) {
	r := NewRegistry(nil)
	btn := r.Target("button")
	h := &countHandler{}

	if !r.Register(btn, "click", h, WithScope("page-1")) {
		t.Fatalf("first register should succeed")
	}
	if r.Register(btn, "click", h, WithScope("page-1")) {
		t.Fatalf("second register of same triple should be rejected")
	}
	if got := r.Handlers(btn, "click"); got != 1 {
		t.Fatalf("handlers = %d, want 1", got)
	}
	r.Dispatch(btn, "click", nil)
	if h.hits != 1 {
		t.Fatalf("hits = %d, want 1", h.hits)
	}
}

func TestRegisterInvalidArgsNoOp(t *testing.T) {
	r := NewRegistry(nil)
	btn := r.Target("button")
	h := &countHandler{}

	if r.Register(0, "click", h) {
		t.Fatalf("zero target should be rejected")
	}
	if r.Register(Target(99), "click", h) {
		t.Fatalf("unknown target should be rejected")
	}
	if r.Register(btn, "", h) {
		t.Fatalf("empty event should be rejected")
	}
	if r.Register(btn, "click", nil) {
		t.Fatalf("nil handler should be rejected")
	}
	if r.Size() != 0 {
		t.Fatalf("failed registers must not leave subscriptions")
	}
}

func TestFreshClosuresNeverDedupe(t *testing.T) {
	r := NewRegistry(nil)
	btn := r.Target("button")
	hits := 0
	fn := func(e Event) tea.Cmd { hits++; return nil }

	// Each Func call wraps a distinct handler, so both register.
	if !r.Register(btn, "click", Func(fn)) {
		t.Fatalf("first register should succeed")
	}
	if !r.Register(btn, "click", Func(fn)) {
		t.Fatalf("fresh wrapper should not be seen as duplicate")
	}
	r.Dispatch(btn, "click", nil)
	if hits != 2 {
		t.Fatalf("hits = %d, want 2", hits)
	}
}

func TestUnregisterExactMatch(t *testing.T) {
	r := NewRegistry(nil)
	btn := r.Target("button")
	h := &countHandler{}
	r.Register(btn, "click", h, WithScope("page-1"))

	if !r.Unregister(btn, "click", h) {
		t.Fatalf("unregister should find the subscription")
	}
	if r.Unregister(btn, "click", h) {
		t.Fatalf("second unregister should report false")
	}
	if got := r.ScopeSize("page-1"); got != 0 {
		t.Fatalf("scope size = %d, want 0 after unregister", got)
	}
	r.Dispatch(btn, "click", nil)
	if h.hits != 0 {
		t.Fatalf("removed handler must not fire")
	}
}

func TestScopeTeardownComplete(t *testing.T) {
	r := NewRegistry(nil)
	btn := r.Target("button")
	form := r.Target("form")
	h1, h2, h3 := &countHandler{}, &countHandler{}, &countHandler{}
	r.Register(btn, "click", h1, WithScope("page-1"))
	r.Register(btn, "focus", h2, WithScope("page-1"))
	r.Register(form, "submit", h3, WithScope("page-1"))

	if got := r.UnregisterScope("page-1"); got != 3 {
		t.Fatalf("teardown removed %d, want 3", got)
	}
	if got := r.UnregisterScope("page-1"); got != 0 {
		t.Fatalf("repeat teardown removed %d, want 0", got)
	}
	if r.Size() != 0 {
		t.Fatalf("size = %d, want 0 after teardown", r.Size())
	}
	r.Dispatch(btn, "click", nil)
	r.Dispatch(form, "submit", nil)
	if h1.hits+h2.hits+h3.hits != 0 {
		t.Fatalf("torn-down handlers must not fire")
	}
}

func TestScopeIsolation(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	h1, h2 := &countHandler{}, &countHandler{}
	r.Register(el, "click", h1, WithScope("page-1"))
	r.Register(el, "click", h2, WithScope("page-2"))

	r.UnregisterScope("page-1")
	r.Dispatch(el, "click", nil)
	if h1.hits != 0 {
		t.Fatalf("page-1 handler should be gone")
	}
	if h2.hits != 1 {
		t.Fatalf("page-2 handler should survive, hits = %d", h2.hits)
	}
}

func TestTargetRemovalCascadesAcrossScopes(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	other := r.Target("other")
	h1, h2, h3 := &countHandler{}, &countHandler{}, &countHandler{}
	r.Register(el, "click", h1, WithScope("page-1"))
	r.Register(el, "focus", h2, WithScope("page-2"))
	r.Register(other, "click", h3, WithScope("page-1"))

	if got := r.UnregisterTarget(el); got != 2 {
		t.Fatalf("target removal removed %d, want 2", got)
	}
	if got := r.ScopeSize("page-1"); got != 1 {
		t.Fatalf("page-1 should keep only the other target's subscription, got %d", got)
	}
	if got := r.ScopeSize("page-2"); got != 0 {
		t.Fatalf("page-2 should be empty, got %d", got)
	}
}

func TestReleaseTargetInvalidatesHandle(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	r.Register(el, "click", &countHandler{})

	if got := r.ReleaseTarget(el); got != 1 {
		t.Fatalf("release removed %d, want 1", got)
	}
	if r.Valid(el) {
		t.Fatalf("released handle should be invalid")
	}
	if r.Register(el, "click", &countHandler{}) {
		t.Fatalf("register on released handle should be rejected")
	}
}

func TestOnceRemovesBeforeSecondDispatch(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	h := &countHandler{}
	r.Register(el, "click", h, Once())

	r.Dispatch(el, "click", nil)
	r.Dispatch(el, "click", nil)
	if h.hits != 1 {
		t.Fatalf("once handler fired %d times, want 1", h.hits)
	}
	if got := r.Handlers(el, "click"); got != 0 {
		t.Fatalf("once subscription should be gone, got %d", got)
	}
}

func TestDispatchOrderCaptureFirstThenRegistration(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	var log []string
	r.Register(el, "click", &orderHandler{name: "b1", log: &log})
	r.Register(el, "click", &orderHandler{name: "c1", log: &log}, Capture())
	r.Register(el, "click", &orderHandler{name: "b2", log: &log})

	r.Dispatch(el, "click", nil)
	want := []string{"c1", "b1", "b2"}
	if len(log) != len(want) {
		t.Fatalf("fired %d handlers, want %d", len(log), len(want))
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("order = %v, want %v", log, want)
		}
	}
}

func TestDispatchCollectsCommands(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	r.Register(el, "click", Func(func(e Event) tea.Cmd {
		return func() tea.Msg { return "done" }
	}))

	if cmd := r.Dispatch(el, "click", nil); cmd == nil {
		t.Fatalf("dispatch should return the handler's command")
	}
	if cmd := r.Dispatch(el, "missing", nil); cmd != nil {
		t.Fatalf("dispatch with no handlers should return nil")
	}
}

func TestEventCarriesData(t *testing.T) {
	r := NewRegistry(nil)
	el := r.Target("element")
	var got any
	r.Register(el, "press", Func(func(e Event) tea.Cmd {
		got = e.Data
		return nil
	}))

	r.Dispatch(el, "press", 42)
	if got != 42 {
		t.Fatalf("data = %v, want 42", got)
	}
}
