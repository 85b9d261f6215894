// Package binding tracks event subscriptions per target and per page scope.
//
// Screens and tabs register handlers under their scope identifier and the
// router releases the whole scope on navigation-away, so no page has to keep
// its own handler references for teardown. Registration is deduplicated on
// the (target, event, handler) triple.
package binding

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Target is a stable handle for an event target, allocated by the registry.
// The zero Target is invalid.
type Target int

// Event is what a handler receives on dispatch.
type Event struct {
	Target Target
	Name   string
	Data   any
}

// Handler handles a dispatched event. Handlers are matched by interface
// equality, so a caller that wants duplicate registration detected must
// register the same handler value twice (typically a pointer).
type Handler interface {
	HandleEvent(e Event) tea.Cmd
}

type funcHandler struct {
	fn func(e Event) tea.Cmd
}

func (h *funcHandler) HandleEvent(e Event) tea.Cmd { return h.fn(e) }

// Func adapts a closure to a Handler. Every call allocates a distinct
// handler, so two Func calls over the same closure are never recognized as
// duplicates; keep the returned value when re-registration must dedupe.
func Func(fn func(e Event) tea.Cmd) Handler {
	if fn == nil {
		return nil
	}
	return &funcHandler{fn: fn}
}

type subscription struct {
	target  Target
	event   string
	handler Handler
	scope   string
	once    bool
	capture bool
	removed bool
	keyed   bool
}

type subKey struct {
	target  Target
	event   string
	handler Handler
}

type tableKey struct {
	target Target
	event  string
}

// Option configures a registration.
type Option func(*subscription)

// WithScope assigns the subscription to a page scope. Scoped subscriptions
// are removed together by UnregisterScope.
func WithScope(scope string) Option {
	return func(s *subscription) { s.scope = scope }
}

// Once removes the subscription after its first dispatch.
func Once() Option {
	return func(s *subscription) { s.once = true }
}

// Capture orders the handler before non-capture handlers on dispatch.
func Capture() Option {
	return func(s *subscription) { s.capture = true }
}

// Registry owns the target arena and all subscription bookkeeping. It is not
// safe for concurrent use; all calls are expected from the program's single
// update loop.
type Registry struct {
	log     *zap.Logger
	next    Target
	labels  map[Target]string
	byKey   map[subKey]*subscription
	byScope map[string][]*subscription
	table   map[tableKey][]*subscription
}

// NewRegistry returns an empty registry. A nil logger disables diagnostics.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:     log,
		labels:  make(map[Target]string),
		byKey:   make(map[subKey]*subscription),
		byScope: make(map[string][]*subscription),
		table:   make(map[tableKey][]*subscription),
	}
}

// Target allocates a handle. The label appears only in diagnostics.
func (r *Registry) Target(label string) Target {
	r.next++
	if label == "" {
		label = "target"
	}
	r.labels[r.next] = label
	return r.next
}

// Valid reports whether t is an allocated, unreleased handle.
func (r *Registry) Valid(t Target) bool {
	_, ok := r.labels[t]
	return ok
}

// Label returns the diagnostic label for t, or "" if t is unknown.
func (r *Registry) Label(t Target) string { return r.labels[t] }

// Register binds handler to (target, event). It reports false without side
// effects when the target is invalid, the event empty, the handler nil, or an
// identical (target, event, handler) subscription already exists.
func (r *Registry) Register(t Target, event string, h Handler, opts ...Option) bool {
	if !r.Valid(t) || event == "" || h == nil {
		return false
	}
	sub := &subscription{target: t, event: event, handler: h, keyed: comparableHandler(h)}
	for _, opt := range opts {
		opt(sub)
	}
	if sub.keyed {
		key := subKey{target: t, event: event, handler: h}
		if _, dup := r.byKey[key]; dup {
			r.log.Debug("duplicate binding ignored",
				zap.String("target", r.labels[t]),
				zap.String("event", event),
				zap.String("scope", sub.scope))
			return false
		}
		r.byKey[key] = sub
	} else {
		// Handlers of non-comparable dynamic type cannot be keyed; they
		// register unconditionally and cannot be removed individually.
		r.log.Warn("handler not comparable, registering without dedupe",
			zap.String("target", r.labels[t]),
			zap.String("event", event))
	}
	tk := tableKey{target: t, event: event}
	r.table[tk] = append(r.table[tk], sub)
	if sub.scope != "" {
		r.byScope[sub.scope] = append(r.byScope[sub.scope], sub)
	}
	return true
}

// Unregister removes exactly the matching subscription, reporting whether a
// removal occurred.
func (r *Registry) Unregister(t Target, event string, h Handler) bool {
	if !r.Valid(t) || event == "" || h == nil || !comparableHandler(h) {
		return false
	}
	sub, ok := r.byKey[subKey{target: t, event: event, handler: h}]
	if !ok {
		return false
	}
	r.remove(sub)
	return true
}

// UnregisterTarget removes every subscription bound to t across all scopes
// and returns the count. The handle itself stays allocated.
func (r *Registry) UnregisterTarget(t Target) int {
	if !r.Valid(t) {
		return 0
	}
	n := 0
	for tk, subs := range r.table {
		if tk.target != t {
			continue
		}
		for _, sub := range append([]*subscription(nil), subs...) {
			if !sub.removed {
				r.remove(sub)
				n++
			}
		}
	}
	return n
}

// ReleaseTarget removes t's subscriptions and frees the handle. Call it when
// the target it stood for is discarded.
func (r *Registry) ReleaseTarget(t Target) int {
	n := r.UnregisterTarget(t)
	delete(r.labels, t)
	return n
}

// UnregisterScope removes every subscription registered under scope, across
// all targets, in insertion order. An unknown scope returns 0. This is the
// page teardown call.
func (r *Registry) UnregisterScope(scope string) int {
	subs := r.byScope[scope]
	if len(subs) == 0 {
		return 0
	}
	n := 0
	for _, sub := range append([]*subscription(nil), subs...) {
		if !sub.removed {
			r.remove(sub)
			n++
		}
	}
	return n
}

// Handlers returns the number of live subscriptions for (target, event).
func (r *Registry) Handlers(t Target, event string) int {
	return len(r.table[tableKey{target: t, event: event}])
}

// ScopeSize returns the number of live subscriptions under scope.
func (r *Registry) ScopeSize(scope string) int {
	return len(r.byScope[scope])
}

// Size returns the total number of live subscriptions.
func (r *Registry) Size() int {
	n := 0
	for _, subs := range r.table {
		n += len(subs)
	}
	return n
}

// Dispatch invokes the live handlers for (target, event) synchronously, in
// registration order with capture-phase handlers first, and batches any
// commands they return. Once-subscriptions are removed in the same call,
// before their handler runs.
func (r *Registry) Dispatch(t Target, event string, data any) tea.Cmd {
	subs := r.table[tableKey{target: t, event: event}]
	if len(subs) == 0 {
		return nil
	}
	snapshot := append([]*subscription(nil), subs...)
	e := Event{Target: t, Name: event, Data: data}
	var cmds []tea.Cmd
	for _, capture := range []bool{true, false} {
		for _, sub := range snapshot {
			if sub.removed || sub.capture != capture {
				continue
			}
			if sub.once {
				r.remove(sub)
			}
			if cmd := sub.handler.HandleEvent(e); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// remove transitions sub to its terminal state and drops it from every map.
// Bookkeeping and the dispatch table mutate in the same synchronous call so
// the two can never drift.
func (r *Registry) remove(sub *subscription) {
	if sub.removed {
		return
	}
	sub.removed = true
	if sub.keyed {
		delete(r.byKey, subKey{target: sub.target, event: sub.event, handler: sub.handler})
	}
	tk := tableKey{target: sub.target, event: sub.event}
	r.table[tk] = drop(r.table[tk], sub)
	if len(r.table[tk]) == 0 {
		delete(r.table, tk)
	}
	if sub.scope != "" {
		r.byScope[sub.scope] = drop(r.byScope[sub.scope], sub)
		if len(r.byScope[sub.scope]) == 0 {
			delete(r.byScope, sub.scope)
		}
	}
}

func drop(subs []*subscription, sub *subscription) []*subscription {
	for i, s := range subs {
		if s == sub {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}

func comparableHandler(h Handler) bool {
	t := reflect.TypeOf(h)
	return t != nil && t.Comparable()
}
