// Package reorder lets the user move items of a rendered list via mouse drag
// or keyboard grab-and-step. The controller only tracks the gesture and
// reports the index pair; splicing the backing slice and re-rendering stay
// with the caller.
package reorder

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
)

// Items is the caller's view of the reorderable list.
type Items interface {
	Len() int
	// Move splices the item at from out and reinserts it at to.
	Move(from, to int)
	// Refresh rebuilds whatever rendering the caller owns.
	Refresh()
}

// Modality is the input channel driving the active gesture.
type Modality int

const (
	Pointer Modality = iota
	Keyboard
)

// DragSession is the transient state of one in-progress gesture. It exists
// only between gesture start and gesture end.
type DragSession struct {
	Source   int
	Hover    int // pending target index, -1 while none
	Modality Modality
}

// RowState drives the row's visual treatment during a gesture.
type RowState int

const (
	RowIdle RowState = iota
	RowLifted
	RowHighlight
)

// Row event names dispatched through the binding registry.
const (
	EventPress   = "press"
	EventMove    = "move"
	EventRelease = "release"

	EventGrab   = "grab"   // keyboard lift, Data = row index
	EventStep   = "step"   // keyboard move, Data = +1 / -1
	EventDrop   = "drop"   // keyboard drop
	EventCancel = "cancel" // keyboard cancel
)

// Controller attaches reorder gestures to a list. At most one gesture is
// tracked; starting a new one silently replaces the active session without
// notifying anyone, matching the single-pointer assumption of the UI.
type Controller struct {
	reg     *binding.Registry
	scope   string
	items   Items
	list    binding.Target
	rows    []binding.Target
	session *DragSession

	// Stable handler values for the keyboard set, so repeated Attach calls
	// dedupe instead of stacking duplicates.
	hGrab, hStep, hDrop, hCancel binding.Handler
}

// New returns a detached controller. Call Attach before dispatching events.
func New(reg *binding.Registry, scope string, items Items) *Controller {
	c := &Controller{reg: reg, scope: scope, items: items}
	c.hGrab = binding.Func(c.onGrab)
	c.hStep = binding.Func(c.onStep)
	c.hDrop = binding.Func(c.onDrop)
	c.hCancel = binding.Func(c.onCancel)
	return c
}

// Attach rebuilds one binding target per row and registers both event sets
// under the controller's scope. Safe to call after every refresh: stale row
// targets from the previous layout are released first.
func (c *Controller) Attach() {
	if c.reg == nil {
		return
	}
	for _, t := range c.rows {
		c.reg.ReleaseTarget(t)
	}
	c.rows = c.rows[:0]
	if c.items == nil {
		return
	}
	if c.list == 0 || !c.reg.Valid(c.list) {
		c.list = c.reg.Target(c.scope + "/list")
	}
	c.reg.Register(c.list, EventGrab, c.hGrab, binding.WithScope(c.scope))
	c.reg.Register(c.list, EventStep, c.hStep, binding.WithScope(c.scope))
	c.reg.Register(c.list, EventDrop, c.hDrop, binding.WithScope(c.scope))
	c.reg.Register(c.list, EventCancel, c.hCancel, binding.WithScope(c.scope))
	for i := 0; i < c.items.Len(); i++ {
		t := c.reg.Target(fmt.Sprintf("%s/row-%d", c.scope, i))
		idx := i
		c.reg.Register(t, EventPress, binding.Func(func(e binding.Event) tea.Cmd {
			c.start(idx, Pointer)
			return nil
		}), binding.WithScope(c.scope))
		c.reg.Register(t, EventMove, binding.Func(func(e binding.Event) tea.Cmd {
			c.hover(idx)
			return nil
		}), binding.WithScope(c.scope))
		c.reg.Register(t, EventRelease, binding.Func(func(e binding.Event) tea.Cmd {
			c.finish()
			return nil
		}), binding.WithScope(c.scope))
		c.rows = append(c.rows, t)
	}
}

// Destroy clears the drag session and releases the list and row targets so
// the registry can forget their labels. Destroy after a scope release is
// fine: releasing an already-gone target is a no-op.
func (c *Controller) Destroy() {
	c.session = nil
	if c.reg == nil {
		return
	}
	for _, t := range c.rows {
		c.reg.ReleaseTarget(t)
	}
	c.rows = c.rows[:0]
	if c.list != 0 {
		c.reg.ReleaseTarget(c.list)
		c.list = 0
	}
}

// Row returns the binding target for row i, or 0 when out of range.
func (c *Controller) Row(i int) binding.Target {
	if i < 0 || i >= len(c.rows) {
		return 0
	}
	return c.rows[i]
}

// List returns the binding target for the keyboard event set.
func (c *Controller) List() binding.Target { return c.list }

// Rows returns the number of attached row targets.
func (c *Controller) Rows() int { return len(c.rows) }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.session != nil }

// Session returns a copy of the active drag session.
func (c *Controller) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// RowState returns the visual state of row i for the current gesture.
func (c *Controller) RowState(i int) RowState {
	s := c.session
	if s == nil {
		return RowIdle
	}
	switch i {
	case s.Source:
		return RowLifted
	case s.Hover:
		return RowHighlight
	default:
		return RowIdle
	}
}

func (c *Controller) onGrab(e binding.Event) tea.Cmd {
	if i, ok := e.Data.(int); ok {
		c.start(i, Keyboard)
	}
	return nil
}

func (c *Controller) onStep(e binding.Event) tea.Cmd {
	delta, ok := e.Data.(int)
	if !ok {
		return nil
	}
	s := c.session
	if s == nil || c.items == nil {
		return nil
	}
	from := s.Hover
	if from < 0 {
		from = s.Source
	}
	to := from + delta
	if to < 0 {
		to = 0
	}
	if n := c.items.Len(); to > n-1 {
		to = n - 1
	}
	c.hover(to)
	return nil
}

func (c *Controller) onDrop(e binding.Event) tea.Cmd {
	c.finish()
	return nil
}

func (c *Controller) onCancel(e binding.Event) tea.Cmd {
	c.session = nil
	return nil
}

func (c *Controller) start(i int, m Modality) {
	if c.items == nil || i < 0 || i >= c.items.Len() {
		return
	}
	c.session = &DragSession{Source: i, Hover: -1, Modality: m}
}

// hover records i as the pending target when it is a valid row other than the
// source. Hovering back over the source clears the pending target.
func (c *Controller) hover(i int) {
	s := c.session
	if s == nil || c.items == nil {
		return
	}
	if i == s.Source {
		s.Hover = -1
		return
	}
	if i < 0 || i >= c.items.Len() {
		return
	}
	s.Hover = i
}

// finish completes the gesture: a pending target that differs from the
// source triggers Move then Refresh; otherwise nothing is invoked. Transient
// state is cleared either way.
func (c *Controller) finish() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	if c.items == nil {
		return
	}
	if s.Hover < 0 || s.Hover == s.Source || s.Hover >= c.items.Len() {
		return
	}
	c.items.Move(s.Source, s.Hover)
	c.items.Refresh()
}
