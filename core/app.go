package core

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/store"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

type Screen interface {
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

type Tab interface {
	ID() string
	Title() string
	Scope() string
	Update(m *Model, msg tea.Msg) tea.Cmd
	Build(m *Model) widgets.Widget
}

// TabInitializer runs once at program start.
type TabInitializer interface {
	InitTab(m *Model) tea.Cmd
}

// TabActivator runs every time the tab becomes active; tabs re-register
// their bindings here after the switch-away teardown.
type TabActivator interface {
	Activate(m *Model) tea.Cmd
}

// MouseHandler is implemented by tabs and screens that hit-test pointer
// input and dispatch it through the binding registry.
type MouseHandler interface {
	HandleMouse(m *Model, msg tea.MouseMsg) (bool, tea.Cmd)
}

// ScreenCloser is implemented by screens that hold binding targets beyond
// their scoped listeners. Close runs when the screen is popped, after the
// scope release, so the targets' labels are freed too.
type ScreenCloser interface {
	Close(reg *binding.Registry)
}

type Model struct {
	width     int
	height    int
	tabs      []Tab
	activeTab int
	screens   ScreenStack
	keys      *KeyRegistry
	commands  *CommandRegistry
	bindings  *binding.Registry
	status    string
	statusErr bool
	quitting  bool

	User     api.User
	LoggedIn bool
	PageSize int

	API   *api.Client
	Store *store.Store
	Log   *zap.Logger

	OpenCommandModal func(m *Model, scope string) Screen
}

func NewModel(tabs []Tab, keys *KeyRegistry, commands *CommandRegistry, bindings *binding.Registry, client *api.Client, st *store.Store, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		tabs:      tabs,
		keys:      keys,
		commands:  commands,
		bindings:  bindings,
		API:       client,
		Store:     st,
		Log:       log,
		status:    "Ready",
		activeTab: 0,
		width:     100,
		height:    32,
		PageSize:  10,
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs))
	for _, t := range m.tabs {
		if initTab, ok := t.(TabInitializer); ok {
			if cmd := initTab.InitTab(&m); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) ActiveScope() string {
	if top := m.screens.Top(); top != nil {
		return top.Scope()
	}
	if len(m.tabs) == 0 {
		return "app"
	}
	return m.tabs[m.activeTab].Scope()
}

// Bindings is the app-wide listener registry. Screens and tabs register
// under their own scope; navigation tears the scope down.
func (m *Model) Bindings() *binding.Registry {
	return m.bindings
}

// SwitchTab releases the outgoing tab's binding scope and activates the new
// tab so it can re-register.
func (m *Model) SwitchTab(index int) tea.Cmd {
	if index < 0 || index >= len(m.tabs) || index == m.activeTab {
		return nil
	}
	old := m.tabs[m.activeTab]
	if n := m.bindings.UnregisterScope(old.Scope()); n > 0 {
		m.Log.Debug("tab scope released", zap.String("scope", old.Scope()), zap.Int("subscriptions", n))
	}
	m.activeTab = index
	if act, ok := m.tabs[index].(TabActivator); ok {
		return act.Activate(m)
	}
	return nil
}

func (m *Model) PushScreen(s Screen) {
	m.screens.Push(s)
}

// popScreen removes the top screen and releases its binding scope, the
// page-teardown half of the registry contract.
func (m *Model) popScreen() {
	s := m.screens.Pop()
	if s == nil {
		return
	}
	if n := m.bindings.UnregisterScope(s.Scope()); n > 0 {
		m.Log.Debug("screen scope released", zap.String("scope", s.Scope()), zap.Int("subscriptions", n))
	}
	if c, ok := s.(ScreenCloser); ok {
		c.Close(m.bindings)
	}
}

// Keys exposes the key registry so tabs can match actions in their scope.
func (m *Model) Keys() *KeyRegistry {
	return m.keys
}

func (m *Model) CommandRegistry() *CommandRegistry {
	return m.commands
}

func (m *Model) ActiveTab() Tab {
	if len(m.tabs) == 0 {
		return nil
	}
	return m.tabs[m.activeTab]
}
