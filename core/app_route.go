package core

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case SessionMsg:
		m.User = msg.User
		m.LoggedIn = msg.LoggedIn
		if msg.LoggedIn {
			m.SetStatus("Signed in as " + msg.User.Nickname)
		} else {
			m.SetStatus("Signed out")
		}
		return m, nil
	case PushScreenMsg:
		m.screens.Push(msg.Screen)
		return m, nil
	case PopScreenMsg:
		m.popScreen()
		return m, nil
	case CommandExecuteMsg:
		return m, m.commands.Execute(msg.CommandID, &m)
	case TabSwitchMsg:
		return m, m.SwitchTab(msg.Index)
	case tea.MouseMsg:
		if top := m.screens.Top(); top != nil {
			if mh, ok := top.(MouseHandler); ok {
				local, inside := m.screenLocalMouse(top, msg)
				// Releases outside the card still end an in-progress drag.
				if inside || msg.Action == tea.MouseActionRelease {
					if handled, cmd := mh.HandleMouse(&m, local); handled {
						return m, cmd
					}
				}
			}
			return m, nil
		}
		if tab := m.ActiveTab(); tab != nil {
			if mh, ok := tab.(MouseHandler); ok {
				if handled, cmd := mh.HandleMouse(&m, msg); handled {
					return m, cmd
				}
			}
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if top := m.screens.Top(); top != nil {
			next, cmd, pop := top.Update(msg)
			if pop {
				m.popScreen()
				return m, cmd
			}
			if next != nil {
				m.screens.items[len(m.screens.items)-1] = next
			}
			return m, cmd
		}

		scope := m.ActiveScope()
		if m.keys.IsAction(msg, "quit", scope) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.keys.IsAction(msg, "open-command-palette", scope) && m.OpenCommandModal != nil {
			m.screens.Push(m.OpenCommandModal(&m, scope))
			return m, nil
		}
		for i := range m.tabs {
			if m.keys.IsAction(msg, fmt.Sprintf("switch-tab-%d", i+1), scope) {
				return m, m.SwitchTab(i)
			}
		}
		if tab := m.ActiveTab(); tab != nil {
			return m, tab.Update(&m, msg)
		}
		return m, nil
	}

	// Async results and everything else reach the top screen first, then the
	// active tab, so in-flight loads land wherever they started.
	var cmds []tea.Cmd
	if top := m.screens.Top(); top != nil {
		next, cmd, pop := top.Update(msg)
		if pop {
			m.popScreen()
		} else if next != nil {
			m.screens.items[len(m.screens.items)-1] = next
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if tab := m.ActiveTab(); tab != nil {
		if cmd := tab.Update(&m, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}
