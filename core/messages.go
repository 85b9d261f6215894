package core

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

type PushScreenMsg struct {
	Screen Screen
}

type PopScreenMsg struct{}

type CommandExecuteMsg struct {
	CommandID string
}

type TabSwitchMsg struct {
	Index int
}

// SessionMsg announces a login, profile change, or (zero-value user) logout.
type SessionMsg struct {
	User     api.User
	LoggedIn bool
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{Text: "", IsErr: false}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

func PushCmd(s Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

func PopCmd() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}
