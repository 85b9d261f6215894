package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
)

// ConfirmScreen asks before a destructive action. Enter or y confirms, esc
// or n declines; the action command only runs on confirm.
type ConfirmScreen struct {
	title  string
	prompt string
	action tea.Cmd
}

func NewConfirmScreen(title, prompt string, action tea.Cmd) *ConfirmScreen {
	return &ConfirmScreen{title: title, prompt: prompt, action: action}
}

func (s *ConfirmScreen) Title() string { return s.title }
func (s *ConfirmScreen) Scope() string { return "screen:confirm" }

func (s *ConfirmScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "y":
			return s, s.action, true
		case "esc", "n":
			return s, core.StatusCmd("Cancelled"), true
		}
	}
	return s, nil, false
}

func (s *ConfirmScreen) View(width, height int) string {
	title := lipgloss.NewStyle().Bold(true).Render(s.title)
	hint := lipgloss.NewStyle().Faint(true).Render("enter/y confirm · esc/n cancel")
	return strings.Join([]string{title, "", s.prompt, "", hint}, "\n")
}
