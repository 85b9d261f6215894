package screens

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/validate"
)

type profileSavedMsg struct {
	user api.User
	err  error
}

// ProfileEditScreen changes nickname and profile image URL.
type ProfileEditScreen struct {
	app    *core.Model
	fields []textinput.Model
	focus  int
	errMsg string
	busy   bool
}

func NewProfileEditScreen(m *core.Model) *ProfileEditScreen {
	nick := textinput.New()
	nick.Prompt = "nickname> "
	nick.CharLimit = 10
	nick.SetValue(m.User.Nickname)
	nick.Focus()
	img := textinput.New()
	img.Prompt = "image>    "
	img.Placeholder = "profile image url"
	img.SetValue(m.User.ProfileImage)
	return &ProfileEditScreen{app: m, fields: []textinput.Model{nick, img}}
}

func (s *ProfileEditScreen) Title() string { return "Edit profile" }
func (s *ProfileEditScreen) Scope() string { return "screen:profile-edit" }

func (s *ProfileEditScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		user := msg.user
		st := s.app.Store
		return s, tea.Batch(
			func() tea.Msg {
				if st != nil {
					_ = st.SaveSession(user)
				}
				return core.SessionMsg{User: user, LoggedIn: true}
			},
			core.StatusCmd("Profile updated"),
		), true
	case tea.KeyMsg:
		if s.busy {
			return s, nil, false
		}
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "tab", "down":
			s.setFocus((s.focus + 1) % len(s.fields))
			return s, nil, false
		case "shift+tab", "up":
			s.setFocus((s.focus + len(s.fields) - 1) % len(s.fields))
			return s, nil, false
		case "enter":
			return s, s.submit(), false
		}
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd, false
}

func (s *ProfileEditScreen) setFocus(i int) {
	s.fields[s.focus].Blur()
	s.focus = i
	s.fields[s.focus].Focus()
}

func (s *ProfileEditScreen) submit() tea.Cmd {
	nickname := strings.TrimSpace(s.fields[0].Value())
	image := strings.TrimSpace(s.fields[1].Value())
	if err := validate.Nickname(nickname); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.busy = true
	client := s.app.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := client.UpdateProfile(ctx, nickname, image)
		return profileSavedMsg{user: user, err: err}
	}
}

func (s *ProfileEditScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Edit profile") + "\n\n")
	for _, f := range s.fields {
		b.WriteString(f.View() + "\n")
	}
	if s.busy {
		b.WriteString("\nSaving...")
	} else if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg))
	} else {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("enter save · esc close"))
	}
	return b.String()
}

type passwordChangedMsg struct {
	err error
}

// PasswordScreen changes the account password, asking for it twice.
type PasswordScreen struct {
	app    *core.Model
	fields []textinput.Model
	focus  int
	errMsg string
	busy   bool
}

func NewPasswordScreen(m *core.Model) *PasswordScreen {
	mk := func(prompt string) textinput.Model {
		in := textinput.New()
		in.Prompt = prompt
		in.EchoMode = textinput.EchoPassword
		return in
	}
	fields := []textinput.Model{mk("new password> "), mk("confirm>      ")}
	fields[0].Focus()
	return &PasswordScreen{app: m, fields: fields}
}

func (s *PasswordScreen) Title() string { return "Change password" }
func (s *PasswordScreen) Scope() string { return "screen:password" }

func (s *PasswordScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case passwordChangedMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		return s, core.StatusCmd("Password changed"), true
	case tea.KeyMsg:
		if s.busy {
			return s, nil, false
		}
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "tab", "down", "shift+tab", "up":
			s.setFocus((s.focus + 1) % len(s.fields))
			return s, nil, false
		case "enter":
			if s.focus == 0 {
				s.setFocus(1)
				return s, nil, false
			}
			return s, s.submit(), false
		}
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd, false
}

func (s *PasswordScreen) setFocus(i int) {
	s.fields[s.focus].Blur()
	s.focus = i
	s.fields[s.focus].Focus()
}

func (s *PasswordScreen) submit() tea.Cmd {
	password := s.fields[0].Value()
	confirm := s.fields[1].Value()
	if err := validate.Password(password); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := validate.PasswordPair(password, confirm); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.busy = true
	client := s.app.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return passwordChangedMsg{err: client.ChangePassword(ctx, password)}
	}
}

func (s *PasswordScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Change password") + "\n\n")
	for _, f := range s.fields {
		b.WriteString(f.View() + "\n")
	}
	if s.busy {
		b.WriteString("\nSaving...")
	} else if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg))
	} else {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("enter save · esc close"))
	}
	return b.String()
}
