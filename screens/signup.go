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

type signupDoneMsg struct {
	user api.User
	err  error
}

const (
	signupEmail = iota
	signupPassword
	signupConfirm
	signupNickname
	signupFieldCount
)

// SignupScreen collects email, password (twice), and nickname. Validation
// runs field by field on submit; the first failure is shown and the form
// stays open.
type SignupScreen struct {
	app    *core.Model
	fields []textinput.Model
	focus  int
	errMsg string
	busy   bool
}

func NewSignupScreen(m *core.Model) *SignupScreen {
	mk := func(prompt, placeholder string, secret bool) textinput.Model {
		in := textinput.New()
		in.Prompt = prompt
		in.Placeholder = placeholder
		if secret {
			in.EchoMode = textinput.EchoPassword
		}
		return in
	}
	fields := make([]textinput.Model, signupFieldCount)
	fields[signupEmail] = mk("email>    ", "you@example.com", false)
	fields[signupPassword] = mk("password> ", "8-20 chars, mixed", true)
	fields[signupConfirm] = mk("confirm>  ", "repeat password", true)
	fields[signupNickname] = mk("nickname> ", "up to 10 chars", false)
	fields[signupEmail].Focus()
	return &SignupScreen{app: m, fields: fields}
}

func (s *SignupScreen) Title() string { return "Sign up" }
func (s *SignupScreen) Scope() string { return "screen:signup" }

func (s *SignupScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case signupDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		return s, core.StatusCmd("Account created, you can sign in now"), true
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
			if s.focus < len(s.fields)-1 {
				s.setFocus(s.focus + 1)
				return s, nil, false
			}
			return s, s.submit(), false
		}
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd, false
}

func (s *SignupScreen) setFocus(i int) {
	s.fields[s.focus].Blur()
	s.focus = i
	s.fields[s.focus].Focus()
}

func (s *SignupScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.fields[signupEmail].Value())
	password := s.fields[signupPassword].Value()
	confirm := s.fields[signupConfirm].Value()
	nickname := strings.TrimSpace(s.fields[signupNickname].Value())

	for _, err := range []error{
		validate.Email(email),
		validate.Password(password),
		validate.PasswordPair(password, confirm),
		validate.Nickname(nickname),
	} {
		if err != nil {
			s.errMsg = err.Error()
			return nil
		}
	}
	s.errMsg = ""
	s.busy = true
	client := s.app.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := client.Signup(ctx, email, password, nickname, "")
		return signupDoneMsg{user: user, err: err}
	}
}

func (s *SignupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Create account") + "\n\n")
	for _, f := range s.fields {
		b.WriteString(f.View() + "\n")
	}
	if s.busy {
		b.WriteString("\nCreating account...")
	} else if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg))
	} else {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("enter next/submit · esc close"))
	}
	return b.String()
}
