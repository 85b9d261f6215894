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
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/secrets"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/validate"
)

type loginDoneMsg struct {
	session api.Session
	err     error
}

// LoginScreen is the email/password form. A successful login stores the
// token, caches the session locally, and announces the user to the app.
type LoginScreen struct {
	client *core.Model
	fields []textinput.Model
	focus  int
	errMsg string
	busy   bool
}

func NewLoginScreen(m *core.Model) *LoginScreen {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "email> "
	email.Focus()
	pw := textinput.New()
	pw.Placeholder = "password"
	pw.Prompt = "pass>  "
	pw.EchoMode = textinput.EchoPassword
	return &LoginScreen{client: m, fields: []textinput.Model{email, pw}}
}

func (s *LoginScreen) Title() string { return "Login" }
func (s *LoginScreen) Scope() string { return "screen:login" }

func (s *LoginScreen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		s.busy = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil, false
		}
		user := msg.session.User
		return s, tea.Batch(
			func() tea.Msg { return core.SessionMsg{User: user, LoggedIn: true} },
			core.StatusCmd("Welcome back, "+user.Nickname),
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

func (s *LoginScreen) setFocus(i int) {
	s.fields[s.focus].Blur()
	s.focus = i
	s.fields[s.focus].Focus()
}

func (s *LoginScreen) submit() tea.Cmd {
	email := strings.TrimSpace(s.fields[0].Value())
	password := s.fields[1].Value()
	if err := validate.Email(email); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := validate.Password(password); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.errMsg = ""
	s.busy = true
	client, st := s.client.API, s.client.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		sess, err := client.Login(ctx, email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := secrets.Store(secrets.SessionToken, sess.Token); err != nil {
			return loginDoneMsg{err: err}
		}
		if st != nil {
			if err := st.SaveSession(sess.User); err != nil {
				return loginDoneMsg{err: err}
			}
		}
		return loginDoneMsg{session: sess}
	}
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Sign in") + "\n\n")
	for _, f := range s.fields {
		b.WriteString(f.View() + "\n")
	}
	if s.busy {
		b.WriteString("\nSigning in...")
	} else if s.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Render(s.errMsg))
	} else {
		b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("enter submit · esc close"))
	}
	return b.String()
}
