package tabs

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/secrets"
	"github.com/100-hours-a-week/3-ellim-community-tui/screens"
	"github.com/100-hours-a-week/3-ellim-community-tui/widgets"
)

type signedOutMsg struct {
	err error
}

// ProfileTab shows the signed-in account and is the entry point for profile
// edits, password changes, logout, and account withdrawal.
type ProfileTab struct{}

func NewProfileTab() *ProfileTab { return &ProfileTab{} }

func (t *ProfileTab) ID() string    { return "profile" }
func (t *ProfileTab) Title() string { return "Profile" }
func (t *ProfileTab) Scope() string { return "tab:profile" }

func (t *ProfileTab) Update(m *core.Model, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case signedOutMsg:
		if msg.err != nil {
			return core.ErrorCmd(msg.err)
		}
		return func() tea.Msg { return core.SessionMsg{} }
	case tea.KeyMsg:
		if !m.LoggedIn {
			switch msg.String() {
			case "l", "enter":
				return core.PushCmd(screens.NewLoginScreen(m))
			case "s":
				return core.PushCmd(screens.NewSignupScreen(m))
			}
			return nil
		}
		switch msg.String() {
		case "e":
			return core.PushCmd(screens.NewProfileEditScreen(m))
		case "p":
			return core.PushCmd(screens.NewPasswordScreen(m))
		case "o":
			return core.PushCmd(screens.NewConfirmScreen(
				"Sign out", "Sign out of this account?", t.signOut(m, false),
			))
		case "w":
			return core.PushCmd(screens.NewConfirmScreen(
				"Delete account", "Permanently delete this account and all its posts?", t.signOut(m, true),
			))
		}
	}
	return nil
}

// signOut handles both logout and withdrawal; withdraw deletes the account
// server-side first, then tears the local session down the same way.
func (t *ProfileTab) signOut(m *core.Model, withdraw bool) tea.Cmd {
	client := m.API
	st := m.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var err error
		if withdraw {
			err = client.Withdraw(ctx)
		} else {
			err = client.Logout(ctx)
		}
		if err != nil && !api.IsUnauthorized(err) {
			return signedOutMsg{err: err}
		}
		client.SetToken("")
		_ = secrets.Delete(secrets.SessionToken)
		if st != nil {
			_ = st.ClearSession()
		}
		return signedOutMsg{}
	}
}

func (t *ProfileTab) Build(m *core.Model) widgets.Widget {
	if !m.LoggedIn {
		return widgets.Box{
			Title:   "Profile",
			Content: "Not signed in.\n\n  l  sign in\n  s  create account",
		}
	}
	u := m.User
	var b strings.Builder
	fmt.Fprintf(&b, "Nickname  %s\n", u.Nickname)
	fmt.Fprintf(&b, "Email     %s\n", u.Email)
	if u.ProfileImage != "" {
		fmt.Fprintf(&b, "Image     %s\n", u.ProfileImage)
	}
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Joined    %s\n", u.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("\n  e  edit profile\n  p  change password\n  o  sign out\n  w  delete account")
	return widgets.Box{Title: "Profile", Content: b.String()}
}
