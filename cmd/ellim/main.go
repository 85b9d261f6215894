package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/config"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/logging"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/secrets"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/store"
	"github.com/100-hours-a-week/3-ellim-community-tui/screens"
	"github.com/100-hours-a-week/3-ellim-community-tui/tabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer st.Close()
	if err := st.Migrate(cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, logger)

	reg := binding.NewRegistry(logger)
	keys := core.NewKeyRegistry(core.DefaultKeyBindings())
	commands := core.NewCommandRegistry(defaultCommands())

	m := core.NewModel(
		[]core.Tab{tabs.NewFeedTab(), tabs.NewDraftsTab(), tabs.NewProfileTab()},
		keys, commands, reg, client, st, logger,
	)
	m.PageSize = cfg.UI.PageSize
	m.OpenCommandModal = func(m *core.Model, scope string) core.Screen {
		return screens.NewCommandScreen(m, scope)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go restoreSession(p, client, st)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

// restoreSession reuses a stored token from the last run. The cached user
// shows immediately; a background refresh replaces it or clears a token the
// server no longer accepts.
func restoreSession(p *tea.Program, client *api.Client, st *store.Store) {
	token, err := secrets.Fetch(secrets.SessionToken)
	if err != nil || token == "" {
		return
	}
	client.SetToken(token)
	if user, ok, err := st.LoadSession(); err == nil && ok {
		p.Send(core.SessionMsg{User: user, LoggedIn: true})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	user, err := client.Me(ctx)
	if err != nil {
		if api.IsUnauthorized(err) {
			client.SetToken("")
			_ = secrets.Delete(secrets.SessionToken)
			_ = st.ClearSession()
			p.Send(core.SessionMsg{})
		}
		return
	}
	_ = st.SaveSession(user)
	p.Send(core.SessionMsg{User: user, LoggedIn: true})
}

func defaultCommands() []core.Command {
	needsLogin := func(m *core.Model) (bool, string) {
		if !m.LoggedIn {
			return true, "sign in first"
		}
		return false, ""
	}
	return []core.Command{
		{
			ID: "feed", Name: "Go to Feed", Description: "Switch to the post feed",
			Scopes:  []string{"*"},
			Execute: func(m *core.Model) tea.Cmd { return m.SwitchTab(0) },
		},
		{
			ID: "drafts", Name: "Go to Drafts", Description: "Switch to saved drafts",
			Scopes:  []string{"*"},
			Execute: func(m *core.Model) tea.Cmd { return m.SwitchTab(1) },
		},
		{
			ID: "profile", Name: "Go to Profile", Description: "Switch to your profile",
			Scopes:  []string{"*"},
			Execute: func(m *core.Model) tea.Cmd { return m.SwitchTab(2) },
		},
		{
			ID: "compose", Name: "New Post", Description: "Write a new post",
			Scopes:   []string{"tab:feed", "tab:drafts"},
			Disabled: needsLogin,
			Execute: func(m *core.Model) tea.Cmd {
				composer, tick := screens.NewComposerScreen(m, nil)
				return tea.Batch(core.PushCmd(composer), tick)
			},
		},
		{
			ID: "login", Name: "Sign In", Description: "Sign in to your account",
			Scopes: []string{"*"},
			Disabled: func(m *core.Model) (bool, string) {
				if m.LoggedIn {
					return true, "already signed in"
				}
				return false, ""
			},
			Execute: func(m *core.Model) tea.Cmd { return core.PushCmd(screens.NewLoginScreen(m)) },
		},
		{
			ID: "signup", Name: "Create Account", Description: "Register a new account",
			Scopes: []string{"*"},
			Disabled: func(m *core.Model) (bool, string) {
				if m.LoggedIn {
					return true, "already signed in"
				}
				return false, ""
			},
			Execute: func(m *core.Model) tea.Cmd { return core.PushCmd(screens.NewSignupScreen(m)) },
		},
		{
			ID: "edit-profile", Name: "Edit Profile", Description: "Change nickname or image",
			Scopes:   []string{"*"},
			Disabled: needsLogin,
			Execute:  func(m *core.Model) tea.Cmd { return core.PushCmd(screens.NewProfileEditScreen(m)) },
		},
		{
			ID: "change-password", Name: "Change Password", Description: "Set a new password",
			Scopes:   []string{"*"},
			Disabled: needsLogin,
			Execute:  func(m *core.Model) tea.Cmd { return core.PushCmd(screens.NewPasswordScreen(m)) },
		},
	}
}
