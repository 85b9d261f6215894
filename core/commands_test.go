package core

import (
	"testing"

	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
)

func newCommandTestModel(reg *CommandRegistry) Model {
	return NewModel(nil, NewKeyRegistry(nil), reg, binding.NewRegistry(nil), nil, nil, nil)
}

func TestSearchFiltersByScopeAndDisabled(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "a", Name: "Alpha", Scopes: []string{"tab:feed"}},
		{ID: "b", Name: "Beta", Scopes: []string{"tab:drafts"}, Disabled: func(m *Model) (bool, string) { return true, "blocked" }},
	})
	m := newCommandTestModel(reg)
	resA := reg.Search("", "tab:feed", &m)
	if len(resA) != 1 || resA[0].CommandID != "a" {
		t.Fatalf("expected only command a in tab:feed, got %+v", resA)
	}
	resB := reg.Search("", "tab:drafts", &m)
	if len(resB) != 1 || !resB[0].Disabled || resB[0].Reason != "blocked" {
		t.Fatalf("expected disabled command in tab:drafts, got %+v", resB)
	}
}

func TestSearchSubstringRanksAheadOfFuzzy(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "profile", Name: "Go to Profile", Scopes: []string{"*"}},
		{ID: "compose", Name: "New Post", Scopes: []string{"*"}},
	})
	m := newCommandTestModel(reg)
	res := reg.Search("profile", "tab:feed", &m)
	if len(res) == 0 || res[0].CommandID != "profile" {
		t.Fatalf("expected substring match first, got %+v", res)
	}
}

func TestSearchToleratesTypos(t *testing.T) {
	reg := NewCommandRegistry([]Command{
		{ID: "drafts", Name: "Go to Drafts", Scopes: []string{"*"}},
	})
	m := newCommandTestModel(reg)
	res := reg.Search("darfts", "tab:feed", &m)
	if len(res) != 1 || res[0].CommandID != "drafts" {
		t.Fatalf("expected fuzzy match on one transposition, got %+v", res)
	}
}

func TestExecuteUnknownCommandReportsStatus(t *testing.T) {
	reg := NewCommandRegistry(nil)
	m := newCommandTestModel(reg)
	cmd := reg.Execute("nope", &m)
	if cmd == nil {
		t.Fatalf("expected a status command")
	}
	msg, ok := cmd().(StatusMsg)
	if !ok || msg.Text == "" {
		t.Fatalf("expected status message, got %#v", msg)
	}
}
