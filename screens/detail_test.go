package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/100-hours-a-week/3-ellim-community-tui/core"
	"github.com/100-hours-a-week/3-ellim-community-tui/core/binding"
	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
)

func newDetailScreen(t *testing.T) (*DetailScreen, *binding.Registry) {
	t.Helper()
	m := core.NewModel(nil, core.NewKeyRegistry(core.DefaultKeyBindings()), core.NewCommandRegistry(nil), binding.NewRegistry(nil), nil, nil, nil)
	s, _ := NewDetailScreen(&m, 7)
	s.Update(detailLoadedMsg{
		post: api.Post{ID: 7, Title: "hello", Content: "body", LikeCount: 1},
		comments: []api.Comment{
			{ID: 11, PostID: 7, Content: "first", Author: api.User{ID: 99}},
		},
	})
	return s, m.Bindings()
}

func TestDetailLikeKeyAndClickShareOneBinding(t *testing.T) {
	s, reg := newDetailScreen(t)
	if got := reg.Handlers(s.likeBtn, "click"); got != 1 {
		t.Fatalf("like handlers = %d, want 1", got)
	}

	_, cmd, _ := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if cmd == nil {
		t.Fatalf("l should dispatch the like binding")
	}

	s.View(60, 30)
	if s.likeLine < 0 {
		t.Fatalf("render should record the like button line")
	}
	handled, cmd := s.HandleMouse(s.app, tea.MouseMsg{
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, Y: s.likeLine,
	})
	if !handled || cmd == nil {
		t.Fatalf("click on the button line should dispatch the same binding")
	}
}

func TestDetailScopeTeardownRemovesLikeBinding(t *testing.T) {
	s, reg := newDetailScreen(t)
	if removed := reg.UnregisterScope(s.Scope()); removed != 1 {
		t.Fatalf("teardown removed %d, want 1", removed)
	}
	if got := reg.Handlers(s.likeBtn, "click"); got != 0 {
		t.Fatalf("like handler survived teardown")
	}
}

func TestDetailCloseReleasesLikeTarget(t *testing.T) {
	s, reg := newDetailScreen(t)
	btn := s.likeBtn

	reg.UnregisterScope(s.Scope())
	s.Close(reg)
	if reg.Valid(btn) {
		t.Fatalf("like target should be gone after close")
	}

	// Reopening the same post must get a live target, not the stale handle.
	s2, _ := NewDetailScreen(s.app, 7)
	if !reg.Valid(s2.likeBtn) {
		t.Fatalf("reopened screen should hold a valid target")
	}
}

func TestDetailLikeResultUpdatesPost(t *testing.T) {
	s, _ := newDetailScreen(t)
	s.Update(likeDoneMsg{result: api.LikeResult{Liked: true, LikeCount: 2}})
	if !s.post.Liked || s.post.LikeCount != 2 {
		t.Fatalf("post not updated: %+v", s.post)
	}
}

func TestDetailEditOwnCommentPrefillsInput(t *testing.T) {
	s, _ := newDetailScreen(t)
	s.app.User = api.User{ID: 99}
	s.selected = 0
	s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if !s.commenting || s.editingID != 11 {
		t.Fatalf("expected edit mode for comment 11")
	}
	if s.input.Value() != "first" {
		t.Fatalf("input not prefilled: %q", s.input.Value())
	}
}
