package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.Migrate("../../migrations"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestDraftRoundTrip(t *testing.T) {
	s := openTestStore(t)

	d := &Draft{Title: "hello", Content: "body", Images: []string{"a.png", "b.png"}}
	if err := s.SaveDraft(d); err != nil {
		t.Fatalf("save: %v", err)
	}
	if d.ID == "" {
		t.Fatalf("save should assign an id")
	}

	got, err := s.GetDraft(d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "hello" || got.Content != "body" {
		t.Fatalf("draft = %+v", got)
	}
	if len(got.Images) != 2 || got.Images[0] != "a.png" {
		t.Fatalf("images = %v", got.Images)
	}
}

func TestDraftUpsertKeepsID(t *testing.T) {
	s := openTestStore(t)

	d := &Draft{Title: "v1"}
	if err := s.SaveDraft(d); err != nil {
		t.Fatalf("save: %v", err)
	}
	id := d.ID
	d.Title = "v2"
	d.Images = []string{"x.png"}
	if err := s.SaveDraft(d); err != nil {
		t.Fatalf("resave: %v", err)
	}

	all, err := s.ListDrafts()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("drafts = %d, want 1", len(all))
	}
	if all[0].ID != id || all[0].Title != "v2" {
		t.Fatalf("draft = %+v", all[0])
	}
}

func TestDraftForPost(t *testing.T) {
	s := openTestStore(t)

	if err := s.SaveDraft(&Draft{PostID: 42, Title: "edit"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.DraftForPost(42)
	if err != nil {
		t.Fatalf("draft for post: %v", err)
	}
	if got.Title != "edit" {
		t.Fatalf("draft = %+v", got)
	}
	if _, err := s.DraftForPost(7); err != sql.ErrNoRows {
		t.Fatalf("missing draft: got %v, want ErrNoRows", err)
	}
}

func TestDeleteDraft(t *testing.T) {
	s := openTestStore(t)

	d := &Draft{Title: "gone"}
	if err := s.SaveDraft(d); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteDraft(d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetDraft(d.ID); err != sql.ErrNoRows {
		t.Fatalf("get after delete: got %v, want ErrNoRows", err)
	}
	if err := s.DeleteDraft("missing"); err != nil {
		t.Fatalf("deleting unknown id should not error: %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.LoadSession(); err != nil || ok {
		t.Fatalf("empty session: ok=%v err=%v", ok, err)
	}

	u := api.User{ID: 7, Email: "user@example.com", Nickname: "ellim"}
	if err := s.SaveSession(u); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got, ok, err := s.LoadSession()
	if err != nil || !ok {
		t.Fatalf("load session: ok=%v err=%v", ok, err)
	}
	if got.Nickname != "ellim" || got.ID != 7 {
		t.Fatalf("user = %+v", got)
	}

	// A second save replaces, not duplicates.
	u.Nickname = "renamed"
	if err := s.SaveSession(u); err != nil {
		t.Fatalf("resave session: %v", err)
	}
	got, _, _ = s.LoadSession()
	if got.Nickname != "renamed" {
		t.Fatalf("nickname = %q", got.Nickname)
	}

	if err := s.ClearSession(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.LoadSession(); ok {
		t.Fatalf("session should be gone")
	}
}
