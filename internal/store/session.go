package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/100-hours-a-week/3-ellim-community-tui/internal/api"
)

// SaveSession caches the logged-in user so the app can greet and render
// ownership checks before the first round-trip. The token itself lives in the
// secrets store, not here.
func (s *Store) SaveSession(u api.User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO session (id, user_json, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_json = excluded.user_json, saved_at = excluded.saved_at`,
		string(payload), Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession returns the cached user, reporting false when none is stored.
func (s *Store) LoadSession() (api.User, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT user_json FROM session WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return api.User{}, false, nil
	}
	if err != nil {
		return api.User{}, false, fmt.Errorf("load session: %w", err)
	}
	var u api.User
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return api.User{}, false, fmt.Errorf("decode session user: %w", err)
	}
	return u, true, nil
}

// ClearSession drops the cached user on logout or withdrawal.
func (s *Store) ClearSession() error {
	_, err := s.db.Exec(`DELETE FROM session WHERE id = 1`)
	return err
}
