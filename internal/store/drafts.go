package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Draft is locally saved composer state. PostID is 0 for a draft of a new
// post and the post's id when editing. Image order is significant.
type Draft struct {
	ID        string
	PostID    int64
	Title     string
	Content   string
	Images    []string
	UpdatedAt time.Time
}

// SaveDraft inserts or updates a draft. A draft with an empty ID gets one.
func (s *Store) SaveDraft(d *Draft) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	images, err := json.Marshal(d.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	d.UpdatedAt = Now()
	_, err = s.db.Exec(`
		INSERT INTO drafts (id, post_id, title, content, images, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			post_id = excluded.post_id,
			title = excluded.title,
			content = excluded.content,
			images = excluded.images,
			updated_at = excluded.updated_at`,
		d.ID, d.PostID, d.Title, d.Content, string(images), d.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// GetDraft loads one draft; sql.ErrNoRows when absent.
func (s *Store) GetDraft(id string) (Draft, error) {
	row := s.db.QueryRow(`SELECT id, post_id, title, content, images, updated_at FROM drafts WHERE id = ?`, id)
	return scanDraft(row)
}

// DraftForPost returns the draft editing the given post, if any.
func (s *Store) DraftForPost(postID int64) (Draft, error) {
	row := s.db.QueryRow(`SELECT id, post_id, title, content, images, updated_at FROM drafts WHERE post_id = ? ORDER BY updated_at DESC LIMIT 1`, postID)
	return scanDraft(row)
}

// ListDrafts returns all drafts, most recently touched first.
func (s *Store) ListDrafts() ([]Draft, error) {
	rows, err := s.db.Query(`SELECT id, post_id, title, content, images, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()
	var out []Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDraft removes a draft; deleting an unknown id is not an error.
func (s *Store) DeleteDraft(id string) error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraft(row rowScanner) (Draft, error) {
	var d Draft
	var images string
	var updated string
	if err := row.Scan(&d.ID, &d.PostID, &d.Title, &d.Content, &images, &updated); err != nil {
		if err == sql.ErrNoRows {
			return Draft{}, err
		}
		return Draft{}, fmt.Errorf("scan draft: %w", err)
	}
	if images != "" {
		if err := json.Unmarshal([]byte(images), &d.Images); err != nil {
			return Draft{}, fmt.Errorf("decode images: %w", err)
		}
	}
	t, err := time.Parse(time.RFC3339, updated)
	if err != nil {
		return Draft{}, fmt.Errorf("parse updated_at: %w", err)
	}
	d.UpdatedAt = t
	return d, nil
}
