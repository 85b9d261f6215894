package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListComments fetches a post's comment thread, oldest first.
func (c *Client) ListComments(ctx context.Context, postID int64) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/comments", postID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment appends a comment to a post.
func (c *Client) AddComment(ctx context.Context, postID int64, content string) (Comment, error) {
	body := map[string]string{"content": content}
	var cm Comment
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/comments", postID), body, &cm); err != nil {
		return Comment{}, err
	}
	return cm, nil
}

// UpdateComment edits an owned comment.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID int64, content string) (Comment, error) {
	body := map[string]string{"content": content}
	var cm Comment
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), body, &cm); err != nil {
		return Comment{}, err
	}
	return cm, nil
}

// DeleteComment removes an owned comment.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d/comments/%d", postID, commentID), nil, nil)
}
