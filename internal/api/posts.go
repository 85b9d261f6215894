package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListPosts fetches one feed page. Pass cursor 0 for the newest page; feed
// pagination continues with the returned NextCursor while HasMore holds.
func (c *Client) ListPosts(ctx context.Context, cursor int64, limit int) (PostPage, error) {
	path := fmt.Sprintf("/posts?cursor=%d&limit=%d", cursor, limit)
	var page PostPage
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return PostPage{}, err
	}
	return page, nil
}

// GetPost fetches one post. The backend counts the view.
func (c *Client) GetPost(ctx context.Context, id int64) (Post, error) {
	var p Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &p); err != nil {
		return Post{}, err
	}
	return p, nil
}

type postBody struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// CreatePost publishes a new post. Image order is preserved as given.
func (c *Client) CreatePost(ctx context.Context, title, content string, images []string) (Post, error) {
	var p Post
	err := c.do(ctx, http.MethodPost, "/posts", postBody{Title: title, Content: content, Images: images}, &p)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// UpdatePost replaces title, content and image order of an owned post.
func (c *Client) UpdatePost(ctx context.Context, id int64, title, content string, images []string) (Post, error) {
	var p Post
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/posts/%d", id), postBody{Title: title, Content: content, Images: images}, &p)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// DeletePost removes an owned post.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, nil)
}

// ToggleLike flips the caller's like on a post and returns the new state.
func (c *Client) ToggleLike(ctx context.Context, id int64) (LikeResult, error) {
	var res LikeResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil, &res); err != nil {
		return LikeResult{}, err
	}
	return res, nil
}
