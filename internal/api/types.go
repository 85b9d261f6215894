package api

import "time"

// User is a community member.
type User struct {
	ID           int64     `json:"user_id"`
	Email        string    `json:"email"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// Post is a community post. Images holds attachment URLs in display order;
// the order is what the composer's drag reorder manipulates.
type Post struct {
	ID           int64     `json:"post_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       User      `json:"author"`
	Images       []string  `json:"images"`
	LikeCount    int       `json:"like_count"`
	ViewCount    int       `json:"view_count"`
	CommentCount int       `json:"comment_count"`
	Liked        bool      `json:"liked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Comment is one entry in a post's comment thread.
type Comment struct {
	ID        int64     `json:"comment_id"`
	PostID    int64     `json:"post_id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPage is one page of the feed. NextCursor is the cursor for the page
// after this one; HasMore is false on the last page.
type PostPage struct {
	Posts      []Post `json:"posts"`
	NextCursor int64  `json:"next_cursor"`
	HasMore    bool   `json:"has_more"`
}

// LikeResult reports the state after a like toggle.
type LikeResult struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// Session is what a successful login returns.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
