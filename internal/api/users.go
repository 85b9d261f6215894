package api

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session. The returned token is installed
// on the client.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s Session
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &s); err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

// Logout invalidates the session server-side and clears the local token.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	c.token = ""
	return err
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, email, password, nickname, profileImage string) (User, error) {
	body := map[string]string{
		"email":         email,
		"password":      password,
		"nickname":      nickname,
		"profile_image": profileImage,
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/users/signup", body, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Me fetches the logged-in user's profile.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// UpdateProfile changes nickname and/or profile image.
func (c *Client) UpdateProfile(ctx context.Context, nickname, profileImage string) (User, error) {
	body := map[string]string{"nickname": nickname, "profile_image": profileImage}
	var u User
	if err := c.do(ctx, http.MethodPatch, "/users/me", body, &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPatch, "/users/me/password", body, nil)
}

// Withdraw deletes the account and clears the local token.
func (c *Client) Withdraw(ctx context.Context) error {
	err := c.do(ctx, http.MethodDelete, "/users/me", nil, nil)
	if err == nil {
		c.token = ""
	}
	return err
}
