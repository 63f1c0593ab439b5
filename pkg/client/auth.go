package client

import (
	"context"
	"errors"
	"fmt"
)

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	var resp registerResponse
	if err := c.post(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	if err := c.tokens.Save(resp.Token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return &resp.User, nil
}

// Logout discards the token locally. The server keeps no session, so the
// token stays valid until it expires.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Verify asks the server whether the stored token is still accepted. A
// rejected token is cleared and ErrUnauthorized returned.
func (c *Client) Verify(ctx context.Context) (bool, error) {
	if !c.LoggedIn() {
		return false, ErrNotLoggedIn
	}
	var resp verifyResponse
	if err := c.get(ctx, "/auth/verify", &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}
