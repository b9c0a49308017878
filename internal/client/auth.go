package client

import (
	"context"
	"net/url"
)

// loginRequest is the body for POST /auth/login_process
type loginRequest struct {
	UserEmail string `json:"user_email"`
	UserPass  string `json:"user_pass"`
}

// registerRequest is the body for POST /auth/register
type registerRequest struct {
	UserEmail    string `json:"user_email"`
	UserUsername string `json:"user_username"`
	UserPass     string `json:"user_pass"`
}

// SessionStatus is the response of GET /auth/status. NewAccessToken, when
// set, is a rotated credential the caller must persist and re-adopt.
type SessionStatus struct {
	IsConnected    bool   `json:"isConnected"`
	NewAccessToken string `json:"newAccessToken,omitempty"`
}

type tokenEnvelope struct {
	Data string `json:"data"`
}

type messageEnvelope struct {
	Message string `json:"message"`
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var env tokenEnvelope
	err := c.Post(ctx, "/auth/login_process", loginRequest{
		UserEmail: email,
		UserPass:  password,
	}, &env)
	if err != nil {
		return "", err
	}
	return env.Data, nil
}

// Register creates a new account. It does not authenticate: the account
// must verify its email before it can log in.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	return c.Post(ctx, "/auth/register", registerRequest{
		UserEmail:    email,
		UserUsername: username,
		UserPass:     password,
	}, nil)
}

// Logout notifies the server that the session ends
func (c *Client) Logout(ctx context.Context) error {
	return c.Post(ctx, "/auth/logout", nil, nil)
}

// Status checks whether the current credential is still valid
func (c *Client) Status(ctx context.Context) (*SessionStatus, error) {
	var status SessionStatus
	if err := c.Get(ctx, "/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// VerifyEmail redeems an email-verification token and returns the
// server's confirmation message
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	var env messageEnvelope
	if err := c.Get(ctx, "/auth/verify-email/"+url.PathEscape(token), nil, &env); err != nil {
		return "", err
	}
	return env.Message, nil
}
