package client

import (
	"context"

	"github.com/gameverse/gameverse-go/internal/model"
)

// toggleRequest is the body for POST /user/library/toggle
type toggleRequest struct {
	GameID int `json:"gameId"`
}

// Me fetches the authenticated user's profile, favorites included
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ToggleLibrary flips the membership of a game in the user's library
func (c *Client) ToggleLibrary(ctx context.Context, gameID int) error {
	return c.Post(ctx, "/user/library/toggle", toggleRequest{GameID: gameID}, nil)
}
