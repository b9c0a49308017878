package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gameverse/gameverse-go/internal/model"
)

// tokenClaims are the identity claims carried by the access token.
// The client has no signing key, so claims are decoded without
// verification; they only seed local state until the server-confirmed
// profile overwrites them.
type tokenClaims struct {
	UserID    int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	GameList  []int  `json:"game_list"`
	jwt.RegisteredClaims
}

// decodeClaims parses the token payload without signature verification
func decodeClaims(token string) (*tokenClaims, error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}
	return &claims, nil
}

// user builds a provisional User from the claims
func (c *tokenClaims) user() *model.User {
	gameList := c.GameList
	if gameList == nil {
		gameList = []int{}
	}
	return &model.User{
		ID:        c.UserID,
		Username:  c.Username,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		GameList:  gameList,
	}
}
