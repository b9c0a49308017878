package model

// User is the authenticated account as reported by the backend profile endpoint
type User struct {
	ID        int    `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`

	// GameList holds the ids of favorited games. Membership is what matters;
	// ordering is display-insignificant.
	GameList []int `json:"game_list"`
}

// HasGame reports whether the given game id is in the user's library
func (u *User) HasGame(gameID int) bool {
	for _, id := range u.GameList {
		if id == gameID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, used to snapshot state before optimistic mutations
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.GameList = append([]int(nil), u.GameList...)
	return &c
}
