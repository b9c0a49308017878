package model

import "errors"

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoCredential     = errors.New("no stored credential")
)
