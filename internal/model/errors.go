package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Score errors
	ErrInvalidScore = errors.New("invalid score")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Game state errors
	ErrGameStateNotFound = errors.New("game state not found")
)
