package user

import "errors"

// Repository-level errors
var (
	// Not Found
	ErrUserNotFound = errors.New("user not found")

	// Conflict
	ErrUsernameTaken = errors.New("username must be unique")
)

// Service-level (Business logic) errors
var (
	// Authentication
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("wrong credentials")

	// Rate Limiting
	ErrTooManyAttempts = errors.New("too many login attempts, please try again later")
)
