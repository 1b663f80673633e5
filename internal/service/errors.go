// Package service provides business logic services for StarterKit.
package service

import "errors"

// Common service errors.
var (
	// User errors
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUserInactive           = errors.New("user is inactive")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidPassword        = errors.New("invalid password: must be at least 8 characters with a letter and a digit")
	ErrInvalidEmail           = errors.New("invalid email format")

	// General errors
	ErrInternalError = errors.New("internal server error")
)
