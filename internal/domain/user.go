// Package domain contains the core business entities for StarterKit.
// These are pure Go structs with no external dependencies, representing
// the fundamental concepts of the application.
package domain

import (
	"strings"
	"time"
)

// User represents a registered user in the system.
// The email address is the login identifier.
type User struct {
	// ID is the unique identifier for the user (auto-generated).
	ID int64 `json:"id"`

	// Email is the unique, normalized email address used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never be exposed in API responses or logs.
	PasswordHash string `json:"-"`

	// IsActive indicates whether the user account is active.
	// Stored for future account-disable support; no request path
	// currently consults it.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a new User with default values.
// The email is normalized before being stored.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail lowercases an email address and trims surrounding
// whitespace. All lookups and inserts go through this normalization,
// so at most one row exists per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
