// Package repository defines data access interfaces for StarterKit.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"

	"github.com/prn-tf/starterkit/internal/domain"
)

// UserRepository defines the interface for user data access.
// Implementations receive already-normalized emails; normalization is the
// caller's responsibility (see domain.NormalizeEmail).
type UserRepository interface {
	// Create creates a new user. Returns domain.ErrEmailAlreadyRegistered
	// if a row with the same email exists. The insert is atomic: a failed
	// uniqueness check leaves no partial row behind.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update updates an existing user and refreshes updated_at.
	Update(ctx context.Context, user *domain.User) error

	// Delete deletes a user by ID.
	Delete(ctx context.Context, id int64) error

	// List returns users with pagination, newest first.
	List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error)

	// ExistsByEmail checks if a user with the given normalized email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// ListOptions contains pagination parameters.
type ListOptions struct {
	Limit  int
	Offset int
}

// ListResult contains a page of items plus the total count.
type ListResult[T any] struct {
	Items  []*T
	Total  int64
	Offset int
	Limit  int
}
