// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"usersvc/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Usernames are compared exactly; implementations must not fold case.
type UserRepository interface {
	// FindByUsername retrieves a single user by username.
	// It returns ErrUserNotFound when no record exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List returns every stored user ordered by username.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user. The password must already be hashed.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites the stored record identified by user.Username.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given username.
	Delete(ctx context.Context, username string) error
}
