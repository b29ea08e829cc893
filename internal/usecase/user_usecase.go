// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"usersvc/internal/domain/entity"
)

// --- Input DTOs ---

// CreateUserInput defines the data required to create a user.
type CreateUserInput struct {
	Username   string
	Password   string
	Provider   string
	FamilyName string
	GivenName  string
	MiddleName string
	Emails     []string
	Photos     []string
}

// UpdateUserInput carries the profile fields that replace the stored ones.
// An empty Password leaves the stored hash untouched.
type UpdateUserInput struct {
	Password   string
	Provider   string
	FamilyName string
	GivenName  string
	MiddleName string
	Emails     []string
	Photos     []string
}

// UserUsecase defines the account-management operations behind the CRUD routes.
// Every returned user still carries its password hash; callers sanitize before responding.
type UserUsecase interface {
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	FindOrCreate(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	FindUser(ctx context.Context, username string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	UpdateUser(ctx context.Context, username string, input *UpdateUserInput) (*entity.User, error)
	DestroyUser(ctx context.Context, username string) error
}
