package usecase

import (
	"context"

	"usersvc/internal/domain/entity"
)

// PasswordCheckInput is a username and the plaintext password to check for it.
type PasswordCheckInput struct {
	Username string
	Password string
}

// PasswordCheckUsecase verifies a submitted password against the stored hash.
//
// Unknown users and wrong passwords are normal outcomes, not errors. An error is
// returned only when the stored hash is unreadable, the store fails, or the
// context ends before the comparison finishes.
type PasswordCheckUsecase interface {
	PasswordCheck(ctx context.Context, input *PasswordCheckInput) (*entity.VerificationOutcome, error)
}
