// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"
	"usersvc/internal/usecase"

	"go.uber.org/fx"
)

const defaultProvider = "local"

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser hashes the password and stores a new user.
func (srv *userService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	user, err := srv.buildUser(input)
	if err != nil {
		return nil, err
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to create user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.String("username", user.Username), slog.Any("userID", user.ID))

	return user, nil
}

// FindOrCreate returns the existing user or creates it when missing, atomically.
func (srv *userService) FindOrCreate(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	var result *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		existing, err := userRepo.FindByUsername(ctx, input.Username)
		if err == nil {
			result = existing

			return nil
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to look up user")
		}

		user, err := srv.buildUser(input)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		srv.log(ctx).Info("User created by find-or-create", slog.String("username", user.Username))
		result = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute find-or-create transaction")
	}

	return result, nil
}

// FindUser looks a user up by username.
func (srv *userService) FindUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WithDetails("Did not find " + username)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// ListUsers returns every user.
func (srv *userService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	if users == nil {
		users = []*entity.User{}
	}

	return users, nil
}

// UpdateUser replaces the profile fields of an existing user.
func (srv *userService) UpdateUser(ctx context.Context, username string, input *usecase.UpdateUserInput) (*entity.User, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByUsername(ctx, username)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WithDetails("Did not find " + username)
		}
		if err != nil {
			return errors.Wrap(err, "failed to look up user")
		}

		if input.Password != "" {
			hashed, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password during update")
			}
			user.Password = hashed
		}
		if input.Provider != "" {
			user.Provider = input.Provider
		}
		user.FamilyName = input.FamilyName
		user.GivenName = input.GivenName
		user.MiddleName = input.MiddleName
		user.Emails = input.Emails
		user.Photos = input.Photos

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute update transaction")
	}

	srv.log(ctx).Debug("User updated", slog.String("username", username))

	return updated, nil
}

// DestroyUser deletes a user by username.
func (srv *userService) DestroyUser(ctx context.Context, username string) error {
	err := srv.userRepo.Delete(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WithDetails("Did not find requested " + username + " to delete")
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("username", username))

	return nil
}

func (srv *userService) buildUser(input *usecase.CreateUserInput) (*entity.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("username and password are required")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	provider := input.Provider
	if provider == "" {
		provider = defaultProvider
	}

	return &entity.User{
		Username:   input.Username,
		Password:   hashed,
		Provider:   provider,
		FamilyName: input.FamilyName,
		GivenName:  input.GivenName,
		MiddleName: input.MiddleName,
		Emails:     input.Emails,
		Photos:     input.Photos,
	}, nil
}
