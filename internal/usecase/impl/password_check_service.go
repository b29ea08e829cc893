package impl

import (
	"context"
	"log/slog"
	"time"

	"usersvc/config"
	deliverycontext "usersvc/internal/delivery/context"
	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
	"usersvc/internal/domain/service"
	"usersvc/internal/errors"
	"usersvc/internal/infra/metrics"
	"usersvc/internal/usecase"

	"go.uber.org/fx"
)

// passwordCheckService implements the PasswordCheckUsecase interface.
type passwordCheckService struct {
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	metrics       *metrics.Metrics
	verifyTimeout time.Duration
	logger        *slog.Logger
}

// PasswordCheckServiceParams holds dependencies for the password check, injected by Fx.
type PasswordCheckServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Metrics  *metrics.Metrics `optional:"true"`
	Config   *config.Config
	Logger   *slog.Logger
}

// NewPasswordCheckService is the constructor for passwordCheckService.
func NewPasswordCheckService(params PasswordCheckServiceParams) usecase.PasswordCheckUsecase {
	var verifyTimeout time.Duration
	if params.Config != nil && params.Config.Auth != nil {
		verifyTimeout = params.Config.Auth.VerifyTimeout
	}

	return &passwordCheckService{
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		metrics:       params.Metrics,
		verifyTimeout: verifyTimeout,
		logger:        params.Logger,
	}
}

func (srv *passwordCheckService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PasswordCheck runs the lookup and comparison for one username/password pair.
func (srv *passwordCheckService) PasswordCheck(ctx context.Context, input *usecase.PasswordCheckInput) (*entity.VerificationOutcome, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return srv.notFound(input.Username), nil
	}
	if err != nil {
		srv.metrics.RecordPasswordCheck(metrics.OutcomeError)

		return nil, errors.Wrap(err, "failed to find user for password check")
	}

	// The store must hand back the record that was asked for; anything else is treated as a miss.
	if user == nil || user.Username != input.Username {
		if user != nil {
			srv.log(ctx).Warn("User store returned a different username",
				slog.String("requested", input.Username),
				slog.String("returned", user.Username),
			)
		}

		return srv.notFound(input.Username), nil
	}

	matched, err := srv.verify(ctx, input.Password, user.Password)
	if err != nil {
		srv.metrics.RecordPasswordCheck(metrics.OutcomeError)
		srv.log(ctx).Error("Password verification failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	if !matched {
		srv.metrics.RecordPasswordCheck(metrics.OutcomeMismatch)

		return &entity.VerificationOutcome{
			Check:    false,
			Username: input.Username,
			Message:  entity.MessageIncorrectPassword,
		}, nil
	}

	srv.metrics.RecordPasswordCheck(metrics.OutcomeMatched)

	return &entity.VerificationOutcome{
		Check:    true,
		Username: user.Username,
	}, nil
}

func (srv *passwordCheckService) notFound(username string) *entity.VerificationOutcome {
	srv.metrics.RecordPasswordCheck(metrics.OutcomeNotFound)

	return &entity.VerificationOutcome{
		Check:    false,
		Username: username,
		Message:  entity.MessageUserNotFound,
	}
}

type verifyResult struct {
	matched bool
	err     error
}

// verify runs the slow comparison on its own goroutine and waits for it or for ctx.
// A comparison cannot be interrupted: when ctx ends first it still runs to
// completion and its result is dropped.
func (srv *passwordCheckService) verify(ctx context.Context, candidate, hash string) (bool, error) {
	if srv.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, srv.verifyTimeout)
		defer cancel()
	}

	done := make(chan verifyResult, 1)
	go func() {
		start := time.Now()
		matched, err := srv.hasher.Verify(candidate, hash)
		srv.metrics.ObserveVerify(time.Since(start))
		done <- verifyResult{matched: matched, err: err}
	}()

	select {
	case res := <-done:
		return res.matched, res.err
	case <-ctx.Done():
		return false, errors.Wrap(ctx.Err(), "password verification abandoned")
	}
}
