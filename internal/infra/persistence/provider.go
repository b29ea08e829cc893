// Package persistence selects the user store backend from configuration.
package persistence

import (
	"log/slog"

	"usersvc/config"
	"usersvc/internal/domain/repository"
	"usersvc/internal/errors"
	"usersvc/internal/infra/persistence/memory"
	"usersvc/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// StorageParams holds dependencies for the user store, injected by Fx.
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// StorageResult exposes the repository and transaction manager of one backend.
type StorageResult struct {
	fx.Out

	UserRepo  repository.UserRepository
	TxManager repository.TransactionManager
}

// NewStorage builds the backend named by storage.driver.
func NewStorage(params StorageParams) (StorageResult, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory user store, data is lost on restart")
		store := memory.NewStore()

		return StorageResult{
			UserRepo:  memory.NewUserRepository(store),
			TxManager: memory.NewTransactionManager(store),
		}, nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lc:     params.Lc,
			Config: params.Config,
			Logger: params.Logger,
		})
		if err != nil {
			return StorageResult{}, err
		}
		params.Logger.Info("Using PostgreSQL user store")

		return StorageResult{
			UserRepo:  postgres.NewUserRepository(db),
			TxManager: postgres.NewTransactionManager(db),
		}, nil

	default:
		return StorageResult{}, errors.Errorf("unknown storage driver: %q", params.Config.Storage.Driver)
	}
}
