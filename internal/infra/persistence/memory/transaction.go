package memory

import (
	"context"
	"maps"

	"usersvc/internal/domain/entity"
	"usersvc/internal/domain/repository"
)

// transactionManager gives Store all-or-nothing semantics by snapshotting
// the user map and restoring it when the callback fails.
type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	repo repository.UserRepository
}

// NewUserRepository returns the repository bound to the open transaction.
func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return f.repo
}

// NewTransactionManager returns a TransactionManager over s.
func NewTransactionManager(s *Store) repository.TransactionManager {
	return &transactionManager{store: s}
}

// Execute runs fn while holding the writer lock.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	snapshot := tm.snapshot()
	committed := false
	defer func() {
		if !committed {
			tm.restore(snapshot)
		}
	}()

	if err := fn(&repositoryFactory{repo: &userRepository{store: tm.store, inTx: true}}); err != nil {
		return err
	}
	committed = true

	return nil
}

func (tm *transactionManager) snapshot() map[string]*entity.User {
	tm.store.mu.RLock()
	defer tm.store.mu.RUnlock()

	return maps.Clone(tm.store.users)
}

func (tm *transactionManager) restore(snapshot map[string]*entity.User) {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	tm.store.users = snapshot
}
