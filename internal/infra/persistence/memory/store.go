// Package memory is an in-process implementation of the user store, used when
// storage.driver is "memory" and by route-level tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"usersvc/internal/domain/entity"
	domainerrors "usersvc/internal/domain/errors"
	"usersvc/internal/domain/repository"

	"github.com/google/uuid"
)

// Store keeps users keyed by username.
type Store struct {
	// txMu serializes writers; a transaction holds it for its whole callback.
	txMu sync.Mutex

	mu    sync.RWMutex
	users map[string]*entity.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
	}
}

// userRepository implements repository.UserRepository over a Store.
type userRepository struct {
	store *Store
	inTx  bool
}

// NewUserRepository returns a repository writing directly to s.
func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{store: s}
}

func (repo *userRepository) lockWriter() func() {
	if repo.inTx {
		return func() {}
	}
	repo.store.txMu.Lock()

	return repo.store.txMu.Unlock
}

// FindByUsername implements repository.UserRepository.
func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	defer repo.store.mu.RUnlock()

	user, ok := repo.store.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

// List implements repository.UserRepository.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.store.mu.RLock()
	users := make([]*entity.User, 0, len(repo.store.users))
	for _, user := range repo.store.users {
		users = append(users, cloneUser(user))
	}
	repo.store.mu.RUnlock()

	slices.SortFunc(users, func(a, b *entity.User) int {
		return strings.Compare(a.Username, b.Username)
	})

	return users, nil
}

// Create implements repository.UserRepository.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer repo.lockWriter()()

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, exists := repo.store.users[user.Username]; exists {
		return domainerrors.ErrUserAlreadyExists.WithDetails("Username " + user.Username + " is already taken")
	}

	now := time.Now().UTC()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = now
	user.UpdatedAt = now
	repo.store.users[user.Username] = cloneUser(user)

	return nil
}

// Update implements repository.UserRepository.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer repo.lockWriter()()

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	existing, ok := repo.store.users[user.Username]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now().UTC()
	repo.store.users[user.Username] = cloneUser(user)

	return nil
}

// Delete implements repository.UserRepository.
func (repo *userRepository) Delete(ctx context.Context, username string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer repo.lockWriter()()

	repo.store.mu.Lock()
	defer repo.store.mu.Unlock()

	if _, ok := repo.store.users[username]; !ok {
		return repository.ErrUserNotFound
	}
	delete(repo.store.users, username)

	return nil
}

func cloneUser(user *entity.User) *entity.User {
	cloned := *user
	cloned.Emails = slices.Clone(user.Emails)
	cloned.Photos = slices.Clone(user.Photos)

	return &cloned
}
