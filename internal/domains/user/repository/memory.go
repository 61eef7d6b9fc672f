package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	user "library-backend/internal/domains/user"
)

// memoryRepository keeps users in process memory. Used by STORE_DRIVER=memory
// and by tests; a single mutex makes the username check-and-insert atomic.
type memoryRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]user.User
	byUsername map[string]uuid.UUID
}

// NewMemoryRepository returns an empty in-memory user store.
func NewMemoryRepository() user.Repository {
	return &memoryRepository{
		byID:       make(map[uuid.UUID]user.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[u.Username]; ok {
		return user.ErrUsernameTaken
	}
	r.byID[u.ID] = *u
	r.byUsername[u.Username] = u.ID
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}
