package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

// memoryRepository is the in-process Entity Store for authors.
// Create checks and inserts under one lock, giving the same
// create-if-absent guarantee as the unique index in postgres.
type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*author.Author
	byName map[string]uuid.UUID
}

// NewMemoryRepository returns an empty in-memory author store.
func NewMemoryRepository() author.Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*author.Author),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) Create(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[a.Name]; ok {
		return author.ErrDuplicateName
	}
	r.byID[a.ID] = a.Clone()
	r.byName[a.Name] = a.ID
	return nil
}

func (r *memoryRepository) FindByName(_ context.Context, name string) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return a.Clone(), nil
}

func (r *memoryRepository) Update(_ context.Context, a *author.Author) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[a.ID]
	if !ok {
		return author.ErrAuthorNotFound
	}
	updated := stored.Clone()
	updated.Born = a.Clone().Born
	updated.UpdatedAt = time.Now().UTC()
	r.byID[a.ID] = updated
	a.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *memoryRepository) List(_ context.Context) ([]author.Author, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	authors := make([]author.Author, 0, len(r.byID))
	for _, a := range r.byID {
		authors = append(authors, *a.Clone())
	}
	sort.Slice(authors, func(i, j int) bool { return authors[i].Name < authors[j].Name })
	return authors, nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}
