package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
)

// memoryRepository keeps books in insertion order. Authors are resolved
// through the author repository on every read, like the JOIN in postgres.
type memoryRepository struct {
	mu      sync.RWMutex
	books   []book.Book
	titles  map[string]struct{}
	authors author.Repository
}

// NewMemoryRepository returns an empty in-memory book store backed by authors.
func NewMemoryRepository(authors author.Repository) book.Repository {
	return &memoryRepository{
		titles:  make(map[string]struct{}),
		authors: authors,
	}
}

var _ author.BookCounter = (*memoryRepository)(nil)

func (r *memoryRepository) Create(ctx context.Context, b *book.Book) error {
	// Foreign key check
	if _, err := r.authors.FindByID(ctx, b.AuthorID); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return book.ErrAuthorNotFound
		}
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.titles[b.Title]; ok {
		return book.ErrDuplicateTitle
	}
	stored := b.Clone()
	stored.Author = nil
	r.books = append(r.books, *stored)
	r.titles[b.Title] = struct{}{}
	return nil
}

func (r *memoryRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	var authorID *uuid.UUID
	if filter.AuthorName != nil {
		a, err := r.authors.FindByName(ctx, *filter.AuthorName)
		if err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				return []book.Book{}, nil
			}
			return nil, err
		}
		authorID = &a.ID
	}

	r.mu.RLock()
	matched := make([]book.Book, 0, len(r.books))
	for _, b := range r.books {
		if authorID != nil && b.AuthorID != *authorID {
			continue
		}
		if filter.Genre != nil && !slices.Contains(b.Genres, *filter.Genre) {
			continue
		}
		matched = append(matched, *b.Clone())
	}
	r.mu.RUnlock()

	for i := range matched {
		a, err := r.authors.FindByID(ctx, matched[i].AuthorID)
		if err != nil {
			return nil, err
		}
		matched[i].Author = a
	}
	return matched, nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books), nil
}

func (r *memoryRepository) CountByAuthor(_ context.Context, authorID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, b := range r.books {
		if b.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) CountGroupedByAuthor(_ context.Context) (map[uuid.UUID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[uuid.UUID]int)
	for _, b := range r.books {
		counts[b.AuthorID]++
	}
	return counts, nil
}
