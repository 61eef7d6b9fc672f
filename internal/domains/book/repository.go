package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository - Định nghĩa data access methods
type Repository interface {
	// Create persists a book referencing an existing author
	// Errors: ErrDuplicateTitle, ErrAuthorNotFound, ErrInvalidBook
	Create(ctx context.Context, book *Book) error

	// List returns books matching the filter, author resolved, oldest first
	List(ctx context.Context, filter Filter) ([]Book, error)

	// Count returns the exact number of books
	Count(ctx context.Context) (int, error)

	// CountByAuthor / CountGroupedByAuthor back Author.bookCount
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	CountGroupedByAuthor(ctx context.Context) (map[uuid.UUID]int, error)
}
