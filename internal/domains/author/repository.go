package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for Author data access operations
type Repository interface {
	// Create inserts a new author
	// Errors: ErrDuplicateName if the name is taken, including by a concurrent insert
	Create(ctx context.Context, author *Author) error

	// FindByName retrieves author by its unique name
	// Returns: ErrAuthorNotFound if not exists
	FindByName(ctx context.Context, name string) (*Author, error)

	// FindByID retrieves author by UUID
	// Returns: ErrAuthorNotFound if not exists
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Update persists the mutable fields (born)
	// Returns: ErrAuthorNotFound if not exists
	Update(ctx context.Context, author *Author) error

	// List returns every author ordered by name
	List(ctx context.Context) ([]Author, error)

	// Count returns the exact number of authors
	Count(ctx context.Context) (int, error)
}

// BookCounter exposes the indexed book aggregates the author read side needs.
// Implemented by the book repositories.
type BookCounter interface {
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	CountGroupedByAuthor(ctx context.Context) (map[uuid.UUID]int, error)
}
