package author

import (
	"context"

	"github.com/google/uuid"
)

// Service defines business logic operations for Author domain
type Service interface {
	// EditAuthor sets the birth year of the named author
	// Business rules:
	// - Caller must be authenticated
	// - Unknown name is not an error: returns (nil, nil)
	// Errors: user.ErrNotAuthenticated, validation errors
	EditAuthor(ctx context.Context, req EditAuthorRequest) (*Author, error)

	// ListAuthors returns all authors with their derived book counts
	ListAuthors(ctx context.Context) ([]Summary, error)

	// CountAuthors returns the exact number of authors (never cached)
	CountAuthors(ctx context.Context) (int, error)

	// BookCount returns the number of books referencing the author
	BookCount(ctx context.Context, authorID uuid.UUID) (int, error)
}
