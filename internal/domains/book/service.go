package book

import "context"

// Service - Định nghĩa business logic methods
type Service interface {
	// AddBook runs the mutation pipeline: identity → validation → author
	// resolution → persist → publish
	AddBook(ctx context.Context, req AddBookRequest) (*Book, error)

	// ListBooks applies every filter given (author and genre narrow together)
	ListBooks(ctx context.Context, filter Filter) ([]Book, error)

	// CountBooks returns the exact number of books (never cached)
	CountBooks(ctx context.Context) (int, error)
}
