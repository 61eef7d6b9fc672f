package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/user"
)

// authorService implements author.Service interface
type authorService struct {
	repo  author.Repository  // Repository dependency (injected)
	books author.BookCounter // Derived bookCount source
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo author.Repository, books author.BookCounter) author.Service {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

// EditAuthor sets the birth year of an existing author.
func (s *authorService) EditAuthor(ctx context.Context, req author.EditAuthorRequest) (*author.Author, error) {
	// 1. AUTHENTICATION
	if _, err := user.RequireIdentity(ctx); err != nil {
		return nil, err
	}

	// 2. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 3. LOOKUP - unknown name is a null result, not an error
	a, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	// 4. UPDATE
	born := req.SetBornTo
	a.Born = &born
	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			// Removed between lookup and update
			return nil, nil
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	log.Info().Str("author_id", a.ID.String()).Int("born", born).Msg("author edited")
	return a, nil
}

// ListAuthors merges the author list with one grouped book aggregate,
// instead of counting books per author.
func (s *authorService) ListAuthors(ctx context.Context) ([]author.Summary, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	counts, err := s.books.CountGroupedByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books by author: %w", err)
	}

	summaries := make([]author.Summary, 0, len(authors))
	for _, a := range authors {
		summaries = append(summaries, author.Summary{Author: a, BookCount: counts[a.ID]})
	}
	return summaries, nil
}

func (s *authorService) CountAuthors(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *authorService) BookCount(ctx context.Context, authorID uuid.UUID) (int, error) {
	if authorID == uuid.Nil {
		return 0, author.ErrAuthorNotFound
	}
	return s.books.CountByAuthor(ctx, authorID)
}
