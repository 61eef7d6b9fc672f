package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
)

// bookService implements book.Service: the addBook mutation pipeline and
// the book side of the read façade.
type bookService struct {
	books   book.Repository
	authors author.Repository
	events  book.EventPublisher
}

// NewBookService - Constructor
func NewBookService(books book.Repository, authors author.Repository, events book.EventPublisher) book.Service {
	return &bookService{
		books:   books,
		authors: authors,
		events:  events,
	}
}

// AddBook persists a book and broadcasts it. Either the book is stored and
// published, or neither happens; an author created in step 3 survives a
// failed book insert.
func (s *bookService) AddBook(ctx context.Context, req book.AddBookRequest) (*book.Book, error) {
	// 1. AUTHENTICATION - nothing is read or written without an identity
	caller, err := user.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	// 2. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 3. RESOLVE AUTHOR (create-if-absent)
	a, err := s.resolveAuthor(ctx, req.Author)
	if err != nil {
		return nil, err
	}

	// 4. PERSIST BOOK
	genres := req.Genres
	if genres == nil {
		genres = []string{}
	}
	b := &book.Book{
		ID:        uuid.New(),
		Title:     req.Title,
		Published: req.Published,
		AuthorID:  a.ID,
		Author:    a,
		Genres:    genres,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.books.Create(ctx, b); err != nil {
		// Input-shaped failures are reported, not retried
		return nil, fmt.Errorf("create book: %w", err)
	}

	// 5. PUBLISH - subscribers get their own copy with the author denormalised
	delivered := s.events.Publish(book.TopicBookAdded, b.Clone())

	log.Info().
		Str("book_id", b.ID.String()).
		Str("title", b.Title).
		Str("author", a.Name).
		Str("by", caller.Username).
		Int("subscribers", delivered).
		Msg("book added")

	return b, nil
}

// resolveAuthor finds the author by name or creates it. A duplicate-name
// error means a concurrent request won the insert; the lookup is retried once.
func (s *bookService) resolveAuthor(ctx context.Context, name string) (*author.Author, error) {
	a, err := s.authors.FindByName(ctx, name)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("find author: %w", err)
	}

	a = author.New(name)
	if err := a.Validate(); err != nil {
		return nil, err
	}

	err = s.authors.Create(ctx, a)
	switch {
	case err == nil:
		log.Debug().Str("author_id", a.ID.String()).Str("name", name).Msg("author created")
		return a, nil
	case errors.Is(err, author.ErrDuplicateName):
		a, err = s.authors.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("find author after concurrent create: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("create author: %w", err)
	}
}

// ListBooks - both filters narrow the result when given
func (s *bookService) ListBooks(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	books, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *bookService) CountBooks(ctx context.Context) (int, error) {
	return s.books.Count(ctx)
}
