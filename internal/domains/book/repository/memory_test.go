package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	authorrepo "library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/book"
)

func newBook(title string, a *author.Author, genres ...string) *book.Book {
	return &book.Book{
		ID:        uuid.New(),
		Title:     title,
		Published: 1965,
		AuthorID:  a.ID,
		Genres:    genres,
		CreatedAt: time.Now().UTC(),
	}
}

// exerciseRepository runs the shared Repository contract against any store.
func exerciseRepository(t *testing.T, authors author.Repository, books book.Repository) {
	ctx := context.Background()

	herbert := author.New("Frank Herbert")
	austen := author.New("Jane Austen")
	require.NoError(t, authors.Create(ctx, herbert))
	require.NoError(t, authors.Create(ctx, austen))

	require.NoError(t, books.Create(ctx, newBook("Dune", herbert, "scifi", "classic")))
	require.NoError(t, books.Create(ctx, newBook("Children of Dune", herbert, "scifi")))
	require.NoError(t, books.Create(ctx, newBook("Emma", austen, "classic")))

	t.Run("duplicate title", func(t *testing.T) {
		err := books.Create(ctx, newBook("Dune", austen))
		assert.ErrorIs(t, err, book.ErrDuplicateTitle)
	})

	t.Run("missing author", func(t *testing.T) {
		err := books.Create(ctx, newBook("Orphan", author.New("Ghost")))
		assert.ErrorIs(t, err, book.ErrAuthorNotFound)
	})

	titles := func(f book.Filter) []string {
		t.Helper()
		list, err := books.List(ctx, f)
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, b := range list {
			require.NotNil(t, b.Author)
			assert.Equal(t, b.AuthorID, b.Author.ID)
			out = append(out, b.Title)
		}
		return out
	}
	str := func(s string) *string { return &s }

	t.Run("list filters", func(t *testing.T) {
		assert.Equal(t, []string{"Dune", "Children of Dune", "Emma"}, titles(book.Filter{}))
		assert.Equal(t, []string{"Dune", "Children of Dune"}, titles(book.Filter{AuthorName: str("Frank Herbert")}))
		assert.Equal(t, []string{"Dune", "Emma"}, titles(book.Filter{Genre: str("classic")}))
		assert.Equal(t, []string{"Dune"}, titles(book.Filter{AuthorName: str("Frank Herbert"), Genre: str("classic")}))
		assert.Empty(t, titles(book.Filter{AuthorName: str("Nobody")}))
		assert.Empty(t, titles(book.Filter{Genre: str("romance")}))
	})

	t.Run("genres keep order", func(t *testing.T) {
		list, err := books.List(ctx, book.Filter{AuthorName: str("Frank Herbert"), Genre: str("classic")})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []string{"scifi", "classic"}, list[0].Genres)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := books.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, total)

		n, err := books.CountByAuthor(ctx, herbert.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		grouped, err := books.CountGroupedByAuthor(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{herbert.ID: 2, austen.ID: 1}, grouped)
	})
}

func TestMemoryRepository(t *testing.T) {
	authors := authorrepo.NewMemoryRepository()
	exerciseRepository(t, authors, NewMemoryRepository(authors))
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	authors := authorrepo.NewMemoryRepository()
	books := NewMemoryRepository(authors)

	a := author.New("Frank Herbert")
	require.NoError(t, authors.Create(ctx, a))
	b := newBook("Dune", a, "scifi")
	require.NoError(t, books.Create(ctx, b))

	b.Genres[0] = "mutated"
	list, err := books.List(ctx, book.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"scifi"}, list[0].Genres)
}
