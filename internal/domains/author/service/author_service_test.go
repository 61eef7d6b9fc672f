package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/domains/user"
)

// countsByAuthor is a fixed author.BookCounter.
type countsByAuthor map[uuid.UUID]int

func (c countsByAuthor) CountByAuthor(_ context.Context, id uuid.UUID) (int, error) {
	return c[id], nil
}

func (c countsByAuthor) CountGroupedByAuthor(context.Context) (map[uuid.UUID]int, error) {
	return c, nil
}

func authed() context.Context {
	return user.NewContext(context.Background(), &user.UserDTO{ID: uuid.New(), Username: "alice"})
}

func seed(t *testing.T, names ...string) (author.Repository, []*author.Author) {
	t.Helper()
	repo := repository.NewMemoryRepository()
	var out []*author.Author
	for _, name := range names {
		a := author.New(name)
		require.NoError(t, repo.Create(context.Background(), a))
		out = append(out, a)
	}
	return repo, out
}

func TestEditAuthor(t *testing.T) {
	repo, _ := seed(t, "Frank Herbert")
	svc := NewAuthorService(repo, countsByAuthor{})

	a, err := svc.EditAuthor(authed(), author.EditAuthorRequest{Name: "Frank Herbert", SetBornTo: 1920})
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NotNil(t, a.Born)
	assert.Equal(t, 1920, *a.Born)

	stored, err := repo.FindByName(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	assert.Equal(t, 1920, *stored.Born)
}

func TestEditAuthorUnknownIsNull(t *testing.T) {
	repo, _ := seed(t, "Frank Herbert")
	svc := NewAuthorService(repo, countsByAuthor{})

	a, err := svc.EditAuthor(authed(), author.EditAuthorRequest{Name: "Nobody", SetBornTo: 1900})
	assert.NoError(t, err)
	assert.Nil(t, a)

	n, _ := svc.CountAuthors(context.Background())
	assert.Equal(t, 1, n)
}

func TestEditAuthorUnauthenticated(t *testing.T) {
	repo, _ := seed(t, "Frank Herbert")
	svc := NewAuthorService(repo, countsByAuthor{})

	_, err := svc.EditAuthor(context.Background(), author.EditAuthorRequest{Name: "Frank Herbert", SetBornTo: 1920})
	assert.ErrorIs(t, err, user.ErrNotAuthenticated)

	stored, err := repo.FindByName(context.Background(), "Frank Herbert")
	require.NoError(t, err)
	assert.Nil(t, stored.Born)
}

func TestEditAuthorValidation(t *testing.T) {
	repo, _ := seed(t)
	svc := NewAuthorService(repo, countsByAuthor{})

	for _, name := range []string{"", "  ", " Jane Austen", "Jane Austen "} {
		_, err := svc.EditAuthor(authed(), author.EditAuthorRequest{Name: name, SetBornTo: 1920})
		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs, "name %q", name)
	}
}

func TestListAuthorsWithCounts(t *testing.T) {
	repo, authors := seed(t, "Jane Austen", "Frank Herbert")
	svc := NewAuthorService(repo, countsByAuthor{authors[1].ID: 3})

	summaries, err := svc.ListAuthors(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	got := map[string]int{}
	for _, s := range summaries {
		got[s.Author.Name] = s.BookCount
	}
	assert.Equal(t, map[string]int{"Jane Austen": 0, "Frank Herbert": 3}, got)

	n, err := svc.BookCount(context.Background(), authors[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = svc.BookCount(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
