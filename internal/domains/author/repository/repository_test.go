package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/database/dbtest"
)

// exerciseAuthors runs the author.Repository contract against any store.
// The store must start empty.
func exerciseAuthors(t *testing.T, repo author.Repository) {
	ctx := context.Background()

	herbert := author.New("Frank Herbert")
	require.NoError(t, repo.Create(ctx, herbert))

	t.Run("find by name and id", func(t *testing.T) {
		got, err := repo.FindByName(ctx, "Frank Herbert")
		require.NoError(t, err)
		assert.Equal(t, herbert.ID, got.ID)
		assert.Nil(t, got.Born)

		got, err = repo.FindByID(ctx, herbert.ID)
		require.NoError(t, err)
		assert.Equal(t, "Frank Herbert", got.Name)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := repo.FindByName(ctx, "Nobody")
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
		_, err = repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("name matches exactly", func(t *testing.T) {
		_, err := repo.FindByName(ctx, " Frank Herbert ")
		assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		err := repo.Create(ctx, author.New("Frank Herbert"))
		assert.ErrorIs(t, err, author.ErrDuplicateName)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("update born", func(t *testing.T) {
		born := 1920
		edited := herbert.Clone()
		edited.Born = &born
		require.NoError(t, repo.Update(ctx, edited))

		got, err := repo.FindByID(ctx, herbert.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Born)
		assert.Equal(t, 1920, *got.Born)

		assert.ErrorIs(t, repo.Update(ctx, author.New("Nobody")), author.ErrAuthorNotFound)
	})

	t.Run("concurrent create has one winner", func(t *testing.T) {
		const n = 10
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.Create(ctx, author.New("Jane Austen"))
			}()
		}
		wg.Wait()
		close(errs)

		created := 0
		for err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, author.ErrDuplicateName)
		}
		assert.Equal(t, 1, created)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		authors, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, authors, 2)
		assert.Equal(t, "Frank Herbert", authors[0].Name)
		assert.Equal(t, "Jane Austen", authors[1].Name)
	})
}

func TestMemoryRepository(t *testing.T) {
	exerciseAuthors(t, NewMemoryRepository())
}

func TestPostgresRepository(t *testing.T) {
	db := dbtest.Open(t)

	exerciseAuthors(t, NewPostgresRepository(db.Pool))
}
