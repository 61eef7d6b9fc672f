package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/infrastructure/database"
)

// postgresRepository - Raw SQL with pgxpool, squirrel for the dynamic filters
type postgresRepository struct {
	pool *pgxpool.Pool
	psql sq.StatementBuilderType
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{
		pool: pool,
		psql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var (
	_ book.Repository    = (*postgresRepository)(nil)
	_ author.BookCounter = (*postgresRepository)(nil)
)

// ============================================
// CREATE
// ============================================

// Create inserts a book. Store-level rejections are mapped to domain errors
// so the pipeline can report them as bad input.
func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (id, title, published, author_id, genres, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}

	_, err := r.pool.Exec(ctx, query, b.ID, b.Title, b.Published, b.AuthorID, genres, b.CreatedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "books_title"):
			return book.ErrDuplicateTitle
		case database.IsForeignKeyViolation(err):
			return book.ErrAuthorNotFound
		case database.IsConstraintViolation(err):
			return fmt.Errorf("%w: %v", book.ErrInvalidBook, err)
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// ============================================
// LIST BOOKS
// ============================================

// List returns books with their author joined in. Both filters narrow the result.
func (r *postgresRepository) List(ctx context.Context, filter book.Filter) ([]book.Book, error) {
	sb := r.psql.
		Select(
			"b.id", "b.title", "b.published", "b.genres", "b.created_at",
			"a.id", "a.name", "a.born", "a.created_at", "a.updated_at",
		).
		From("books b").
		Join("authors a ON a.id = b.author_id").
		OrderBy("b.created_at", "b.id")

	if filter.AuthorName != nil {
		sb = sb.Where(sq.Eq{"a.name": *filter.AuthorName})
	}
	if filter.Genre != nil {
		// GIN index on books.genres
		sb = sb.Where("b.genres @> ARRAY[?]::text[]", *filter.Genre)
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list books query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books query failed: %w", err)
	}
	defer rows.Close()

	books := make([]book.Book, 0)
	for rows.Next() {
		var (
			b book.Book
			a author.Author
		)
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Published, &b.Genres, &b.CreatedAt,
			&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.AuthorID = a.ID
		b.Author = &a
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

// ============================================
// COUNTS
// ============================================

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

// CountByAuthor uses books_author_id_idx
func (r *postgresRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, authorID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count books by author: %w", err)
	}
	return total, nil
}

// CountGroupedByAuthor returns one aggregate row per author that has books.
func (r *postgresRepository) CountGroupedByAuthor(ctx context.Context) (map[uuid.UUID]int, error) {
	query, args, err := r.psql.
		Select("author_id", "COUNT(*)").
		From("books").
		GroupBy("author_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build grouped count query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouped book count failed: %w", err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan grouped count: %w", err)
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
