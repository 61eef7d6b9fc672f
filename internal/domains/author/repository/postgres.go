package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
	"library-backend/internal/infrastructure/database"
)

// postgresRepository implements author.Repository interface
type postgresRepository struct {
	pool *pgxpool.Pool // PostgreSQL connection pool
}

// NewPostgresRepository creates a new author repository instance
// Dependency injection pattern - receives pool from container
func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

const authorColumns = `id, name, born, created_at, updated_at`

// Create inserts a new author. authors_name_key makes the insert the
// arbiter under concurrency: the loser gets ErrDuplicateName.
func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
        INSERT INTO authors (id, name, born, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Born, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		// Check for unique constraint violation on name
		if database.IsUniqueViolation(err, "authors_name") {
			return author.ErrDuplicateName
		}
		return fmt.Errorf("failed to create author: %w", err)
	}

	return nil
}

// FindByName retrieves author by unique name
func (r *postgresRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE name = $1`
	return r.scanOne(ctx, query, name)
}

// FindByID retrieves author by UUID
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// Update sets the birth year
func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
        UPDATE authors
        SET born = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `

	err := r.pool.QueryRow(ctx, query, a.ID, a.Born).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return author.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to update author: %w", err)
	}
	return nil
}

// List retrieves every author ordered by name
func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]author.Author, 0)
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}
	return authors, nil
}

// Count returns the exact number of authors
func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) scanOne(ctx context.Context, query string, arg any) (*author.Author, error) {
	var a author.Author
	err := r.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Name, &a.Born, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author: %w", err)
	}
	return &a, nil
}
