package book

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
)

// Book represents the main book entity. Immutable once persisted.
type Book struct {
	// Identity
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`

	// Publishing info
	Published int `json:"published" db:"published"` // Year

	// Relationships
	AuthorID uuid.UUID      `json:"author_id" db:"author_id"`
	Author   *author.Author `json:"author,omitempty" db:"-"` // Resolved on every read

	// Classification - order is preserved
	Genres []string `json:"genres" db:"genres"`

	// Timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Clone returns a deep copy including the resolved author.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	c := *b
	c.Author = b.Author.Clone()
	c.Genres = append([]string(nil), b.Genres...)
	return &c
}

// Filter narrows allBooks. Nil fields do not filter.
type Filter struct {
	AuthorName *string
	Genre      *string
}
