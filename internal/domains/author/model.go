package author

import (
	"time"

	"github.com/google/uuid"
)

// Author represents the core Author entity
// BookCount is deliberately absent: it is derived on read (see Summary).
type Author struct {
	// Identity - UUID for distributed systems
	ID uuid.UUID `json:"id" db:"id"`

	// Basic Information
	Name string `json:"name" db:"name"` // Required, unique
	Born *int   `json:"born,omitempty" db:"born"`

	// Audit timestamps
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// New builds an author with no birth year, as created implicitly by addBook.
func New(name string) *Author {
	now := time.Now().UTC()
	return &Author{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy, so callers cannot mutate stored or published values.
func (a *Author) Clone() *Author {
	if a == nil {
		return nil
	}
	c := *a
	if a.Born != nil {
		born := *a.Born
		c.Born = &born
	}
	return &c
}

// Summary pairs an author with its derived book count.
type Summary struct {
	Author    Author
	BookCount int
}
