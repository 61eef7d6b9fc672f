package user

import (
	"time"

	"github.com/google/uuid"
)

// User là domain entity - ánh xạ 1:1 với bảng users trong DB
type User struct {
	// Identity
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`

	// Profile
	FavouriteGenre string `db:"favourite_genre" json:"favourite_genre"`

	// Authentication
	PasswordHash string `db:"password_hash" json:"-"` // Never expose in JSON

	// Timestamps
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserDTO - Public user representation (safe to expose, safe to cache)
type UserDTO struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	FavouriteGenre string    `json:"favourite_genre"`
}

// ToDTO strips the credential from the entity.
func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		FavouriteGenre: u.FavouriteGenre,
	}
}
