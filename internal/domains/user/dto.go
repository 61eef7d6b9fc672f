package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ========================================
// AUTH DTOs
// ========================================

// CreateUserRequest - createUser mutation
type CreateUserRequest struct {
	Username       string `json:"username"`
	FavouriteGenre string `json:"favouriteGenre"`
	Password       string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 64),
			validation.Match(usernamePattern).Error("username may only contain letters, digits, '_', '.' and '-'"),
		),
		validation.Field(&r.FavouriteGenre,
			validation.Required.Error("favourite genre is required"),
			validation.Length(1, 64),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 72).Error("password must be 6-72 characters"),
		),
	)
}

// LoginRequest - login mutation
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - signed identity token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserDTO   `json:"user"`
}
