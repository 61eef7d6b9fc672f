package user

import (
	"context"

	"github.com/google/uuid"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Authentication
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Identity lookup used by the authorization gate.
	// Returns: ErrUserNotFound when the user no longer exists
	FindByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}
