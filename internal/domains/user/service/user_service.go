package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/pkg/cache"
)

const (
	userCacheKeyPrefix   = "user:"
	loginFailKeyPrefix   = "login:fail:"
	userCacheTTL         = 15 * time.Minute
	defaultBcryptCost    = 12
	defaultMaxAttempts   = 5
	defaultLockoutWindow = 15 * time.Minute
)

// TokenIssuer signs identity tokens (pkg/jwt.Manager).
type TokenIssuer interface {
	GenerateToken(userID, username string) (string, time.Time, error)
}

// Options tunes password hashing and login throttling.
type Options struct {
	BcryptCost    int
	MaxAttempts   int
	LockoutWindow time.Duration
}

// userService implement user.Service interface
type userService struct {
	repo   user.Repository // Data access layer
	cache  cache.Cache     // Identity cache + failed login counters
	tokens TokenIssuer
	opts   Options
}

// NewUserService tạo service instance
// Inject repository qua constructor (Dependency Injection)
func NewUserService(repo user.Repository, c cache.Cache, tokens TokenIssuer, opts Options) user.Service {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = defaultBcryptCost
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.LockoutWindow == 0 {
		opts.LockoutWindow = defaultLockoutWindow
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &userService{
		repo:   repo,
		cache:  c,
		tokens: tokens,
		opts:   opts,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// CreateUser registers a user with a bcrypt-hashed credential.
func (s *userService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	// 1. VALIDATE INPUT
	req.Username = strings.TrimSpace(req.Username)
	req.FavouriteGenre = strings.TrimSpace(req.FavouriteGenre)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. HASH PASSWORD
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. PERSIST
	// Username uniqueness is enforced by the store, not by a pre-check
	newUser := &user.User{
		ID:             uuid.New(),
		Username:       req.Username,
		FavouriteGenre: req.FavouriteGenre,
		PasswordHash:   string(passwordHash),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, newUser); err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Str("user_id", newUser.ID.String()).Str("username", newUser.Username).Msg("user created")

	dto := newUser.ToDTO()
	return &dto, nil
}

// Login verifies the credential and returns a signed identity token.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	// 2. CHECK LOCKOUT
	failKey := loginFailKeyPrefix + strings.ToLower(req.Username)
	var failures int64
	if found, err := s.cache.Get(ctx, failKey, &failures); err == nil && found && failures >= int64(s.opts.MaxAttempts) {
		return nil, user.ErrTooManyAttempts
	}

	// 3. FIND USER + VERIFY PASSWORD
	// Same error for unknown username and wrong password
	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.recordFailure(ctx, failKey)
			return nil, user.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailure(ctx, failKey)
		return nil, user.ErrInvalidCredentials
	}

	// 4. GENERATE TOKEN
	token, expiresAt, err := s.tokens.GenerateToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	_ = s.cache.Delete(ctx, failKey)

	return &user.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u.ToDTO(),
	}, nil
}

func (s *userService) recordFailure(ctx context.Context, key string) {
	n, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to record login failure")
		return
	}
	if n == 1 {
		_ = s.cache.Expire(ctx, key, s.opts.LockoutWindow)
	}
}

// ========================================
// IDENTITY LOOKUP
// ========================================

// FindByID implements cache-aside over the repository. Only the DTO is
// cached so the credential never leaves the store.
func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	cacheKey := userCacheKeyPrefix + id.String()

	var dto user.UserDTO
	if found, err := s.cache.Get(ctx, cacheKey, &dto); err == nil && found {
		return &dto, nil
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto = u.ToDTO()
	_ = s.cache.Set(ctx, cacheKey, &dto, userCacheTTL)
	return &dto, nil
}
