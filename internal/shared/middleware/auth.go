package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/user"
	"library-backend/internal/shared/gqlerror"
	"library-backend/pkg/jwt"
)

const bearerPrefix = "bearer "

// TokenVerifier - pkg/jwt.Manager
type TokenVerifier interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// UserLookup - user.Service
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.UserDTO, error)
}

// Authenticate is the authorization gate. It runs before any resolver and
// attaches the caller's identity (or none) to the request context.
//
//   - no bearer token (no header, another scheme, empty value): unauthenticated, continue
//   - bearer token that fails verification: 401, request ends
//   - valid token for a user that no longer exists: unauthenticated, continue
func Authenticate(tokens TokenVerifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ Authorization header
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		// 2. Verify token
		claims, err := tokens.ValidateToken(token)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("rejected token")
			abortInvalidToken(c)
			return
		}

		// 3. Resolve the user the token names
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			abortInvalidToken(c)
			return
		}
		identity, err := users.FindByID(c.Request.Context(), userID)
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			c.Next()
			return
		case err != nil:
			log.Error().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gqlerror.Body(&gqlerror.InternalError{}))
			return
		}

		// 4. Attach identity
		c.Request = c.Request.WithContext(user.NewContext(c.Request.Context(), identity))
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// case-insensitive.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func abortInvalidToken(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gqlerror.Body(&gqlerror.AuthenticationError{Message: "invalid token"}))
}
