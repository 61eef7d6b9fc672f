package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/user"
	"library-backend/pkg/jwt"
)

type stubUsers struct {
	users map[uuid.UUID]*user.UserDTO
	err   error
	calls int
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*user.UserDTO, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type gateResult struct {
	code     int
	body     string
	reached  bool
	identity *user.UserDTO
}

func runGate(t *testing.T, users UserLookup, header string) gateResult {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("0123456789abcdef0123456789abcdef", "library", time.Hour)

	var res gateResult
	router := gin.New()
	router.Use(RequestID(), Authenticate(tokens, users))
	router.POST("/graphql", func(c *gin.Context) {
		res.reached = true
		res.identity = user.FromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	res.code = w.Code
	res.body = w.Body.String()
	return res
}

func token(t *testing.T, id uuid.UUID) string {
	t.Helper()
	tokens := jwt.NewManager("0123456789abcdef0123456789abcdef", "library", time.Hour)
	s, _, err := tokens.GenerateToken(id.String(), "alice")
	require.NoError(t, err)
	return s
}

func TestAuthenticate(t *testing.T) {
	alice := &user.UserDTO{ID: uuid.New(), Username: "alice", FavouriteGenre: "scifi"}
	users := &stubUsers{users: map[uuid.UUID]*user.UserDTO{alice.ID: alice}}
	const invalidBody = `{"errors":[{"message":"invalid token","extensions":{"code":"UNAUTHENTICATED"}}]}`

	t.Run("no header is unauthenticated", func(t *testing.T) {
		res := runGate(t, users, "")
		assert.True(t, res.reached)
		assert.Nil(t, res.identity)
	})

	t.Run("valid bearer token attaches identity", func(t *testing.T) {
		res := runGate(t, users, "Bearer "+token(t, alice.ID))
		require.True(t, res.reached)
		assert.Equal(t, alice, res.identity)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		res := runGate(t, users, "bEaReR "+token(t, alice.ID))
		require.True(t, res.reached)
		assert.Equal(t, alice, res.identity)
	})

	t.Run("deleted user is unauthenticated", func(t *testing.T) {
		res := runGate(t, users, "Bearer "+token(t, uuid.New()))
		assert.True(t, res.reached)
		assert.Nil(t, res.identity)
	})

	for name, header := range map[string]string{
		"basic scheme": "Basic dXNlcjpwYXNz",
		"empty bearer": "Bearer ",
		"bare scheme":  "Bearer",
		"no scheme":    token(t, alice.ID),
	} {
		t.Run(name+" is unauthenticated", func(t *testing.T) {
			res := runGate(t, users, header)
			assert.True(t, res.reached)
			assert.Nil(t, res.identity)
		})
	}

	for name, header := range map[string]string{
		"bad signature": "Bearer " + token(t, alice.ID) + "x",
		"garbage token": "Bearer not-a-jwt",
		"lowercase bad": "bearer " + token(t, alice.ID) + "x",
	} {
		t.Run(name+" is rejected", func(t *testing.T) {
			res := runGate(t, users, header)
			assert.False(t, res.reached)
			assert.Equal(t, http.StatusUnauthorized, res.code)
			assert.JSONEq(t, invalidBody, res.body)
		})
	}

	t.Run("store failure is internal", func(t *testing.T) {
		failing := &stubUsers{err: errors.New("connection refused")}
		res := runGate(t, failing, "Bearer "+token(t, alice.ID))
		assert.False(t, res.reached)
		assert.Equal(t, http.StatusInternalServerError, res.code)
		assert.Contains(t, res.body, "INTERNAL_SERVER_ERROR")
	})
}

func TestRecoveryReturnsGraphQLBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(), RequestID())
	router.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"errors":[{"message":"internal server error","extensions":{"code":"INTERNAL_SERVER_ERROR","retryable":false}}]}`, w.Body.String())
}

func TestRequestIDPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextKeyRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}
