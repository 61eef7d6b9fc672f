// Package gqlerror holds the GraphQL-facing error taxonomy. Each type carries
// the extensions clients branch on.
package gqlerror

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// AuthenticationError - caller has no (or no acceptable) identity
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": CodeUnauthenticated}
}

// UserInputError - the arguments were rejected. InvalidArgs echoes them back.
type UserInputError struct {
	Message     string
	InvalidArgs map[string]interface{}
}

func (e *UserInputError) Error() string { return e.Message }

func (e *UserInputError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": CodeBadUserInput}
	if e.InvalidArgs != nil {
		ext["invalidArgs"] = e.InvalidArgs
	}
	return ext
}

// InternalError hides the cause from clients. Retryable marks transient store
// failures.
type InternalError struct {
	Retryable bool
}

func (e *InternalError) Error() string { return "internal server error" }

func (e *InternalError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code":      CodeInternal,
		"retryable": e.Retryable,
	}
}

// ========================================
// HTTP BODIES
// ========================================

// Extended is any error carrying GraphQL extensions.
type Extended interface {
	error
	Extensions() map[string]interface{}
}

type bodyError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Body wraps err in a GraphQL response body: {"errors":[{...}]}. Used when a
// request fails before reaching the executor.
func Body(err Extended) map[string]interface{} {
	return map[string]interface{}{
		"errors": []bodyError{{Message: err.Error(), Extensions: err.Extensions()}},
	}
}
