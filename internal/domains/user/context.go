package user

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying the authenticated caller.
// A nil user marks the request as unauthenticated.
func NewContext(ctx context.Context, u *UserDTO) context.Context {
	return context.WithValue(ctx, contextKey{}, u)
}

// FromContext returns the caller attached by the authorization gate, or nil.
func FromContext(ctx context.Context) *UserDTO {
	u, _ := ctx.Value(contextKey{}).(*UserDTO)
	return u
}

// RequireIdentity returns the caller or ErrNotAuthenticated.
func RequireIdentity(ctx context.Context) (*UserDTO, error) {
	u := FromContext(ctx)
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}
