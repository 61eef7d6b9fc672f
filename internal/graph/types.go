package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
)

// BookResolver - type Book
type BookResolver struct {
	b       *book.Book
	authors author.Service
}

func (r *BookResolver) ID() graphql.ID   { return graphql.ID(r.b.ID.String()) }
func (r *BookResolver) Title() string    { return r.b.Title }
func (r *BookResolver) Published() int32 { return int32(r.b.Published) }

func (r *BookResolver) Genres() []string {
	if r.b.Genres == nil {
		return []string{}
	}
	return r.b.Genres
}

// Author is resolved by the store on every read, so it is always present.
func (r *BookResolver) Author() *AuthorResolver {
	a := r.b.Author
	if a == nil {
		a = &author.Author{ID: r.b.AuthorID}
	}
	return &AuthorResolver{a: a, svc: r.authors}
}

// AuthorResolver - type Author. bookCount is preloaded for allAuthors and
// counted on demand elsewhere.
type AuthorResolver struct {
	a         *author.Author
	bookCount *int
	svc       author.Service
}

func (r *AuthorResolver) ID() graphql.ID { return graphql.ID(r.a.ID.String()) }
func (r *AuthorResolver) Name() string   { return r.a.Name }

func (r *AuthorResolver) Born() *int32 {
	if r.a.Born == nil {
		return nil
	}
	born := int32(*r.a.Born)
	return &born
}

func (r *AuthorResolver) BookCount(ctx context.Context) (int32, error) {
	if r.bookCount != nil {
		return int32(*r.bookCount), nil
	}
	n, err := r.svc.BookCount(ctx, r.a.ID)
	if err != nil {
		return 0, resolverError("Author.bookCount", err, nil)
	}
	return int32(n), nil
}

// UserResolver - type User
type UserResolver struct {
	u *user.UserDTO
}

func (r *UserResolver) ID() graphql.ID         { return graphql.ID(r.u.ID.String()) }
func (r *UserResolver) Username() string       { return r.u.Username }
func (r *UserResolver) FavouriteGenre() string { return r.u.FavouriteGenre }

// TokenResolver - type Token
type TokenResolver struct {
	value string
}

func (r *TokenResolver) Value() string { return r.value }
