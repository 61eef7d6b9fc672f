package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/author"
)

const (
	MaxTitleLength = 255
	MaxGenreLength = 64
)

// AddBookRequest - addBook(title, published, author, genres)
type AddBookRequest struct {
	Title     string   `json:"title"`
	Published int      `json:"published"`
	Author    string   `json:"author"`
	Genres    []string `json:"genres"`
}

func (r AddBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(2, MaxTitleLength).Error("title must be at least 2 characters"),
			author.Trimmed,
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, author.MaxNameLength),
			author.Trimmed,
		),
		// An empty list is fine; empty entries are not
		validation.Field(&r.Genres,
			validation.Each(
				validation.Required.Error("genre must not be empty"),
				validation.Length(1, MaxGenreLength),
			),
		),
	)
}

// Args echoes the request back as GraphQL invalidArgs.
func (r AddBookRequest) Args() map[string]interface{} {
	return map[string]interface{}{
		"title":     r.Title,
		"published": r.Published,
		"author":    r.Author,
		"genres":    r.Genres,
	}
}
