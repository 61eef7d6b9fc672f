package author

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Constants for validation
const (
	MaxNameLength = 255
)

// Validate checks the invariants of an Author entity
func (a *Author) Validate() error {
	if a.Name == "" {
		return ErrInvalidName
	}
	if len(a.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// Trimmed rejects strings with leading or trailing whitespace. Names are
// stored and matched exactly as given.
var Trimmed = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != strings.TrimSpace(s) {
		return errors.New("must not start or end with whitespace")
	}
	return nil
})

// EditAuthorRequest - editAuthor(name, setBornTo)
type EditAuthorRequest struct {
	Name      string `json:"name"`
	SetBornTo int    `json:"setBornTo"`
}

func (r EditAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("author name is required"),
			validation.Length(1, MaxNameLength),
			Trimmed,
		),
	)
}
