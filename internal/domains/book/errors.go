package book

import "errors"

var (
	ErrDuplicateTitle = errors.New("a book with this title already exists")
	ErrAuthorNotFound = errors.New("referenced author does not exist")
	ErrInvalidBook    = errors.New("book failed store validation")
)
