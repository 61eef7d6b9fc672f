package graph

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/shared/gqlerror"
)

// resolverError maps a service error onto the GraphQL taxonomy. The result is
// returned unwrapped so the executor can read its extensions.
func resolverError(op string, err error, args map[string]interface{}) error {
	switch {
	case errors.Is(err, user.ErrNotAuthenticated),
		errors.Is(err, user.ErrTooManyAttempts):
		return &gqlerror.AuthenticationError{Message: rootMessage(err)}

	case errors.Is(err, user.ErrInvalidCredentials):
		// invalidArgs would echo the password back
		return &gqlerror.UserInputError{Message: user.ErrInvalidCredentials.Error()}

	case errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, author.ErrInvalidName),
		errors.Is(err, author.ErrNameTooLong),
		errors.Is(err, author.ErrDuplicateName),
		errors.Is(err, book.ErrDuplicateTitle),
		errors.Is(err, book.ErrAuthorNotFound),
		errors.Is(err, book.ErrInvalidBook):
		return &gqlerror.UserInputError{Message: rootMessage(err), InvalidArgs: args}
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return &gqlerror.UserInputError{Message: verrs.Error(), InvalidArgs: args}
	}

	if database.IsTransient(err) {
		log.Warn().Err(err).Str("op", op).Msg("[GRAPHQL] transient store failure")
		return &gqlerror.InternalError{Retryable: true}
	}

	log.Error().Err(err).Str("op", op).Msg("[GRAPHQL] resolver failed")
	return &gqlerror.InternalError{}
}

// rootMessage returns the message of the known sentinel inside err, without
// the wrapping context added on the way up.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		user.ErrNotAuthenticated, user.ErrTooManyAttempts, user.ErrUsernameTaken,
		author.ErrInvalidName, author.ErrNameTooLong, author.ErrDuplicateName,
		book.ErrDuplicateTitle, book.ErrAuthorNotFound, book.ErrInvalidBook,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
