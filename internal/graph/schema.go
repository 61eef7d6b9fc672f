// Package graph exposes the library over GraphQL: queries, mutations and the
// bookAdded subscription.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds nested selections.
const maxQueryDepth = 8

// NewSchema parses the SDL against the resolver root.
func NewSchema(r *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics to zerolog.
type panicLogger struct{}

func (panicLogger) LogPanic(_ context.Context, value interface{}) {
	log.Error().Interface("panic", value).Msg("[GRAPHQL] resolver panic")
}
