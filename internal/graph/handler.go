package graph

import (
	"context"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/graph-gophers/graphql-transport-ws/graphqlws"

	"library-backend/internal/domains/user"
)

// NewHandler serves queries and mutations over HTTP POST and upgrades
// graphql-ws websocket requests on the same path. Operations sent over the
// socket run as the identity the gate attached to the upgrade request.
func NewHandler(schema *graphql.Schema) http.Handler {
	return graphqlws.NewHandlerFunc(schema, &relay.Handler{Schema: schema},
		graphqlws.WithContextGenerator(graphqlws.ContextGeneratorFunc(connectionContext)),
	)
}

// connectionContext copies the caller from the upgrade request into the
// context of the websocket connection.
func connectionContext(ctx context.Context, r *http.Request) (context.Context, error) {
	if caller := user.FromContext(r.Context()); caller != nil {
		ctx = user.NewContext(ctx, caller)
	}
	return ctx, nil
}
