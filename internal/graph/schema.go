// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package graph exposes the account and catalogue use cases over GraphQL.

Architecture:

  - schema.graphql: The SDL, embedded at build time.
  - Resolver: Root query and mutation resolvers calling the domain services.
  - Handler: POST /graphql. Reads the refresh cookie, executes the operation,
    then applies the cookie directive produced by the mutations.

Protected fields never fail for anonymous callers: they resolve to null or false.
*/
package graph

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/taibuivan/ghibli/internal/platform/ctxutil"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds the nesting of a single operation.
const maxQueryDepth = 8

// NewSchema parses the embedded SDL and binds it to the root resolver.
func NewSchema(resolver *Resolver) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(schemaSDL, resolver,
		graphql.UseStringDescriptions(),
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, fmt.Errorf("graph_schema_parse_failed: %w", err)
	}
	return schema, nil
}

// panicLogger routes resolver panics to the request logger.
type panicLogger struct{}

func (panicLogger) LogPanic(context context.Context, value interface{}) {
	ctxutil.GetLogger(context).ErrorContext(context, "graphql_resolver_panic",
		slog.Any("panic", value),
	)
}
