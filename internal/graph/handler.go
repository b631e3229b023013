// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/taibuivan/ghibli/internal/auth"
	requestutil "github.com/taibuivan/ghibli/internal/platform/request"
	"github.com/taibuivan/ghibli/internal/platform/respond"
	"github.com/taibuivan/ghibli/internal/platform/validate"
)

// Handler serves GraphQL operations over HTTP.
type Handler struct {
	schema  *graphql.Schema
	cookies auth.CookieWriter
}

// NewHandler constructs a new GraphQL [Handler].
func NewHandler(schema *graphql.Schema, cookies auth.CookieWriter) *Handler {
	return &Handler{schema: schema, cookies: cookies}
}

type operation struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

/*
ServeHTTP executes one operation.

POST /graphql

Request:
  - Body: {"query", "operationName", "variables"}
  - Cookie: refreshtoken (read by refreshAccessToken)

Response:
  - 200: {"data", "errors"}; resolver errors carry extensions.code
  - 400: VALIDATION_ERROR when the body is not a GraphQL request
*/
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	var body operation
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if body.Query == "" {
		respond.Error(writer, request, validate.RequiredError("query", "Must not be empty"))
		return
	}

	jar := &cookieJar{incoming: requestutil.RefreshToken(request)}
	ctx := withCookieJar(request.Context(), jar)

	response := handler.schema.Exec(ctx, body.Query, body.OperationName, body.Variables)

	handler.cookies.Write(writer, jar.directive())
	respond.JSON(writer, http.StatusOK, response)
}
