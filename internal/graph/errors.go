// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/ctxutil"
)

// resolverError renders an [apperr.AppError] as a GraphQL error.
//
// graphql-go copies Extensions into the "extensions" member of the error, so
// clients see the same code and details as on the REST surface.
type resolverError struct {
	app *apperr.AppError
}

func (e *resolverError) Error() string { return e.app.Message }

func (e *resolverError) Extensions() map[string]interface{} {
	extensions := map[string]interface{}{"code": e.app.Code}
	if len(e.app.Details) > 0 {
		extensions["details"] = e.app.Details
	}
	return extensions
}

// toResolverError converts any service error into a [resolverError].
// Server-side failures are logged with their cause, which never reaches the client.
func toResolverError(context context.Context, err error) error {
	app := apperr.From(err)
	if app.HTTPStatus >= http.StatusInternalServerError {
		ctxutil.GetLogger(context).ErrorContext(context, "graphql_resolver_failed",
			slog.String("code", app.Code),
			slog.Any("error", err),
		)
	}
	return &resolverError{app: app}
}
