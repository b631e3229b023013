// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/constants"
	"github.com/taibuivan/ghibli/internal/platform/ctxutil"
	"github.com/taibuivan/ghibli/internal/platform/respond"
	"github.com/taibuivan/ghibli/internal/platform/sec"
)

// TokenVerifier verifies access tokens carried in the Authorization header.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*sec.Claims, error)
}

// Authenticate extracts and verifies the access token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, malformed, or invalid, the request proceeds as anonymous.
//  3. If valid, inject [*sec.Claims] into the request context and tag the
//     request logger with the user ID.
//
// Rejection is left to [RequireAuth] on REST routes and to the resolvers on
// the GraphQL endpoint, where protected fields resolve to null.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, ok := bearerToken(request.Header.Get(constants.HeaderAuthorization))
			if !ok {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.VerifyAccessToken(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "access_token_rejected",
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			ctx = ctxutil.WithLogger(ctx, ctxutil.GetLogger(ctx).With(slog.Int64("user_id", claims.UserID)))
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetAuthUser(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
