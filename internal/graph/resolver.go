// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"

	"github.com/taibuivan/ghibli/internal/auth"
	"github.com/taibuivan/ghibli/internal/film"
	"github.com/taibuivan/ghibli/internal/platform/ctxutil"
)

// Resolver is the root resolver for queries and mutations.
type Resolver struct {
	accounts *auth.Service
	films    *film.Service
}

// NewResolver constructs the root [Resolver].
func NewResolver(accounts *auth.Service, films *film.Service) *Resolver {
	return &Resolver{accounts: accounts, films: films}
}

// # Queries

// Me resolves the caller's account; null when anonymous.
func (resolver *Resolver) Me(context context.Context) (*userResolver, error) {
	user, err := resolver.accounts.Me(context, ctxutil.GetAuthUser(context))
	if err != nil {
		return nil, toResolverError(context, err)
	}
	return newUserResolver(user), nil
}

// The schema declares defaults for both arguments, so they are never absent.
type filmsArgs struct {
	Limit  int32
	Cursor int32
}

// Films resolves one page of the catalogue.
func (resolver *Resolver) Films(context context.Context, args filmsArgs) (*filmPageResolver, error) {
	page, err := resolver.films.Films(context, int(args.Limit), int64(args.Cursor))
	if err != nil {
		return nil, toResolverError(context, err)
	}
	return &filmPageResolver{page: page}, nil
}

// Film resolves a single film; null when it does not exist.
func (resolver *Resolver) Film(context context.Context, args struct{ FilmID int32 }) (*filmResolver, error) {
	item, err := resolver.films.Film(context, int64(args.FilmID))
	if err != nil {
		return nil, toResolverError(context, err)
	}
	return newFilmResolver(item), nil
}

// Cuts resolves the cuts of a film.
func (resolver *Resolver) Cuts(context context.Context, args struct{ FilmID int32 }) ([]*cutResolver, error) {
	cuts, err := resolver.films.Cuts(context, int64(args.FilmID), ctxutil.GetAuthUser(context))
	if err != nil {
		return nil, toResolverError(context, err)
	}

	resolved := make([]*cutResolver, 0, len(cuts))
	for _, cut := range cuts {
		resolved = append(resolved, &cutResolver{cut: cut, films: resolver.films})
	}
	return resolved, nil
}

// Cut resolves a single cut; null when it does not exist.
func (resolver *Resolver) Cut(context context.Context, args struct{ CutID int32 }) (*cutResolver, error) {
	cut, err := resolver.films.Cut(context, int64(args.CutID), ctxutil.GetAuthUser(context))
	if err != nil {
		return nil, toResolverError(context, err)
	}
	if cut == nil {
		return nil, nil
	}
	return &cutResolver{cut: cut, films: resolver.films}, nil
}

// # Mutations

type signUpArgs struct {
	SignUpInput struct {
		Email    string
		Username string
		Password string
	}
}

/*
SignUp registers a new account.

Errors carry extensions.code VALIDATION_ERROR or CONFLICT, with field details.
*/
func (resolver *Resolver) SignUp(context context.Context, args signUpArgs) (*userResolver, error) {
	input := auth.SignUpInput(args.SignUpInput)
	if err := auth.SignUpSchema.Validate(input); err != nil {
		return nil, toResolverError(context, err)
	}

	user, err := resolver.accounts.SignUp(context, input)
	if err != nil {
		return nil, toResolverError(context, err)
	}
	return newUserResolver(user), nil
}

type loginArgs struct {
	LoginInput struct {
		Identifier string
		Password   string
	}
}

/*
Login opens a session.

Credential failures are data: the response carries exactly one field error
and no user. On success the refresh token only travels in the cookie.
*/
func (resolver *Resolver) Login(context context.Context, args loginArgs) (*loginResponseResolver, error) {
	input := auth.LoginInput(args.LoginInput)
	if err := auth.LoginSchema.Validate(input); err != nil {
		return nil, toResolverError(context, err)
	}

	result, err := resolver.accounts.Login(context, input)
	if err != nil {
		return nil, toResolverError(context, err)
	}

	jarFrom(context).set(result.RefreshCookie)
	return &loginResponseResolver{result: result}, nil
}

// RefreshAccessToken rotates the refresh cookie; null when it cannot be exchanged.
func (resolver *Resolver) RefreshAccessToken(context context.Context) (*refreshResponseResolver, error) {
	jar := jarFrom(context)

	result, err := resolver.accounts.RefreshAccessToken(context, jar.incoming)
	if err != nil {
		return nil, toResolverError(context, err)
	}
	if result == nil {
		return nil, nil
	}

	jar.set(result.RefreshCookie)
	return &refreshResponseResolver{accessToken: result.AccessToken}, nil
}

// Logout ends the caller's session. It always resolves to true.
func (resolver *Resolver) Logout(context context.Context) bool {
	jarFrom(context).set(resolver.accounts.Logout(context, ctxutil.GetAuthUser(context)))
	return true
}

// Vote toggles the caller's vote on a cut and reports whether it is now cast;
// false when anonymous.
func (resolver *Resolver) Vote(context context.Context, args struct{ CutID int32 }) (bool, error) {
	claims := ctxutil.GetAuthUser(context)
	if claims == nil {
		return false, nil
	}

	ok, err := resolver.films.Vote(context, claims, int64(args.CutID))
	if err != nil {
		return false, toResolverError(context, err)
	}
	return ok, nil
}
