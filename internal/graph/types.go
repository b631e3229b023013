// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/taibuivan/ghibli/internal/auth"
	"github.com/taibuivan/ghibli/internal/film"
	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/pkg/pointer"
)

// # Accounts

type userResolver struct {
	user *auth.User
}

func newUserResolver(user *auth.User) *userResolver {
	if user == nil {
		return nil
	}
	return &userResolver{user: user}
}

func (resolver *userResolver) ID() int32 { return int32(resolver.user.ID) }
func (resolver *userResolver) Username() string { return resolver.user.Username }
func (resolver *userResolver) Email() string { return resolver.user.Email }
func (resolver *userResolver) CreatedAt() graphql.Time { return graphql.Time{Time: resolver.user.CreatedAt} }
func (resolver *userResolver) UpdatedAt() graphql.Time { return graphql.Time{Time: resolver.user.UpdatedAt} }

type fieldErrorResolver struct {
	err apperr.FieldError
}

func (resolver *fieldErrorResolver) Field() string { return resolver.err.Field }
func (resolver *fieldErrorResolver) Message() string { return resolver.err.Message }

type loginResponseResolver struct {
	result *auth.LoginResult
}

func (resolver *loginResponseResolver) Errors() *[]*fieldErrorResolver {
	if len(resolver.result.Errors) == 0 {
		return nil
	}

	errs := make([]*fieldErrorResolver, 0, len(resolver.result.Errors))
	for _, fieldErr := range resolver.result.Errors {
		errs = append(errs, &fieldErrorResolver{err: fieldErr})
	}
	return &errs
}

func (resolver *loginResponseResolver) User() *userResolver {
	return newUserResolver(resolver.result.User)
}

func (resolver *loginResponseResolver) AccessToken() *string {
	if resolver.result.AccessToken == "" {
		return nil
	}
	return pointer.To(resolver.result.AccessToken)
}

type refreshResponseResolver struct {
	accessToken string
}

func (resolver *refreshResponseResolver) AccessToken() string { return resolver.accessToken }

// # Catalogue

type filmResolver struct {
	film *film.Film
}

func newFilmResolver(item *film.Film) *filmResolver {
	if item == nil {
		return nil
	}
	return &filmResolver{film: item}
}

func (resolver *filmResolver) ID() int32 { return int32(resolver.film.ID) }
func (resolver *filmResolver) Title() string { return resolver.film.Title }
func (resolver *filmResolver) Description() string { return resolver.film.Description }
func (resolver *filmResolver) Genre() string { return resolver.film.Genre }
func (resolver *filmResolver) RunningTime() string { return resolver.film.RunningTime }
func (resolver *filmResolver) Release() string { return resolver.film.Release }
func (resolver *filmResolver) PosterImg() string { return resolver.film.PosterImg }
func (resolver *filmResolver) Director() string { return resolver.film.Director }
func (resolver *filmResolver) Slug() string { return resolver.film.Slug }

func (resolver *filmResolver) Subtitle() *string {
	if resolver.film.Subtitle == "" {
		return nil
	}
	return pointer.To(resolver.film.Subtitle)
}

type filmPageResolver struct {
	page *film.FilmPage
}

func (resolver *filmPageResolver) Films() []*filmResolver {
	films := make([]*filmResolver, 0, len(resolver.page.Films))
	for _, item := range resolver.page.Films {
		films = append(films, newFilmResolver(item))
	}
	return films
}

func (resolver *filmPageResolver) Cursor() *int32 {
	if resolver.page.Cursor == nil {
		return nil
	}
	return pointer.To(int32(*resolver.page.Cursor))
}

type cutResolver struct {
	cut   *film.Cut
	films *film.Service
}

func (resolver *cutResolver) ID() int32 { return int32(resolver.cut.ID) }
func (resolver *cutResolver) Src() string { return resolver.cut.Src }
func (resolver *cutResolver) FilmID() int32 { return int32(resolver.cut.FilmID) }
func (resolver *cutResolver) VotesCount() int32 { return int32(resolver.cut.VotesCount) }
func (resolver *cutResolver) IsVoted() bool { return resolver.cut.IsVoted }

func (resolver *cutResolver) Film(context context.Context) (*filmResolver, error) {
	item, err := resolver.films.Film(context, resolver.cut.FilmID)
	if err != nil {
		return nil, toResolverError(context, err)
	}
	return newFilmResolver(item), nil
}
