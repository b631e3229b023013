// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package film implements the film catalogue: cursor-paginated films, their
cuts, and per-user votes on cuts.

Reads are public. Voting requires an authenticated viewer; the viewer is
passed in as the verified access-token claims, or nil when anonymous.
*/
package film

import (
	"context"
	"errors"
	"fmt"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/sec"
	"github.com/taibuivan/ghibli/pkg/pagination"
	"github.com/taibuivan/ghibli/pkg/slug"
)

// Service implements the catalogue use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new catalogue [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Films returns one page of films.

Description: limit is clamped to 1..50 (default 6) and cursor defaults to 1.
One extra row is read to find the cursor of the next page.

Parameters:
  - context: context.Context
  - limit: int
  - cursor: int64

Returns:
  - *FilmPage: Films and the next cursor
  - error: Storage failures
*/
func (service *Service) Films(context context.Context, limit int, cursor int64) (*FilmPage, error) {
	params := pagination.New(cursor, limit)

	films, err := service.repository.ListFilms(context, params.Cursor, params.Fetch())
	if err != nil {
		return nil, fmt.Errorf("film_service_list_failed: %w", err)
	}

	page, next := pagination.Trim(films, params, func(film *Film) int64 { return film.ID })
	for _, film := range page {
		withSlug(film)
	}

	return &FilmPage{Films: page, Cursor: next}, nil
}

/*
Film returns a single film, or nil when it does not exist.
*/
func (service *Service) Film(context context.Context, id int64) (*Film, error) {
	film, err := service.repository.FindFilm(context, id)
	if err != nil {
		if errors.Is(err, ErrFilmNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("film_service_find_failed: %w", err)
	}

	return withSlug(film), nil
}

/*
Cuts returns the cuts of a film as seen by the viewer.
*/
func (service *Service) Cuts(context context.Context, filmID int64, viewer *sec.Claims) ([]*Cut, error) {
	cuts, err := service.repository.ListCuts(context, filmID, viewerID(viewer))
	if err != nil {
		return nil, fmt.Errorf("film_service_list_cuts_failed: %w", err)
	}
	return cuts, nil
}

/*
Cut returns a single cut as seen by the viewer, or nil when it does not exist.
*/
func (service *Service) Cut(context context.Context, cutID int64, viewer *sec.Claims) (*Cut, error) {
	cut, err := service.repository.FindCut(context, cutID, viewerID(viewer))
	if err != nil {
		if errors.Is(err, ErrCutNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("film_service_find_cut_failed: %w", err)
	}
	return cut, nil
}

/*
Vote toggles the viewer's vote on a cut.

Parameters:
  - context: context.Context
  - viewer: *sec.Claims (Required)
  - cutID: int64

Returns:
  - bool: true if the viewer now votes for the cut, false if the vote was withdrawn
  - error: apperr.Unauthorized for anonymous viewers, ErrCutNotFound, or storage failures
*/
func (service *Service) Vote(context context.Context, viewer *sec.Claims, cutID int64) (bool, error) {
	if viewer == nil {
		return false, apperr.Unauthorized("")
	}

	voted, err := service.repository.ToggleVote(context, viewer.UserID, cutID)
	if err != nil {
		if errors.Is(err, ErrCutNotFound) {
			return false, ErrCutNotFound
		}
		return false, fmt.Errorf("film_service_vote_failed: %w", err)
	}

	return voted, nil
}

func viewerID(viewer *sec.Claims) int64 {
	if viewer == nil {
		return 0
	}
	return viewer.UserID
}

// Japanese-only titles without a subtitle fold to nothing and fall back to
// "film-<id>".
func withSlug(film *Film) *Film {
	film.Slug = slug.From(film.Subtitle, film.Title)
	if film.Slug == "" {
		film.Slug = fmt.Sprintf("film-%d", film.ID)
	}
	return film
}
