// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/middleware"
	requestutil "github.com/taibuivan/ghibli/internal/platform/request"
	"github.com/taibuivan/ghibli/internal/platform/respond"
	"github.com/taibuivan/ghibli/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the film catalogue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new film [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FilmRoutes returns the routes mounted at /films.
func (handler *Handler) FilmRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listFilms)
	router.Get("/{id}", handler.getFilm)
	router.Get("/{id}/cuts", handler.listCuts)

	return router
}

// CutRoutes returns the routes mounted at /cuts.
func (handler *Handler) CutRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getCut)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/{id}/vote", handler.vote)
	})

	return router
}

/*
ListFilms returns one page of films.

GET /api/v1/films?cursor=1&limit=6

Response:
  - 200: []Film with meta.cursor pointing at the next page (null on the last)
*/
func (handler *Handler) listFilms(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	page, err := handler.service.Films(request.Context(), params.Limit, params.Cursor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Films, pagination.Meta{Limit: params.Limit, Cursor: page.Cursor})
}

/*
GetFilm returns a single film.

GET /api/v1/films/{id}

Response:
  - 200: Film
  - 404: NOT_FOUND
*/
func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := handler.service.Film(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if film == nil {
		respond.Error(writer, request, apperr.NotFound("Film"))
		return
	}

	respond.OK(writer, film)
}

/*
ListCuts returns the cuts of a film.

GET /api/v1/films/{id}/cuts

Response:
  - 200: []Cut (isVoted reflects the bearer, if any)
*/
func (handler *Handler) listCuts(writer http.ResponseWriter, request *http.Request) {
	filmID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cuts, err := handler.service.Cuts(request.Context(), filmID, requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, cuts)
}

/*
GetCut returns a single cut.

GET /api/v1/cuts/{id}

Response:
  - 200: Cut
  - 404: NOT_FOUND
*/
func (handler *Handler) getCut(writer http.ResponseWriter, request *http.Request) {
	cutID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cut, err := handler.service.Cut(request.Context(), cutID, requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if cut == nil {
		respond.Error(writer, request, ErrCutNotFound)
		return
	}

	respond.OK(writer, cut)
}

/*
Vote toggles the caller's vote on a cut.

POST /api/v1/cuts/{id}/vote

Response:
  - 200: true when the vote is cast, false when it is withdrawn
  - 401: UNAUTHORIZED
  - 404: NOT_FOUND
*/
func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request) {
	cutID, err := requestutil.Int64Param(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.service.Vote(request.Context(), claims, cutID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
