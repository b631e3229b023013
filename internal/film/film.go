// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"errors"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
)

// # Catalogue Entities

// Film is a Studio Ghibli feature film.
type Film struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	RunningTime string `json:"runningTime"`
	Release     string `json:"release"`
	PosterImg   string `json:"posterImg"`
	Director    string `json:"director"`

	// Slug is derived from the subtitle, then the title, then the ID.
	Slug string `json:"slug"`
}

// Cut is a still image taken from a film.
type Cut struct {
	ID     int64  `json:"id"`
	Src    string `json:"src"`
	FilmID int64  `json:"filmId"`

	// VotesCount and IsVoted are computed per request; IsVoted is false for anonymous viewers.
	VotesCount int  `json:"votesCount"`
	IsVoted    bool `json:"isVoted"`
}

// FilmPage is one page of the film list.
type FilmPage struct {
	Films []*Film `json:"films"`

	// Cursor is the ID of the first film of the next page, or nil on the last page.
	Cursor *int64 `json:"cursor"`
}

// # Errors

var (
	// ErrFilmNotFound is returned by a [Repository] when no film matches.
	ErrFilmNotFound = errors.New("film: film not found")

	// ErrCutNotFound is returned when a cut does not exist.
	ErrCutNotFound = apperr.NotFound("Cut")
)
