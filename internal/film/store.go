// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import "context"

// # Catalogue Data Access

// Repository defines the data access contract for films, cuts and cut votes.
//
// A viewerID of 0 denotes an anonymous viewer.
type Repository interface {

	/*
		ListFilms returns up to limit films with ID >= cursor, ordered by ID.

		Parameters:
		  - context: context.Context
		  - cursor: int64
		  - limit: int

		Returns:
		  - []*Film: Films in ascending ID order
		  - error: Database retrieval failures
	*/
	ListFilms(context context.Context, cursor int64, limit int) ([]*Film, error)

	/*
		FindFilm returns the film with the given ID.

		Returns:
		  - *Film: Hydrated entity
		  - error: ErrFilmNotFound or database retrieval failures
	*/
	FindFilm(context context.Context, id int64) (*Film, error)

	/*
		ListCuts returns the cuts of a film with their vote counts.

		Parameters:
		  - context: context.Context
		  - filmID: int64
		  - viewerID: int64 (Determines IsVoted)

		Returns:
		  - []*Cut: Cuts in ascending ID order
		  - error: Database retrieval failures
	*/
	ListCuts(context context.Context, filmID, viewerID int64) ([]*Cut, error)

	/*
		FindCut returns a single cut with its vote count.

		Returns:
		  - *Cut: Hydrated entity
		  - error: ErrCutNotFound or database retrieval failures
	*/
	FindCut(context context.Context, cutID, viewerID int64) (*Cut, error)

	/*
		ToggleVote adds the user's vote on a cut, or removes it if present.

		Returns:
		  - bool: true if the vote now exists
		  - error: ErrCutNotFound or persistence failures
	*/
	ToggleVote(context context.Context, userID, cutID int64) (bool, error)
}
