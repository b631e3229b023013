// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package film

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ghibli/internal/platform/apperr"
	"github.com/taibuivan/ghibli/internal/platform/sec"
)

// memoryRepository is an in-memory Repository.
type memoryRepository struct {
	mu    sync.Mutex
	films []*Film
	cuts  []*Cut
	votes map[[2]int64]bool
}

func newMemoryRepository(films int, cutsPerFilm int) *memoryRepository {
	repository := &memoryRepository{votes: make(map[[2]int64]bool)}

	var cutID int64
	for id := int64(1); id <= int64(films); id++ {
		repository.films = append(repository.films, &Film{
			ID:       id,
			Title:    fmt.Sprintf("영화 %d", id),
			Subtitle: fmt.Sprintf("Film Number %d", id),
		})
		for range cutsPerFilm {
			cutID++
			repository.cuts = append(repository.cuts, &Cut{ID: cutID, FilmID: id, Src: fmt.Sprintf("cut-%d.jpg", cutID)})
		}
	}

	return repository
}

func (repository *memoryRepository) ListFilms(_ context.Context, cursor int64, limit int) ([]*Film, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var films []*Film
	for _, film := range repository.films {
		if film.ID >= cursor && len(films) < limit {
			copied := *film
			films = append(films, &copied)
		}
	}
	return films, nil
}

func (repository *memoryRepository) FindFilm(_ context.Context, id int64) (*Film, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, film := range repository.films {
		if film.ID == id {
			copied := *film
			return &copied, nil
		}
	}
	return nil, ErrFilmNotFound
}

func (repository *memoryRepository) hydrate(cut *Cut, viewerID int64) *Cut {
	copied := *cut
	for key := range repository.votes {
		if key[1] == cut.ID {
			copied.VotesCount++
			if key[0] == viewerID {
				copied.IsVoted = true
			}
		}
	}
	return &copied
}

func (repository *memoryRepository) ListCuts(_ context.Context, filmID, viewerID int64) ([]*Cut, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	cuts := []*Cut{}
	for _, cut := range repository.cuts {
		if cut.FilmID == filmID {
			cuts = append(cuts, repository.hydrate(cut, viewerID))
		}
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].ID < cuts[j].ID })
	return cuts, nil
}

func (repository *memoryRepository) FindCut(_ context.Context, cutID, viewerID int64) (*Cut, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, cut := range repository.cuts {
		if cut.ID == cutID {
			return repository.hydrate(cut, viewerID), nil
		}
	}
	return nil, ErrCutNotFound
}

func (repository *memoryRepository) ToggleVote(_ context.Context, userID, cutID int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	found := false
	for _, cut := range repository.cuts {
		if cut.ID == cutID {
			found = true
		}
	}
	if !found {
		return false, ErrCutNotFound
	}

	key := [2]int64{userID, cutID}
	if repository.votes[key] {
		delete(repository.votes, key)
		return false, nil
	}
	repository.votes[key] = true
	return true, nil
}

/*
TestService_FilmsPagination walks the catalogue page by page.
*/
func TestService_FilmsPagination(t *testing.T) {
	service := NewService(newMemoryRepository(8, 0))
	ctx := context.Background()

	// 1. First page with the defaults
	page, err := service.Films(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, page.Films, 6)
	assert.Equal(t, int64(1), page.Films[0].ID)
	require.NotNil(t, page.Cursor)
	assert.Equal(t, int64(7), *page.Cursor)
	assert.Equal(t, "film-number-1", page.Films[0].Slug)

	// 2. Last page
	page, err = service.Films(ctx, 6, *page.Cursor)
	require.NoError(t, err)
	require.Len(t, page.Films, 2)
	assert.Equal(t, int64(8), page.Films[1].ID)
	assert.Nil(t, page.Cursor)

	// 3. Exact fit has no next page
	page, err = service.Films(ctx, 8, 1)
	require.NoError(t, err)
	assert.Len(t, page.Films, 8)
	assert.Nil(t, page.Cursor)

	// 4. Oversized limits are clamped
	page, err = service.Films(ctx, 1000, 1)
	require.NoError(t, err)
	assert.Len(t, page.Films, 8)
}

/*
TestWithSlug prefers the subtitle, then the title, then the film ID.
*/
func TestWithSlug(t *testing.T) {
	tests := []struct {
		name string
		film Film
		want string
	}{
		{"subtitle", Film{ID: 2, Title: "天空の城ラピュタ", Subtitle: "Castle in the Sky"}, "castle-in-the-sky"},
		{"latin_title", Film{ID: 5, Title: "Ponyo"}, "ponyo"},
		{"japanese_only", Film{ID: 3, Title: "となりのトトロ"}, "film-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withSlug(&tt.film).Slug)
		})
	}
}

/*
TestService_Film returns nil for unknown IDs.
*/
func TestService_Film(t *testing.T) {
	service := NewService(newMemoryRepository(2, 0))

	film, err := service.Film(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, film)
	assert.Equal(t, "film-number-2", film.Slug)

	film, err = service.Film(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, film)
}

/*
TestService_Vote toggles votes and reflects them per viewer.
*/
func TestService_Vote(t *testing.T) {
	service := NewService(newMemoryRepository(1, 3))
	ctx := context.Background()
	viewer := &sec.Claims{UserID: 10}
	other := &sec.Claims{UserID: 11}

	// 1. Anonymous viewers cannot vote
	_, err := service.Vote(ctx, nil, 1)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.From(err).Code)

	// 2. Unknown cut
	_, err = service.Vote(ctx, viewer, 99)
	assert.ErrorIs(t, err, ErrCutNotFound)

	// 3. Two votes on cut 2
	ok, err := service.Vote(ctx, viewer, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = service.Vote(ctx, other, 2)
	require.NoError(t, err)

	cut, err := service.Cut(ctx, 2, viewer)
	require.NoError(t, err)
	assert.Equal(t, 2, cut.VotesCount)
	assert.True(t, cut.IsVoted)

	anonymous, err := service.Cut(ctx, 2, nil)
	require.NoError(t, err)
	assert.False(t, anonymous.IsVoted)

	// 4. Voting again withdraws the vote
	ok, err = service.Vote(ctx, viewer, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	cuts, err := service.Cuts(ctx, 1, viewer)
	require.NoError(t, err)
	require.Len(t, cuts, 3)
	assert.Equal(t, 1, cuts[1].VotesCount)
	assert.False(t, cuts[1].IsVoted)

	// 5. Unknown cut lookup is nil, not an error
	missing, err := service.Cut(ctx, 99, viewer)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
