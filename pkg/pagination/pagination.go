// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for cursor-based list endpoints.
//
// # Overview
//
// A cursor is the ID of the first item of the requested page. Each page reports
// the cursor of the page that follows it, or nil when the list is exhausted.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 6
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 50
	// DefaultCursor is the starting cursor (IDs are 1-indexed).
	DefaultCursor = 1
)

// Params holds the parsed cursor and limit of a list request.
type Params struct {
	Cursor int64
	Limit  int
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Limit  int    `json:"limit"`
	Cursor *int64 `json:"cursor"`
}

// New clamps raw values into valid [Params].
//
// # Clamping
//
// Missing, negative, or excessive values fall back to [DefaultCursor],
// [DefaultLimit], or [MaxLimit].
func New(cursor int64, limit int) Params {
	if cursor < 1 {
		cursor = DefaultCursor
	}

	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Cursor: cursor, Limit: limit}
}

// FromRequest parses "cursor" and "limit" query parameters from an HTTP request.
func FromRequest(r *http.Request) Params {
	cursor := parseIntParam(r, "cursor", DefaultCursor)
	limit := parseIntParam(r, "limit", DefaultLimit)

	return New(int64(cursor), limit)
}

// Fetch returns how many rows a store should read: one more than the limit,
// so that [Trim] can tell whether another page exists.
func (p Params) Fetch() int {
	return p.Limit + 1
}

// Trim cuts an over-fetched slice down to the page size and returns the
// cursor of the following page, or nil if items holds the last page.
func Trim[T any](items []T, p Params, id func(T) int64) ([]T, *int64) {
	if len(items) <= p.Limit {
		return items, nil
	}

	next := id(items[p.Limit])
	return items[:p.Limit], &next
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
