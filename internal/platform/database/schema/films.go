// Copyright (c) 2026 Ghibli. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// FilmTable represents the 'films' table
type FilmTable struct {
	Table       string
	ID          string
	Title       string
	Subtitle    string
	Description string
	Genre       string
	RunningTime string
	Release     string
	PosterImg   string
	Director    string
}

// Film is the schema definition for films
var Film = FilmTable{
	Table:       "films",
	ID:          "id",
	Title:       "title",
	Subtitle:    "subtitle",
	Description: "description",
	Genre:       "genre",
	RunningTime: "runningtime",
	Release:     "release",
	PosterImg:   "posterimg",
	Director:    "director",
}

// Columns returns all standard column names
func (t FilmTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Subtitle, t.Description, t.Genre,
		t.RunningTime, t.Release, t.PosterImg, t.Director,
	}
}

// CutTable represents the 'cuts' table
type CutTable struct {
	Table  string
	ID     string
	Src    string
	FilmID string
}

// Cut is the schema definition for cuts
var Cut = CutTable{
	Table:  "cuts",
	ID:     "id",
	Src:    "src",
	FilmID: "filmid",
}

// Columns returns all standard column names
func (t CutTable) Columns() []string {
	return []string{t.ID, t.Src, t.FilmID}
}

// CutVoteTable represents the 'cutvotes' table
type CutVoteTable struct {
	Table     string
	UserID    string
	CutID     string
	CreatedAt string
}

// CutVote is the schema definition for cutvotes
var CutVote = CutVoteTable{
	Table:     "cutvotes",
	UserID:    "userid",
	CutID:     "cutid",
	CreatedAt: "createdat",
}
