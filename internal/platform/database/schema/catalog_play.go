// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns the PostgreSQL stores query.
package schema

// CatalogPlayTable represents the 'catalog.play' table
type CatalogPlayTable struct {
	Table       string
	ID          string
	Title       string
	Playwright  string
	Year        string
	Genre       string
	Description string
	PosterURL   string
	CreatedAt   string
}

// CatalogPlay is the schema definition for catalog.play
var CatalogPlay = CatalogPlayTable{
	Table:       "catalog.play",
	ID:          "id",
	Title:       "title",
	Playwright:  "playwright",
	Year:        "year",
	Genre:       "genre",
	Description: "description",
	PosterURL:   "posterurl",
	CreatedAt:   "createdat",
}

func (t CatalogPlayTable) Columns() []string {
	return []string{t.ID, t.Title, t.Playwright, t.Year, t.Genre, t.Description, t.PosterURL, t.CreatedAt}
}
