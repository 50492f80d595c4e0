// Package search provides full-text search over the book catalog using Bleve.
// It supports fuzzy matching, prefix matching for autocomplete, genre and mood
// filtering, and faceted result counts.
package search

import (
	"github.com/bookspace/bookspace-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index.
//
// Design note: authors and genres are denormalized into each book document so
// a single query covers all the fields readers actually search by. The
// trade-off is storage space for query performance, a worthwhile exchange for
// catalogs where users expect instant results.
type SearchDocument struct {
	// Identity
	ID   string `json:"id"`
	Slug string `json:"slug"`

	// Primary searchable text
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Denormalized for search
	Authors []string `json:"authors,omitempty"`

	// Exact-match descriptors
	Genres []string `json:"genres,omitempty"`
	Moods  []string `json:"moods,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	// Numeric fields for range queries and sorting
	ReleaseYear int     `json:"release_year,omitempty"`
	PageCount   int     `json:"page_count,omitempty"`
	Rating      float64 `json:"rating,omitempty"`

	// Timestamps for sorting
	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"slug":       d.Slug,
		"title":      d.Title,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Authors) > 0 {
		m["authors"] = d.Authors
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if len(d.Moods) > 0 {
		m["moods"] = d.Moods
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.ReleaseYear > 0 {
		m["release_year"] = d.ReleaseYear
	}
	if d.PageCount > 0 {
		m["page_count"] = d.PageCount
	}
	if d.Rating > 0 {
		m["rating"] = d.Rating
	}

	return m
}

// BookToSearchDocument converts a domain Book to a SearchDocument.
func BookToSearchDocument(book *domain.Book) *SearchDocument {
	return &SearchDocument{
		ID:          book.ID,
		Slug:        book.Slug,
		Title:       book.Title,
		Description: book.Description,
		Authors:     book.Authors,
		Genres:      book.Genres,
		Moods:       book.Moods,
		Tags:        book.Tags,
		ReleaseYear: book.ReleaseYear,
		PageCount:   book.PageCount,
		Rating:      book.Rating,
		CreatedAt:   book.CreatedAt.UnixMilli(),
		UpdatedAt:   book.UpdatedAt.UnixMilli(),
	}
}
