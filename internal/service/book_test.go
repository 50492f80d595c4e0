package service_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/search"
	"github.com/bookspace/bookspace-server/internal/service"
	"github.com/bookspace/bookspace-server/internal/store"
)

// setupBookService wires a real store and search index in a temp directory,
// so writes through the service land in the index too.
func setupBookService(t *testing.T) (*service.BookService, *store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "book-service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: tmpDir,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	s.SetSearchIndexer(index)

	cleanup := func() {
		_ = index.Close()
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return service.NewBookService(s, index, nil), s, cleanup
}

func TestBookService_CreateBook(t *testing.T) {
	svc, _, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()

	book, err := svc.CreateBook(ctx, service.CreateBookRequest{
		Title:     "The Left Hand of Darkness",
		Authors:   []string{"Ursula K. Le Guin"},
		PageCount: 304,
		Genres:    []string{"science-fiction"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the-left-hand-of-darkness", book.Slug)
	assert.NotEmpty(t, book.ID)
	assert.False(t, book.CreatedAt.IsZero())

	// Retrievable by ID and by slug.
	got, err := svc.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, got.Title)

	got, err = svc.GetBookBySlug(ctx, "the-left-hand-of-darkness")
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
}

func TestBookService_CreateBook_Validation(t *testing.T) {
	svc, _, cleanup := setupBookService(t)
	defer cleanup()

	tests := []struct {
		name string
		req  service.CreateBookRequest
	}{
		{"missing title", service.CreateBookRequest{Authors: []string{"A"}, PageCount: 100}},
		{"no authors", service.CreateBookRequest{Title: "T", PageCount: 100}},
		{"zero page count", service.CreateBookRequest{Title: "T", Authors: []string{"A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBook(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
		})
	}
}

func TestBookService_SearchBooks(t *testing.T) {
	svc, _, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()

	_, err := svc.CreateBook(ctx, service.CreateBookRequest{
		Title:     "The Left Hand of Darkness",
		Authors:   []string{"Ursula K. Le Guin"},
		PageCount: 304,
	})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, service.CreateBookRequest{
		Title:     "The Dispossessed",
		Authors:   []string{"Ursula K. Le Guin"},
		PageCount: 387,
	})
	require.NoError(t, err)

	result, err := svc.SearchBooks(ctx, "darkness", 10)
	require.NoError(t, err)
	require.NotEmpty(t, result.Hits)
	assert.Equal(t, "The Left Hand of Darkness", result.Hits[0].Title)

	// Author queries match both.
	result, err = svc.SearchBooks(ctx, "le guin", 10)
	require.NoError(t, err)
	assert.Len(t, result.Hits, 2)

	// An empty query is rejected before touching the index.
	_, err = svc.SearchBooks(ctx, "", 10)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestBookService_RandomBooks(t *testing.T) {
	svc, s, cleanup := setupBookService(t)
	defer cleanup()

	for _, id := range []string{"a", "b", "c", "d"} {
		seedBook(t, s, "book-"+id, "Book "+id, "book-"+id, 100, nil)
	}

	books, err := svc.RandomBooks(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	// A limit past the catalog size returns everything.
	books, err = svc.RandomBooks(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, books, 4)
}

func TestBookService_PopularBooks_ExcludesUnrated(t *testing.T) {
	svc, s, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()

	rated := seedBook(t, s, "book-1", "Dune", "dune", 412, nil)
	rated.Rating = 4.5
	rated.RatingsCount = 12
	require.NoError(t, s.UpdateBook(ctx, rated))

	seedBook(t, s, "book-2", "Unrated", "unrated", 200, nil)

	books, err := svc.PopularBooks(ctx, 5)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "book-1", books[0].ID)
}

func TestBookService_BooksByMoods(t *testing.T) {
	svc, s, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()

	cozy := seedBook(t, s, "book-1", "The Hobbit", "the-hobbit", 310, nil)
	cozy.Moods = []string{"cozy", "adventurous"}
	require.NoError(t, s.UpdateBook(ctx, cozy))

	grim := seedBook(t, s, "book-2", "Blood Meridian", "blood-meridian", 337, nil)
	grim.Moods = []string{"dark"}
	require.NoError(t, s.UpdateBook(ctx, grim))

	books, err := svc.BooksByMoods(ctx, []string{"cozy"}, 5)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "book-1", books[0].ID)

	// No moods given is a validation error, not an empty result.
	_, err = svc.BooksByMoods(ctx, nil, 5)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestBookService_DeleteBook(t *testing.T) {
	svc, _, cleanup := setupBookService(t)
	defer cleanup()

	ctx := context.Background()

	book, err := svc.CreateBook(ctx, service.CreateBookRequest{
		Title:     "The Dispossessed",
		Authors:   []string{"Ursula K. Le Guin"},
		PageCount: 387,
		Genres:    []string{"science-fiction"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteBook(ctx, book.ID))

	_, err = svc.GetBook(ctx, book.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	// The search document is gone with the book.
	result, err := svc.SearchBooks(ctx, "dispossessed", 0)
	require.NoError(t, err)
	assert.Empty(t, result.Hits)

	// Deleting again reports not found.
	err = svc.DeleteBook(ctx, book.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
