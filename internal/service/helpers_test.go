package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/domain"
	"github.com/bookspace/bookspace-server/internal/store"
)

// setupTestStore opens a real store in a temp directory.
func setupTestStore(t *testing.T) (*store.Store, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "service-test-*")
	require.NoError(t, err)

	s, err := store.New(filepath.Join(tmpDir, "test.db"), nil)
	require.NoError(t, err)
	s.SetSearchIndexer(store.NewNoopSearchIndexer())

	cleanup := func() {
		_ = s.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return s, cleanup
}

// seedUser creates a user directly in the store.
func seedUser(t *testing.T, s *store.Store, id, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		Record: domain.Record{ID: id},
		Email:  email,
		Name:   "Test Reader",
	}
	user.InitTimestamps()
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

// seedBook creates a book directly in the store.
func seedBook(t *testing.T, s *store.Store, id, title, slug string, pageCount int, genres []string) *domain.Book {
	t.Helper()

	book := &domain.Book{
		Record:    domain.Record{ID: id},
		Title:     title,
		Slug:      slug,
		Authors:   []string{"Test Author"},
		PageCount: pageCount,
		Genres:    genres,
	}
	book.InitTimestamps()
	require.NoError(t, s.CreateBook(context.Background(), book))
	return book
}
