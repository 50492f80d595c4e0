// Package store persists domain entities as JSON documents in Badger.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/bookspace/bookspace-server/internal/domain"
)

// SearchIndexer is the interface for keeping the catalog search index in sync.
// Store uses this to update search on book writes without depending on the
// search implementation.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}

// Store owns the badger database and the typed collections on top of it.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Hooked in after construction; the search index is built on top of
	// the store, so it cannot exist before the store does.
	searchIndexer SearchIndexer

	Users   *Collection[domain.User]
	Books   *Collection[domain.Book]
	Reviews *Collection[domain.Review]
}

// New opens the database at path and sets up the collections.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	// Synced writes: losing acknowledged sessions on a crash is worse
	// than the write latency.
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	store.initUsers()
	store.initBooks()
	store.initReviews()

	if logger != nil {
		logger.Info("Database opened", "path", path)
	}

	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer hooks the catalog search index into book writes.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// initUsers initializes the Users collection. The email index is
// normalized so lookups are case-insensitive.
func (s *Store) initUsers() {
	s.Users = NewCollection[domain.User](s, "user:").
		WithIndexTransform("email",
			func(u *domain.User) []string {
				return []string{normalizeEmail(u.Email)}
			},
			normalizeEmail, // Transform lookups to be case-insensitive
		)
}

// initBooks initializes the Books collection.
// The slug index backs human-readable catalog URLs.
func (s *Store) initBooks() {
	s.Books = NewCollection[domain.Book](s, "book:").
		WithIndex("slug", func(b *domain.Book) []string {
			return []string{b.Slug}
		})
}

// initReviews initializes the Reviews collection.
// The book_user index enforces the one-review-per-user-per-book convention
// and makes the ownership lookup a single get.
func (s *Store) initReviews() {
	s.Reviews = NewCollection[domain.Review](s, "review:").
		WithIndex("book_user", func(r *domain.Review) []string {
			return []string{r.BookID + ":" + r.UserID}
		})
}
