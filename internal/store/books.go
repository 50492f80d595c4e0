package store

import (
	"context"
	"fmt"

	"github.com/bookspace/bookspace-server/internal/domain"
)

// CreateBook persists a new book and indexes it for search.
// Returns ErrAlreadyExists if the ID or slug is taken.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	if err := s.Books.Create(ctx, book.ID, book); err != nil {
		return err
	}
	s.indexBook(ctx, book)
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.Books.Get(ctx, id)
}

// GetBookBySlug retrieves a book by its catalog slug.
func (s *Store) GetBookBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	return s.Books.GetByIndex(ctx, "slug", slug)
}

// UpdateBook persists changes to an existing book and reindexes it.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	book.Touch()
	if err := s.Books.Update(ctx, book.ID, book); err != nil {
		return err
	}
	s.indexBook(ctx, book)
	return nil
}

// DeleteBook removes a book and its search document. Idempotent.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	if err := s.Books.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchIndexer != nil {
		if err := s.searchIndexer.DeleteBook(ctx, id); err != nil && s.logger != nil {
			s.logger.Warn("Failed to remove book from search index", "book_id", id, "error", err)
		}
	}
	return nil
}

// ListBooks returns the full catalog.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	var books []*domain.Book
	for book, err := range s.Books.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list books: %w", err)
		}
		books = append(books, book)
	}
	return books, nil
}

// GetBooksByIDs fetches the given books, skipping IDs that no longer exist.
// Collection entries can outlive catalog removals, so missing books are not an error.
func (s *Store) GetBooksByIDs(ctx context.Context, ids []string) ([]*domain.Book, error) {
	books := make([]*domain.Book, 0, len(ids))
	for _, id := range ids {
		book, err := s.Books.Get(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("get book %s: %w", id, err)
		}
		books = append(books, book)
	}
	return books, nil
}

// indexBook pushes a book into the search index; failures are logged, not fatal.
func (s *Store) indexBook(ctx context.Context, book *domain.Book) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexBook(ctx, book); err != nil && s.logger != nil {
		s.logger.Warn("Failed to index book for search", "book_id", book.ID, "error", err)
	}
}
