package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/store"
)

// CollectionService manages a user's book collection: bookmarks, reading
// status, and logged reading sessions.
type CollectionService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewCollectionService creates a new collection service.
func NewCollectionService(store *store.Store, logger *slog.Logger) *CollectionService {
	return &CollectionService{
		store:  store,
		logger: logger,
	}
}

// CollectionItem is a collection entry joined with its catalog book.
type CollectionItem struct {
	Book         *domain.Book         `json:"book"`
	Status       domain.ReadingStatus `json:"status"`
	Progress     int                  `json:"progress"`
	IsBookmarked bool                 `json:"is_bookmarked"`
	MinutesRead  int                  `json:"minutes_read"`
}

// SaveSessionRequest contains a finished reading sitting.
type SaveSessionRequest struct {
	PageNumber  int `json:"page_number" validate:"gte=0"`
	MinutesRead int `json:"minutes_read" validate:"gte=0"`
}

// SaveSessionResponse returns the recorded session and resulting entry state.
type SaveSessionResponse struct {
	Session  domain.ReadingSession `json:"session"`
	Status   domain.ReadingStatus  `json:"status"`
	Progress int                   `json:"progress"`
}

// ToggleBookmark flips the bookmark flag on a user's collection entry,
// creating the entry on first bookmark. Unbookmarking an entry with no
// progress and no sessions removes it entirely.
func (s *CollectionService) ToggleBookmark(ctx context.Context, userID, bookID string) (*domain.BookCollectionEntry, error) {
	user, book, err := s.userAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	entry := user.CollectionEntry(book.ID)
	switch {
	case entry == nil:
		entry = user.EnsureCollectionEntry(book.ID)
		entry.IsBookmarked = true
	case entry.IsBookmarked && entry.Removable():
		user.RemoveCollectionEntry(book.ID)
		entry = nil
	default:
		entry.IsBookmarked = !entry.IsBookmarked
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if entry == nil {
		// Entry was removed; report the unbookmarked state.
		return &domain.BookCollectionEntry{
			BookID: book.ID,
			Status: domain.StatusNotStarted,
		}, nil
	}

	// Copy so callers don't hold a pointer into the user's slice.
	result := *entry
	return &result, nil
}

// StartReading marks a book as actively being read, creating the collection
// entry if needed. Already-started books are left untouched.
func (s *CollectionService) StartReading(ctx context.Context, userID, bookID string) (*domain.BookCollectionEntry, error) {
	user, book, err := s.userAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	entry := user.EnsureCollectionEntry(book.ID)
	if entry.Status == domain.StatusNotStarted {
		entry.Status = domain.StatusReading
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	result := *entry
	return &result, nil
}

// SaveSession records a finished reading sitting against a book and advances
// the entry's progress and status.
func (s *CollectionService) SaveSession(ctx context.Context, userID, bookID string, req SaveSessionRequest) (*SaveSessionResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	user, book, err := s.userAndBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	entry := user.EnsureCollectionEntry(book.ID)
	session := entry.RecordSession(req.PageNumber, req.MinutesRead, book.PageCount, time.Now())

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Reading session saved",
			"user_id", userID,
			"book_id", bookID,
			"pages_read", session.PagesRead,
			"minutes_read", session.MinutesRead,
			"status", entry.Status,
		)
	}

	return &SaveSessionResponse{
		Session:  session,
		Status:   entry.Status,
		Progress: entry.Progress,
	}, nil
}

// GetCollection returns the user's collection entries joined with their books.
// Entries whose books left the catalog are skipped.
func (s *CollectionService) GetCollection(ctx context.Context, userID string) ([]CollectionItem, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(user.BookCollection))
	for _, entry := range user.BookCollection {
		ids = append(ids, entry.BookID)
	}

	books, err := s.store.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Book, len(books))
	for _, book := range books {
		byID[book.ID] = book
	}

	items := make([]CollectionItem, 0, len(user.BookCollection))
	for _, entry := range user.BookCollection {
		book, ok := byID[entry.BookID]
		if !ok {
			continue
		}
		minutes := 0
		for _, session := range entry.ReadingSessions {
			minutes += session.MinutesRead
		}
		items = append(items, CollectionItem{
			Book:         book,
			Status:       entry.Status,
			Progress:     entry.Progress,
			IsBookmarked: entry.IsBookmarked,
			MinutesRead:  minutes,
		})
	}

	return items, nil
}

// getUser fetches a user, translating not-found into a domain error.
func (s *CollectionService) getUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// userAndBook fetches both sides of a collection operation.
func (s *CollectionService) userAndBook(ctx context.Context, userID, bookID string) (*domain.User, *domain.Book, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, nil, domainerrors.NotFound("book not found")
		}
		return nil, nil, fmt.Errorf("get book: %w", err)
	}

	return user, book, nil
}
