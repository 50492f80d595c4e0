package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/id"
	"github.com/bookspace/bookspace-server/internal/search"
	"github.com/bookspace/bookspace-server/internal/store"
	"github.com/bookspace/bookspace-server/internal/util"
	"github.com/bookspace/bookspace-server/internal/validation"
)

// DefaultDiscoveryLimit is the number of books returned by the discovery
// endpoints (random, popular, by mood) when no explicit limit is given.
const DefaultDiscoveryLimit = 6

// BookService handles catalog browsing and discovery.
type BookService struct {
	store       *store.Store
	searchIndex *search.SearchIndex
	logger      *slog.Logger
	validator   *validation.Validator
}

// NewBookService creates a new book service.
func NewBookService(store *store.Store, searchIndex *search.SearchIndex, logger *slog.Logger) *BookService {
	return &BookService{
		store:       store,
		searchIndex: searchIndex,
		logger:      logger,
		validator:   validation.New(),
	}
}

// CreateBookRequest contains the data for adding a book to the catalog.
type CreateBookRequest struct {
	Title       string             `json:"title" validate:"required"`
	Authors     []string           `json:"authors" validate:"required,min=1"`
	Description string             `json:"description,omitempty"`
	ReleaseYear int                `json:"release_year,omitempty"`
	PageCount   int                `json:"page_count" validate:"gt=0"`
	Genres      []string           `json:"genres,omitempty"`
	Tags        []string           `json:"tags,omitempty"`
	Moods       []string           `json:"moods,omitempty"`
	CoverImage  *domain.CoverImage `json:"cover_image,omitempty"`
}

// CreateBook adds a book to the catalog. The slug is derived from the title.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		Record: domain.Record{
			ID: bookID,
		},
		Title:       req.Title,
		Slug:        util.Slugify(req.Title),
		Authors:     req.Authors,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		PageCount:   req.PageCount,
		Genres:      req.Genres,
		Tags:        req.Tags,
		Moods:       req.Moods,
		CoverImage:  req.CoverImage,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("a book with this title already exists")
		}
		return nil, fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book added to catalog", "book_id", bookID, "slug", book.Slug)
	}

	return book, nil
}

// DeleteBook removes a book from the catalog and the search index.
// Collection entries referencing the book keep their reading history.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if store.IsNotFound(err) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("get book: %w", err)
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Book removed from catalog", "book_id", bookID)
	}

	return nil
}

// ListBooks returns the full catalog.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// GetBook fetches a single book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// GetBookBySlug fetches a single book by its catalog slug.
func (s *BookService) GetBookBySlug(ctx context.Context, slug string) (*domain.Book, error) {
	book, err := s.store.GetBookBySlug(ctx, slug)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book by slug: %w", err)
	}
	return book, nil
}

// RandomBooks returns a random sample of the catalog.
func (s *BookService) RandomBooks(ctx context.Context, limit int) ([]*domain.Book, error) {
	if limit <= 0 {
		limit = DefaultDiscoveryLimit
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	return domain.SampleBooks(books, limit), nil
}

// PopularBooks returns a sample of highly-rated books.
// The top 2x limit by rating (ties broken by ratings count) form the pool;
// a random sample keeps the shelf from looking identical on every visit.
func (s *BookService) PopularBooks(ctx context.Context, limit int) ([]*domain.Book, error) {
	if limit <= 0 {
		limit = DefaultDiscoveryLimit
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	rated := make([]*domain.Book, 0, len(books))
	for _, book := range books {
		if book.Rating > 0 {
			rated = append(rated, book)
		}
	}

	sort.Slice(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].RatingsCount > rated[j].RatingsCount
	})

	if len(rated) > 2*limit {
		rated = rated[:2*limit]
	}

	return domain.SampleBooks(rated, limit), nil
}

// BooksByMoods returns a sample of books matching at least one requested mood.
// Candidates are ordered by mood overlap then rating; the top 2x limit form
// the pool for a random sample.
func (s *BookService) BooksByMoods(ctx context.Context, moods []string, limit int) ([]*domain.Book, error) {
	if limit <= 0 {
		limit = DefaultDiscoveryLimit
	}
	if len(moods) == 0 {
		return nil, domainerrors.Validation("at least one mood is required")
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.Book, 0, len(books))
	for _, book := range books {
		if book.MoodMatchCount(moods) > 0 {
			matched = append(matched, book)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		mi, mj := matched[i].MoodMatchCount(moods), matched[j].MoodMatchCount(moods)
		if mi != mj {
			return mi > mj
		}
		return matched[i].Rating > matched[j].Rating
	})

	if len(matched) > 2*limit {
		matched = matched[:2*limit]
	}

	return domain.SampleBooks(matched, limit), nil
}

// SearchBooks runs a full-text query over the catalog index.
func (s *BookService) SearchBooks(ctx context.Context, query string, limit int) (*search.SearchResult, error) {
	if query == "" {
		return nil, domainerrors.Validation("q is required")
	}

	params := search.DefaultSearchParams()
	params.Query = query
	if limit > 0 {
		params.Limit = limit
	}

	result, err := s.searchIndex.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return result, nil
}
