package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookspace/bookspace-server/internal/cache"
	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/store"
)

// RecommendationService produces genre-based "readers also liked" shelves.
// Results are cached per source book; the shelf only reshuffles when the
// cache entry expires, so repeat visits inside the TTL are stable.
type RecommendationService struct {
	store  *store.Store
	cache  *cache.Cache[[]*domain.Book]
	logger *slog.Logger
}

// NewRecommendationService creates a new recommendation service.
func NewRecommendationService(store *store.Store, cache *cache.Cache[[]*domain.Book], logger *slog.Logger) *RecommendationService {
	return &RecommendationService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// GetRecommendations returns up to limit books similar to the given book.
func (s *RecommendationService) GetRecommendations(ctx context.Context, bookID string, limit int) ([]*domain.Book, error) {
	if limit <= 0 {
		limit = domain.DefaultRecommendationLimit
	}

	key := fmt.Sprintf("%s:%d", bookID, limit)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	source, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	candidates, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	recommendations := domain.BuildRecommendations(source, candidates, limit)
	s.cache.Set(key, recommendations)

	if s.logger != nil {
		s.logger.Debug("Recommendations computed",
			"book_id", bookID,
			"count", len(recommendations),
		)
	}

	return recommendations, nil
}
