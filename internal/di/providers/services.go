package providers

import (
	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/auth"
	"github.com/bookspace/bookspace-server/internal/cache"
	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/domain"
	"github.com/bookspace/bookspace-server/internal/logger"
	"github.com/bookspace/bookspace-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideBookService provides the catalog service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, indexHandle.SearchIndex, log.Logger), nil
}

// ProvideCollectionService provides the collection service.
func ProvideCollectionService(i do.Injector) (*service.CollectionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCollectionService(storeHandle.Store, log.Logger), nil
}

// ProvideGoalService provides the reading goal service.
func ProvideGoalService(i do.Injector) (*service.GoalService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGoalService(storeHandle.Store, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(storeHandle.Store, log.Logger), nil
}

// ProvideInsightsService provides the reading insights service.
func ProvideInsightsService(i do.Injector) (*service.InsightsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInsightsService(storeHandle.Store, log.Logger), nil
}

// RecommendationCacheHandle wraps the recommendation cache with shutdown capability.
type RecommendationCacheHandle struct {
	*cache.Cache[[]*domain.Book]
}

// Shutdown implements do.Shutdownable.
func (h *RecommendationCacheHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvideRecommendationCache provides the TTL cache for recommendation shelves.
func ProvideRecommendationCache(i do.Injector) (*RecommendationCacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return &RecommendationCacheHandle{
		Cache: cache.New[[]*domain.Book](cfg.Insights.RecommendationCacheTTL),
	}, nil
}

// ProvideRecommendationService provides the recommendation service.
func ProvideRecommendationService(i do.Injector) (*service.RecommendationService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*RecommendationCacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendationService(storeHandle.Store, cacheHandle.Cache, log.Logger), nil
}
