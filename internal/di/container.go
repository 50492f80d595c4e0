// Package di wires the server together with a samber/do container.
package di

import (
	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/di/providers"
)

// NewContainer registers every provider. Nothing is constructed until
// Bootstrap (or a test) invokes it.
func NewContainer() *do.RootScope {
	injector := do.New()

	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)

	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideCollectionService)
	do.Provide(injector, providers.ProvideGoalService)
	do.Provide(injector, providers.ProvideReviewService)
	do.Provide(injector, providers.ProvideInsightsService)
	do.Provide(injector, providers.ProvideRecommendationCache)
	do.Provide(injector, providers.ProvideRecommendationService)

	do.Provide(injector, providers.ProvideAuthRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap builds the running server. Invoking the HTTP server pulls in
// every service it depends on; the search index is invoked first because
// only its provider hooks the indexer into the store, and nothing else
// depends on the handle directly.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
