package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/cache"
	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/service"
	"github.com/bookspace/bookspace-server/internal/store"
)

func setupRecommendationService(t *testing.T) (*service.RecommendationService, *store.Store, func()) {
	t.Helper()

	s, storeCleanup := setupTestStore(t)
	c := cache.New[[]*domain.Book](time.Hour)

	cleanup := func() {
		c.Stop()
		storeCleanup()
	}

	return service.NewRecommendationService(s, c, nil), s, cleanup
}

func TestRecommendationService_TierOrdering(t *testing.T) {
	svc, s, cleanup := setupRecommendationService(t)
	defer cleanup()

	ctx := context.Background()

	genres := []string{"epic", "quest", "magic", "dragons", "war", "politics"}
	seedBook(t, s, "book-src", "The Source", "the-source", 300, genres)
	seedBook(t, s, "book-high", "Strong Match", "strong-match", 300, genres[:5])
	seedBook(t, s, "book-med", "Medium Match", "medium-match", 300, genres[:3])
	seedBook(t, s, "book-low", "Weak Match", "weak-match", 300, genres[:1])
	seedBook(t, s, "book-none", "No Match", "no-match", 300, []string{"cooking"})

	recs, err := svc.GetRecommendations(ctx, "book-src", 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Tiers lead strongest-first; books with no shared genres never appear.
	assert.Equal(t, "book-high", recs[0].ID)
	assert.Equal(t, "book-med", recs[1].ID)
	assert.Equal(t, "book-low", recs[2].ID)
}

func TestRecommendationService_DefaultLimit(t *testing.T) {
	svc, s, cleanup := setupRecommendationService(t)
	defer cleanup()

	seedBook(t, s, "book-src", "The Source", "the-source", 300, []string{"epic"})
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedBook(t, s, "book-"+id, "Match "+id, "match-"+id, 300, []string{"epic"})
	}

	recs, err := svc.GetRecommendations(context.Background(), "book-src", 0)
	require.NoError(t, err)
	assert.Len(t, recs, domain.DefaultRecommendationLimit)
}

func TestRecommendationService_CachedShelfIsStable(t *testing.T) {
	svc, s, cleanup := setupRecommendationService(t)
	defer cleanup()

	ctx := context.Background()

	seedBook(t, s, "book-src", "The Source", "the-source", 300, []string{"epic"})
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		seedBook(t, s, "book-"+id, "Match "+id, "match-"+id, 300, []string{"epic"})
	}

	first, err := svc.GetRecommendations(ctx, "book-src", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Repeat calls inside the TTL hit the cache, so the shelf doesn't reshuffle.
	for range 5 {
		again, err := svc.GetRecommendations(ctx, "book-src", 2)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendationService_UnknownBook(t *testing.T) {
	svc, _, cleanup := setupRecommendationService(t)
	defer cleanup()

	_, err := svc.GetRecommendations(context.Background(), "book-ghost", 3)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestRecommendationService_NoCandidates(t *testing.T) {
	svc, s, cleanup := setupRecommendationService(t)
	defer cleanup()

	seedBook(t, s, "book-src", "The Source", "the-source", 300, []string{"epic"})

	recs, err := svc.GetRecommendations(context.Background(), "book-src", 3)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
