package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookspace/bookspace-server/internal/domain"
)

func recBook(id string, genres ...string) *domain.Book {
	return &domain.Book{
		Record: domain.Record{ID: id},
		Genres: genres,
	}
}

func TestBuildRecommendationsTierOrder(t *testing.T) {
	source := recBook("source", "a", "b", "c", "d", "e", "f")

	high := recBook("high", "a", "b", "c", "d", "e")
	medium := recBook("medium", "a", "b", "c")
	low := recBook("low", "a")
	unrelated := recBook("unrelated", "x", "y")

	// One candidate per tier makes the sampling deterministic.
	result := domain.BuildRecommendations(source, []*domain.Book{unrelated, low, medium, high}, 3)

	require.Len(t, result, 3)
	assert.Equal(t, "high", result[0].ID)
	assert.Equal(t, "medium", result[1].ID)
	assert.Equal(t, "low", result[2].ID)
}

func TestBuildRecommendationsExcludesSourceAndUnrelated(t *testing.T) {
	source := recBook("source", "a", "b")

	result := domain.BuildRecommendations(source, []*domain.Book{
		source,
		recBook("unrelated", "x"),
	}, 5)

	assert.Empty(t, result)
}

func TestBuildRecommendationsLimit(t *testing.T) {
	source := recBook("source", "a", "b", "c", "d", "e")

	candidates := make([]*domain.Book, 0, 10)
	for _, id := range []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10"} {
		candidates = append(candidates, recBook(id, "a", "b", "c", "d", "e"))
	}

	result := domain.BuildRecommendations(source, candidates, 4)
	assert.Len(t, result, 4)

	// Zero falls back to the default limit.
	result = domain.BuildRecommendations(source, candidates, 0)
	assert.Len(t, result, domain.DefaultRecommendationLimit)
}
