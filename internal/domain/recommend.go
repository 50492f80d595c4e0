package domain

import "math/rand/v2"

// Genre-overlap thresholds for recommendation tiers.
const (
	highMatchMin   = 5
	mediumMatchMin = 3
)

// DefaultRecommendationLimit is the number of recommendations returned
// when the caller doesn't ask for a specific count.
const DefaultRecommendationLimit = 3

// BuildRecommendations picks up to limit books similar to source from candidates.
//
// Candidates are bucketed by genre overlap with the source: high (5+ shared
// genres), medium (3-4), low (1-2). Books sharing no genres are ignored, as is
// the source itself. Each tier contributes a random sample of up to limit
// books; tiers are concatenated strongest-first and the result truncated to
// limit. Stronger matches always lead, but repeat visits see variety within a
// tier.
func BuildRecommendations(source *Book, candidates []*Book, limit int) []*Book {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	var high, medium, low []*Book
	for _, candidate := range candidates {
		if candidate.ID == source.ID {
			continue
		}
		switch matches := source.GenreMatchCount(candidate); {
		case matches >= highMatchMin:
			high = append(high, candidate)
		case matches >= mediumMatchMin:
			medium = append(medium, candidate)
		case matches >= 1:
			low = append(low, candidate)
		}
	}

	result := make([]*Book, 0, limit)
	for _, tier := range [][]*Book{high, medium, low} {
		result = append(result, SampleBooks(tier, limit)...)
		if len(result) >= limit {
			break
		}
	}

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}

// SampleBooks returns up to n books drawn randomly without replacement.
// Discovery shelves and recommendation tiers both sample through this.
func SampleBooks(books []*Book, n int) []*Book {
	shuffled := make([]*Book, len(books))
	copy(shuffled, books)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}
