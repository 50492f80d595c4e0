package api

import (
	"github.com/bookspace/bookspace-server/internal/service"
)

// Services is everything the handlers call into, passed to NewServer as
// one bundle so tests can swap pieces out.
type Services struct {
	Auth           *service.AuthService
	Book           *service.BookService
	Collection     *service.CollectionService
	Goal           *service.GoalService
	Review         *service.ReviewService
	Insights       *service.InsightsService
	Recommendation *service.RecommendationService
}
