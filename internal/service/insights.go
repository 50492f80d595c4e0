package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/bookspace/bookspace-server/internal/domain"
	domainerrors "github.com/bookspace/bookspace-server/internal/errors"
	"github.com/bookspace/bookspace-server/internal/store"
)

// InsightsService aggregates reading activity into the statistics the
// insights screen charts: all-time totals, per-book minutes, today's
// progress against the goal, and a goal-vs-actual period series.
type InsightsService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewInsightsService creates a new insights service.
func NewInsightsService(store *store.Store, logger *slog.Logger) *InsightsService {
	return &InsightsService{
		store:  store,
		logger: logger,
	}
}

// BookMinutes is the all-time minutes read for one book.
type BookMinutes struct {
	BookID      string `json:"book_id"`
	Title       string `json:"title"`
	MinutesRead int    `json:"minutes_read"`
}

// PeriodBucket is one interval of the goal-vs-actual series.
type PeriodBucket struct {
	Label         string `json:"label"`
	MinutesRead   int    `json:"minutes_read"`
	PagesRead     int    `json:"pages_read"`
	BooksRead     int    `json:"books_read"`
	TargetMinutes int    `json:"target_minutes"` // Full-period target, 0 if no minute goal
}

// PeriodSummary is the totals for a single current period.
type PeriodSummary struct {
	MinutesRead int `json:"minutes_read"`
	PagesRead   int `json:"pages_read"`
	BooksRead   int `json:"books_read"`
}

// Insights is the full insights payload.
type Insights struct {
	TotalMinutesRead int           `json:"total_minutes_read"`
	TotalBooksRead   int           `json:"total_books_read"`
	MinutesByBook    []BookMinutes `json:"minutes_by_book"`

	// Today's gauge. DailyGoalMinutes is the goal scaled to a single day;
	// the period series below uses the undivided target instead.
	TodayMinutesRead     int `json:"today_minutes_read"`
	DailyGoalMinutes     int `json:"daily_goal_minutes"`
	CompletionPercentage int `json:"completion_percentage"`

	Goal         *domain.ReadingGoal `json:"goal,omitempty"`
	PeriodSeries []PeriodBucket      `json:"period_series"`

	CurrentWeek  PeriodSummary `json:"current_week"`
	CurrentMonth PeriodSummary `json:"current_month"`
}

// GetInsights computes the user's reading statistics as of now.
func (s *InsightsService) GetInsights(ctx context.Context, userID string, now time.Time) (*Insights, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	entries := user.BookCollection
	insights := &Insights{}

	// All-time totals.
	perBook := domain.MinutesByBook(entries)
	for _, minutes := range perBook {
		insights.TotalMinutesRead += minutes
		if minutes > 0 {
			insights.TotalBooksRead++
		}
	}
	insights.MinutesByBook, err = s.rankBookMinutes(ctx, perBook)
	if err != nil {
		return nil, err
	}

	// Today's gauge.
	today := domain.StartOfDay(now)
	insights.TodayMinutesRead = domain.TotalsInRange(entries, today, today.AddDate(0, 0, 1)).Minutes

	goal := user.ReadingGoal
	frequency := domain.FrequencyDaily
	if goal != nil && goal.IsActive {
		insights.Goal = goal
		frequency = goal.Frequency
		insights.DailyGoalMinutes = goal.DailyEquivalentMinutes()
		insights.CompletionPercentage = domain.CompletionPercentage(insights.TodayMinutesRead, insights.DailyGoalMinutes)
	}

	// Period series: per-bucket actuals against the undivided period target.
	targetMinutes := 0
	if insights.Goal != nil {
		if minutes, ok := insights.Goal.NormalizedMinutes(); ok {
			targetMinutes = minutes
		}
	}
	for _, interval := range domain.BuildIntervals(frequency, now) {
		totals := domain.TotalsInRange(entries, interval.Start, interval.End)
		insights.PeriodSeries = append(insights.PeriodSeries, PeriodBucket{
			Label:         interval.Label,
			MinutesRead:   totals.Minutes,
			PagesRead:     totals.Pages,
			BooksRead:     totals.Books,
			TargetMinutes: targetMinutes,
		})
	}

	// Current week and month summaries.
	week := domain.StartOfWeek(now)
	weekTotals := domain.TotalsInRange(entries, week, week.AddDate(0, 0, 7))
	insights.CurrentWeek = PeriodSummary{
		MinutesRead: weekTotals.Minutes,
		PagesRead:   weekTotals.Pages,
		BooksRead:   weekTotals.Books,
	}

	month := domain.StartOfMonth(now)
	monthTotals := domain.TotalsInRange(entries, month, month.AddDate(0, 1, 0))
	insights.CurrentMonth = PeriodSummary{
		MinutesRead: monthTotals.Minutes,
		PagesRead:   monthTotals.Pages,
		BooksRead:   monthTotals.Books,
	}

	return insights, nil
}

// rankBookMinutes joins per-book minute totals with catalog titles,
// sorted by minutes descending. Books gone from the catalog are skipped.
func (s *InsightsService) rankBookMinutes(ctx context.Context, perBook map[string]int) ([]BookMinutes, error) {
	ids := make([]string, 0, len(perBook))
	for id := range perBook {
		ids = append(ids, id)
	}

	books, err := s.store.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	ranked := make([]BookMinutes, 0, len(books))
	for _, book := range books {
		ranked = append(ranked, BookMinutes{
			BookID:      book.ID,
			Title:       book.Title,
			MinutesRead: perBook[book.ID],
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MinutesRead != ranked[j].MinutesRead {
			return ranked[i].MinutesRead > ranked[j].MinutesRead
		}
		return ranked[i].Title < ranked[j].Title
	})

	return ranked, nil
}
