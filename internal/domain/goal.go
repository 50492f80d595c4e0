package domain

import (
	"math"
	"time"
)

// GoalType is the unit a reading goal is measured in.
type GoalType string

// Goal type values.
const (
	GoalTypeMinutes GoalType = "minutes"
	GoalTypeHours   GoalType = "hours"
	GoalTypePages   GoalType = "pages"
	GoalTypeBooks   GoalType = "books"
)

// Valid returns true if the goal type is a recognized value.
func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeMinutes, GoalTypeHours, GoalTypePages, GoalTypeBooks:
		return true
	default:
		return false
	}
}

// GoalFrequency is the period a reading goal covers.
type GoalFrequency string

// Goal frequency values.
const (
	FrequencyDaily   GoalFrequency = "daily"
	FrequencyWeekly  GoalFrequency = "weekly"
	FrequencyMonthly GoalFrequency = "monthly"
)

// Valid returns true if the frequency is a recognized value.
func (f GoalFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// ReadingGoal is a user's single active reading target.
// Editing replaces the goal wholesale; deleting deactivates it and zeroes the target.
type ReadingGoal struct {
	CreatedAt time.Time     `json:"created_at"`
	Type      GoalType      `json:"type"`
	Frequency GoalFrequency `json:"frequency"`
	Target    int           `json:"target"`
	IsActive  bool          `json:"is_active"`
}

// NormalizedMinutes converts the goal target to minutes for the full period.
// Hours multiply by 60, minutes pass through. Page and book goals are not
// expressible in minutes; ok is false for those.
func (g *ReadingGoal) NormalizedMinutes() (minutes int, ok bool) {
	if g == nil {
		return 0, false
	}
	switch g.Type {
	case GoalTypeHours:
		return g.Target * 60, true
	case GoalTypeMinutes:
		return g.Target, true
	default:
		return 0, false
	}
}

// DailyEquivalentMinutes scales the period target down to a single day for the
// "today" gauge: weekly targets divide by 7, monthly by a fixed 30, rounded.
// The period chart deliberately uses the undivided NormalizedMinutes target
// instead; the two views are not interchangeable.
func (g *ReadingGoal) DailyEquivalentMinutes() int {
	minutes, ok := g.NormalizedMinutes()
	if !ok {
		return 0
	}
	switch g.Frequency {
	case FrequencyWeekly:
		return int(math.Round(float64(minutes) / 7))
	case FrequencyMonthly:
		return int(math.Round(float64(minutes) / 30))
	default:
		return minutes
	}
}

// CompletionPercentage returns actual as a rounded percentage of target.
// A zero or negative target yields 0. The result is uncapped; display
// layers clamp it if they want a bounded gauge.
func CompletionPercentage(actual, target int) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(float64(actual) / float64(target) * 100))
}
