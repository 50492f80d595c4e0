package domain

import (
	"fmt"
	"time"
)

// Interval is a half-open time bucket [Start, End) with a display label.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// BuildIntervals returns the chart buckets for a goal frequency, ending at now:
//   - daily: 7 one-day buckets labeled with weekday abbreviations
//   - weekly: 4 one-week buckets (weeks start Monday) labeled "Week 1".."Week 4"
//   - monthly: 6 one-month buckets labeled with month abbreviations
//
// Buckets are ordered oldest to newest; the last bucket contains now.
// An unknown frequency yields an empty slice.
func BuildIntervals(frequency GoalFrequency, now time.Time) []Interval {
	today := StartOfDay(now)

	switch frequency {
	case FrequencyDaily:
		intervals := make([]Interval, 0, 7)
		for i := 6; i >= 0; i-- {
			start := today.AddDate(0, 0, -i)
			intervals = append(intervals, Interval{
				Start: start,
				End:   start.AddDate(0, 0, 1),
				Label: start.Format("Mon"),
			})
		}
		return intervals

	case FrequencyWeekly:
		week := StartOfWeek(now)
		intervals := make([]Interval, 0, 4)
		for i := 3; i >= 0; i-- {
			start := week.AddDate(0, 0, -7*i)
			intervals = append(intervals, Interval{
				Start: start,
				End:   start.AddDate(0, 0, 7),
				Label: fmt.Sprintf("Week %d", 4-i),
			})
		}
		return intervals

	case FrequencyMonthly:
		month := StartOfMonth(now)
		intervals := make([]Interval, 0, 6)
		for i := 5; i >= 0; i-- {
			start := month.AddDate(0, -i, 0)
			intervals = append(intervals, Interval{
				Start: start,
				End:   start.AddDate(0, 1, 0),
				Label: start.Format("Jan"),
			})
		}
		return intervals

	default:
		return nil
	}
}

// StartOfDay normalizes t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight on the Monday of t's week (ISO week start).
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}

// StartOfMonth returns midnight on the first of t's month.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

// SessionTotals aggregates reading activity in a window.
type SessionTotals struct {
	Minutes int `json:"minutes"`
	Pages   int `json:"pages"`
	Books   int `json:"books"` // Distinct books with recorded minutes
}

// TotalsInRange sums reading sessions across all collection entries whose
// StartTime falls in [start, end). Sessions with a zero StartTime predate
// session tracking and are excluded. A book counts toward Books once per
// window if any in-window session logged minutes.
func TotalsInRange(entries []BookCollectionEntry, start, end time.Time) SessionTotals {
	var totals SessionTotals
	booksSeen := make(map[string]struct{})

	for i := range entries {
		entry := &entries[i]
		counted := false
		for _, session := range entry.ReadingSessions {
			if session.StartTime.IsZero() {
				continue
			}
			if session.StartTime.Before(start) || !session.StartTime.Before(end) {
				continue
			}
			totals.Minutes += session.MinutesRead
			totals.Pages += session.PagesRead
			if session.MinutesRead > 0 {
				counted = true
			}
		}
		if counted {
			if _, ok := booksSeen[entry.BookID]; !ok {
				booksSeen[entry.BookID] = struct{}{}
				totals.Books++
			}
		}
	}

	return totals
}

// MinutesByBook returns the all-time minutes read per book ID.
// Sessions with a zero StartTime still count here; the all-time view has no window.
func MinutesByBook(entries []BookCollectionEntry) map[string]int {
	minutes := make(map[string]int)
	for i := range entries {
		entry := &entries[i]
		for _, session := range entry.ReadingSessions {
			minutes[entry.BookID] += session.MinutesRead
		}
	}
	return minutes
}
