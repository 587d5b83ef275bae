// Package derive computes the read-only views of a care plan: time-sorted
// lists, per-collection counts, the weekly grid and the handoff transcript.
// Every function here is pure; nothing reads the clock or touches storage.
package derive

import (
	"slices"
	"strings"

	"github.com/alexanderramin/harbor/internal/domain"
)

// EmptyDayMarker is shown for a weekly bucket with nothing planned.
const EmptyDayMarker = "No plans yet."

type sortable interface {
	SortKey() string
}

// SortedByTime returns a copy of items in ascending "HH:MM" order. The sort
// is stable, so items sharing a time keep their relative order.
func SortedByTime[T sortable](items []T) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(a.SortKey(), b.SortKey())
	})
	return out
}

// Counts holds the number of items in each collection.
type Counts struct {
	Meals     int
	Exercises int
	Reminders int
	Meds      int
}

// Get returns the count for a single collection.
func (c Counts) Get(coll domain.Collection) int {
	switch coll {
	case domain.CollectionMeals:
		return c.Meals
	case domain.CollectionExercises:
		return c.Exercises
	case domain.CollectionReminders:
		return c.Reminders
	case domain.CollectionMeds:
		return c.Meds
	}
	return 0
}

// Total sums every collection.
func (c Counts) Total() int {
	return c.Meals + c.Exercises + c.Reminders + c.Meds
}

// SummaryCounts counts the items in each collection of p.
func SummaryCounts(p *domain.PlanState) Counts {
	return Counts{
		Meals:     len(p.Meals),
		Exercises: len(p.Exercises),
		Reminders: len(p.Reminders),
		Meds:      len(p.Meds),
	}
}

// DayBucket is one column of the weekly grid.
type DayBucket struct {
	Day     int
	Name    string
	Entries []domain.Entry
	// Empty marks a day with no entries; renderers print EmptyDayMarker.
	Empty bool
}

// WeeklyView partitions every item of p into seven day buckets, Sunday
// first, each sorted by time.
func WeeklyView(p *domain.PlanState) [domain.DaysPerWeek]DayBucket {
	var week [domain.DaysPerWeek]DayBucket
	for d := range week {
		week[d] = DayBucket{Day: d, Name: domain.DayName(d)}
	}
	for _, e := range p.Entries() {
		if !domain.ValidDay(e.Day) {
			continue
		}
		week[e.Day].Entries = append(week[e.Day].Entries, e)
	}
	for d := range week {
		week[d].Entries = SortedByTime(week[d].Entries)
		week[d].Empty = len(week[d].Entries) == 0
	}
	return week
}

// TodayEntries returns the tagged entries scheduled on day, sorted by time.
func TodayEntries(p *domain.PlanState, day int) []domain.Entry {
	return SortedByTime(p.EntriesOn(day))
}

// ItemsOn returns the items of one collection scheduled on day, sorted by
// time.
func ItemsOn(p *domain.PlanState, c domain.Collection, day int) []domain.Item {
	var out []domain.Item
	for _, it := range p.Items(c) {
		if it.Day == day {
			out = append(out, it)
		}
	}
	return SortedByTime(out)
}
