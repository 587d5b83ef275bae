package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/harbor/internal/domain"
)

// Wednesday is 2026-10-14, a Wednesday (day slot 3), at the given local
// wall-clock time in UTC.
func Wednesday(hour, minute int) time.Time {
	return time.Date(2026, time.October, 14, hour, minute, 0, 0, time.UTC)
}

// SeqIDs returns an IDFunc yielding prefix-1, prefix-2, ...
func SeqIDs(prefix string) domain.IDFunc {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}

// Item options
type ItemOption func(*domain.Item)

func WithNotes(s string) ItemOption {
	return func(i *domain.Item) { i.Notes = s }
}

func WithDosage(s string) ItemOption {
	return func(i *domain.Item) { i.Dosage = s }
}

func WithTone(s string) ItemOption {
	return func(i *domain.Item) { i.Tone = s }
}

func WithID(id string) ItemOption {
	return func(i *domain.Item) { i.ID = id }
}

var testItemCounter atomic.Int64

// NewTestItem builds an item with a unique id.
func NewTestItem(title, clock string, day int, opts ...ItemOption) domain.Item {
	it := domain.Item{
		ID:    fmt.Sprintf("item-%d", testItemCounter.Add(1)),
		Title: title,
		Time:  clock,
		Day:   day,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// Plan options
type PlanOption func(*domain.PlanState)

// WithItems appends items to collection c.
func WithItems(c domain.Collection, items ...domain.Item) PlanOption {
	return func(p *domain.PlanState) {
		switch c {
		case domain.CollectionMeals:
			p.Meals = append(p.Meals, items...)
		case domain.CollectionExercises:
			p.Exercises = append(p.Exercises, items...)
		case domain.CollectionReminders:
			p.Reminders = append(p.Reminders, items...)
		case domain.CollectionMeds:
			p.Meds = append(p.Meds, items...)
		}
	}
}

func WithAlertsEnabled() PlanOption {
	return func(p *domain.PlanState) { p.AlertsEnabled = true }
}

// NewEmptyPlan returns a plan with no items in any collection.
func NewEmptyPlan(opts ...PlanOption) *domain.PlanState {
	p := &domain.PlanState{
		Meals:     []domain.Item{},
		Exercises: []domain.Item{},
		Reminders: []domain.Item{},
		Meds:      []domain.Item{},
		Mode:      domain.ModeCaregiver,
		View:      domain.ViewToday,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
