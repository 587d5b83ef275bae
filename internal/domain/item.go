package domain

import (
	"fmt"
	"strings"
)

// Item is one scheduled entry in a plan collection. Which optional fields
// are meaningful depends on the owning Collection (see Collection.Allows).
type Item struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Time   string `json:"time"`
	Day    int    `json:"day"`
	Notes  string `json:"notes,omitempty"`
	Dosage string `json:"dosage,omitempty"`
	Tone   string `json:"tone,omitempty"`
}

// SortKey is the value items are ordered by within a day.
func (i Item) SortKey() string { return i.Time }

// Details joins the present optional fields with a middle dot, e.g.
// "81mg · with food" or "gentle tone".
func (i Item) Details() string {
	var parts []string
	if i.Dosage != "" {
		parts = append(parts, i.Dosage)
	}
	if i.Notes != "" {
		parts = append(parts, i.Notes)
	}
	if i.Tone != "" {
		parts = append(parts, i.Tone+" tone")
	}
	return strings.Join(parts, " · ")
}

// Body is the alert body: notes, falling back to dosage.
func (i Item) Body() string {
	if i.Notes != "" {
		return i.Notes
	}
	return i.Dosage
}

// NewItem holds user-supplied fields for an item about to be added.
// A nil Day means "today".
type NewItem struct {
	Title  string
	Time   string
	Day    *int
	Notes  string
	Dosage string
	Tone   string
}

// Validate checks n against the field rules of collection c and returns the
// normalized Item without an id.
func (n NewItem) Validate(c Collection, today int) (Item, error) {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}
	clock, err := NormalizeClock(n.Time)
	if err != nil {
		return Item{}, err
	}
	day := today
	if n.Day != nil {
		day = *n.Day
	}
	if !ValidDay(day) {
		return Item{}, fmt.Errorf("day %d: %w", day, ErrInvalidDay)
	}
	item := Item{
		Title:  title,
		Time:   clock,
		Day:    day,
		Notes:  strings.TrimSpace(n.Notes),
		Dosage: strings.TrimSpace(n.Dosage),
		Tone:   strings.TrimSpace(n.Tone),
	}
	if item.Dosage != "" && !c.Allows(FieldDosage) {
		return Item{}, fmt.Errorf("dosage on %s: %w", c, ErrFieldNotAllowed)
	}
	if item.Tone != "" && !c.Allows(FieldTone) {
		return Item{}, fmt.Errorf("tone on %s: %w", c, ErrFieldNotAllowed)
	}
	return item, nil
}

// Entry is an Item tagged with its origin collection, used wherever items
// from several collections are shown together.
type Entry struct {
	Item
	Collection Collection
}

// Label is the human tag for the entry's collection.
func (e Entry) Label() string { return e.Collection.Label() }
