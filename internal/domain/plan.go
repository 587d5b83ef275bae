package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Safety is the fixed quick-check record printed at the end of a handoff.
type Safety struct {
	PrefFoods        string `json:"prefFoods"`
	AvoidFoods       string `json:"avoidFoods"`
	MobilityNotes    string `json:"mobilityNotes"`
	EmergencyContact string `json:"emergencyContact"`
}

// PlanState is the whole persisted care plan. Exactly one exists per store;
// callers load it, mutate it through its methods and save it back.
type PlanState struct {
	Meals         []Item `json:"meals"`
	Exercises     []Item `json:"exercises"`
	Reminders     []Item `json:"reminders"`
	Meds          []Item `json:"meds"`
	Notes         string `json:"notes"`
	Safety        Safety `json:"safety"`
	Mode          Mode   `json:"mode"`
	View          View   `json:"view"`
	AlertsEnabled bool   `json:"alertsEnabled"`

	// Extra carries top-level document keys this version does not know
	// about, so they survive a load/save cycle.
	Extra map[string]json.RawMessage `json:"-"`
}

// IDFunc generates a fresh item id.
type IDFunc func() string

// NewDefaultPlan returns the first-run plan: one seeded meal, activity and
// reminder dated on today.
func NewDefaultPlan(today int, newID IDFunc) *PlanState {
	return &PlanState{
		Meals: []Item{{
			ID:    newID(),
			Title: "Breakfast: oatmeal & berries",
			Time:  "08:00",
			Notes: "Warm tea, gentle prompt",
			Day:   today,
		}},
		Exercises: []Item{{
			ID:    newID(),
			Title: "10 min walk in the garden",
			Time:  "10:30",
			Notes: "Bring water, walk together",
			Day:   today,
		}},
		Reminders: []Item{{
			ID:    newID(),
			Title: "Hydration check",
			Time:  "09:30",
			Tone:  "gentle",
			Day:   today,
		}},
		Meds:  []Item{},
		Mode:  ModeCaregiver,
		View:  ViewToday,
		Notes: "",
	}
}

func (p *PlanState) list(c Collection) (*[]Item, error) {
	switch c {
	case CollectionMeals:
		return &p.Meals, nil
	case CollectionExercises:
		return &p.Exercises, nil
	case CollectionReminders:
		return &p.Reminders, nil
	case CollectionMeds:
		return &p.Meds, nil
	}
	return nil, fmt.Errorf("collection %q: %w", c, ErrUnknownCollection)
}

// Items returns the collection's items in insertion order. Unknown
// collections yield nil.
func (p *PlanState) Items(c Collection) []Item {
	l, err := p.list(c)
	if err != nil {
		return nil
	}
	return *l
}

// Entries returns every item across all collections, tagged, in
// collection order then insertion order.
func (p *PlanState) Entries() []Entry {
	var out []Entry
	for _, c := range Collections {
		for _, it := range p.Items(c) {
			out = append(out, Entry{Item: it, Collection: c})
		}
	}
	return out
}

// EntriesOn returns the tagged entries scheduled on day, unsorted.
func (p *PlanState) EntriesOn(day int) []Entry {
	var out []Entry
	for _, e := range p.Entries() {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}

// Add validates n for collection c, stamps it with a new id and appends it.
func (p *PlanState) Add(c Collection, n NewItem, today int, newID IDFunc) (Item, error) {
	l, err := p.list(c)
	if err != nil {
		return Item{}, err
	}
	item, err := n.Validate(c, today)
	if err != nil {
		return Item{}, err
	}
	item.ID = newID()
	*l = append(*l, item)
	return item, nil
}

// Remove drops the item whose id matches exactly. It reports whether an
// item was removed.
func (p *PlanState) Remove(c Collection, id string) (bool, error) {
	l, err := p.list(c)
	if err != nil {
		return false, err
	}
	before := len(*l)
	*l = slices.DeleteFunc(*l, func(it Item) bool { return it.ID == id })
	return len(*l) != before, nil
}

// ApplyRoutine appends a copy of every template item in r, stamped with a
// fresh id and the given day.
func (p *PlanState) ApplyRoutine(r Routine, day int, newID IDFunc) ([]Entry, error) {
	if !ValidDay(day) {
		return nil, fmt.Errorf("day %d: %w", day, ErrInvalidDay)
	}
	var added []Entry
	for _, c := range Collections {
		l, _ := p.list(c)
		for _, tmpl := range r.Items[c] {
			it := tmpl
			it.ID = newID()
			it.Day = day
			*l = append(*l, it)
			added = append(added, Entry{Item: it, Collection: c})
		}
	}
	return added, nil
}

// SetMode switches between caregiver and patient. Patient mode pins the
// view to today.
func (p *PlanState) SetMode(m Mode) error {
	if m != ModeCaregiver && m != ModePatient {
		return fmt.Errorf("mode %q: %w", m, ErrUnknownMode)
	}
	p.Mode = m
	if m == ModePatient {
		p.View = ViewToday
	}
	return nil
}

// SetView selects the active view. In patient mode the result is always
// today regardless of v.
func (p *PlanState) SetView(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	if p.Mode == ModePatient {
		v = ViewToday
	}
	p.View = v
	return nil
}

// Normalize repairs a loaded plan: nil collections become empty, missing
// or out-of-range days become today, parseable times are zero-padded, and
// unknown mode or view values fall back to defaults.
func (p *PlanState) Normalize(today int) {
	for _, c := range Collections {
		l, _ := p.list(c)
		if *l == nil {
			*l = []Item{}
		}
		for i := range *l {
			it := &(*l)[i]
			if !ValidDay(it.Day) {
				it.Day = today
			}
			if padded, err := NormalizeClock(it.Time); err == nil {
				it.Time = padded
			}
		}
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		p.Mode = ModeCaregiver
	}
	if _, err := ParseView(string(p.View)); err != nil {
		p.View = ViewToday
	}
	if p.Mode == ModePatient {
		p.View = ViewToday
	}
}

// Clone returns a deep copy of p.
func (p *PlanState) Clone() *PlanState {
	c := *p
	c.Meals = slices.Clone(p.Meals)
	c.Exercises = slices.Clone(p.Exercises)
	c.Reminders = slices.Clone(p.Reminders)
	c.Meds = slices.Clone(p.Meds)
	if p.Extra != nil {
		c.Extra = make(map[string]json.RawMessage, len(p.Extra))
		for k, v := range p.Extra {
			c.Extra[k] = slices.Clone(v)
		}
	}
	return &c
}
