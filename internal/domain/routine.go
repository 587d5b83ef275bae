package domain

import "sort"

// Routine is a named preset bundle of template items. Template items carry
// no id or day; both are stamped when the routine is applied.
type Routine struct {
	ID    string
	Name  string
	Items map[Collection][]Item
}

// Count returns the number of template items across all collections.
func (r Routine) Count() int {
	n := 0
	for _, items := range r.Items {
		n += len(items)
	}
	return n
}

var routines = map[string]Routine{
	"gentle-morning": {
		ID:   "gentle-morning",
		Name: "Gentle morning",
		Items: map[Collection][]Item{
			CollectionMeals:     {{Title: "Breakfast: warm cereal", Time: "08:00", Notes: "Serve warm, offer tea"}},
			CollectionReminders: {{Title: "Hydration reminder", Time: "08:45", Tone: "gentle"}},
			CollectionExercises: {{Title: "5 min stretch together", Time: "09:15", Notes: "Slow pace, chair nearby"}},
		},
	},
	"midday-move": {
		ID:   "midday-move",
		Name: "Midday move",
		Items: map[Collection][]Item{
			CollectionMeals:     {{Title: "Midday snack", Time: "12:00", Notes: "Soft fruit or yogurt"}},
			CollectionExercises: {{Title: "15 min walk", Time: "11:15", Notes: "Bring water, shade if needed"}},
			CollectionReminders: {{Title: "Rest and breathe", Time: "12:30", Tone: "encouraging"}},
		},
	},
	"evening-winddown": {
		ID:   "evening-winddown",
		Name: "Evening wind-down",
		Items: map[Collection][]Item{
			CollectionMeals:     {{Title: "Dinner: comforting soup", Time: "18:00", Notes: "Soft textures, warm broth"}},
			CollectionReminders: {{Title: "Calm music", Time: "19:00", Tone: "gentle"}},
		},
	},
}

// LookupRoutine finds a preset by id.
func LookupRoutine(id string) (Routine, bool) {
	r, ok := routines[id]
	return r, ok
}

// Routines returns every preset sorted by id.
func Routines() []Routine {
	out := make([]Routine, 0, len(routines))
	for _, r := range routines {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
