package domain

import (
	"fmt"
	"strings"
)

type Mode string

const (
	ModeCaregiver Mode = "caregiver"
	ModePatient   Mode = "patient"
)

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeCaregiver, ModePatient:
		return m, nil
	}
	return "", fmt.Errorf("mode %q: %w", s, ErrUnknownMode)
}

type View string

const (
	ViewToday    View = "today"
	ViewWeek     View = "week"
	ViewRoutines View = "routines"
	ViewHandoff  View = "handoff"
)

// ValidViews lists the views in tab order.
var ValidViews = []View{ViewToday, ViewWeek, ViewRoutines, ViewHandoff}

// ParseView accepts a view name case-insensitively.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ValidViews {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("view %q: %w", s, ErrUnknownView)
}

// Collection tags a PlanItem with the list that owns it.
type Collection string

const (
	CollectionMeals     Collection = "meals"
	CollectionExercises Collection = "exercises"
	CollectionReminders Collection = "reminders"
	CollectionMeds      Collection = "meds"
)

// Collections lists every collection in display order.
var Collections = []Collection{CollectionMeals, CollectionExercises, CollectionReminders, CollectionMeds}

// Field names an optional, kind-specific PlanItem field.
type Field string

const (
	FieldNotes  Field = "notes"
	FieldDosage Field = "dosage"
	FieldTone   Field = "tone"
)

var collectionAliases = map[string]Collection{
	"meal": CollectionMeals, "meals": CollectionMeals,
	"activity": CollectionExercises, "activities": CollectionExercises,
	"exercise": CollectionExercises, "exercises": CollectionExercises,
	"reminder": CollectionReminders, "reminders": CollectionReminders,
	"med": CollectionMeds, "meds": CollectionMeds,
	"medication": CollectionMeds, "medications": CollectionMeds,
}

// ParseCollection resolves singular, plural and display-name aliases.
func ParseCollection(s string) (Collection, error) {
	if c, ok := collectionAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("collection %q: %w", s, ErrUnknownCollection)
}

// Label is the singular tag shown next to an item outside its own list.
func (c Collection) Label() string {
	switch c {
	case CollectionMeals:
		return "Meal"
	case CollectionExercises:
		return "Activity"
	case CollectionReminders:
		return "Reminder"
	case CollectionMeds:
		return "Medication"
	default:
		return string(c)
	}
}

// SectionTitle is the heading used for the collection in the handoff and summary.
func (c Collection) SectionTitle() string {
	switch c {
	case CollectionMeals:
		return "Meals"
	case CollectionExercises:
		return "Activities"
	case CollectionReminders:
		return "Reminders"
	case CollectionMeds:
		return "Medication"
	default:
		return string(c)
	}
}

// Noun is the lowercase plural used in empty-list messages.
func (c Collection) Noun() string {
	switch c {
	case CollectionExercises:
		return "activities"
	case CollectionMeds:
		return "medications"
	default:
		return string(c)
	}
}

// Allows reports whether items in c may carry the given optional field.
func (c Collection) Allows(f Field) bool {
	switch f {
	case FieldNotes:
		return true
	case FieldDosage:
		return c == CollectionMeds
	case FieldTone:
		return c == CollectionReminders
	default:
		return false
	}
}
