package derive

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/harbor/internal/domain"
)

// HandoffTitle prefixes the first line of every handoff transcript.
const HandoffTitle = "Harbor Plan handoff"

const (
	noneScheduled = "- None scheduled."
	noNotes       = "No notes yet."
)

// clockLayout renders a time of day as "8:00 AM".
const clockLayout = "3:04 PM"

// FormatTime turns a 24-hour "HH:MM" string into a 12-hour display such as
// "8:00 AM". Empty input yields empty output; input that does not parse is
// returned unchanged.
func FormatTime(s string) string {
	if s == "" {
		return ""
	}
	h, m, err := domain.ParseClock(s)
	if err != nil {
		return s
	}
	return time.Date(2000, time.January, 1, h, m, 0, 0, time.UTC).Format(clockLayout)
}

// HandoffLine formats one item as "- 8:00 AM: title · dosage · notes · tone tone".
func HandoffLine(it domain.Item) string {
	text := it.Title
	if d := it.Details(); d != "" {
		text += " · " + d
	}
	return fmt.Sprintf("- %s: %s", FormatTime(it.Time), text)
}

// BuildHandoff renders the plain-text handoff transcript for the given day:
// each collection's items for that day, care notes and the safety check.
func BuildHandoff(p *domain.PlanState, today int) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("%s - %s", HandoffTitle, domain.DayName(today)), "")

	for _, c := range domain.Collections {
		lines = append(lines, c.SectionTitle()+":")
		items := ItemsOn(p, c, today)
		if len(items) == 0 {
			lines = append(lines, noneScheduled)
		}
		for _, it := range items {
			lines = append(lines, HandoffLine(it))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Care notes:")
	if p.Notes != "" {
		lines = append(lines, p.Notes)
	} else {
		lines = append(lines, noNotes)
	}
	lines = append(lines, "")

	lines = append(lines,
		"Safety quick check:",
		"Preferred foods: "+p.Safety.PrefFoods,
		"Foods to avoid: "+p.Safety.AvoidFoods,
		"Mobility notes: "+p.Safety.MobilityNotes,
		"Emergency contact: "+p.Safety.EmergencyContact,
	)
	return strings.Join(lines, "\n")
}
