package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/harbor/internal/derive"
	"github.com/alexanderramin/harbor/internal/domain"
)

// FormatCollection lists every item of one collection across the week,
// sorted by time.
func FormatCollection(c domain.Collection, items []domain.Item) string {
	var b strings.Builder
	b.WriteString(Header(c.SectionTitle()) + "\n")
	if len(items) == 0 {
		b.WriteString(Dim(fmt.Sprintf("No %s planned yet.", c.Noun())) + "\n")
		return b.String()
	}
	for _, it := range derive.SortedByTime(items) {
		b.WriteString(fmt.Sprintf("%s  %s\n", Bold(it.Title), TruncID(it.ID)))
		b.WriteString("  " + StyleBlue.Render(WhenLabel(it)) + "\n")
		if d := Details(it); d != "" {
			b.WriteString("  " + d + "\n")
		}
	}
	return b.String()
}

// FormatLists renders the caregiver's today view: each collection in turn,
// then the summary counts.
func FormatLists(p *domain.PlanState) string {
	sections := make([]string, 0, len(domain.Collections)+1)
	for _, c := range domain.Collections {
		sections = append(sections, FormatCollection(c, p.Items(c)))
	}
	sections = append(sections, FormatSummary(derive.SummaryCounts(p)))
	return strings.Join(sections, "\n")
}

var summaryLabels = map[domain.Collection]string{
	domain.CollectionMeals:     "Meals",
	domain.CollectionExercises: "Activities",
	domain.CollectionReminders: "Reminders",
	domain.CollectionMeds:      "Meds",
}

// FormatSummary renders the per-collection counts.
func FormatSummary(c derive.Counts) string {
	rows := make([][]string, 0, len(domain.Collections))
	for _, coll := range domain.Collections {
		rows = append(rows, []string{summaryLabels[coll], fmt.Sprintf("%d", c.Get(coll))})
	}
	return RenderBox("Summary", RenderTable([]string{"KIND", "COUNT"}, rows, ""))
}

// FormatPatientToday is the simplified view: today's entries only, one per
// line, in time order.
func FormatPatientToday(entries []domain.Entry, today int) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("Today is "+domain.DayName(today)) + "\n\n")
	if len(entries) == 0 {
		b.WriteString(Dim(derive.EmptyDayMarker) + "\n")
		return RenderBox("", b.String())
	}
	for _, e := range entries {
		b.WriteString(fmt.Sprintf("%-9s %s: %s\n", derive.FormatTime(e.Time), KindBadge(e.Collection), Bold(e.Title)))
		if e.Notes != "" {
			b.WriteString("          " + Dim(e.Notes) + "\n")
		}
	}
	return RenderBox("", b.String())
}

// FormatTodayTable lists today's entries across collections in time order.
func FormatTodayTable(entries []domain.Entry, today int) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Clock(e.Time),
			KindBadge(e.Collection),
			Bold(e.Title),
			Details(e.Item),
			TruncID(e.ID),
		})
	}
	return Header(domain.DayName(today)) + "\n" +
		RenderTable([]string{"TIME", "KIND", "TITLE", "DETAILS", "ID"}, rows, derive.EmptyDayMarker)
}

// DoneKey identifies an entry in a done set. Ids are only unique within a
// collection.
func DoneKey(e domain.Entry) string {
	return string(e.Collection) + "/" + e.ID
}

var styleDone = StyleDim.Strikethrough(true)

// FormatChecklist lists entries in order with a cursor marker on the
// selected row. Entries in done are struck through.
func FormatChecklist(title string, entries []domain.Entry, cursor int, done map[string]bool) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(title) + "\n\n")
	if len(entries) == 0 {
		b.WriteString(Dim(derive.EmptyDayMarker) + "\n")
		return b.String()
	}
	for i, e := range entries {
		marker := "  "
		if i == cursor {
			marker = StyleYellow.Render("▸ ")
		}
		if done[DoneKey(e)] {
			line := fmt.Sprintf("[x] %-9s %s: %s", derive.FormatTime(e.Time), e.Label(), e.Title)
			b.WriteString(marker + styleDone.Render(line) + "\n")
			continue
		}
		b.WriteString(fmt.Sprintf("%s[ ] %-9s %s: %s\n", marker, derive.FormatTime(e.Time), KindBadge(e.Collection), Bold(e.Title)))
		if d := Details(e.Item); d != "" {
			b.WriteString("          " + Dim(d) + "\n")
		}
	}
	return b.String()
}

// FormatWeek renders the seven day buckets, Sunday first, marking today.
func FormatWeek(week [domain.DaysPerWeek]derive.DayBucket, today int) string {
	var b strings.Builder
	for i, bucket := range week {
		name := bucket.Name
		if bucket.Day == today {
			name += " (today)"
		}
		b.WriteString(Header(name) + "\n")
		if bucket.Empty {
			b.WriteString(Dim(derive.EmptyDayMarker) + "\n")
		}
		for _, e := range bucket.Entries {
			b.WriteString(fmt.Sprintf("%s · %s: %s\n", derive.FormatTime(e.Time), KindBadge(e.Collection), e.Title))
		}
		if i < len(week)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatRoutines lists the presets with what each adds.
func FormatRoutines(routines []domain.Routine) string {
	var b strings.Builder
	for _, r := range routines {
		b.WriteString(fmt.Sprintf("%s  %s\n", Bold(r.Name), Dim(r.ID)))
		var entries []domain.Entry
		for _, c := range domain.Collections {
			for _, it := range r.Items[c] {
				entries = append(entries, domain.Entry{Item: it, Collection: c})
			}
		}
		for _, e := range derive.SortedByTime(entries) {
			b.WriteString(fmt.Sprintf("  %s · %s: %s\n", derive.FormatTime(e.Time), KindBadge(e.Collection), e.Title))
		}
		b.WriteString("\n")
	}
	return RenderBox("Routines", b.String())
}

// FormatAdded confirms a single added item.
func FormatAdded(c domain.Collection, it domain.Item) string {
	line := fmt.Sprintf("%s Added %s %s at %s", StyleGreen.Render("✔"), KindBadge(c), Bold(it.Title), WhenLabel(it))
	return line + "  " + TruncID(it.ID)
}

// FormatRoutineApplied confirms the entries a routine added.
func FormatRoutineApplied(r domain.Routine, day int, added []domain.Entry) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s Added %s to %s (%d items)\n", StyleGreen.Render("✔"), Bold(r.Name), domain.DayName(day), len(added)))
	for _, e := range derive.SortedByTime(added) {
		b.WriteString(fmt.Sprintf("  %s · %s: %s  %s\n", derive.FormatTime(e.Time), KindBadge(e.Collection), e.Title, TruncID(e.ID)))
	}
	return b.String()
}

// FormatNotes shows the care notes and the safety quick check.
func FormatNotes(p *domain.PlanState) string {
	notes := p.Notes
	if notes == "" {
		notes = Dim("No notes yet.")
	}
	rows := [][]string{
		{"Preferred foods", p.Safety.PrefFoods},
		{"Foods to avoid", p.Safety.AvoidFoods},
		{"Mobility notes", p.Safety.MobilityNotes},
		{"Emergency contact", p.Safety.EmergencyContact},
	}
	return RenderBox("Care notes", notes+"\n\n"+RenderTable([]string{"SAFETY", ""}, rows, ""))
}

// FormatModeView is the one-line status for mode and view changes.
func FormatModeView(p *domain.PlanState) string {
	return fmt.Sprintf("%s  %s %s", ModeBadge(p.Mode), Dim("view:"), StyleFg.Render(string(p.View)))
}
