package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/harbor/internal/alerts"
	"github.com/alexanderramin/harbor/internal/derive"
	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/service"
	"github.com/alexanderramin/harbor/internal/testutil"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are
// terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{{"long cell", "x"}, {"y", "z"}}, ""))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, "A"+strings.Repeat(" ", 10)+"BB", lines[0])
	assert.Equal(t, strings.Repeat("─", 9)+"  ──", lines[1])
	assert.Equal(t, "long cell  x", lines[2])
	assert.Equal(t, "y"+strings.Repeat(" ", 10)+"z", lines[3])
}

func TestRenderTable_EmptyPlaceholder(t *testing.T) {
	out := stripANSI(RenderTable([]string{"TIME"}, nil, "No plans yet."))
	assert.Contains(t, out, "No plans yet.")
	assert.Empty(t, RenderTable(nil, nil, "x"))
}

func TestFormatCollection(t *testing.T) {
	items := []domain.Item{
		testutil.NewTestItem("Aspirin", "21:00", 3, testutil.WithDosage("81mg"), testutil.WithNotes("with food")),
		testutil.NewTestItem("Vitamin D", "08:00", 1),
	}
	out := stripANSI(FormatCollection(domain.CollectionMeds, items))

	assert.Contains(t, out, "MEDICATION")
	assert.Contains(t, out, "8:00 AM · Monday")
	assert.Contains(t, out, "9:00 PM · Wednesday")
	assert.Contains(t, out, "81mg · with food")
	assert.Less(t, strings.Index(out, "Vitamin D"), strings.Index(out, "Aspirin"), "sorted by time")
}

func TestFormatCollection_Empty(t *testing.T) {
	out := stripANSI(FormatCollection(domain.CollectionExercises, nil))
	assert.Contains(t, out, "No activities planned yet.")
}

func TestFormatSummary(t *testing.T) {
	out := stripANSI(FormatSummary(derive.Counts{Meals: 2, Exercises: 1, Meds: 3}))
	for _, want := range []string{"Meals", "Activities", "Reminders", "Meds", "3"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatWeek_MarksTodayAndEmptyDays(t *testing.T) {
	p := testutil.NewEmptyPlan(
		testutil.WithItems(domain.CollectionMeals, testutil.NewTestItem("Soup", "18:00", 3)),
	)
	out := stripANSI(FormatWeek(derive.WeeklyView(p), 3))

	assert.Contains(t, out, "WEDNESDAY (TODAY)")
	assert.Contains(t, out, "6:00 PM · Meal: Soup")
	assert.Equal(t, 6, strings.Count(out, derive.EmptyDayMarker))
}

func TestFormatPatientToday(t *testing.T) {
	entries := []domain.Entry{
		{Item: testutil.NewTestItem("Breakfast", "08:00", 3, testutil.WithNotes("Warm tea")), Collection: domain.CollectionMeals},
	}
	out := stripANSI(FormatPatientToday(entries, 3))
	assert.Contains(t, out, "Today is Wednesday")
	assert.Contains(t, out, "Meal: Breakfast")
	assert.Contains(t, out, "Warm tea")

	assert.Contains(t, stripANSI(FormatPatientToday(nil, 0)), derive.EmptyDayMarker)
}

func TestFormatRoutines_ListsPresetsInTimeOrder(t *testing.T) {
	out := stripANSI(FormatRoutines(domain.Routines()))
	assert.Contains(t, out, "gentle-morning")
	assert.Contains(t, out, "Evening wind-down")
	assert.Less(t, strings.Index(out, "11:15 AM"), strings.Index(out, "12:00 PM"))
}

func TestFormatNotes_Placeholder(t *testing.T) {
	p := testutil.NewEmptyPlan()
	p.Safety.EmergencyContact = "Dana 555-0100"
	out := stripANSI(FormatNotes(p))
	assert.Contains(t, out, "No notes yet.")
	assert.Contains(t, out, "Dana 555-0100")
}

func TestFormatAlertStatus(t *testing.T) {
	off := stripANSI(FormatAlertStatus(service.AlertStatus{Permission: alerts.PermissionDenied}))
	assert.Contains(t, off, "Alerts blocked")
	assert.Contains(t, off, "alerts forget")

	fire := alerts.Fire{
		Entry: domain.Entry{Item: testutil.NewTestItem("Aspirin", "09:15", 3), Collection: domain.CollectionMeds},
		At:    testutil.Wednesday(9, 15),
		Delay: 15 * time.Minute,
		Title: "Medication: Aspirin",
		Body:  "81mg",
	}
	on := stripANSI(FormatAlertStatus(service.AlertStatus{Enabled: true, Permission: alerts.PermissionGranted, Armed: []alerts.Fire{fire}}))
	assert.Contains(t, on, "Alerts on")
	assert.Contains(t, on, "9:15 AM")
	assert.Contains(t, on, "Medication: Aspirin")

	none := stripANSI(FormatAlertStatus(service.AlertStatus{Enabled: true, Permission: alerts.PermissionGranted}))
	assert.Contains(t, none, "Nothing left to alert today.")

	elsewhere := stripANSI(FormatAlertStatus(service.AlertStatus{Enabled: true, Permission: alerts.PermissionUnsupported}))
	assert.Contains(t, elsewhere, "Alerts unsupported")
	assert.Contains(t, elsewhere, "harbor watch")
	assert.NotContains(t, elsewhere, "Nothing left to alert today.")

	assert.Contains(t, stripANSI(FormatFired(fire.At, fire.Title, fire.Body)), "⏰ 9:15 AM Medication: Aspirin  81mg")
}

func TestFormatChecklist(t *testing.T) {
	entries := []domain.Entry{
		{Item: testutil.NewTestItem("Breakfast", "08:00", 3, testutil.WithID("m1")), Collection: domain.CollectionMeals},
		{Item: testutil.NewTestItem("Aspirin", "09:00", 3, testutil.WithID("m1"), testutil.WithDosage("81mg")), Collection: domain.CollectionMeds},
	}
	done := map[string]bool{DoneKey(entries[0]): true}

	out := stripANSI(FormatChecklist("Today is Wednesday", entries, 1, done))
	assert.Contains(t, out, "Today is Wednesday")
	assert.Contains(t, out, "[x] 8:00 AM   Meal: Breakfast")
	assert.Contains(t, out, "▸ [ ] 9:00 AM   Medication: Aspirin")
	assert.Contains(t, out, "81mg")

	assert.Contains(t, stripANSI(FormatChecklist("Today", nil, 0, nil)), derive.EmptyDayMarker)
}
