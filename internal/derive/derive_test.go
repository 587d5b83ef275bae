package derive

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqIDs() domain.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func items(times ...string) []domain.Item {
	out := make([]domain.Item, len(times))
	for i, tm := range times {
		out[i] = domain.Item{ID: fmt.Sprintf("i%d", i), Title: tm, Time: tm}
	}
	return out
}

func TestSortedByTime_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, SortedByTime([]domain.Item{}))
	assert.Empty(t, SortedByTime[domain.Item](nil))

	one := items("12:00")
	assert.Equal(t, one, SortedByTime(one))
}

func TestSortedByTime_NonDecreasingAndStable(t *testing.T) {
	in := items("18:00", "08:00", "12:30", "08:00", "00:05", "12:30")
	in[1].Title = "first eight"
	in[3].Title = "second eight"

	got := SortedByTime(in)

	require.Len(t, got, len(in))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Time, got[i].Time)
	}
	assert.Equal(t, "first eight", got[1].Title)
	assert.Equal(t, "second eight", got[2].Title)
	assert.Equal(t, "i2", got[3].ID)
	assert.Equal(t, "i5", got[4].ID)
}

func TestSortedByTime_DoesNotMutateInput(t *testing.T) {
	in := items("10:00", "09:00")
	_ = SortedByTime(in)
	assert.Equal(t, "10:00", in[0].Time)
}

func TestSummaryCounts(t *testing.T) {
	p := domain.NewDefaultPlan(2, seqIDs())
	c := SummaryCounts(p)
	assert.Equal(t, Counts{Meals: 1, Exercises: 1, Reminders: 1, Meds: 0}, c)
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, 1, c.Get(domain.CollectionReminders))
}

func TestSummaryCounts_AfterRoutine(t *testing.T) {
	p := domain.NewDefaultPlan(2, seqIDs())
	before := SummaryCounts(p)
	r, _ := domain.LookupRoutine("gentle-morning")
	_, err := p.ApplyRoutine(r, 1, seqIDs())
	require.NoError(t, err)

	after := SummaryCounts(p)
	assert.Equal(t, before.Meals+1, after.Meals)
	assert.Equal(t, before.Exercises+1, after.Exercises)
	assert.Equal(t, before.Reminders+1, after.Reminders)
	assert.Equal(t, before.Meds, after.Meds)
}

func TestWeeklyView_PartitionsEveryItem(t *testing.T) {
	p := domain.NewDefaultPlan(3, seqIDs())
	for _, r := range domain.Routines() {
		_, err := p.ApplyRoutine(r, len(r.ID)%domain.DaysPerWeek, seqIDs())
		require.NoError(t, err)
	}
	_, err := p.Add(domain.CollectionMeds, domain.NewItem{Title: "Aspirin", Time: "09:00", Dosage: "81mg"}, 6, seqIDs())
	require.NoError(t, err)

	week := WeeklyView(p)

	var seen []domain.Entry
	for d, bucket := range week {
		assert.Equal(t, d, bucket.Day)
		assert.Equal(t, domain.DayName(d), bucket.Name)
		assert.Equal(t, len(bucket.Entries) == 0, bucket.Empty)
		for i, e := range bucket.Entries {
			assert.Equal(t, d, e.Day)
			if i > 0 {
				assert.LessOrEqual(t, bucket.Entries[i-1].Time, e.Time)
			}
		}
		seen = append(seen, bucket.Entries...)
	}
	assert.ElementsMatch(t, p.Entries(), seen)
}

func TestWeeklyView_EmptyMarkerAndLabels(t *testing.T) {
	p := domain.NewDefaultPlan(3, seqIDs())
	week := WeeklyView(p)

	assert.True(t, week[0].Empty)
	require.False(t, week[3].Empty)
	labels := make([]string, 0, 3)
	for _, e := range week[3].Entries {
		labels = append(labels, e.Label()+": "+e.Title)
	}
	assert.Equal(t, []string{
		"Meal: Breakfast: oatmeal & berries",
		"Reminder: Hydration check",
		"Activity: 10 min walk in the garden",
	}, labels)
}

func TestFormatTime(t *testing.T) {
	tests := map[string]string{
		"":      "",
		"08:00": "8:00 AM",
		"00:05": "12:05 AM",
		"12:00": "12:00 PM",
		"18:45": "6:45 PM",
		"9:30":  "9:30 AM",
		"soon":  "soon",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatTime(in), in)
	}
}

func TestBuildHandoff_WednesdayDefault(t *testing.T) {
	p := domain.NewDefaultPlan(3, seqIDs())
	p.Exercises = []domain.Item{}
	p.Reminders = []domain.Item{}

	out := BuildHandoff(p, 3)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Harbor Plan handoff - Wednesday", lines[0])
	assert.Equal(t, []string{
		"Meals:",
		"- 8:00 AM: Breakfast: oatmeal & berries · Warm tea, gentle prompt",
		"",
		"Activities:",
		"- None scheduled.",
		"",
		"Reminders:",
		"- None scheduled.",
		"",
		"Medication:",
		"- None scheduled.",
		"",
		"Care notes:",
		"No notes yet.",
		"",
		"Safety quick check:",
		"Preferred foods: ",
		"Foods to avoid: ",
		"Mobility notes: ",
		"Emergency contact: ",
	}, lines[2:])
}

func TestBuildHandoff_OnlyTodayAndAllDetails(t *testing.T) {
	p := domain.NewDefaultPlan(1, seqIDs())
	_, err := p.Add(domain.CollectionMeds, domain.NewItem{Title: "Aspirin", Time: "09:00", Dosage: "81mg", Notes: "with food"}, 1, seqIDs())
	require.NoError(t, err)
	_, err = p.Add(domain.CollectionMeds, domain.NewItem{Title: "Vitamin D", Time: "07:00", Day: ptr(2)}, 1, seqIDs())
	require.NoError(t, err)
	p.Notes = "Slept well"
	p.Safety = domain.Safety{PrefFoods: "Soup", EmergencyContact: "Sam"}

	out := BuildHandoff(p, 1)

	assert.Contains(t, out, "Harbor Plan handoff - Monday")
	assert.Contains(t, out, "Medication:\n- 9:00 AM: Aspirin · 81mg · with food\n")
	assert.NotContains(t, out, "Vitamin D")
	assert.Contains(t, out, "Reminders:\n- 9:30 AM: Hydration check · gentle tone\n")
	assert.Contains(t, out, "Care notes:\nSlept well\n")
	assert.Contains(t, out, "Preferred foods: Soup\n")
	assert.True(t, strings.HasSuffix(out, "Emergency contact: Sam"))
}

func ptr(v int) *int { return &v }
