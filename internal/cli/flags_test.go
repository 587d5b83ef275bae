package cli

import (
	"testing"

	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/alexanderramin/harbor/internal/testutil"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"6", 6},
		{"wed", 3},
		{"Saturday", 6},
		{" SUN ", 0},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			var d dayValue
			fs := pflag.NewFlagSet("t", pflag.ContinueOnError)
			addDayFlag(fs, &d)
			require.NoError(t, fs.Parse([]string{"--day", tc.in}))
			require.NotNil(t, d.Ptr())
			assert.Equal(t, tc.want, *d.Ptr())
			assert.Equal(t, tc.want, d.Or(1))
		})
	}
}

func TestDayValue_UnsetFallsBack(t *testing.T) {
	var d dayValue
	assert.Nil(t, d.Ptr())
	assert.Equal(t, 4, d.Or(4))
	assert.Equal(t, "today", d.String())
}

func TestDayValue_Rejects(t *testing.T) {
	for _, in := range []string{"7", "-1", "we", "someday"} {
		var d dayValue
		err := d.Set(in)
		assert.ErrorIs(t, err, domain.ErrInvalidDay, in)
		assert.Nil(t, d.Ptr())
	}
}

func TestParseCollectionArg(t *testing.T) {
	c, err := parseCollectionArg("med")
	require.NoError(t, err)
	assert.Equal(t, domain.CollectionMeds, c)

	_, err = parseCollectionArg("snack")
	assert.ErrorIs(t, err, domain.ErrUnknownCollection)
	assert.ErrorContains(t, err, "use meal, activity, reminder or med")
}

func TestResolveItemID(t *testing.T) {
	p := testutil.NewEmptyPlan(testutil.WithItems(domain.CollectionMeals,
		testutil.NewTestItem("Lunch", "12:00", 3, testutil.WithID("ab12")),
		testutil.NewTestItem("Soup", "18:00", 3, testutil.WithID("ab34")),
		testutil.NewTestItem("Tea", "15:00", 3, testutil.WithID("ab")),
	))

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"exact wins over prefix", "ab", "ab", ""},
		{"unique prefix", "ab3", "ab34", ""},
		{"ambiguous prefix", "a", "", "ambiguous"},
		{"no match", "zz", "", "no Meal item"},
		{"empty", "", "", "required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveItemID(p, domain.CollectionMeals, tc.input)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := resolveItemID(p, domain.CollectionMeds, "ab")
	assert.ErrorContains(t, err, "no Medication item")
}
