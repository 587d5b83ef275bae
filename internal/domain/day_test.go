package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"6", 6},
		{"sunday", 0},
		{"Wed", 3},
		{" thursday ", 4},
		{"sat", 6},
	}
	for _, tc := range tests {
		got, err := ParseDay(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"7", "-1", "", "th", "someday"} {
		_, err := ParseDay(bad)
		assert.ErrorIs(t, err, ErrInvalidDay, bad)
	}
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Sunday", DayName(0))
	assert.Equal(t, "Wednesday", DayName(3))
	assert.Equal(t, "Day 9", DayName(9))
}

func TestTodayIndex(t *testing.T) {
	wed := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 3, TodayIndex(wed))
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("9:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", got)

	got, err = NormalizeClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", got)

	for _, bad := range []string{"", "24:00", "12:60", "12:5", "noon", "123:00"} {
		_, err := NormalizeClock(bad)
		assert.ErrorIs(t, err, ErrInvalidTime, bad)
	}
}
