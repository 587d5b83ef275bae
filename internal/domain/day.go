package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysPerWeek is the number of day slots in a plan.
const DaysPerWeek = 7

// DayName returns the weekday name for a slot, Sunday being 0.
func DayName(day int) string {
	if !ValidDay(day) {
		return fmt.Sprintf("Day %d", day)
	}
	return time.Weekday(day).String()
}

// ValidDay reports whether day is a slot in [0,6].
func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// TodayIndex returns the day slot of t in its own location.
func TodayIndex(t time.Time) int {
	return int(t.Weekday())
}

// ParseDay accepts a slot number (0-6), a weekday name or its
// three-letter abbreviation.
func ParseDay(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if !ValidDay(n) {
			return 0, fmt.Errorf("day %d out of range 0-6: %w", n, ErrInvalidDay)
		}
		return n, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) >= 3 && strings.HasPrefix(name, s)) {
			return int(d), nil
		}
	}
	return 0, fmt.Errorf("day %q: %w", s, ErrInvalidDay)
}

// Clock supplies the current time. Tests inject a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }
