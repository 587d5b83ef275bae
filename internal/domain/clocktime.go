package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock splits an "H:MM" or "HH:MM" 24-hour string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return 0, 0, fmt.Errorf("time %q: %w", s, ErrInvalidTime)
	}
	hour, err = strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q: %w", s, ErrInvalidTime)
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q: %w", s, ErrInvalidTime)
	}
	return hour, minute, nil
}

// NormalizeClock returns s as zero-padded "HH:MM" so that lexical order
// matches chronological order.
func NormalizeClock(s string) (string, error) {
	h, m, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}
