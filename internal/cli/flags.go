package cli

import (
	"fmt"

	"github.com/alexanderramin/harbor/internal/domain"
	"github.com/spf13/pflag"
)

// dayValue is a --day flag accepting 0-6 or a weekday name. Unset means
// today.
type dayValue struct {
	day *int
}

var _ pflag.Value = (*dayValue)(nil)

func (d *dayValue) String() string {
	if d.day == nil {
		return "today"
	}
	return domain.DayName(*d.day)
}

func (d *dayValue) Set(s string) error {
	day, err := domain.ParseDay(s)
	if err != nil {
		return err
	}
	d.day = &day
	return nil
}

func (d *dayValue) Type() string { return "day" }

// Ptr returns the chosen day, nil when the flag was not given.
func (d *dayValue) Ptr() *int { return d.day }

// Or returns the chosen day, or fallback when unset.
func (d *dayValue) Or(fallback int) int {
	if d.day == nil {
		return fallback
	}
	return *d.day
}

func addDayFlag(fs *pflag.FlagSet, d *dayValue) {
	fs.Var(d, "day", "Day of week: 0-6 (0 = Sunday) or a name like wed")
}

func parseCollectionArg(s string) (domain.Collection, error) {
	c, err := domain.ParseCollection(s)
	if err != nil {
		return "", fmt.Errorf("%w (use meal, activity, reminder or med)", err)
	}
	return c, nil
}
