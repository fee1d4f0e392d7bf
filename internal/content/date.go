package content

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time-of-day and no zone. The zero value is
// treated as "no date" throughout the directory engine.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a calendar date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time instant to its calendar date in the instant's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a date in ISO "2006-01-02" form.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Compare returns -1, 0 or 1 as d sorts before, equal to or after other.
func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		return compareInt(d.Year, other.Year)
	}
	if d.Month != other.Month {
		return compareInt(int(d.Month), int(other.Month))
	}
	return compareInt(d.Day, other.Day)
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d sorts after other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Equal reports whether both dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Compare(other) == 0
}

// String formats the date in ISO "2006-01-02" form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
