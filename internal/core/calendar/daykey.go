package calendar

import (
	"errors"
	"fmt"
	"time"
)

const dayKeyLayout = "2006-01-02"

// ErrInvalidDayKey is returned when a string is not a YYYY-MM-DD calendar date.
var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey identifies a calendar day with no time-of-day or offset attached.
// Two keys are equal when their year, month and day are equal, so DayKey is
// safe to use as a map key and to compare with ==.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDayKey returns the key for the given date, normalizing out-of-range
// components the way time.Date does (e.g. October 32 becomes November 1).
func NewDayKey(year int, month time.Month, day int) DayKey {
	return DayKeyOf(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// DayKeyOf returns the calendar day of t in t's own location.
func DayKeyOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// ParseDayKey parses a YYYY-MM-DD string.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return DayKey{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, s)
	}
	return DayKeyOf(t), nil
}

func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

func (k DayKey) IsZero() bool {
	return k == DayKey{}
}

// AddDays moves the key by n calendar days. Month and year boundaries carry.
// The arithmetic runs at UTC noon so no zone transition can shift the result.
func (k DayKey) AddDays(n int) DayKey {
	return NewDayKey(k.Year, k.Month, k.Day+n)
}

// Compare returns -1, 0 or +1 depending on whether k is before, equal to or after o.
func (k DayKey) Compare(o DayKey) int {
	switch {
	case k.Year != o.Year:
		return sign(k.Year - o.Year)
	case k.Month != o.Month:
		return sign(int(k.Month) - int(o.Month))
	default:
		return sign(k.Day - o.Day)
	}
}

func (k DayKey) Before(o DayKey) bool { return k.Compare(o) < 0 }

// At returns the absolute instant of hour:minute on this day in loc.
// Wall times skipped by a DST transition are normalized forward by time.Date.
func (k DayKey) At(loc *time.Location, hour, minute int) time.Time {
	return time.Date(k.Year, k.Month, k.Day, hour, minute, 0, 0, loc)
}

func (k DayKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DayKey) UnmarshalText(text []byte) error {
	parsed, err := ParseDayKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
