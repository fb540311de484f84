package calendar

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Target selects which calendar day a forecast is entered for.
type Target string

const (
	TargetToday    Target = "today"
	TargetTomorrow Target = "tomorrow"
)

// ParseTarget accepts "today" or "tomorrow".
func ParseTarget(s string) (Target, error) {
	switch t := Target(s); t {
	case TargetToday, TargetTomorrow:
		return t, nil
	}
	return "", fmt.Errorf("unknown forecast target %q (must be today or tomorrow)", s)
}

// WallClock is a zoned reading of an instant: what a wall clock in Location shows.
type WallClock struct {
	Year     int
	Month    time.Month
	Day      int
	Hour     int
	Minute   int
	Second   int
	Instant  time.Time
	Location *time.Location
}

func wallClockOf(instant time.Time, loc *time.Location) WallClock {
	local := instant.In(loc)
	y, m, d := local.Date()
	hh, mm, ss := local.Clock()
	return WallClock{
		Year:     y,
		Month:    m,
		Day:      d,
		Hour:     hh,
		Minute:   mm,
		Second:   ss,
		Instant:  local,
		Location: loc,
	}
}

// DayKey returns the calendar day shown by the wall clock.
func (w WallClock) DayKey() DayKey {
	return DayKey{Year: w.Year, Month: w.Month, Day: w.Day}
}

// Clock reads the current instant from a clockwork.Clock and projects it
// into named zones. Production code uses the real clock; tests a fake one.
type Clock struct {
	clock clockwork.Clock
}

// NewClock wraps c. A nil c means the real system clock.
func NewClock(c clockwork.Clock) *Clock {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	return &Clock{clock: c}
}

// Source exposes the underlying clock so timers share the same time base.
func (c *Clock) Source() clockwork.Clock {
	return c.clock
}

// Now returns the wall-clock reading of the current instant in tz.
func (c *Clock) Now(tz string) (WallClock, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return WallClock{}, err
	}
	return wallClockOf(c.clock.Now(), loc), nil
}

// NowIn is Now for an already resolved location.
func (c *Clock) NowIn(loc *time.Location) WallClock {
	return wallClockOf(c.clock.Now(), loc)
}

// StartOfToday returns the key of the current calendar day in tz.
func (c *Clock) StartOfToday(tz string) (DayKey, error) {
	now, err := c.Now(tz)
	if err != nil {
		return DayKey{}, err
	}
	return now.DayKey(), nil
}

// DayKeyForTarget maps a forecast target to its calendar day in tz.
// Tomorrow is always exactly one calendar day after today, including on
// 23- and 25-hour days.
func (c *Clock) DayKeyForTarget(target Target, tz string) (DayKey, error) {
	today, err := c.StartOfToday(tz)
	if err != nil {
		return DayKey{}, err
	}
	return KeyForTarget(today, target)
}

// KeyForTarget resolves target relative to an already computed today.
func KeyForTarget(today DayKey, target Target) (DayKey, error) {
	switch target {
	case TargetToday:
		return today, nil
	case TargetTomorrow:
		return today.AddDays(1), nil
	}
	return DayKey{}, fmt.Errorf("unknown forecast target %q", target)
}

// NextMidnight returns the first local midnight in loc strictly after now.
func NextMidnight(now time.Time, loc *time.Location) time.Time {
	return DayKeyOf(now.In(loc)).AddDays(1).At(loc, 0, 0)
}
