// Package cutoff decides, per city, whether a guess for today may still be entered.
package cutoff

import (
	"fmt"
	"log/slog"

	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

// DefaultHour is local noon.
const DefaultHour = 12

// Decision is the cutoff outcome for one city.
type Decision struct {
	Allowed bool
	Err     error
}

// Evaluator compares each city's local time against that city's own cutoff.
// It never consults the board's reference zone and keeps no state between calls.
type Evaluator struct {
	clock *calendar.Clock
	hour  int
}

// NewEvaluator creates an evaluator cutting off "today" entries at hour:00 local time.
func NewEvaluator(clock *calendar.Clock, hour int) *Evaluator {
	return &Evaluator{clock: clock, hour: hour}
}

// IsEntryAllowed reports whether city accepts a guess for target right now.
// Tomorrow is always open. Today closes once the city's local time is strictly
// past the cutoff on its current local date, so exactly hh:00:00.000 is still open.
func (e *Evaluator) IsEntryAllowed(city v1.City, target calendar.Target) (bool, error) {
	switch target {
	case calendar.TargetTomorrow:
		return true, nil
	case calendar.TargetToday:
	default:
		return false, fmt.Errorf("unknown forecast target %q", target)
	}

	now, err := e.clock.Now(city.Timezone)
	if err != nil {
		return false, fmt.Errorf("city %d (%s): %w", city.ID, city.Name, err)
	}

	cutoff := now.DayKey().At(now.Location, e.hour, 0)
	return !now.Instant.After(cutoff), nil
}

// Evaluate runs IsEntryAllowed for every city. A failure for one city is
// recorded on that city's decision and does not affect the others.
func (e *Evaluator) Evaluate(cities []v1.City, target calendar.Target) map[int64]Decision {
	decisions := make(map[int64]Decision, len(cities))
	for _, city := range cities {
		allowed, err := e.IsEntryAllowed(city, target)
		if err != nil {
			slog.Warn("[Cutoff] Could not evaluate city",
				"city_id", city.ID,
				"timezone", city.Timezone,
				"target", target,
				"error", err,
			)
		}
		decisions[city.ID] = Decision{Allowed: allowed, Err: err}
	}
	return decisions
}
