package board

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/aggregation"
	"github.com/tempguess/tempguess/internal/core/calendar"
	"github.com/tempguess/tempguess/internal/core/cutoff"
)

// Grid is one committed rebuild. It is never mutated after commit; session
// flags such as expansion are overlaid when the view is read.
type Grid struct {
	BuildID string          `json:"build_id"`
	BuiltAt time.Time       `json:"built_at"`
	Target  calendar.Target `json:"target"`
	Date    calendar.DayKey `json:"date"`
	Cards   []Card          `json:"cards"`
	Error   string          `json:"error,omitempty"`
}

// Card is one city on the grid.
type Card struct {
	City v1.City `json:"city"`

	// Yesterday's recorded extremes; only filled when the target is today.
	YesterdayHigh *decimal.Decimal `json:"yesterday_high"`
	YesterdayLow  *decimal.Decimal `json:"yesterday_low"`

	LastHigh *int `json:"last_high"`
	LastLow  *int `json:"last_low"`

	InputsEnabled bool              `json:"inputs_enabled"`
	CutoffNote    string            `json:"cutoff_note,omitempty"`
	Error         string            `json:"error,omitempty"`
	Expanded      bool              `json:"expanded"`
	Draft         *v1.ForecastEntry `json:"draft,omitempty"`
}

type gridInput struct {
	buildID     string
	builtAt     time.Time
	target      calendar.Target
	day         calendar.DayKey
	cities      []v1.City
	actuals     []v1.Actual
	submissions []v1.Submission
	decisions   map[int64]cutoff.Decision
	cutoffNote  string
}

func buildGrid(in gridInput) *Grid {
	showYesterday := in.target == calendar.TargetToday
	extremes := aggregation.SummarizeActuals(in.actuals)

	lastGuess := make(map[int64]v1.Submission)
	for _, sub := range in.submissions {
		if sub.Date == in.day {
			lastGuess[sub.CityID] = sub
		}
	}

	cards := make([]Card, 0, len(in.cities))
	for _, city := range in.cities {
		card := Card{City: city}

		if showYesterday {
			if ext, ok := extremes[city.ID]; ok {
				high, low := ext.High, ext.Low
				card.YesterdayHigh = &high
				card.YesterdayLow = &low
			}
		}

		if sub, ok := lastGuess[city.ID]; ok {
			card.LastHigh = sub.High
			card.LastLow = sub.Low
		}

		decision := in.decisions[city.ID]
		card.InputsEnabled = decision.Allowed
		switch {
		case decision.Err != nil:
			card.Error = decision.Err.Error()
		case !decision.Allowed:
			card.CutoffNote = in.cutoffNote
		}

		cards = append(cards, card)
	}

	return &Grid{
		BuildID: in.buildID,
		BuiltAt: in.builtAt,
		Target:  in.target,
		Date:    in.day,
		Cards:   cards,
	}
}

func failedGrid(buildID string, builtAt time.Time, target calendar.Target, day calendar.DayKey) *Grid {
	return &Grid{
		BuildID: buildID,
		BuiltAt: builtAt,
		Target:  target,
		Date:    day,
		Error:   msgGridFailed,
	}
}

// cutoffNote names the cutoff the way the board words it: noon, or the hour.
func cutoffNote(hour int) string {
	if hour == cutoff.DefaultHour {
		return "Past cutoff (noon local), switch to Tomorrow"
	}
	return fmt.Sprintf("Past cutoff (%02d:00 local), switch to Tomorrow", hour)
}

// dateLabel renders a day as "January 2".
func dateLabel(day calendar.DayKey, loc *time.Location) string {
	return day.At(loc, 12, 0).Format("January 2")
}
