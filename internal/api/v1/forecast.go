package v1

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

// Accepted guess ranges in °F.
const (
	MinHigh = -25
	MaxHigh = 125
	MinLow  = -50
	MaxLow  = 100
)

// City is a location whose temperature is guessed.
// Timezone is an IANA zone name and decides the city's own noon cutoff.
type City struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Timezone string `json:"timezone" yaml:"timezone"`
}

// Submission is one user's forecast for one city on one calendar day.
// Either temperature may be absent; storage merges present fields into the stored row.
type Submission struct {
	CityID int64           `json:"city_id" yaml:"city_id"`
	Date   calendar.DayKey `json:"date" yaml:"date"`
	High   *int            `json:"high,omitempty" yaml:"high,omitempty"`
	Low    *int            `json:"low,omitempty" yaml:"low,omitempty"`
}

// IsEmpty reports whether the submission carries no temperature at all.
func (s Submission) IsEmpty() bool {
	return s.High == nil && s.Low == nil
}

// Actual is one recorded hourly temperature.
type Actual struct {
	CityID int64           `json:"city_id" yaml:"city_id"`
	Date   calendar.DayKey `json:"date" yaml:"date"`
	Hour   int             `json:"hour" yaml:"hour"`
	Temp   decimal.Decimal `json:"temp" yaml:"temp"`
}

// ForecastEntry is a guess as posted by a client. The day is implied by the
// board's current target, not chosen by the client.
type ForecastEntry struct {
	CityID int64 `json:"city_id"`
	High   *int  `json:"high,omitempty"`
	Low    *int  `json:"low,omitempty"`
}

// Validate checks the temperature ranges. An entry with neither value is valid
// here; callers drop it.
func (e ForecastEntry) Validate() error {
	if e.CityID <= 0 {
		return fmt.Errorf("city_id is required")
	}
	if e.High != nil && (*e.High < MinHigh || *e.High > MaxHigh) {
		return fmt.Errorf("high %d out of range [%d, %d]", *e.High, MinHigh, MaxHigh)
	}
	if e.Low != nil && (*e.Low < MinLow || *e.Low > MaxLow) {
		return fmt.Errorf("low %d out of range [%d, %d]", *e.Low, MinLow, MaxLow)
	}
	return nil
}

// SaveForecastsRequest is the body of POST /v1/forecasts.
type SaveForecastsRequest struct {
	Entries []ForecastEntry `json:"entries"`
}

// SetTargetRequest is the body of PUT /v1/board/target.
type SetTargetRequest struct {
	Target string `json:"target"`
}
