package storage

import (
	"context"
	"errors"

	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

// ErrUnknownCity is returned when a submission references a city the store does not know.
var ErrUnknownCity = errors.New("unknown city")

// ForecastStore is the persistence collaborator of the board.
type ForecastStore interface {
	// ListCities returns every city ordered by name.
	ListCities(ctx context.Context) ([]v1.City, error)

	// ListRecentSubmissions returns the user's submissions whose date is one of days.
	ListRecentSubmissions(ctx context.Context, userID int64, days []calendar.DayKey) ([]v1.Submission, error)

	// ListPriorActuals returns the hourly readings recorded on day.
	ListPriorActuals(ctx context.Context, day calendar.DayKey) ([]v1.Actual, error)

	// SaveSubmissions upserts by (user, city, date). A nil temperature keeps the stored value.
	SaveSubmissions(ctx context.Context, userID int64, submissions []v1.Submission) error
}
