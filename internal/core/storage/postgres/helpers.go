package postgres

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"github.com/tempguess/tempguess/internal/core/calendar"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanSubmissionRow scans (city_id, date, high, low). NULL temperatures stay nil.
func scanSubmissionRow(row scanner) (v1.Submission, error) {
	var (
		sub       v1.Submission
		date      string
		high, low sql.NullInt64
	)
	if err := row.Scan(&sub.CityID, &date, &high, &low); err != nil {
		return v1.Submission{}, fmt.Errorf("failed to scan submission row: %w", err)
	}

	day, err := calendar.ParseDayKey(date)
	if err != nil {
		return v1.Submission{}, fmt.Errorf("failed to parse submission date: %w", err)
	}
	sub.Date = day
	sub.High = intFromNull(high)
	sub.Low = intFromNull(low)
	return sub, nil
}

// scanActualRow scans (city_id, date, hour, temp). temp arrives as NUMERIC text.
func scanActualRow(row scanner) (v1.Actual, error) {
	var (
		actual v1.Actual
		date   string
		temp   string
	)
	if err := row.Scan(&actual.CityID, &date, &actual.Hour, &temp); err != nil {
		return v1.Actual{}, fmt.Errorf("failed to scan actual row: %w", err)
	}

	day, err := calendar.ParseDayKey(date)
	if err != nil {
		return v1.Actual{}, fmt.Errorf("failed to parse actual date: %w", err)
	}
	actual.Date = day

	actual.Temp, err = decimal.NewFromString(temp)
	if err != nil {
		return v1.Actual{}, fmt.Errorf("failed to parse temp %q: %w", temp, err)
	}
	return actual, nil
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// nullableInt maps a missing temperature to SQL NULL.
func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func dayKeyStrings(days []calendar.DayKey) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}
