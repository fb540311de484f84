package aggregation

import (
	"github.com/shopspring/decimal"
	v1 "github.com/tempguess/tempguess/internal/api/v1"
)

// DailyExtremes is the recorded high and low of one city for one day.
type DailyExtremes struct {
	High     decimal.Decimal
	Low      decimal.Decimal
	Readings int64
}

// SummarizeActuals groups hourly readings by city and folds each group into
// its daily high and low. Cities without readings are absent from the result.
func SummarizeActuals(actuals []v1.Actual) map[int64]DailyExtremes {
	byCity := make(map[int64][]decimal.Decimal)
	for _, a := range actuals {
		byCity[a.CityID] = append(byCity[a.CityID], a.Temp)
	}

	out := make(map[int64]DailyExtremes, len(byCity))
	for cityID, temps := range byCity {
		high, _ := Fold(OpHigh, temps)
		low, _ := Fold(OpLow, temps)
		readings, _ := Fold(OpReadings, temps)
		out[cityID] = DailyExtremes{
			High:     high,
			Low:      low,
			Readings: readings.IntPart(),
		}
	}
	return out
}
