// Package aggregation folds hourly temperature readings into daily figures.
package aggregation

import (
	"github.com/shopspring/decimal"
)

const (
	OpHigh     = "high"
	OpLow      = "low"
	OpReadings = "readings"
)

// Reducer defines how one daily figure is folded from hourly readings.
type Reducer interface {
	// Initial returns the figure after the first reading of the day.
	Initial(incoming decimal.Decimal) decimal.Decimal

	// Apply folds one more reading into the running figure.
	Apply(current, incoming decimal.Decimal) decimal.Decimal
}

// Reducers is the registry of daily figures keyed by operator name.
var Reducers = map[string]Reducer{
	OpHigh:     maxReducer{},
	OpLow:      minReducer{},
	OpReadings: countReducer{},
}

// Fold reduces values with the named operator. ok is false for an unknown
// operator or when there are no values.
func Fold(op string, values []decimal.Decimal) (result decimal.Decimal, ok bool) {
	r, known := Reducers[op]
	if !known || len(values) == 0 {
		return decimal.Zero, false
	}
	result = r.Initial(values[0])
	for _, v := range values[1:] {
		result = r.Apply(result, v)
	}
	return result, true
}

type countReducer struct{}

func (countReducer) Initial(_ decimal.Decimal) decimal.Decimal    { return decimal.NewFromInt(1) }
func (countReducer) Apply(cur, _ decimal.Decimal) decimal.Decimal { return cur.Add(decimal.NewFromInt(1)) }

type minReducer struct{}

func (minReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (minReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.LessThan(cur) {
		return inc
	}
	return cur
}

type maxReducer struct{}

func (maxReducer) Initial(v decimal.Decimal) decimal.Decimal { return v }
func (maxReducer) Apply(cur, inc decimal.Decimal) decimal.Decimal {
	if inc.GreaterThan(cur) {
		return inc
	}
	return cur
}
