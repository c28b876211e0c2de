package model

// ForecastPoint is one point of a cumulative expense forecast produced by the
// advisory gateway. Forecast is a running total, not a per-day delta.
type ForecastPoint struct {
	Date     Date    `json:"date"`
	Forecast float64 `json:"forecast"`
}

// SeriesPoint is one point of the merged actual/forecast series. Forecast is
// nil on dates the forecast does not cover; nil is distinct from zero and
// renders as a gap.
type SeriesPoint struct {
	Date     Date
	Actual   float64
	Forecast *float64
}

// CategorySpend is the summed debit amount for one category.
type CategorySpend struct {
	Category Category
	Amount   float64
}
