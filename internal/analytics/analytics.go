// Package analytics derives dashboard series from a ledger snapshot. All
// functions are pure: deterministic for a given input, and inputs are never
// mutated.
package analytics

import (
	"math"
	"sort"

	"github.com/finsight/finsight/internal/model"
)

// historyWindowDays bounds the merged series to recent history plus the
// forward forecast horizon.
const historyWindowDays = 30

// SpendByCategory sums debit amounts per category, rounded to whole currency
// units, sorted descending by amount. Categories with no debit spend are
// omitted. Ties keep the order in which the category was first encountered.
func SpendByCategory(ledger []model.Transaction) []model.CategorySpend {
	totals := make(map[model.Category]float64)
	var order []model.Category

	for _, txn := range ledger {
		if txn.Type != model.Debit {
			continue
		}
		if _, seen := totals[txn.Category]; !seen {
			order = append(order, txn.Category)
		}
		totals[txn.Category] += txn.Amount
	}

	points := make([]model.CategorySpend, 0, len(order))
	for _, cat := range order {
		points = append(points, model.CategorySpend{
			Category: cat,
			Amount:   math.Round(totals[cat]),
		})
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Amount > points[j].Amount
	})

	return points
}

// MergeActualWithForecast combines cumulative actual debit spend with a
// cumulative forecast series into one date-ascending series.
//
// Dates with no debit inherit the most recent prior cumulative total (last
// observation carried forward, zero before any debit). A date outside the
// forecast keeps a nil Forecast; nil is a gap, not a zero. The result is
// bounded to the trailing 30-day window ending now, inclusive, plus the
// forward forecast horizon.
func MergeActualWithForecast(ledger []model.Transaction, forecast []model.ForecastPoint, now model.Date) []model.SeriesPoint {
	// Cumulative actual spend at each date with at least one debit.
	debits := make([]model.Transaction, 0, len(ledger))
	for _, txn := range ledger {
		if txn.Type == model.Debit {
			debits = append(debits, txn)
		}
	}
	sort.SliceStable(debits, func(i, j int) bool {
		return debits[i].Date.Before(debits[j].Date)
	})

	actualByDate := make(map[string]float64)
	var running float64
	for _, txn := range debits {
		running += txn.Amount
		actualByDate[txn.Date.String()] = running
	}

	forecastByDate := make(map[string]float64, len(forecast))
	for _, fp := range forecast {
		forecastByDate[fp.Date.String()] = fp.Forecast
	}

	// Union of dates, ascending. ISO date strings sort chronologically.
	dates := make(map[string]model.Date, len(actualByDate)+len(forecastByDate))
	for _, txn := range debits {
		dates[txn.Date.String()] = txn.Date
	}
	for _, fp := range forecast {
		dates[fp.Date.String()] = fp.Date
	}
	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cutoff := now.AddDays(-historyWindowDays)
	var merged []model.SeriesPoint
	var lastActual float64
	for _, key := range keys {
		if actual, ok := actualByDate[key]; ok {
			lastActual = actual
		}
		point := model.SeriesPoint{
			Date:   dates[key],
			Actual: lastActual,
		}
		if f, ok := forecastByDate[key]; ok {
			value := f
			point.Forecast = &value
		}
		if point.Date.Before(cutoff) {
			continue
		}
		merged = append(merged, point)
	}

	return merged
}
