// Package stats computes monthly category-bucketed totals over a record set.
// The same reduction serves expenses and income.
package stats

import (
	"time"

	"expense-tracker-api/internal/models"
)

// Summary is the result of one monthly aggregation.
type Summary struct {
	Total          float64            `json:"total"`
	CategoryTotals map[string]float64 `json:"categoryTotals"`
	Count          int                `json:"count"`
	Year           int                `json:"year"`
	Month          int                `json:"month"`
}

// MonthWindow resolves a calendar month to its inclusive boundary in server
// local time: first instant of day one through 23:59:59 of the last day.
func MonthWindow(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Summarize reduces records to a total, per-category totals and a count.
// Records without a category land in the empty-string bucket. An empty input
// yields zeroes and an empty map, never nil.
func Summarize(records []models.Record, year, month int) Summary {
	summary := Summary{
		CategoryTotals: map[string]float64{},
		Count:          len(records),
		Year:           year,
		Month:          month,
	}
	for _, rec := range records {
		summary.Total += rec.Amount
		summary.CategoryTotals[rec.Category] += rec.Amount
	}
	return summary
}
