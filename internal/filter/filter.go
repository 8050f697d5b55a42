// Package filter implements the client-style transaction history pipeline:
// free-text search, category and payment-method matching, relative date
// windows, running totals, and CSV export of the filtered set.
package filter

import (
	"strings"
	"time"

	"spendwise/internal/models"
)

// All matches every value of a criterion.
const All = "all"

// DateRange is a relative window ending at "now" with an inclusive lower
// bound.
type DateRange string

const (
	RangeAll         DateRange = "all"
	RangeLast7Days   DateRange = "7days"
	RangeLast30Days  DateRange = "30days"
	RangeLast3Months DateRange = "3months"
	RangeLast6Months DateRange = "6months"
	RangeLastYear    DateRange = "1year"
)

// rangeDays maps each date range to its window length in days.
var rangeDays = map[DateRange]int{
	RangeLast7Days:   7,
	RangeLast30Days:  30,
	RangeLast3Months: 90,
	RangeLast6Months: 180,
	RangeLastYear:    365,
}

// Valid reports whether d is a known date range.
func (d DateRange) Valid() bool {
	if d == RangeAll {
		return true
	}
	_, ok := rangeDays[d]
	return ok
}

// Criteria are the active filters. Zero values and "all" are treated as
// inactive; all active criteria combine with logical AND.
type Criteria struct {
	Search        string
	Category      string
	PaymentMethod string
	DateRange     DateRange
}

// Apply returns the subset of expenses matching the criteria, evaluated as
// of now. Input order is preserved and the input slice is never modified.
func Apply(expenses []models.Expense, c Criteria, now time.Time) []models.Expense {
	search := strings.ToLower(c.Search)

	var cutoff time.Time
	if days, ok := rangeDays[c.DateRange]; ok {
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
	}

	matched := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !matchesSearch(e, search) {
			continue
		}
		if c.Category != "" && c.Category != All && e.Category != c.Category {
			continue
		}
		if c.PaymentMethod != "" && c.PaymentMethod != All && e.PaymentMethod != c.PaymentMethod {
			continue
		}
		if !cutoff.IsZero() && !matchesCutoff(e, cutoff) {
			continue
		}
		matched = append(matched, e)
	}
	return matched
}

func matchesSearch(e models.Expense, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Description), search) ||
		strings.Contains(strings.ToLower(e.Category), search)
}

// matchesCutoff keeps expenses on or after the cutoff. Malformed dates never
// match a bounded window.
func matchesCutoff(e models.Expense, cutoff time.Time) bool {
	day, ok := e.Day()
	if !ok {
		return false
	}
	return !day.Before(cutoff)
}

// Total sums the amounts of the given expenses for the running total
// display.
func Total(expenses []models.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
