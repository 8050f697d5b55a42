// Package stats implements the expense aggregation engine: totals, category
// and payment-method breakdowns, top categories, and the trailing six-month
// trend. All functions are pure over an in-memory snapshot.
package stats

import (
	"sort"
	"time"

	"spendwise/internal/models"
)

// dailyAverageWindow is the fixed divisor for the daily average. The sum of
// the trailing 30 days is always divided by 30, regardless of how many days
// actually have data.
const dailyAverageWindow = 30

// trendMonths is the number of calendar months in the monthly trend.
const trendMonths = 6

// CategoryTotal is one entry of the top-categories ranking.
type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// TrendPoint is one calendar month of the trailing trend.
type TrendPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// Stats is the full set of derived figures for a user's expense snapshot.
type Stats struct {
	TotalExpenses          float64            `json:"total_expenses"`
	MonthlyTotal           float64            `json:"monthly_total"`
	WeeklyTotal            float64            `json:"weekly_total"`
	DailyAverage           float64            `json:"daily_average"`
	CategoryBreakdown      map[string]float64 `json:"category_breakdown"`
	PaymentMethodBreakdown map[string]float64 `json:"payment_method_breakdown"`
	RecentExpenses         []models.Expense   `json:"recent_expenses"`
	TopCategories          []CategoryTotal    `json:"top_categories"`
	MonthlyTrend           []TrendPoint       `json:"monthly_trend"`
}

// Compute derives Stats from an expense snapshot as of the given moment.
// The input is not modified; recent expenses are taken from a defensive
// date-descending sort of a copy.
func Compute(expenses []models.Expense, asOf time.Time) Stats {
	s := Stats{
		CategoryBreakdown:      make(map[string]float64),
		PaymentMethodBreakdown: make(map[string]float64),
	}

	year, month, _ := asOf.Date()
	weekStart := startOfWeek(asOf)
	thirtyDaysAgo := asOf.Add(-dailyAverageWindow * 24 * time.Hour)

	var last30Sum float64
	for _, e := range expenses {
		s.TotalExpenses += e.Amount
		s.CategoryBreakdown[e.Category] += e.Amount
		s.PaymentMethodBreakdown[e.PaymentMethod] += e.Amount

		day, ok := e.Day()
		if !ok {
			continue
		}
		if day.Year() == year && day.Month() == month {
			s.MonthlyTotal += e.Amount
		}
		if !day.Before(weekStart) {
			s.WeeklyTotal += e.Amount
		}
		if !day.Before(thirtyDaysAgo) {
			last30Sum += e.Amount
		}
	}
	s.DailyAverage = last30Sum / dailyAverageWindow

	s.TopCategories = topCategories(s.CategoryBreakdown, s.TotalExpenses, 5)
	s.MonthlyTrend = monthlyTrend(expenses, year, month)
	s.RecentExpenses = Recent(expenses, 5)

	return s
}

// startOfWeek returns midnight of the most recent Sunday on or before t.
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}

// topCategories ranks the breakdown descending by amount and annotates each
// entry with its share of the total. Ties keep category-name order so the
// ranking is deterministic.
func topCategories(breakdown map[string]float64, total float64, n int) []CategoryTotal {
	ranked := make([]CategoryTotal, 0, len(breakdown))
	for category, amount := range breakdown {
		pct := 0.0
		if total > 0 {
			pct = amount / total * 100
		}
		ranked = append(ranked, CategoryTotal{Category: category, Amount: amount, Percentage: pct})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Category < ranked[j].Category
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// monthlyTrend sums expenses into the six calendar months ending at the
// current month, oldest first. Buckets with no expenses still appear.
func monthlyTrend(expenses []models.Expense, year int, month time.Month) []TrendPoint {
	trend := make([]TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		bucket := time.Date(year, month-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		var amount float64
		for _, e := range expenses {
			day, ok := e.Day()
			if !ok {
				continue
			}
			if day.Year() == bucket.Year() && day.Month() == bucket.Month() {
				amount += e.Amount
			}
		}
		trend = append(trend, TrendPoint{Month: bucket.Format("Jan 2006"), Amount: amount})
	}
	return trend
}

// Recent returns the n most recent expenses, most recent first. The input
// order is preserved; sorting happens on a copy. Expenses with malformed
// dates sort last.
func Recent(expenses []models.Expense, n int) []models.Expense {
	sorted := SortByDateDesc(expenses)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SortByDateDesc returns a copy of expenses sorted most recent first.
// Malformed dates never panic; they order after all parseable dates.
func SortByDateDesc(expenses []models.Expense) []models.Expense {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, oki := sorted[i].Day()
		dj, okj := sorted[j].Day()
		if oki != okj {
			return oki
		}
		return di.After(dj)
	})
	return sorted
}
