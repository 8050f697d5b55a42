package filter

import (
	"testing"
	"time"

	"spendwise/internal/models"
)

var now = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func expense(date, category, method, description string, amount float64) models.Expense {
	return models.Expense{
		Amount:        amount,
		Category:      category,
		Date:          date,
		Description:   description,
		PaymentMethod: method,
	}
}

func sample() []models.Expense {
	return []models.Expense{
		expense("2025-06-14", "Food & Dining", "Cash", "Lunch at cafe", 12),
		expense("2025-06-01", "Transportation", "Credit Card", "Bus pass", 40),
		expense("2025-03-01", "Food & Dining", "Debit Card", "Groceries", 85),
		expense("2024-01-01", "Travel", "Credit Card", "Flight", 300),
	}
}

func TestApply(t *testing.T) {
	t.Run("empty_criteria_is_identity", func(t *testing.T) {
		in := sample()
		out := Apply(in, Criteria{}, now)
		if len(out) != len(in) {
			t.Fatalf("expected %d expenses, got %d", len(in), len(out))
		}
		for i := range in {
			if out[i].Description != in[i].Description {
				t.Errorf("expected order preserved at %d", i)
			}
		}
	})

	t.Run("all_values_are_inactive", func(t *testing.T) {
		out := Apply(sample(), Criteria{Category: "all", PaymentMethod: "all", DateRange: RangeAll}, now)
		if len(out) != len(sample()) {
			t.Errorf("expected all expenses, got %d", len(out))
		}
	})

	t.Run("search_matches_description_case_insensitive", func(t *testing.T) {
		out := Apply(sample(), Criteria{Search: "LUNCH"}, now)
		if len(out) != 1 || out[0].Description != "Lunch at cafe" {
			t.Errorf("expected lunch expense, got %v", out)
		}
	})

	t.Run("search_matches_category", func(t *testing.T) {
		out := Apply(sample(), Criteria{Search: "food"}, now)
		if len(out) != 2 {
			t.Errorf("expected 2 food expenses, got %d", len(out))
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		out := Apply(sample(), Criteria{Category: "Transportation"}, now)
		if len(out) != 1 || out[0].Category != "Transportation" {
			t.Errorf("expected one transportation expense, got %v", out)
		}
	})

	t.Run("payment_method_filter", func(t *testing.T) {
		out := Apply(sample(), Criteria{PaymentMethod: "Credit Card"}, now)
		if len(out) != 2 {
			t.Errorf("expected 2 credit card expenses, got %d", len(out))
		}
	})

	t.Run("date_range_filter", func(t *testing.T) {
		out := Apply(sample(), Criteria{DateRange: RangeLast30Days}, now)
		if len(out) != 2 {
			t.Errorf("expected 2 expenses in last 30 days, got %d", len(out))
		}
	})

	t.Run("criteria_combine_with_and", func(t *testing.T) {
		out := Apply(sample(), Criteria{Category: "Food & Dining", DateRange: RangeLast7Days}, now)
		if len(out) != 1 || out[0].Description != "Lunch at cafe" {
			t.Errorf("expected only recent food expense, got %v", out)
		}
	})

	t.Run("malformed_date_excluded_from_bounded_window", func(t *testing.T) {
		in := append(sample(), expense("bogus", "Other", "Cash", "Mystery", 1))
		out := Apply(in, Criteria{DateRange: RangeLastYear}, now)
		for _, e := range out {
			if e.Description == "Mystery" {
				t.Error("malformed date should never match a bounded window")
			}
		}

		out = Apply(in, Criteria{}, now)
		if len(out) != len(in) {
			t.Error("malformed date should pass when no window is active")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		c := Criteria{Category: "Food & Dining", DateRange: RangeLast6Months}
		once := Apply(sample(), c, now)
		twice := Apply(once, c, now)
		if len(once) != len(twice) {
			t.Errorf("expected idempotent filter, got %d then %d", len(once), len(twice))
		}
	})

	t.Run("input_not_modified", func(t *testing.T) {
		in := sample()
		_ = Apply(in, Criteria{Category: "Travel"}, now)
		if len(in) != 4 || in[0].Description != "Lunch at cafe" {
			t.Error("expected input slice untouched")
		}
	})
}

func TestDateRangeValid(t *testing.T) {
	for _, d := range []DateRange{RangeAll, RangeLast7Days, RangeLast30Days, RangeLast3Months, RangeLast6Months, RangeLastYear} {
		if !d.Valid() {
			t.Errorf("expected %q to be valid", d)
		}
	}
	if DateRange("fortnight").Valid() {
		t.Error("expected unknown range to be invalid")
	}
}

func TestTotal(t *testing.T) {
	if got := Total(sample()); got != 437 {
		t.Errorf("expected total 437, got %f", got)
	}
	if got := Total(nil); got != 0 {
		t.Errorf("expected zero total for empty input, got %f", got)
	}
}
