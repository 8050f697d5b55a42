package filter

import (
	"strings"
	"testing"

	"spendwise/internal/models"
)

func TestWriteCSV(t *testing.T) {
	t.Run("header_only_for_empty_set", func(t *testing.T) {
		var b strings.Builder
		if err := WriteCSV(&b, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.String() != "Date,Description,Category,Payment Method,Amount\n" {
			t.Errorf("unexpected header: %q", b.String())
		}
	})

	t.Run("row_format", func(t *testing.T) {
		var b strings.Builder
		err := WriteCSV(&b, []models.Expense{
			expense("2025-06-14", "Food & Dining", "Cash", "Lunch at cafe", 12.5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(lines))
		}
		want := `2025-06-14,"Lunch at cafe",Food & Dining,Cash,12.50`
		if lines[1] != want {
			t.Errorf("expected %q, got %q", want, lines[1])
		}
	})

	t.Run("empty_description_falls_back_to_category", func(t *testing.T) {
		var b strings.Builder
		err := WriteCSV(&b, []models.Expense{
			expense("2025-06-14", "Travel", "Cash", "", 300),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(b.String(), `"Travel"`) {
			t.Errorf("expected quoted category fallback, got %q", b.String())
		}
	})

	t.Run("quotes_escaped_by_doubling", func(t *testing.T) {
		var b strings.Builder
		err := WriteCSV(&b, []models.Expense{
			expense("2025-06-14", "Food & Dining", "Cash", `the "best" pizza`, 20),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(b.String(), `"the ""best"" pizza"`) {
			t.Errorf("expected doubled quotes, got %q", b.String())
		}
	})

	t.Run("amount_always_two_decimal_places", func(t *testing.T) {
		var b strings.Builder
		err := WriteCSV(&b, []models.Expense{
			expense("2025-06-14", "Food & Dining", "Cash", "Snack", 7),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasSuffix(strings.TrimRight(b.String(), "\n"), ",7.00") {
			t.Errorf("expected amount 7.00, got %q", b.String())
		}
	})
}
