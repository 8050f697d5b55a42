package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func today() string {
	return time.Now().Format("2006-01-02")
}

func expenseBody(amount, category, description string) string {
	return fmt.Sprintf(`{"amount":%q,"category":%q,"date":%q,"description":%q,"payment_method":"Cash"}`,
		amount, category, today(), description)
}

func TestExpenseFlow_CreateListAndStats(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "spend@test.com", "password123")

	// Step 1: Record two expenses.
	rec := app.request("POST", "/api/v1/expenses", expenseBody("20.00", "Food & Dining", "Lunch"), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	expense := result["expense"].(map[string]interface{})
	if expense["currency_code"] != "USD" {
		t.Errorf("expected currency from settings, got %v", expense["currency_code"])
	}

	rec = app.request("POST", "/api/v1/expenses", expenseBody("30.00", "Transportation", "Bus"), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 2: List shows both.
	rec = app.request("GET", "/api/v1/expenses", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 2 {
		t.Errorf("expected 2 expenses, got %v", list["total_items"])
	}

	// Step 3: Stats reflect the snapshot.
	rec = app.request("GET", "/api/v1/expenses/stats", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	statsResult := parseJSON(t, rec)
	figures := statsResult["stats"].(map[string]interface{})
	if figures["total_expenses"].(float64) != 50 {
		t.Errorf("expected total 50, got %v", figures["total_expenses"])
	}
	trend := figures["monthly_trend"].([]interface{})
	if len(trend) != 6 {
		t.Errorf("expected 6 trend buckets, got %d", len(trend))
	}
}

func TestExpenseFlow_ValidationRejected(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "invalid@test.com", "password123")

	rec := app.request("POST", "/api/v1/expenses", expenseBody("0", "Food & Dining", "Free lunch"), token)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	// Nothing was persisted.
	rec = app.request("GET", "/api/v1/expenses", "", token)
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 0 {
		t.Errorf("expected no expenses, got %v", list["total_items"])
	}
}

func TestExpenseFlow_UpdateAndDelete(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "edit@test.com", "password123")

	rec := app.request("POST", "/api/v1/expenses", expenseBody("20.00", "Food & Dining", "Lunch"), token)
	result := parseJSON(t, rec)
	id := result["expense"].(map[string]interface{})["id"].(string)

	// Full replace.
	rec = app.request("PUT", "/api/v1/expenses/"+id, expenseBody("35.00", "Food & Dining", "Dinner"), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/expenses/"+id, "", token)
	got := parseJSON(t, rec)["expense"].(map[string]interface{})
	if got["amount"].(float64) != 35 || got["description"] != "Dinner" {
		t.Errorf("expected replaced expense, got %v", got)
	}

	// Delete.
	rec = app.request("DELETE", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/expenses/"+id, "", token)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_OwnerIsolation(t *testing.T) {
	app := setupApp(t)
	alice, _, _ := app.registerUser(t, "alice@test.com", "password123")
	bob, _, _ := app.registerUser(t, "bob@test.com", "password123")

	rec := app.request("POST", "/api/v1/expenses", expenseBody("20.00", "Food & Dining", "Lunch"), alice)
	id := parseJSON(t, rec)["expense"].(map[string]interface{})["id"].(string)

	rec = app.request("GET", "/api/v1/expenses/"+id, "", bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for other user's expense, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/expenses/"+id, "", bob)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 deleting other user's expense, got %d", rec.Code)
	}
}

func TestExpenseFlow_HistoryFilterAndExport(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "history@test.com", "password123")

	app.request("POST", "/api/v1/expenses", expenseBody("20.00", "Food & Dining", "Lunch at cafe"), token)
	app.request("POST", "/api/v1/expenses", expenseBody("30.00", "Transportation", "Bus pass"), token)

	// Filter by category.
	rec := app.request("GET", "/api/v1/expenses/history?category=Transportation", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["matched"].(float64) != 1 || result["total"].(float64) != 30 {
		t.Errorf("expected 1 match totaling 30, got %v / %v", result["matched"], result["total"])
	}

	// Free-text search.
	rec = app.request("GET", "/api/v1/expenses/history?search=lunch", "", token)
	result = parseJSON(t, rec)
	if result["matched"].(float64) != 1 {
		t.Errorf("expected 1 search match, got %v", result["matched"])
	}

	// Unknown date range is rejected.
	rec = app.request("GET", "/api/v1/expenses/history?date_range=fortnight", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown date range, got %d", rec.Code)
	}

	// CSV export of the filtered set.
	rec = app.request("GET", "/api/v1/expenses/export?category=Food+%26+Dining", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv, got %s", ct)
	}
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != "Date,Description,Category,Payment Method,Amount" {
		t.Errorf("unexpected CSV header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Lunch at cafe"`) {
		t.Errorf("unexpected CSV row: %q", lines[1])
	}
}
