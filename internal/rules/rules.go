// Package rules implements the expense validation rules engine. Validation
// is pure and deterministic given a reference date: it performs no I/O and
// evaluates every rule so callers can surface all field errors at once.
package rules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/models"
)

// Candidate is an expense record as submitted, before any coercion. Amount
// and Date are kept as raw strings so the engine owns their parsing.
type Candidate struct {
	Amount               string
	Category             string
	Date                 string
	Description          string
	PaymentMethod        string
	PaymentMethodDetails string
	Tags                 []string
	Location             string
	IsRecurring          bool
	RecurringPattern     string
}

// Rules holds the configurable validation constraints.
type Rules struct {
	MinAmount            float64
	MaxAmount            float64
	CurrencyCode         string
	MaxPastDays          int
	MaxDescriptionLength int
	MaxLocationLength    int
	MaxTags              int
	MaxTagLength         int
}

// Default returns the stock validation rules for a currency.
func Default(currencyCode string) Rules {
	return Rules{
		MinAmount:            0.01,
		MaxAmount:            999999.99,
		CurrencyCode:         currencyCode,
		MaxPastDays:          365,
		MaxDescriptionLength: 200,
		MaxLocationLength:    100,
		MaxTags:              10,
		MaxTagLength:         20,
	}
}

// FieldErrors maps a field name to a human-readable validation message. An
// empty map means the candidate is valid.
type FieldErrors map[string]string

// Valid reports whether no rule failed.
func (f FieldErrors) Valid() bool { return len(f) == 0 }

// Error renders the failures as a single string. Field order is not
// guaranteed; used for logging and wrapped errors only.
func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// dateLayout is the calendar-date wire format.
const dateLayout = "2006-01-02"

// Validate checks a candidate expense against the rules relative to
// referenceDate. All rules are evaluated; validation never fails with an
// error of its own.
func Validate(c Candidate, r Rules, referenceDate time.Time) FieldErrors {
	errs := FieldErrors{}

	validateAmount(c, r, errs)
	validateCategory(c, errs)
	validateDate(c, r, referenceDate, errs)
	validatePaymentMethod(c, errs)
	validateDescription(c, r, errs)
	validateLocation(c, r, errs)
	validateTags(c, r, errs)
	validateRecurrence(c, errs)

	return errs
}

func validateAmount(c Candidate, r Rules, errs FieldErrors) {
	raw := strings.TrimSpace(c.Amount)
	if raw == "" {
		errs["amount"] = "Please enter a valid amount"
		return
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		errs["amount"] = "Please enter a valid amount"
		return
	}
	if amount < r.MinAmount {
		errs["amount"] = fmt.Sprintf("Amount must be at least %g", r.MinAmount)
		return
	}
	if amount > r.MaxAmount {
		errs["amount"] = fmt.Sprintf("Amount cannot exceed %.2f", r.MaxAmount)
		return
	}

	allowed := models.CurrencyDecimalPlaces(r.CurrencyCode)
	if decimalPlaces(raw) > allowed {
		errs["amount"] = fmt.Sprintf("Amount can have at most %d decimal places", allowed)
	}
}

// decimalPlaces counts digits after the decimal point in the raw input, not
// the parsed float, so "1.230" counts as three places.
func decimalPlaces(raw string) int {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		return len(raw) - i - 1
	}
	return 0
}

func validateCategory(c Candidate, errs FieldErrors) {
	if strings.TrimSpace(c.Category) == "" {
		errs["category"] = "Please select a category"
	}
}

func validateDate(c Candidate, r Rules, referenceDate time.Time, errs FieldErrors) {
	raw := strings.TrimSpace(c.Date)
	if raw == "" {
		errs["date"] = "Please select a date"
		return
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		errs["date"] = "Please select a valid date"
		return
	}

	// Compare whole calendar days: anything on the reference day is fine.
	y, m, d := referenceDate.Date()
	endOfToday := time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
	if date.After(endOfToday) {
		errs["date"] = "Date cannot be in the future"
		return
	}

	// The boundary day itself is allowed, so anchor at its midnight.
	oldest := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -r.MaxPastDays)
	if date.Before(oldest) {
		errs["date"] = fmt.Sprintf("Date cannot be more than %d days in the past", r.MaxPastDays)
	}
}

func validatePaymentMethod(c Candidate, errs FieldErrors) {
	if strings.TrimSpace(c.PaymentMethod) == "" {
		errs["payment_method"] = "Please select a payment method"
		return
	}
	if c.PaymentMethod == "Other" && strings.TrimSpace(c.PaymentMethodDetails) == "" {
		errs["payment_method_details"] = "Please specify the payment method details"
	}
}

func validateDescription(c Candidate, r Rules, errs FieldErrors) {
	if len(c.Description) > r.MaxDescriptionLength {
		errs["description"] = fmt.Sprintf("Description cannot exceed %d characters", r.MaxDescriptionLength)
	}
}

func validateLocation(c Candidate, r Rules, errs FieldErrors) {
	if len(c.Location) > r.MaxLocationLength {
		errs["location"] = fmt.Sprintf("Location cannot exceed %d characters", r.MaxLocationLength)
	}
}

func validateTags(c Candidate, r Rules, errs FieldErrors) {
	if len(c.Tags) > r.MaxTags {
		errs["tags"] = fmt.Sprintf("Cannot have more than %d tags", r.MaxTags)
		return
	}
	seen := make(map[string]bool, len(c.Tags))
	for _, tag := range c.Tags {
		if strings.TrimSpace(tag) == "" {
			errs["tags"] = "Tags cannot be blank"
			return
		}
		if len(tag) > r.MaxTagLength {
			errs["tags"] = fmt.Sprintf("Each tag cannot exceed %d characters", r.MaxTagLength)
			return
		}
		if seen[tag] {
			errs["tags"] = "Duplicate tags are not allowed"
			return
		}
		seen[tag] = true
	}
}

func validateRecurrence(c Candidate, errs FieldErrors) {
	if !c.IsRecurring {
		return
	}
	switch models.RecurringPattern(c.RecurringPattern) {
	case models.RecurringDaily, models.RecurringWeekly, models.RecurringMonthly, models.RecurringYearly:
	default:
		errs["recurring_pattern"] = "Please select a valid recurring pattern"
	}
}
