package models

import "time"

// RecurringPattern represents how often a recurring expense repeats.
// The pattern is descriptive metadata only; no component materializes
// future occurrences from it.
type RecurringPattern string

const (
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
	RecurringYearly  RecurringPattern = "yearly"
)

// Expense represents a single recorded outflow of money. Once persisted an
// expense is only ever mutated via full replace.
type Expense struct {
	Base
	UserID               string           `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount               float64          `gorm:"not null" json:"amount"`
	CurrencyCode         string           `gorm:"size:3;not null;default:USD" json:"currency_code"`
	CurrencySymbol       string           `gorm:"size:8;not null;default:$" json:"currency_symbol"`
	Category             string           `gorm:"not null" json:"category"`
	Date                 string           `gorm:"size:10;not null" json:"date"` // calendar date, YYYY-MM-DD
	Description          string           `gorm:"size:200" json:"description,omitempty"`
	PaymentMethod        string           `gorm:"not null" json:"payment_method"`
	PaymentMethodDetails string           `json:"payment_method_details,omitempty"`
	Tags                 []string         `gorm:"serializer:json" json:"tags,omitempty"`
	ReceiptURL           string           `json:"receipt_url,omitempty"`
	Location             string           `gorm:"size:100" json:"location,omitempty"`
	IsRecurring          bool             `gorm:"default:false" json:"is_recurring"`
	RecurringPattern     RecurringPattern `json:"recurring_pattern,omitempty"`
}

// Day parses the expense date. The zero time and false are returned for
// malformed dates so callers can order them deterministically instead of
// failing.
func (e *Expense) Day() (time.Time, bool) {
	t, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// PredefinedCategories is the fixed set of expense categories offered to
// every user. Users may extend it with custom categories via settings.
var PredefinedCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Entertainment",
	"Healthcare",
	"Shopping",
	"Education",
	"Travel",
	"Personal Care",
	"Gifts & Donations",
	"Business",
	"Insurance",
	"Taxes",
	"Savings & Investments",
	"Debt Payments",
	"Pet Care",
	"Home Improvement",
	"Subscriptions",
	"Other",
}

// PaymentMethods is the fixed set of accepted payment methods. "Other"
// requires payment method details.
var PaymentMethods = []string{
	"Cash",
	"Credit Card",
	"Debit Card",
	"Digital Wallet",
	"Bank Transfer",
	"Check",
	"Cryptocurrency",
	"Gift Card",
	"Other",
}

// IsPaymentMethod reports whether s is one of the accepted payment methods.
func IsPaymentMethod(s string) bool {
	for _, m := range PaymentMethods {
		if m == s {
			return true
		}
	}
	return false
}
