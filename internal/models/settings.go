package models

// DateFormat is the user's preferred calendar date presentation.
type DateFormat string

const (
	DateFormatMDY DateFormat = "MM/DD/YYYY"
	DateFormatDMY DateFormat = "DD/MM/YYYY"
)

// NotificationSettings groups the per-user notification toggles.
type NotificationSettings struct {
	DailyReminder bool `json:"daily_reminder"`
	WeeklyReport  bool `json:"weekly_report"`
	BudgetAlerts  bool `json:"budget_alerts"`
}

// PrivacySettings groups the per-user privacy toggles.
type PrivacySettings struct {
	ShareData bool `json:"share_data"`
	Analytics bool `json:"analytics"`
}

// UserSettings holds per-user preferences. Exactly one row exists per user;
// it is created lazily with defaults on first read.
type UserSettings struct {
	Base
	UserID               string               `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CurrencyCode         string               `gorm:"size:3;not null;default:USD" json:"currency_code"`
	CurrencySymbol       string               `gorm:"size:8;not null;default:$" json:"currency_symbol"`
	DateFormat           DateFormat           `gorm:"size:10;not null;default:MM/DD/YYYY" json:"date_format"`
	CustomCategories     []string             `gorm:"serializer:json" json:"custom_categories"`
	DefaultPaymentMethod string               `json:"default_payment_method,omitempty"`
	Notifications        NotificationSettings `gorm:"embedded;embeddedPrefix:notify_" json:"notifications"`
	Privacy              PrivacySettings      `gorm:"embedded;embeddedPrefix:privacy_" json:"privacy"`
}

// DefaultUserSettings returns the settings a new user starts with.
func DefaultUserSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:           userID,
		CurrencyCode:     "USD",
		CurrencySymbol:   "$",
		DateFormat:       DateFormatMDY,
		CustomCategories: []string{},
		Notifications: NotificationSettings{
			DailyReminder: false,
			WeeklyReport:  true,
			BudgetAlerts:  true,
		},
		Privacy: PrivacySettings{
			ShareData: false,
			Analytics: true,
		},
	}
}
