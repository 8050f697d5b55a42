package services

import (
	"io"

	"spendwise/internal/filter"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/split"
	"spendwise/internal/stats"
	"spendwise/internal/store"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, displayName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	UpdateProfile(userID, displayName string) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	DeleteAccount(userID, password string) error
	IssueVerificationToken(userID string) (string, error)
	ConfirmEmail(token string) error
	IssuePasswordResetToken(email string) (string, error)
	ResetPassword(token, newPassword string) error
}

// ExpenseForm is a candidate expense as submitted by the client. Amount and
// date stay raw strings until the rules engine has validated them.
type ExpenseForm struct {
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

// FilteredExpenses is a filtered transaction history slice plus its running
// total.
type FilteredExpenses struct {
	Expenses []models.Expense `json:"expenses"`
	Total    float64          `json:"total"`
	Matched  int              `json:"matched"`
	Overall  int              `json:"overall"`
}

// ExpenseServicer defines the contract for expense-related business logic.
// Validation is enforced at this write boundary: an expense failing any rule
// is never persisted.
type ExpenseServicer interface {
	AddExpense(userID string, form ExpenseForm) (*models.Expense, error)
	UpdateExpense(userID, expenseID string, form ExpenseForm) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	ListExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetStats(userID string) (*stats.Stats, error)
	FilterExpenses(userID string, criteria filter.Criteria) (*FilteredExpenses, error)
	ExportCSV(w io.Writer, userID string, criteria filter.Criteria) error
	Subscribe(userID string, onSnapshot func([]models.Expense), onError func(error)) *store.Subscription
}

// SettingsUpdate carries a partial settings merge; nil fields are left
// untouched.
type SettingsUpdate struct {
	CurrencyCode         *string
	DateFormat           *models.DateFormat
	DefaultPaymentMethod *string
	Notifications        *models.NotificationSettings
	Privacy              *models.PrivacySettings
}

// SettingsServicer defines the contract for user settings. Settings are
// created lazily with defaults on first read.
type SettingsServicer interface {
	GetSettings(userID string) (*models.UserSettings, error)
	UpdateSettings(userID string, updates SettingsUpdate) (*models.UserSettings, error)
	ResetSettings(userID string) (*models.UserSettings, error)
	AddCustomCategory(userID, category string) (*models.UserSettings, error)
	RemoveCustomCategory(userID, category string) (*models.UserSettings, error)
	AvailableCategories(userID string) ([]string, error)
}

// SplitExpenseInput is one shared expense submitted for a split group.
type SplitExpenseInput struct {
	Description string
	Amount      float64
	PaidBy      string
}

// GroupServicer defines the contract for bill-splitting groups.
type GroupServicer interface {
	CreateGroup(userID, name string, members []string, expenses []SplitExpenseInput) (*models.SplitGroup, error)
	GetUserGroups(userID string) ([]models.SplitGroup, error)
	GetGroupByID(userID, groupID string) (*models.SplitGroup, error)
	AddGroupExpense(userID, groupID string, input SplitExpenseInput) (*models.SplitGroup, error)
	DeleteGroup(userID, groupID string) error
	GetShares(userID, groupID string) (*split.Result, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress, details string)
}
