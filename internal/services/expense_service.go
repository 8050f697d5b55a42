package services

import (
	"io"
	"strconv"
	"strings"
	"time"

	"spendwise/internal/config"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/filter"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/rules"
	"spendwise/internal/stats"
	"spendwise/internal/store"
)

// expenseService handles expense-related business logic. All reads work over
// the owner's full snapshot from the store; sorting, filtering, and
// aggregation happen in memory.
type expenseService struct {
	store           store.ExpenseStore
	settingsService SettingsServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(expenseStore store.ExpenseStore, settingsService SettingsServicer) ExpenseServicer {
	return &expenseService{
		store:           expenseStore,
		settingsService: settingsService,
	}
}

// AddExpense validates and persists a new expense. Validation failures never
// reach the store.
func (s *expenseService) AddExpense(userID string, form ExpenseForm) (*models.Expense, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrUnauthorized
	}

	expense, err := s.buildExpense(userID, form)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense validates the replacement record and replaces the persisted
// expense in full.
func (s *expenseService) UpdateExpense(userID, expenseID string, form ExpenseForm) (*models.Expense, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.ErrUnauthorized
	}

	expense, err := s.buildExpense(userID, form)
	if err != nil {
		return nil, err
	}

	if err := s.store.Update(expenseID, userID, expense); err != nil {
		return nil, err
	}
	expense.ID = expenseID
	return expense, nil
}

// buildExpense runs the validation rules engine against the form and
// materializes the expense record with the user's currency.
func (s *expenseService) buildExpense(userID string, form ExpenseForm) (*models.Expense, error) {
	settings, err := s.settingsService.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	r := rules.Default(settings.CurrencyCode)
	r.MaxPastDays = config.Get().ExpenseMaxPastDays

	candidate := rules.Candidate{
		Amount:               form.Amount,
		Category:             form.Category,
		Date:                 form.Date,
		Description:          form.Description,
		PaymentMethod:        form.PaymentMethod,
		PaymentMethodDetails: form.PaymentMethodDetails,
		Tags:                 form.Tags,
		Location:             form.Location,
		IsRecurring:          form.IsRecurring,
		RecurringPattern:     form.RecurringPattern,
	}
	if errs := rules.Validate(candidate, r, time.Now()); !errs.Valid() {
		return nil, apperrors.Wrap(apperrors.ErrValidationFailed, errs)
	}

	amount, _ := strconv.ParseFloat(strings.TrimSpace(form.Amount), 64)
	return &models.Expense{
		UserID:               userID,
		Amount:               amount,
		CurrencyCode:         settings.CurrencyCode,
		CurrencySymbol:       settings.CurrencySymbol,
		Category:             form.Category,
		Date:                 strings.TrimSpace(form.Date),
		Description:          strings.TrimSpace(form.Description),
		PaymentMethod:        form.PaymentMethod,
		PaymentMethodDetails: strings.TrimSpace(form.PaymentMethodDetails),
		Tags:                 form.Tags,
		Location:             strings.TrimSpace(form.Location),
		IsRecurring:          form.IsRecurring,
		RecurringPattern:     models.RecurringPattern(form.RecurringPattern),
	}, nil
}

// DeleteExpense removes an expense owned by the user.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	return s.store.Delete(expenseID, userID)
}

// GetExpenseByID finds one expense in the owner's snapshot.
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	expenses, err := s.store.QueryByOwner(userID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		if expenses[i].ID == expenseID {
			return &expenses[i], nil
		}
	}
	return nil, apperrors.ErrExpenseNotFound
}

// ListExpenses returns a date-descending page of the user's expenses.
func (s *expenseService) ListExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	expenses, err := s.store.QueryByOwner(userID)
	if err != nil {
		return nil, err
	}

	total := int64(len(expenses))
	start := page.Offset()
	if start > len(expenses) {
		start = len(expenses)
	}
	end := start + page.PageSize
	if end > len(expenses) {
		end = len(expenses)
	}

	result := pagination.NewPageResponse(expenses[start:end], page.Page, page.PageSize, total)
	return &result, nil
}

// GetStats computes the aggregation engine figures over the full snapshot.
func (s *expenseService) GetStats(userID string) (*stats.Stats, error) {
	expenses, err := s.store.QueryByOwner(userID)
	if err != nil {
		return nil, err
	}
	result := stats.Compute(expenses, time.Now())
	return &result, nil
}

// FilterExpenses applies the history filter criteria and computes the
// running total of the matching subset.
func (s *expenseService) FilterExpenses(userID string, criteria filter.Criteria) (*FilteredExpenses, error) {
	if criteria.DateRange == "" {
		criteria.DateRange = filter.RangeAll
	}
	if !criteria.DateRange.Valid() {
		return nil, apperrors.ErrUnknownDateRange
	}

	expenses, err := s.store.QueryByOwner(userID)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(expenses, criteria, time.Now())
	return &FilteredExpenses{
		Expenses: matched,
		Total:    filter.Total(matched),
		Matched:  len(matched),
		Overall:  len(expenses),
	}, nil
}

// ExportCSV writes the filtered transaction set in the CSV export format.
func (s *expenseService) ExportCSV(w io.Writer, userID string, criteria filter.Criteria) error {
	filtered, err := s.FilterExpenses(userID, criteria)
	if err != nil {
		return err
	}
	return filter.WriteCSV(w, filtered.Expenses)
}

// Subscribe registers a snapshot listener for the user's expense collection.
// The caller owns the returned subscription and must unsubscribe on
// teardown.
func (s *expenseService) Subscribe(userID string, onSnapshot func([]models.Expense), onError func(error)) *store.Subscription {
	return s.store.SubscribeByOwner(userID, onSnapshot, onError)
}
