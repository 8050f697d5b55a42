// Package store is the persistence boundary for expense records. It exposes
// CRUD plus a real-time style subscription that delivers the owner's full,
// date-sorted snapshot on every change. Provider errors are translated into
// the application's closed error vocabulary here and never leak upward.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/stats"
)

// ExpenseStore is the contract the services consume. No server-side sort or
// filter is assumed beyond owner scoping; consumers work over the full
// per-user snapshot.
type ExpenseStore interface {
	Create(expense *models.Expense) (string, error)
	Update(expenseID, userID string, expense *models.Expense) error
	Delete(expenseID, userID string) error
	QueryByOwner(userID string) ([]models.Expense, error)
	SubscribeByOwner(userID string, onSnapshot func([]models.Expense), onError func(error)) *Subscription
}

// gormExpenseStore implements ExpenseStore on a GORM database.
type gormExpenseStore struct {
	db  *gorm.DB
	hub *hub
}

// NewExpenseStore creates an ExpenseStore backed by the given database.
func NewExpenseStore(db *gorm.DB) ExpenseStore {
	return &gormExpenseStore{db: db, hub: newHub()}
}

// Create persists a new expense and notifies the owner's subscribers.
func (s *gormExpenseStore) Create(expense *models.Expense) (string, error) {
	if err := s.db.Create(expense).Error; err != nil {
		return "", translate(err)
	}
	s.publish(expense.UserID)
	return expense.ID, nil
}

// Update replaces a persisted expense in full. Expenses are immutable once
// written; edits always go through full replace.
func (s *gormExpenseStore) Update(expenseID, userID string, expense *models.Expense) error {
	var existing models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&existing).Error; err != nil {
		return translate(err)
	}

	expense.ID = existing.ID
	expense.UserID = existing.UserID
	expense.CreatedAt = existing.CreatedAt
	if err := s.db.Model(&existing).Select("*").Omit("created_at", "deleted_at").Updates(expense).Error; err != nil {
		return translate(err)
	}
	s.publish(userID)
	return nil
}

// Delete removes an expense owned by the user.
func (s *gormExpenseStore) Delete(expenseID, userID string) error {
	result := s.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	s.publish(userID)
	return nil
}

// QueryByOwner returns the user's full expense set, most recent first.
func (s *gormExpenseStore) QueryByOwner(userID string) ([]models.Expense, error) {
	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, translate(err)
	}
	// Sort in memory; malformed dates order last instead of failing.
	return stats.SortByDateDesc(expenses), nil
}

// SubscribeByOwner registers a snapshot listener for the user. The current
// snapshot is delivered immediately, then again after every change to the
// owner's collection. Each delivery is authoritative: consumers replace
// their entire working set.
func (s *gormExpenseStore) SubscribeByOwner(userID string, onSnapshot func([]models.Expense), onError func(error)) *Subscription {
	sub := s.hub.subscribe(userID, onSnapshot, onError)

	expenses, err := s.QueryByOwner(userID)
	if err != nil {
		sub.deliverError(err)
		return sub
	}
	sub.deliver(expenses)
	return sub
}

// publish pushes a fresh snapshot to every subscriber of the owner.
func (s *gormExpenseStore) publish(userID string) {
	if !s.hub.hasSubscribers(userID) {
		return
	}
	expenses, err := s.QueryByOwner(userID)
	if err != nil {
		s.hub.broadcastError(userID, err)
		return
	}
	s.hub.broadcast(userID, expenses)
}

// translate maps provider errors onto the closed storage error vocabulary.
// Unrecognized errors fall back to the internal storage variant with the
// original cause preserved for logging.
func translate(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrExpenseNotFound
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"):
		return apperrors.Wrap(apperrors.ErrStoragePermissionDenied, err)
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "unavailable"):
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
	case strings.Contains(msg, "authentication"), strings.Contains(msg, "unauthenticated"):
		return apperrors.Wrap(apperrors.ErrStorageUnauthenticated, err)
	case strings.Contains(msg, "index"):
		return apperrors.Wrap(apperrors.ErrStorageMissingIndex, err)
	default:
		return apperrors.Wrap(apperrors.ErrStorageInternal, err)
	}
}
