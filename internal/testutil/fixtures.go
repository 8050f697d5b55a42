package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendwise/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense for the given user dated today.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, time.Now().Format("2006-01-02"))
}

// CreateTestExpenseOn creates an expense for the given user on the given date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID, date string) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:         userID,
		Amount:         12.50,
		CurrencyCode:   "USD",
		CurrencySymbol: "$",
		Category:       "Food & Dining",
		Date:           date,
		Description:    fmt.Sprintf("Test expense %d", nextID()),
		PaymentMethod:  "Cash",
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestGroup creates a split group with the given members.
func CreateTestGroup(t *testing.T, db *gorm.DB, userID string, members ...string) *models.SplitGroup {
	t.Helper()

	if len(members) == 0 {
		members = []string{"Alice", "Bob"}
	}
	group := &models.SplitGroup{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Group %d", nextID()),
		Members: members,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateTestGroupExpense appends a shared expense to the given group.
func CreateTestGroupExpense(t *testing.T, db *gorm.DB, groupID, paidBy string, amount float64) *models.SplitExpense {
	t.Helper()

	expense := &models.SplitExpense{
		GroupID:     groupID,
		Description: fmt.Sprintf("Shared expense %d", nextID()),
		Amount:      amount,
		PaidBy:      paidBy,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test group expense: %v", err)
	}
	return expense
}
