package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/split"
)

// groupService handles bill-splitting groups.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

// CreateGroup creates a split group with its members and initial expenses.
// Member names are trimmed; blank names are dropped and a group must keep at
// least one member after trimming.
func (s *groupService) CreateGroup(userID, name string, members []string, expenses []SplitExpenseInput) (*models.SplitGroup, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}

	trimmed := make([]string, 0, len(members))
	for _, m := range members {
		if m = strings.TrimSpace(m); m != "" {
			trimmed = append(trimmed, m)
		}
	}
	if len(trimmed) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one member is required")
	}

	rows := make([]models.SplitExpense, 0, len(expenses))
	for _, e := range expenses {
		row, err := buildSplitExpense(e)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}

	group := &models.SplitGroup{
		UserID:   userID,
		Name:     strings.TrimSpace(name),
		Members:  trimmed,
		Expenses: rows,
	}
	if err := s.db.Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

func buildSplitExpense(e SplitExpenseInput) (*models.SplitExpense, error) {
	if strings.TrimSpace(e.Description) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense description is required")
	}
	if e.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense amount must be greater than zero")
	}
	if strings.TrimSpace(e.PaidBy) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense payer is required")
	}
	return &models.SplitExpense{
		Description: strings.TrimSpace(e.Description),
		Amount:      e.Amount,
		PaidBy:      strings.TrimSpace(e.PaidBy),
	}, nil
}

// GetUserGroups lists the user's split groups with their expenses.
func (s *groupService) GetUserGroups(userID string) ([]models.SplitGroup, error) {
	var groups []models.SplitGroup
	if err := s.db.Preload("Expenses").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

// GetGroupByID retrieves one group with its expenses.
func (s *groupService) GetGroupByID(userID, groupID string) (*models.SplitGroup, error) {
	var group models.SplitGroup
	if err := s.db.Preload("Expenses").Where("id = ? AND user_id = ?", groupID, userID).
		First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &group, nil
}

// AddGroupExpense appends a shared expense to an existing group.
func (s *groupService) AddGroupExpense(userID, groupID string, input SplitExpenseInput) (*models.SplitGroup, error) {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return nil, err
	}

	row, err := buildSplitExpense(input)
	if err != nil {
		return nil, err
	}
	row.GroupID = group.ID

	if err := s.db.Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	group.Expenses = append(group.Expenses, *row)
	return group, nil
}

// DeleteGroup removes a group and its expenses.
func (s *groupService) DeleteGroup(userID, groupID string) error {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", group.ID).Delete(&models.SplitExpense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(group).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// GetShares computes the settlement figures for a group.
func (s *groupService) GetShares(userID, groupID string) (*split.Result, error) {
	group, err := s.GetGroupByID(userID, groupID)
	if err != nil {
		return nil, err
	}
	return split.ComputeShares(group)
}
