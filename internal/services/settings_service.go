package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// settingsService handles user settings. One row exists per user, created
// lazily with defaults on first read.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the user's settings, creating the default row if none
// exists yet.
func (s *settingsService) GetSettings(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	defaults := models.DefaultUserSettings(userID)
	if err := s.db.Create(defaults).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return defaults, nil
}

// UpdateSettings applies a partial merge; only non-nil fields change.
func (s *settingsService) UpdateSettings(userID string, updates SettingsUpdate) (*models.UserSettings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if updates.CurrencyCode != nil {
		currency, ok := models.CurrencyByCode(*updates.CurrencyCode)
		if !ok {
			return nil, apperrors.ErrUnknownCurrency
		}
		settings.CurrencyCode = currency.Code
		settings.CurrencySymbol = currency.Symbol
	}
	if updates.DateFormat != nil {
		switch *updates.DateFormat {
		case models.DateFormatMDY, models.DateFormatDMY:
			settings.DateFormat = *updates.DateFormat
		default:
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown date format")
		}
	}
	if updates.DefaultPaymentMethod != nil {
		if *updates.DefaultPaymentMethod != "" && !models.IsPaymentMethod(*updates.DefaultPaymentMethod) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown payment method")
		}
		settings.DefaultPaymentMethod = *updates.DefaultPaymentMethod
	}
	if updates.Notifications != nil {
		settings.Notifications = *updates.Notifications
	}
	if updates.Privacy != nil {
		settings.Privacy = *updates.Privacy
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// ResetSettings restores the defaults, keeping the row and its identity.
func (s *settingsService) ResetSettings(userID string) (*models.UserSettings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	defaults := models.DefaultUserSettings(userID)
	defaults.Base = settings.Base
	if err := s.db.Save(defaults).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return defaults, nil
}

// AddCustomCategory appends a user-defined category. Blank names and
// duplicates (against both custom and predefined categories) are rejected.
func (s *settingsService) AddCustomCategory(userID, category string) (*models.UserSettings, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	for _, existing := range settings.CustomCategories {
		if existing == category {
			return nil, apperrors.ErrDuplicateCategory
		}
	}
	for _, predefined := range models.PredefinedCategories {
		if predefined == category {
			return nil, apperrors.ErrDuplicateCategory
		}
	}

	settings.CustomCategories = append(settings.CustomCategories, category)
	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// RemoveCustomCategory drops a user-defined category if present. Removing a
// category that does not exist is not an error.
func (s *settingsService) RemoveCustomCategory(userID, category string) (*models.UserSettings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	kept := settings.CustomCategories[:0]
	for _, existing := range settings.CustomCategories {
		if existing != category {
			kept = append(kept, existing)
		}
	}
	settings.CustomCategories = kept

	if err := s.db.Save(settings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return settings, nil
}

// AvailableCategories returns the predefined set followed by the user's
// custom categories.
func (s *settingsService) AvailableCategories(userID string) ([]string, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(models.PredefinedCategories)+len(settings.CustomCategories))
	categories = append(categories, models.PredefinedCategories...)
	categories = append(categories, settings.CustomCategories...)
	return categories, nil
}
