package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/services"
)

// SettingsHandler handles user settings requests
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents a partial settings merge; omitted fields
// are left untouched.
type UpdateSettingsRequest struct {
	CurrencyCode         *string                      `json:"currency_code" binding:"omitempty,currency_code"`
	DateFormat           *string                      `json:"date_format" binding:"omitempty,date_format"`
	DefaultPaymentMethod *string                      `json:"default_payment_method" binding:"omitempty,payment_method"`
	Notifications        *models.NotificationSettings `json:"notifications"`
	Privacy              *models.PrivacySettings      `json:"privacy"`
}

// CustomCategoryRequest carries a custom category name.
type CustomCategoryRequest struct {
	Category string `json:"category" binding:"required,max=50"`
}

// GetSettings returns the user's settings, creating defaults on first read
// @Summary     Get user settings
// @Description Get the authenticated user's settings; defaults are created on first access
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserSettings "Settings"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.GetSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings merges partial settings changes
// @Summary     Update user settings
// @Description Apply a partial merge to the user's settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateSettingsRequest true "Settings changes"
// @Success     200 {object} models.UserSettings "Updated settings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /settings [patch]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updates := services.SettingsUpdate{
		CurrencyCode:         req.CurrencyCode,
		DefaultPaymentMethod: req.DefaultPaymentMethod,
		Notifications:        req.Notifications,
		Privacy:              req.Privacy,
	}
	if req.DateFormat != nil {
		format := models.DateFormat(*req.DateFormat)
		updates.DateFormat = &format
	}

	settings, err := h.settingsService.UpdateSettings(userID, updates)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ResetSettings restores the default settings
// @Summary     Reset user settings
// @Description Restore the authenticated user's settings to defaults
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.UserSettings "Default settings"
// @Router      /settings/reset [post]
func (h *SettingsHandler) ResetSettings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.ResetSettings(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// AddCustomCategory adds a user-defined category
// @Summary     Add custom category
// @Description Add a user-defined expense category
// @Tags        settings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CustomCategoryRequest true "Category name"
// @Success     200 {object} models.UserSettings "Updated settings"
// @Failure     409 {object} ErrorResponse "Category already exists"
// @Router      /settings/categories [post]
func (h *SettingsHandler) AddCustomCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CustomCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	settings, err := h.settingsService.AddCustomCategory(userID, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// RemoveCustomCategory removes a user-defined category
// @Summary     Remove custom category
// @Description Remove a user-defined expense category
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Param       category path string true "Category name"
// @Success     200 {object} models.UserSettings "Updated settings"
// @Router      /settings/categories/{category} [delete]
func (h *SettingsHandler) RemoveCustomCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	settings, err := h.settingsService.RemoveCustomCategory(userID, c.Param("category"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// ListCategories returns predefined plus custom categories
// @Summary     List available categories
// @Description Predefined categories followed by the user's custom ones
// @Tags        settings
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]string "Categories"
// @Router      /settings/categories [get]
func (h *SettingsHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.settingsService.AvailableCategories(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
