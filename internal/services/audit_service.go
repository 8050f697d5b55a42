package services

import (
	"gorm.io/gorm"

	"spendwise/internal/logger"
	"spendwise/internal/models"
)

// Audit actions recorded for security-sensitive operations.
const (
	AuditLogin          = "login"
	AuditLoginLocked    = "login_locked"
	AuditPasswordChange = "password_change"
	AuditPasswordReset  = "password_reset"
	AuditAccountDeleted = "account_deleted"
)

// auditService handles audit log recording.
type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records an audit event. Errors are logged but never propagate
// to avoid disrupting the main operation.
func (s *auditService) Log(userID, action, resourceType, resourceID, ipAddress, details string) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Details:      details,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}
