package models

// AuditLog records security-sensitive actions for later review. Rows are
// written fire-and-forget and never read on the request path.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:uuid;index" json:"user_id"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `gorm:"type:uuid" json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Details      string `json:"details,omitempty"`
}
