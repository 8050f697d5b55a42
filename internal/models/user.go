package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	DisplayName         string     `json:"display_name"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	EmailVerified       bool       `gorm:"default:false" json:"email_verified"`
	VerificationToken   string     `gorm:"size:64" json:"-"`
	PasswordResetToken  string     `gorm:"size:64" json:"-"`
	PasswordResetExpiry *time.Time `json:"-"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Expenses []Expense     `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Settings *UserSettings `gorm:"foreignKey:UserID" json:"settings,omitempty"`
	Groups   []SplitGroup  `gorm:"foreignKey:UserID" json:"groups,omitempty"`
}
