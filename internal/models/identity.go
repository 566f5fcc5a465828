package models

import (
	"strings"
	"time"
)

const MaxCustomNameLength = 30

type IdentityTemplate struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"not null"`
	Image       string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

type Identity struct {
	ID         uint             `gorm:"primaryKey"`
	ProfileID  uint             `gorm:"not null;index"`
	TemplateID uint             `gorm:"not null"`
	Template   IdentityTemplate `gorm:"foreignKey:TemplateID"`
	IsActive   bool             `gorm:"not null;default:false"`
	CustomName string
	CreatedAt  time.Time `gorm:"not null"`
}

// DisplayName falls back to the template name when no custom name is set.
func (identity Identity) DisplayName() string {
	if name := strings.TrimSpace(identity.CustomName); name != "" {
		return name
	}
	return identity.Template.Name
}
