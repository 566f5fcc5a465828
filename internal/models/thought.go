package models

import "time"

type Thought struct {
	ID         uint      `gorm:"primaryKey"`
	ProfileID  uint      `gorm:"not null;index"`
	IdentityID uint      `gorm:"not null;index"`
	Content    string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}
