package models

import "time"

type Theme struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"uniqueIndex;not null"`
	IsDefault    bool      `gorm:"not null;default:false"`
	PrimaryHue   int       `gorm:"not null"`
	SecondaryHue int       `gorm:"not null"`
	TertiaryHue  int       `gorm:"not null"`
	NeutralHue   int       `gorm:"not null"`
	TextHue      int       `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}
