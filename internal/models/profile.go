package models

import "time"

const (
	ThemeModeLight  = "light"
	ThemeModeDark   = "dark"
	ThemeModeSystem = "system"
)

type Profile struct {
	ID           uint       `gorm:"primaryKey"`
	FirstName    string     `gorm:"not null"`
	Surname      string     `gorm:"not null"`
	DateOfBirth  time.Time  `gorm:"type:date;not null"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null"`
	StayLoggedIn bool       `gorm:"not null;default:false"`
	ThemeID      *uint      `gorm:"index"`
	Theme        *Theme     `gorm:"foreignKey:ThemeID"`
	ThemeMode    string     `gorm:"not null;default:system"`
	Identities   []Identity `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"not null"`
}

func IsThemeMode(value string) bool {
	switch value {
	case ThemeModeLight, ThemeModeDark, ThemeModeSystem:
		return true
	default:
		return false
	}
}
