package models

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Task struct {
	ID         uint      `gorm:"primaryKey"`
	ProjectID  uint      `gorm:"not null;index"`
	Project    *Project  `gorm:"foreignKey:ProjectID"`
	Name       string    `gorm:"not null"`
	DueDate    time.Time `gorm:"type:date;not null"`
	Difficulty string    `gorm:"not null;default:medium"`
	IsComplete bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

func IsDifficulty(value string) bool {
	switch value {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

func (task Task) TimeLeft(today time.Time) int {
	days := DaysBetween(today, task.DueDate)
	if days < 0 {
		return 0
	}
	return days
}

// TimeElapsedPercentage measures progress from the creation day to the due date.
func (task Task) TimeElapsedPercentage(today time.Time) int {
	if task.IsComplete {
		return 100
	}

	start := DateOnly(task.CreatedAt)
	due := DateOnly(task.DueDate)
	current := DateOnly(today)
	switch {
	case due.Before(start):
		return 100
	case current.Before(start):
		return 0
	case !current.Before(due):
		return 100
	}

	total := DaysBetween(start, due)
	if total == 0 {
		return 100
	}
	elapsed := DaysBetween(start, current)
	return int(clampPercentage(float64(elapsed) / float64(total) * 100))
}
