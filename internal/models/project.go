package models

import "time"

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

const (
	MinNameLength          = 5
	MaxNameLength          = 100
	MaxDescriptionLength   = 500
	DefaultProjectDuration = 30
)

type Project struct {
	ID          uint   `gorm:"primaryKey"`
	OwnerID     uint   `gorm:"not null;index"`
	IdentityID  uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string
	IsActive    bool      `gorm:"not null;default:false"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	Status      string    `gorm:"not null;default:not_started"`
	Tasks       []Task    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"not null"`
}

func IsStatus(value string) bool {
	switch value {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// DeriveProjectStatus maps task completion counts onto a project status.
func DeriveProjectStatus(totalTasks int64, completedTasks int64) string {
	switch {
	case totalTasks == 0:
		return StatusNotStarted
	case completedTasks >= totalTasks:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

func (project Project) IsOverdue(today time.Time) bool {
	return project.Status != StatusCompleted && DateOnly(project.EndDate).Before(DateOnly(today))
}

func (project Project) TimeLeft(today time.Time) int {
	if project.Status == StatusCompleted {
		return 0
	}
	days := DaysBetween(today, project.EndDate)
	if days < 0 {
		return 0
	}
	return days
}

func (project Project) TimeElapsedPercentage(today time.Time) int {
	if project.Status == StatusCompleted {
		return 100
	}
	if DateOnly(project.StartDate).After(DateOnly(today)) {
		return 0
	}

	total := DaysBetween(project.StartDate, project.EndDate)
	if total == 0 {
		return 100
	}
	elapsed := DaysBetween(project.StartDate, today)
	return int(clampPercentage(float64(elapsed) / float64(total) * 100))
}

func (project Project) TotalTasks() int {
	return len(project.Tasks)
}

func (project Project) CompletedTasks() int {
	completed := 0
	for _, task := range project.Tasks {
		if task.IsComplete {
			completed++
		}
	}
	return completed
}

func (project Project) TasksCompletedPercentage() float64 {
	if project.Status == StatusCompleted {
		return 100
	}
	if len(project.Tasks) == 0 {
		return 0
	}
	return clampPercentage(float64(project.CompletedTasks()) / float64(len(project.Tasks)) * 100)
}

func (project Project) TasksIncomplete() int {
	if project.Status == StatusCompleted {
		return 0
	}
	return len(project.Tasks) - project.CompletedTasks()
}
