package api

import (
	"time"

	"github.com/terraincognita07/facets/internal/models"
)

type templateView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type themeView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	IsDefault    bool   `json:"is_default"`
	PrimaryHue   int    `json:"primary_hue"`
	SecondaryHue int    `json:"secondary_hue"`
	TertiaryHue  int    `json:"tertiary_hue"`
	NeutralHue   int    `json:"neutral_hue"`
	TextHue      int    `json:"text_hue"`
}

type identityView struct {
	ID         uint         `json:"id"`
	Name       string       `json:"name"`
	CustomName string       `json:"custom_name"`
	IsActive   bool         `json:"is_active"`
	Template   templateView `json:"template"`
	CreatedAt  time.Time    `json:"created_at"`
}

type projectView struct {
	ID                       uint       `json:"id"`
	IdentityID               uint       `json:"identity_id"`
	Name                     string     `json:"name"`
	Description              string     `json:"description"`
	Status                   string     `json:"status"`
	IsActive                 bool       `json:"is_active"`
	StartDate                string     `json:"start_date"`
	EndDate                  string     `json:"end_date"`
	IsOverdue                bool       `json:"is_overdue"`
	TimeLeft                 int        `json:"time_left"`
	TimeElapsedPercentage    int        `json:"time_elapsed_percentage"`
	TotalTasks               int        `json:"total_tasks"`
	TasksCompleted           int        `json:"tasks_completed"`
	TasksIncomplete          int        `json:"tasks_incomplete"`
	TasksCompletedPercentage float64    `json:"tasks_completed_percentage"`
	Tasks                    []taskView `json:"tasks,omitempty"`
}

type taskView struct {
	ID                    uint   `json:"id"`
	ProjectID             uint   `json:"project_id"`
	Name                  string `json:"name"`
	DueDate               string `json:"due_date"`
	Difficulty            string `json:"difficulty"`
	IsComplete            bool   `json:"is_complete"`
	TimeLeft              int    `json:"time_left"`
	TimeElapsedPercentage int    `json:"time_elapsed_percentage"`
}

type thoughtView struct {
	ID         uint      `json:"id"`
	IdentityID uint      `json:"identity_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type profileView struct {
	ID           uint       `json:"id"`
	FirstName    string     `json:"first_name"`
	Surname      string     `json:"surname"`
	DateOfBirth  string     `json:"date_of_birth"`
	Email        string     `json:"email"`
	StayLoggedIn bool       `json:"stay_logged_in"`
	ThemeMode    string     `json:"theme_mode"`
	Theme        *themeView `json:"theme"`
}

func newTemplateView(template models.IdentityTemplate) templateView {
	return templateView{
		ID:          template.ID,
		Name:        template.Name,
		Description: template.Description,
		Image:       template.Image,
	}
}

func newThemeView(theme models.Theme) themeView {
	return themeView{
		ID:           theme.ID,
		Name:         theme.Name,
		IsDefault:    theme.IsDefault,
		PrimaryHue:   theme.PrimaryHue,
		SecondaryHue: theme.SecondaryHue,
		TertiaryHue:  theme.TertiaryHue,
		NeutralHue:   theme.NeutralHue,
		TextHue:      theme.TextHue,
	}
}

func newIdentityView(identity models.Identity) identityView {
	return identityView{
		ID:         identity.ID,
		Name:       identity.DisplayName(),
		CustomName: identity.CustomName,
		IsActive:   identity.IsActive,
		Template:   newTemplateView(identity.Template),
		CreatedAt:  identity.CreatedAt,
	}
}

func newProjectView(project models.Project, today time.Time) projectView {
	view := projectView{
		ID:                       project.ID,
		IdentityID:               project.IdentityID,
		Name:                     project.Name,
		Description:              project.Description,
		Status:                   project.Status,
		IsActive:                 project.IsActive,
		StartDate:                project.StartDate.Format(dateLayout),
		EndDate:                  project.EndDate.Format(dateLayout),
		IsOverdue:                project.IsOverdue(today),
		TimeLeft:                 project.TimeLeft(today),
		TimeElapsedPercentage:    project.TimeElapsedPercentage(today),
		TotalTasks:               project.TotalTasks(),
		TasksCompleted:           project.CompletedTasks(),
		TasksIncomplete:          project.TasksIncomplete(),
		TasksCompletedPercentage: project.TasksCompletedPercentage(),
	}
	for _, task := range project.Tasks {
		view.Tasks = append(view.Tasks, newTaskView(task, today))
	}
	return view
}

func newTaskView(task models.Task, today time.Time) taskView {
	return taskView{
		ID:                    task.ID,
		ProjectID:             task.ProjectID,
		Name:                  task.Name,
		DueDate:               task.DueDate.Format(dateLayout),
		Difficulty:            task.Difficulty,
		IsComplete:            task.IsComplete,
		TimeLeft:              task.TimeLeft(today),
		TimeElapsedPercentage: task.TimeElapsedPercentage(today),
	}
}

func newThoughtView(thought models.Thought) thoughtView {
	return thoughtView{
		ID:         thought.ID,
		IdentityID: thought.IdentityID,
		Content:    thought.Content,
		CreatedAt:  thought.CreatedAt,
	}
}

func newProfileView(profile models.Profile) profileView {
	view := profileView{
		ID:           profile.ID,
		FirstName:    profile.FirstName,
		Surname:      profile.Surname,
		DateOfBirth:  profile.DateOfBirth.Format(dateLayout),
		Email:        profile.Email,
		StayLoggedIn: profile.StayLoggedIn,
		ThemeMode:    profile.ThemeMode,
	}
	if profile.Theme != nil {
		theme := newThemeView(*profile.Theme)
		view.Theme = &theme
	}
	return view
}

func mapViews[T any, V any](values []T, convert func(T) V) []V {
	views := make([]V, 0, len(values))
	for _, value := range values {
		views = append(views, convert(value))
	}
	return views
}
