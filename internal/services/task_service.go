package services

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

type TaskInput struct {
	Name       string
	DueDate    *time.Time
	Difficulty string
}

// TaskEdit carries optional changes. Only the name and due date are editable.
type TaskEdit struct {
	Name    *string
	DueDate *time.Time
}

// TaskService recomputes the owning project's status inside every completion-affecting transaction.
type TaskService struct {
	gateway  *db.Gateway
	projects ProjectStatusUpdater
	now      clock
}

func NewTaskService(gateway *db.Gateway, projects ProjectStatusUpdater, now func() time.Time) *TaskService {
	return &TaskService{gateway: gateway, projects: projects, now: now}
}

func (service *TaskService) CreateTask(ownerID uint, projectID uint, input TaskInput) (models.Task, error) {
	if projectID == 0 {
		return models.Task{}, invalid("Project is required")
	}
	if _, err := service.loadOwnedProject(ownerID, projectID); err != nil {
		return models.Task{}, err
	}

	name, err := normalizeName("Task", input.Name)
	if err != nil {
		return models.Task{}, err
	}
	dueDate, err := service.validateDueDate(input.DueDate)
	if err != nil {
		return models.Task{}, err
	}
	difficulty := strings.ToLower(strings.TrimSpace(input.Difficulty))
	if difficulty == "" {
		difficulty = models.DifficultyMedium
	}
	if !models.IsDifficulty(difficulty) {
		return models.Task{}, invalid("Difficulty must be easy, medium or hard")
	}

	task := models.Task{
		ProjectID:  projectID,
		Name:       name,
		DueDate:    dueDate,
		Difficulty: difficulty,
		CreatedAt:  service.now.timestamp(),
	}
	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := tx.Create(&task); err != nil {
			return err
		}
		_, err := service.projects.UpdateProjectStatus(tx, projectID)
		return err
	})
	if err != nil {
		return models.Task{}, storeFailure("creating task", err)
	}
	return task, nil
}

func (service *TaskService) GetTask(ownerID uint, taskID uint) (models.Task, error) {
	return service.loadOwnedTask(service.gateway, ownerID, taskID)
}

func (service *TaskService) EditTask(ownerID uint, taskID uint, edit TaskEdit) (models.Task, error) {
	task, err := service.loadOwnedTask(service.gateway, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}

	columns := make([]string, 0, 2)
	if edit.Name != nil && strings.TrimSpace(*edit.Name) != "" {
		name, err := normalizeName("Task", *edit.Name)
		if err != nil {
			return models.Task{}, err
		}
		if name != task.Name {
			task.Name = name
			columns = append(columns, "name")
		}
	}
	if edit.DueDate != nil {
		dueDate, err := service.validateDueDate(edit.DueDate)
		if err != nil {
			return models.Task{}, err
		}
		if !dueDate.Equal(models.DateOnly(task.DueDate)) {
			task.DueDate = dueDate
			columns = append(columns, "due_date")
		}
	}
	if len(columns) == 0 {
		return models.Task{}, invalid("No changes detected")
	}

	if err := service.gateway.Update(&task, columns...); err != nil {
		return models.Task{}, storeFailure("updating task", err)
	}
	return task, nil
}

func (service *TaskService) DeleteTask(ownerID uint, taskID uint) error {
	task, err := service.loadOwnedTask(service.gateway, ownerID, taskID)
	if err != nil {
		return err
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := tx.Delete(&models.Task{ID: task.ID}); err != nil {
			return err
		}
		_, err := service.projects.UpdateProjectStatus(tx, task.ProjectID)
		return err
	})
	return storeFailure("deleting task", err)
}

// UpdateTaskStatus flips the completion flag.
func (service *TaskService) UpdateTaskStatus(ownerID uint, taskID uint) (models.Task, error) {
	task, err := service.loadOwnedTask(service.gateway, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	return service.writeCompletion(task, !task.IsComplete)
}

// SetTaskCompletion stores an explicit completion flag. Repeating the current value writes nothing.
func (service *TaskService) SetTaskCompletion(ownerID uint, taskID uint, complete bool) (models.Task, error) {
	task, err := service.loadOwnedTask(service.gateway, ownerID, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if task.IsComplete == complete {
		return task, nil
	}
	return service.writeCompletion(task, complete)
}

func (service *TaskService) GetTasksForProject(ownerID uint, projectID uint) ([]models.Task, error) {
	return service.GetTasksByDifficulty(ownerID, projectID, "all")
}

// GetTasksByDifficulty lists the project's tasks by due date. Unknown or "all" keys disable the filter.
func (service *TaskService) GetTasksByDifficulty(ownerID uint, projectID uint, difficultyKey string) ([]models.Task, error) {
	if _, err := service.loadOwnedProject(ownerID, projectID); err != nil {
		return nil, err
	}

	filters := squirrel.Eq{"project_id": projectID}
	if difficulty, ok := filterKey(difficultyKey, models.IsDifficulty); ok {
		filters["difficulty"] = difficulty
	}

	tasks, err := db.FindMany[models.Task](service.gateway, db.Query{
		Filters: filters,
		Order:   "due_date ASC, id ASC",
	})
	if err != nil {
		return nil, storeFailure("loading tasks", err)
	}
	return tasks, nil
}

func (service *TaskService) writeCompletion(task models.Task, complete bool) (models.Task, error) {
	task.IsComplete = complete
	err := service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := tx.Update(&task, "is_complete"); err != nil {
			return err
		}
		status, err := service.projects.UpdateProjectStatus(tx, task.ProjectID)
		if err != nil {
			return err
		}
		if task.Project != nil {
			task.Project.Status = status
		}
		return nil
	})
	if err != nil {
		return models.Task{}, storeFailure("updating task status", err)
	}
	return task, nil
}

func (service *TaskService) validateDueDate(value *time.Time) (time.Time, error) {
	if value == nil {
		return time.Time{}, invalid("Due date is required")
	}
	dueDate := models.DateOnly(*value)
	if dueDate.Before(service.now.today()) {
		return time.Time{}, invalid("Due date cannot be in the past")
	}
	return dueDate, nil
}

func (service *TaskService) loadOwnedProject(ownerID uint, projectID uint) (models.Project, error) {
	project, err := db.FindOne[models.Project](service.gateway, db.By("id", projectID))
	if err != nil {
		return models.Project{}, lookupFailure("Project", err)
	}
	if project.OwnerID != ownerID {
		return models.Project{}, forbidden("Project")
	}
	return project, nil
}

func (service *TaskService) loadOwnedTask(store *db.Gateway, ownerID uint, taskID uint) (models.Task, error) {
	task, err := db.FindOne[models.Task](store, db.By("id", taskID).With("Project"))
	if err != nil {
		return models.Task{}, lookupFailure("Task", err)
	}
	if task.Project == nil || task.Project.OwnerID != ownerID {
		return models.Task{}, forbidden("Task")
	}
	return task, nil
}
