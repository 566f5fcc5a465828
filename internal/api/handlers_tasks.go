package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/models"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) ListProjectTasks(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	tasks, err := registry.Tasks().GetTasksByDifficulty(profile.ID, projectID, c.Query("difficulty"))
	if err != nil {
		return respondServiceError(c, err)
	}

	today := registry.Today()
	return respondOK(c, "", fiber.Map{"tasks": mapViews(tasks, func(task models.Task) taskView {
		return newTaskView(task, today)
	})})
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input taskInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	dueDate, err := parseDate("Due date", input.DueDate)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	task, err := registry.Tasks().CreateTask(profile.ID, projectID, services.TaskInput{
		Name:       input.Name,
		DueDate:    dueDate,
		Difficulty: input.Difficulty,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondCreated(c, "Task created", fiber.Map{"task": newTaskView(task, registry.Today())})
}

func (handler *Handler) TaskSummary(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	summary, err := handler.registry(c).Summaries().TaskSummary(c.UserContext(), profile.ID, projectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"summary": summary})
}

func (handler *Handler) EditTask(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input taskEditInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	dueDate, err := parseOptionalDate("Due date", input.DueDate)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	task, err := registry.Tasks().EditTask(profile.ID, taskID, services.TaskEdit{Name: input.Name, DueDate: dueDate})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Task updated", fiber.Map{"task": newTaskView(task, registry.Today())})
}

func (handler *Handler) DeleteTask(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.registry(c).Tasks().DeleteTask(profile.ID, taskID); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Task deleted", nil)
}

func (handler *Handler) ToggleTask(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	task, err := registry.Tasks().UpdateTaskStatus(profile.ID, taskID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Task updated", fiber.Map{"task": newTaskView(task, registry.Today())})
}

func (handler *Handler) SetTaskCompletion(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	taskID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input taskCompletionInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	if input.Complete == nil {
		return apiError(c, fiber.StatusBadRequest, "Completion flag is required")
	}

	registry := handler.registry(c)
	task, err := registry.Tasks().SetTaskCompletion(profile.ID, taskID, *input.Complete)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Task updated", fiber.Map{"task": newTaskView(task, registry.Today())})
}
