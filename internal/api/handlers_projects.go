package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/models"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) ListProjects(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	projects, err := registry.Projects().GetProjectsByStatus(profile.ID, identity.ID, c.Query("status"))
	if err != nil {
		return respondServiceError(c, err)
	}

	today := registry.Today()
	return respondOK(c, "", fiber.Map{"projects": mapViews(projects, func(project models.Project) projectView {
		return newProjectView(project, today)
	})})
}

func (handler *Handler) CreateProject(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input projectInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	startDate, err := parseDate("Start date", input.StartDate)
	if err != nil {
		return respondServiceError(c, err)
	}
	endDate, err := parseDate("End date", input.EndDate)
	if err != nil {
		return respondServiceError(c, err)
	}

	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	project, err := registry.Projects().CreateProject(profile.ID, services.ProjectInput{
		IdentityID:  identity.ID,
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondCreated(c, "Project created", fiber.Map{"project": newProjectView(project, registry.Today())})
}

func (handler *Handler) GetActiveProject(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	project, err := registry.Projects().GetActiveProject(profile.ID, identity.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if project == nil {
		return respondOK(c, "No projects yet", fiber.Map{"active_project": nil})
	}
	return respondOK(c, "", fiber.Map{"active_project": newProjectView(*project, registry.Today())})
}

func (handler *Handler) SetActiveProject(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input activeProjectInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	if input.ProjectID == 0 {
		return apiError(c, fiber.StatusBadRequest, "Project is required")
	}

	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	project, err := registry.Projects().SetActiveProject(profile.ID, identity.ID, input.ProjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Active project updated", fiber.Map{"active_project": newProjectView(project, registry.Today())})
}

func (handler *Handler) ProjectSummary(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	summary, err := handler.registry(c).Summaries().ProjectSummary(c.UserContext(), profile.ID, identity.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"summary": summary})
}

func (handler *Handler) EditProject(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input projectEditInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	startDate, err := parseOptionalDate("Start date", input.StartDate)
	if err != nil {
		return respondServiceError(c, err)
	}
	endDate, err := parseOptionalDate("End date", input.EndDate)
	if err != nil {
		return respondServiceError(c, err)
	}

	registry := handler.registry(c)
	project, err := registry.Projects().EditProject(profile.ID, projectID, services.ProjectEdit{
		Name:        input.Name,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Project updated", fiber.Map{"project": newProjectView(project, registry.Today())})
}

func (handler *Handler) DeleteProject(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.registry(c).Projects().DeleteProject(profile.ID, projectID); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Project deleted", nil)
}
