package services

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

// ProjectStatusUpdater recomputes a project's status on the given store without committing.
type ProjectStatusUpdater interface {
	UpdateProjectStatus(store *db.Gateway, projectID uint) (string, error)
}

type ProjectInput struct {
	IdentityID  uint
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectEdit carries optional changes. Nil and blank fields are left untouched.
type ProjectEdit struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// ProjectService keeps at most one active project per identity and derives project status.
type ProjectService struct {
	gateway *db.Gateway
	now     clock
}

func NewProjectService(gateway *db.Gateway, now func() time.Time) *ProjectService {
	return &ProjectService{gateway: gateway, now: now}
}

func (service *ProjectService) CreateProject(ownerID uint, input ProjectInput) (models.Project, error) {
	if ownerID == 0 {
		return models.Project{}, invalid("Owner is required")
	}
	if input.IdentityID == 0 {
		return models.Project{}, invalid("Identity is required")
	}

	identity, err := db.FindOne[models.Identity](service.gateway, db.By("id", input.IdentityID))
	if err != nil {
		return models.Project{}, lookupFailure("Identity", err)
	}
	if identity.ProfileID != ownerID {
		return models.Project{}, forbidden("Identity")
	}

	name, err := normalizeName("Project", input.Name)
	if err != nil {
		return models.Project{}, err
	}
	description, err := normalizeDescription(input.Description)
	if err != nil {
		return models.Project{}, err
	}

	startDate := service.now.today()
	if input.StartDate != nil {
		startDate = models.DateOnly(*input.StartDate)
	}
	endDate := startDate.AddDate(0, 0, models.DefaultProjectDuration)
	if input.EndDate != nil {
		endDate = models.DateOnly(*input.EndDate)
	}
	if endDate.Before(startDate) {
		return models.Project{}, invalid("End date cannot be before the start date")
	}

	project := models.Project{
		OwnerID:     ownerID,
		IdentityID:  identity.ID,
		Name:        name,
		Description: description,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      models.StatusNotStarted,
		Tasks:       []models.Task{},
		CreatedAt:   service.now.timestamp(),
	}
	if err := service.gateway.Create(&project); err != nil {
		return models.Project{}, storeFailure("creating project", err)
	}
	return project, nil
}

func (service *ProjectService) GetProject(ownerID uint, projectID uint) (models.Project, error) {
	project, err := db.FindOne[models.Project](service.gateway, db.By("id", projectID).With("Tasks"))
	if err != nil {
		return models.Project{}, lookupFailure("Project", err)
	}
	if project.OwnerID != ownerID {
		return models.Project{}, forbidden("Project")
	}
	return project, nil
}

func (service *ProjectService) EditProject(ownerID uint, projectID uint, edit ProjectEdit) (models.Project, error) {
	project, err := service.GetProject(ownerID, projectID)
	if err != nil {
		return models.Project{}, err
	}

	columns := make([]string, 0, 4)
	if edit.Name != nil && *edit.Name != "" && *edit.Name != project.Name {
		name, err := normalizeName("Project", *edit.Name)
		if err != nil {
			return models.Project{}, err
		}
		if name != project.Name {
			project.Name = name
			columns = append(columns, "name")
		}
	}
	if edit.Description != nil && *edit.Description != "" && *edit.Description != project.Description {
		description, err := normalizeDescription(*edit.Description)
		if err != nil {
			return models.Project{}, err
		}
		if description != project.Description {
			project.Description = description
			columns = append(columns, "description")
		}
	}
	if edit.StartDate != nil {
		if startDate := models.DateOnly(*edit.StartDate); !startDate.Equal(models.DateOnly(project.StartDate)) {
			project.StartDate = startDate
			columns = append(columns, "start_date")
		}
	}
	if edit.EndDate != nil {
		if endDate := models.DateOnly(*edit.EndDate); !endDate.Equal(models.DateOnly(project.EndDate)) {
			project.EndDate = endDate
			columns = append(columns, "end_date")
		}
	}

	if len(columns) == 0 {
		return models.Project{}, invalid("No changes detected")
	}
	if models.DateOnly(project.EndDate).Before(models.DateOnly(project.StartDate)) {
		return models.Project{}, invalid("End date cannot be before the start date")
	}

	if err := service.gateway.Update(&project, columns...); err != nil {
		return models.Project{}, storeFailure("updating project", err)
	}
	return project, nil
}

// DeleteProject removes the project together with its tasks.
func (service *ProjectService) DeleteProject(ownerID uint, projectID uint) error {
	project, err := service.GetProject(ownerID, projectID)
	if err != nil {
		return err
	}

	err = service.gateway.Transaction(func(tx *db.Gateway) error {
		if _, err := db.DeleteWhere[models.Task](tx, db.By("project_id", project.ID)); err != nil {
			return err
		}
		return tx.Delete(&models.Project{ID: project.ID})
	})
	return storeFailure("deleting project", err)
}

// GetProjectsByStatus lists the identity's projects. Unknown or "all" keys disable the status filter.
func (service *ProjectService) GetProjectsByStatus(ownerID uint, identityID uint, statusKey string) ([]models.Project, error) {
	filters := squirrel.Eq{"owner_id": ownerID, "identity_id": identityID}
	if status, ok := filterKey(statusKey, models.IsStatus); ok {
		filters["status"] = status
	}

	projects, err := db.FindMany[models.Project](service.gateway, db.Query{
		Filters:  filters,
		Preloads: []string{"Tasks"},
		Order:    "end_date ASC, id ASC",
	})
	if err != nil {
		return nil, storeFailure("loading projects", err)
	}
	return projects, nil
}

// UpdateProjectStatus derives the status from task completion counts and stages it on store.
func (service *ProjectService) UpdateProjectStatus(store *db.Gateway, projectID uint) (string, error) {
	project, err := db.FindOne[models.Project](store, db.By("id", projectID))
	if err != nil {
		return "", lookupFailure("Project", err)
	}

	total, err := db.Count[models.Task](store, db.By("project_id", projectID))
	if err != nil {
		return "", storeFailure("counting tasks", err)
	}
	completed, err := db.Count[models.Task](store, db.Query{
		Filters: squirrel.Eq{"project_id": projectID, "is_complete": true},
	})
	if err != nil {
		return "", storeFailure("counting completed tasks", err)
	}

	status := models.DeriveProjectStatus(total, completed)
	if status == project.Status {
		return status, nil
	}
	project.Status = status
	if err := store.Update(&project, "status"); err != nil {
		return "", storeFailure("updating project status", err)
	}
	return status, nil
}

func (service *ProjectService) DeactivateAllProjects(ownerID uint, identityID uint) error {
	err := service.gateway.Transaction(func(tx *db.Gateway) error {
		return deactivateProjects(tx, ownerID, identityID)
	})
	return storeFailure("deactivating projects", err)
}

// SetDefaultProject activates the project with the fewest days remaining, lowest id first on ties.
// It fails with ErrNotFound when the identity has no projects.
func (service *ProjectService) SetDefaultProject(ownerID uint, identityID uint) (*models.Project, error) {
	projects, err := service.GetProjectsByStatus(ownerID, identityID, "all")
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, notFound("Projects")
	}

	today := service.now.today()
	chosen := projects[0]
	for _, project := range projects[1:] {
		left, best := project.TimeLeft(today), chosen.TimeLeft(today)
		if left < best || (left == best && project.ID < chosen.ID) {
			chosen = project
		}
	}

	if err := service.activate(ownerID, identityID, &chosen); err != nil {
		return nil, err
	}
	return &chosen, nil
}

// GetActiveProject returns the active project, electing a default when none is active.
// A nil project with a nil error means the identity has no projects.
func (service *ProjectService) GetActiveProject(ownerID uint, identityID uint) (*models.Project, error) {
	project, err := db.FindOne[models.Project](service.gateway, db.Query{
		Filters:  squirrel.Eq{"owner_id": ownerID, "identity_id": identityID, "is_active": true},
		Preloads: []string{"Tasks"},
	})
	if err == nil {
		return &project, nil
	}
	if !isNotFound(err) {
		return nil, storeFailure("loading active project", err)
	}
	elected, err := service.SetDefaultProject(ownerID, identityID)
	if isNotFound(err) {
		return nil, nil
	}
	return elected, err
}

func (service *ProjectService) SetActiveProject(ownerID uint, identityID uint, projectID uint) (models.Project, error) {
	project, err := service.GetProject(ownerID, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.IdentityID != identityID {
		return models.Project{}, &Error{Kind: ErrForbidden, Message: "Project does not belong to this identity"}
	}

	if err := service.activate(ownerID, identityID, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

func (service *ProjectService) activate(ownerID uint, identityID uint, project *models.Project) error {
	err := service.gateway.Transaction(func(tx *db.Gateway) error {
		if err := deactivateProjects(tx, ownerID, identityID); err != nil {
			return err
		}
		project.IsActive = true
		return tx.Update(project, "is_active")
	})
	if err != nil {
		project.IsActive = false
		return storeFailure("setting active project", err)
	}
	return nil
}

func deactivateProjects(store *db.Gateway, ownerID uint, identityID uint) error {
	_, err := db.UpdateWhere[models.Project](store, db.Query{
		Filters: squirrel.Eq{"owner_id": ownerID, "identity_id": identityID, "is_active": true},
	}, map[string]any{"is_active": false})
	return err
}
