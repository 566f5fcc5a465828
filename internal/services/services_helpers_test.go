package services

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

const testPassword = "Str0ng!Pass"

type testClock struct {
	current time.Time
}

func (clock *testClock) Now() time.Time {
	return clock.current
}

func newTestClock() *testClock {
	return &testClock{current: time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)}
}

func newTestRegistry(t *testing.T, clock *testClock, options ...RegistryOption) *Registry {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "facets-services.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	options = append([]RegistryOption{WithClock(clock.Now)}, options...)
	return NewRegistry(db.NewGateway(database, db.NewRequestCache()), options...)
}

func seedTemplates(t *testing.T, registry *Registry, names ...string) []models.IdentityTemplate {
	t.Helper()

	templates := make([]models.IdentityTemplate, 0, len(names))
	for _, name := range names {
		template, err := registry.Catalog().CreateTemplate(name, name+" description", name+".png")
		if err != nil {
			t.Fatalf("create template %s: %v", name, err)
		}
		templates = append(templates, template)
	}
	return templates
}

func registerProfile(t *testing.T, registry *Registry, email string) models.Profile {
	t.Helper()

	profile, err := registry.Profiles().CreateProfile(RegistrationInput{
		FirstName:       "Ada",
		Surname:         "Lovelace",
		DateOfBirth:     "1990-03-04",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	if err != nil {
		t.Fatalf("create profile %s: %v", email, err)
	}
	return profile
}

// newWorkspace registers a profile over three templates and returns its active identity.
func newWorkspace(t *testing.T, registry *Registry, email string) (models.Profile, models.Identity) {
	t.Helper()

	if templates, err := registry.Catalog().GetAllTemplates(); err != nil || len(templates) == 0 {
		seedTemplates(t, registry, "Scholar", "Athlete", "Creator")
	}
	profile := registerProfile(t, registry, email)
	identity, err := registry.Identities().GetActiveIdentityFor(profile.ID)
	if err != nil {
		t.Fatalf("load active identity: %v", err)
	}
	return profile, identity
}

func createProject(t *testing.T, registry *Registry, ownerID uint, identityID uint, name string) models.Project {
	t.Helper()

	project, err := registry.Projects().CreateProject(ownerID, ProjectInput{IdentityID: identityID, Name: name})
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func createTask(t *testing.T, registry *Registry, ownerID uint, projectID uint, name string) models.Task {
	t.Helper()

	due := registry.Today().AddDate(0, 0, 7)
	task, err := registry.Tasks().CreateTask(ownerID, projectID, TaskInput{Name: name, DueDate: &due})
	if err != nil {
		t.Fatalf("create task %s: %v", name, err)
	}
	return task
}

func reloadProject(t *testing.T, registry *Registry, ownerID uint, projectID uint) models.Project {
	t.Helper()

	project, err := registry.Projects().GetProject(ownerID, projectID)
	if err != nil {
		t.Fatalf("reload project %d: %v", projectID, err)
	}
	return project
}

func countActiveIdentities(t *testing.T, registry *Registry, profileID uint) int64 {
	t.Helper()

	total, err := db.Count[models.Identity](registry.Gateway(), db.Query{
		Filters: squirrel.Eq{"profile_id": profileID, "is_active": true},
	})
	if err != nil {
		t.Fatalf("count active identities: %v", err)
	}
	return total
}

func assertKind(t *testing.T, err error, kind error) {
	t.Helper()

	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func dateOf(year int, month time.Month, day int) *time.Time {
	value := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &value
}

func stringPointer(value string) *string {
	return &value
}
