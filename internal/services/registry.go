package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/facets/internal/db"
)

var errSummaryUnavailable = errors.New("summary reader unavailable")

// Registry wires the managers for one unit of work around a shared gateway.
type Registry struct {
	gateway *db.Gateway

	now     func() time.Time
	policy  PasswordPolicy
	updater ProjectStatusUpdater
	reader  SummaryReader

	catalog    *CatalogService
	themes     *ThemeService
	identities *IdentityService
	projects   *ProjectService
	tasks      *TaskService
	thoughts   *ThoughtService
	profiles   *ProfileService
	summaries  *SummaryService
}

type RegistryOption func(*Registry)

func WithClock(now func() time.Time) RegistryOption {
	return func(registry *Registry) {
		if now != nil {
			registry.now = now
		}
	}
}

func WithPasswordPolicy(policy PasswordPolicy) RegistryOption {
	return func(registry *Registry) {
		registry.policy = policy
	}
}

// WithStatusUpdater replaces the project status recomputation used by task mutations.
func WithStatusUpdater(updater ProjectStatusUpdater) RegistryOption {
	return func(registry *Registry) {
		registry.updater = updater
	}
}

func WithSummaryReader(reader SummaryReader) RegistryOption {
	return func(registry *Registry) {
		registry.reader = reader
	}
}

func NewRegistry(gateway *db.Gateway, options ...RegistryOption) *Registry {
	registry := &Registry{
		gateway: gateway,
		now:     time.Now,
		policy:  DefaultPasswordPolicy(),
	}
	for _, option := range options {
		option(registry)
	}
	if registry.reader == nil {
		if sqlDB, err := gateway.DB().DB(); err == nil {
			registry.reader = db.NewSummaryRepository(sqlDB)
		}
	}

	registry.catalog = NewCatalogService(gateway, registry.now)
	registry.themes = NewThemeService(gateway, registry.now)
	registry.identities = NewIdentityService(gateway, registry.now)
	registry.projects = NewProjectService(gateway, registry.now)
	if registry.updater == nil {
		registry.updater = registry.projects
	}
	registry.tasks = NewTaskService(gateway, registry.updater, registry.now)
	registry.thoughts = NewThoughtService(gateway, registry.now)
	registry.profiles = NewProfileService(gateway, registry.identities, registry.themes, registry.policy, registry.now)
	registry.summaries = NewSummaryService(registry.reader, registry.projects)
	return registry
}

func (registry *Registry) Gateway() *db.Gateway {
	return registry.gateway
}

func (registry *Registry) Catalog() *CatalogService {
	return registry.catalog
}

func (registry *Registry) Themes() *ThemeService {
	return registry.themes
}

func (registry *Registry) Identities() *IdentityService {
	return registry.identities
}

func (registry *Registry) Projects() *ProjectService {
	return registry.projects
}

func (registry *Registry) Tasks() *TaskService {
	return registry.tasks
}

func (registry *Registry) Thoughts() *ThoughtService {
	return registry.thoughts
}

func (registry *Registry) Profiles() *ProfileService {
	return registry.profiles
}

func (registry *Registry) Summaries() *SummaryService {
	return registry.summaries
}

// Today reports the current calendar day as seen by the registry's clock.
func (registry *Registry) Today() time.Time {
	return clock(registry.now).today()
}
