package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

// CatalogService exposes the identity templates every profile is built from.
type CatalogService struct {
	gateway *db.Gateway
	now     clock
}

func NewCatalogService(gateway *db.Gateway, now func() time.Time) *CatalogService {
	return &CatalogService{gateway: gateway, now: now}
}

func (service *CatalogService) GetAllTemplates() ([]models.IdentityTemplate, error) {
	templates, err := db.FindMany[models.IdentityTemplate](service.gateway, db.Query{})
	if err != nil {
		return nil, storeFailure("loading identity templates", err)
	}
	return templates, nil
}

func (service *CatalogService) GetTemplateByName(name string) (models.IdentityTemplate, error) {
	template, err := db.FindOne[models.IdentityTemplate](service.gateway, db.By("name", strings.TrimSpace(name)))
	if err != nil {
		return models.IdentityTemplate{}, lookupFailure("Identity template", err)
	}
	return template, nil
}

func (service *CatalogService) CreateTemplate(name string, description string, image string) (models.IdentityTemplate, error) {
	name, err := requireText("Name", name)
	if err != nil {
		return models.IdentityTemplate{}, err
	}
	description, err = requireText("Description", description)
	if err != nil {
		return models.IdentityTemplate{}, err
	}
	image, err = requireText("Image", image)
	if err != nil {
		return models.IdentityTemplate{}, err
	}

	_, err = service.GetTemplateByName(name)
	switch {
	case err == nil:
		return models.IdentityTemplate{}, invalid("Identity template %q already exists", name)
	case !errors.Is(err, ErrNotFound):
		return models.IdentityTemplate{}, err
	}

	template := models.IdentityTemplate{
		Name:        name,
		Description: description,
		Image:       image,
		CreatedAt:   service.now.timestamp(),
	}
	if err := service.gateway.Create(&template); err != nil {
		return models.IdentityTemplate{}, storeFailure("creating identity template", err)
	}
	return template, nil
}
