package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/models"
)

const maxHue = 360

type ThemeInput struct {
	Name         string
	IsDefault    bool
	PrimaryHue   int
	SecondaryHue int
	TertiaryHue  int
	NeutralHue   int
	TextHue      int
}

type ThemeService struct {
	gateway *db.Gateway
	now     clock
}

func NewThemeService(gateway *db.Gateway, now func() time.Time) *ThemeService {
	return &ThemeService{gateway: gateway, now: now}
}

func (service *ThemeService) GetAll() ([]models.Theme, error) {
	themes, err := db.FindMany[models.Theme](service.gateway, db.Query{Order: "name ASC"})
	if err != nil {
		return nil, storeFailure("loading themes", err)
	}
	return themes, nil
}

func (service *ThemeService) GetByID(themeID uint) (models.Theme, error) {
	theme, err := db.FindOne[models.Theme](service.gateway, db.By("id", themeID))
	if err != nil {
		return models.Theme{}, lookupFailure("Theme", err)
	}
	return theme, nil
}

func (service *ThemeService) GetByName(name string) (models.Theme, error) {
	theme, err := db.FindOne[models.Theme](service.gateway, db.By("name", strings.TrimSpace(name)))
	if err != nil {
		return models.Theme{}, lookupFailure("Theme", err)
	}
	return theme, nil
}

// GetDefault prefers the flagged default theme and falls back to the oldest one.
func (service *ThemeService) GetDefault() (models.Theme, error) {
	theme, err := db.FindOne[models.Theme](service.gateway, db.By("is_default", true))
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return models.Theme{}, storeFailure("loading default theme", err)
	}

	theme, err = db.FindOne[models.Theme](service.gateway, db.Query{})
	if err != nil {
		return models.Theme{}, lookupFailure("Theme", err)
	}
	return theme, nil
}

func (service *ThemeService) CreateTheme(input ThemeInput) (models.Theme, error) {
	name, err := requireText("Theme name", input.Name)
	if err != nil {
		return models.Theme{}, err
	}
	for _, hue := range []int{input.PrimaryHue, input.SecondaryHue, input.TertiaryHue, input.NeutralHue, input.TextHue} {
		if hue < 0 || hue > maxHue {
			return models.Theme{}, invalid("Hue values must be between 0 and %d", maxHue)
		}
	}

	existing, err := db.Count[models.Theme](service.gateway, db.Query{Filters: squirrel.Eq{"name": name}})
	if err != nil {
		return models.Theme{}, storeFailure("checking theme name", err)
	}
	if existing > 0 {
		return models.Theme{}, invalid("Theme %q already exists", name)
	}

	theme := models.Theme{
		Name:         name,
		IsDefault:    input.IsDefault,
		PrimaryHue:   input.PrimaryHue,
		SecondaryHue: input.SecondaryHue,
		TertiaryHue:  input.TertiaryHue,
		NeutralHue:   input.NeutralHue,
		TextHue:      input.TextHue,
		CreatedAt:    service.now.timestamp(),
	}
	if err := service.gateway.Create(&theme); err != nil {
		return models.Theme{}, storeFailure("creating theme", err)
	}
	return theme, nil
}
