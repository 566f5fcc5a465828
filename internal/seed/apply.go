package seed

import (
	"fmt"

	"github.com/terraincognita07/facets/internal/services"
)

// Report lists the names created by a seeding run.
type Report struct {
	Templates []string
	Themes    []string
}

func (report Report) Empty() bool {
	return len(report.Templates) == 0 && len(report.Themes) == 0
}

// Apply creates the templates and themes whose names are not stored yet.
// Running it twice with the same input creates nothing the second time.
func Apply(registry *services.Registry, templates []TemplateRecord, themes []ThemeRecord) (Report, error) {
	report := Report{}

	storedTemplates, err := registry.Catalog().GetAllTemplates()
	if err != nil {
		return report, fmt.Errorf("load identity templates: %w", err)
	}
	knownTemplates := make(map[string]bool, len(storedTemplates))
	for _, template := range storedTemplates {
		knownTemplates[template.Name] = true
	}
	for _, record := range templates {
		if knownTemplates[record.Name] {
			continue
		}
		created, err := registry.Catalog().CreateTemplate(record.Name, record.Description, record.Image)
		if err != nil {
			return report, fmt.Errorf("seed identity template %q: %w", record.Name, err)
		}
		knownTemplates[created.Name] = true
		report.Templates = append(report.Templates, created.Name)
	}

	storedThemes, err := registry.Themes().GetAll()
	if err != nil {
		return report, fmt.Errorf("load themes: %w", err)
	}
	knownThemes := make(map[string]bool, len(storedThemes))
	for _, theme := range storedThemes {
		knownThemes[theme.Name] = true
	}
	for _, record := range themes {
		if knownThemes[record.Name] {
			continue
		}
		created, err := registry.Themes().CreateTheme(services.ThemeInput{
			Name:         record.Name,
			IsDefault:    record.IsDefault,
			PrimaryHue:   record.PrimaryHue,
			SecondaryHue: record.SecondaryHue,
			TertiaryHue:  record.TertiaryHue,
			NeutralHue:   record.NeutralHue,
			TextHue:      record.TextHue,
		})
		if err != nil {
			return report, fmt.Errorf("seed theme %q: %w", record.Name, err)
		}
		knownThemes[created.Name] = true
		report.Themes = append(report.Themes, created.Name)
	}

	return report, nil
}

// ApplyFiles loads both data sets and applies them. Empty paths select the embedded defaults.
func ApplyFiles(registry *services.Registry, templatesPath string, themesPath string) (Report, error) {
	templates, err := LoadTemplates(templatesPath)
	if err != nil {
		return Report{}, err
	}
	themes, err := LoadThemes(themesPath)
	if err != nil {
		return Report{}, err
	}
	return Apply(registry, templates, themes)
}
