// Package seed loads reference data (identity templates and themes) and
// stores the records that are not present yet.
package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

const (
	defaultTemplatesFile = "defaults/identities.yaml"
	defaultThemesFile    = "defaults/themes.yaml"
)

type TemplateRecord struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

type ThemeRecord struct {
	Name         string `yaml:"name" json:"name"`
	IsDefault    bool   `yaml:"is_default" json:"is_default"`
	PrimaryHue   int    `yaml:"primary_hue" json:"primary_hue"`
	SecondaryHue int    `yaml:"secondary_hue" json:"secondary_hue"`
	TertiaryHue  int    `yaml:"tertiary_hue" json:"tertiary_hue"`
	NeutralHue   int    `yaml:"neutral_hue" json:"neutral_hue"`
	TextHue      int    `yaml:"text_hue" json:"text_hue"`
}

// LoadTemplates reads identity templates from path, or the embedded defaults when path is empty.
func LoadTemplates(path string) ([]TemplateRecord, error) {
	var records []TemplateRecord
	if err := load(path, defaultTemplatesFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadThemes reads themes from path, or the embedded defaults when path is empty.
func LoadThemes(path string) ([]ThemeRecord, error) {
	var records []ThemeRecord
	if err := load(path, defaultThemesFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func load(path string, fallback string, target any) error {
	if strings.TrimSpace(path) == "" {
		data, err := defaults.ReadFile(fallback)
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", fallback, err)
		}
		return Decode(fallback, data, target)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := Decode(path, data, target); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Decode picks the format from the file extension. JSON files may carry comments and trailing commas.
func Decode(name string, data []byte, target any) error {
	switch extension := strings.ToLower(filepath.Ext(name)); extension {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), target); err != nil {
			return fmt.Errorf("parse json: %w", err)
		}
	default:
		return fmt.Errorf("unsupported seed file extension %q", extension)
	}
	return nil
}
