package services

import (
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/facets/internal/models"
)

func normalizeName(field string, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(name)
	if length < models.MinNameLength || length > models.MaxNameLength {
		return "", invalid("%s name must be between %d and %d characters", field, models.MinNameLength, models.MaxNameLength)
	}
	return name, nil
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > models.MaxDescriptionLength {
		return "", invalid("Description must be at most %d characters", models.MaxDescriptionLength)
	}
	return description, nil
}

func requireText(field string, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", invalid("%s is required", field)
	}
	return value, nil
}

// filterKey reports whether key selects a concrete value. "all", blank and
// unrecognized keys disable the filter.
func filterKey(key string, valid func(string) bool) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	if normalized == "" || normalized == "all" || !valid(normalized) {
		return "", false
	}
	return normalized, true
}
