package services

import "testing"

func TestThemeDefaultSelection(t *testing.T) {
	registry := newTestRegistry(t, newTestClock())

	_, err := registry.Themes().GetDefault()
	assertKind(t, err, ErrNotFound)

	first, err := registry.Themes().CreateTheme(ThemeInput{Name: "Sunrise", PrimaryHue: 30})
	if err != nil {
		t.Fatalf("create theme: %v", err)
	}
	fallback, err := registry.Themes().GetDefault()
	if err != nil {
		t.Fatalf("get fallback theme: %v", err)
	}
	if fallback.ID != first.ID {
		t.Fatalf("expected oldest theme as fallback, got %+v", fallback)
	}

	flagged, err := registry.Themes().CreateTheme(ThemeInput{Name: "Midnight", IsDefault: true, PrimaryHue: 240})
	if err != nil {
		t.Fatalf("create default theme: %v", err)
	}
	chosen, err := registry.Themes().GetDefault()
	if err != nil {
		t.Fatalf("get default theme: %v", err)
	}
	if chosen.ID != flagged.ID {
		t.Fatalf("expected flagged theme, got %+v", chosen)
	}

	themes, err := registry.Themes().GetAll()
	if err != nil {
		t.Fatalf("list themes: %v", err)
	}
	if len(themes) != 2 || themes[0].Name != "Midnight" {
		t.Fatalf("expected themes ordered by name, got %+v", themes)
	}
}

func TestCreateThemeValidation(t *testing.T) {
	registry := newTestRegistry(t, newTestClock())

	_, err := registry.Themes().CreateTheme(ThemeInput{Name: "Overflow", PrimaryHue: 361})
	assertKind(t, err, ErrValidation)
	_, err = registry.Themes().CreateTheme(ThemeInput{Name: "Negative", TextHue: -1})
	assertKind(t, err, ErrValidation)
	_, err = registry.Themes().CreateTheme(ThemeInput{Name: ""})
	assertKind(t, err, ErrValidation)

	if _, err := registry.Themes().CreateTheme(ThemeInput{Name: "Edge", PrimaryHue: 360}); err != nil {
		t.Fatalf("expected hue 360 to be accepted, got %v", err)
	}
	_, err = registry.Themes().CreateTheme(ThemeInput{Name: "Edge"})
	assertKind(t, err, ErrValidation)

	_, err = registry.Themes().GetByID(9999)
	assertKind(t, err, ErrNotFound)
}
