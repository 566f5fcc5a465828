package api

import (
	"net/http"
	"testing"
)

func TestCatalogListsAreKeyed(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := registerTestAccount(t, app, "catalog@example.com")

	response, envelope := doJSON(t, app, http.MethodGet, "/api/catalog/templates", nil, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected templates status 200, got %d", response.StatusCode)
	}
	templates := []templateView{}
	decodePayload(t, envelope, "templates", &templates)
	if len(templates) != 5 {
		t.Fatalf("expected 5 seeded templates, got %d", len(templates))
	}

	response, envelope = doJSON(t, app, http.MethodGet, "/api/themes", nil, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected themes status 200, got %d", response.StatusCode)
	}
	themes := []themeView{}
	decodePayload(t, envelope, "themes", &themes)
	defaults := 0
	for _, theme := range themes {
		if theme.IsDefault {
			defaults++
		}
	}
	if len(themes) == 0 || defaults != 1 {
		t.Fatalf("expected seeded themes with one default, got %#v", themes)
	}
}
