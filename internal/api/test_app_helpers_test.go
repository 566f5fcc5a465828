package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/db"
	"github.com/terraincognita07/facets/internal/seed"
	"github.com/terraincognita07/facets/internal/services"
	"gorm.io/gorm"
)

const testAccountPassword = "Correct-Horse9"

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

type testEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

func newTestApp(t *testing.T, options ...HandlerOption) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "facets-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	registry := services.NewRegistry(db.NewGateway(database, db.NewRequestCache()))
	if _, err := seed.ApplyFiles(registry, "", ""); err != nil {
		t.Fatalf("seed reference data: %v", err)
	}

	options = append([]HandlerOption{WithClock(func() time.Time { return testNow })}, options...)
	handler, err := NewHandler(database, "test-secret-key-with-enough-length", options...)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, authCookie string) (*http.Response, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	envelope := testEnvelope{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode envelope %q: %v", string(raw), err)
	}
	return response, envelope
}

func decodePayload(t *testing.T, envelope testEnvelope, key string, target any) {
	t.Helper()

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(envelope.Payload, &fields); err != nil {
		t.Fatalf("decode payload %q: %v", string(envelope.Payload), err)
	}
	raw, ok := fields[key]
	if !ok {
		t.Fatalf("expected payload key %q, got %s", key, envelope.Payload)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode payload key %q from %s: %v", key, raw, err)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerTestAccount(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	response, envelope := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"first_name":       "Ada",
		"surname":          "Lovelace",
		"date_of_birth":    "1990-12-10",
		"email":            email,
		"password":         testAccountPassword,
		"confirm_password": testAccountPassword,
	}, "")
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d (%s)", response.StatusCode, envelope.Message)
	}

	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in register response")
	}
	return cookie.Name + "=" + cookie.Value
}

func createTestProject(t *testing.T, app *fiber.App, authCookie string, name string) projectView {
	t.Helper()

	response, envelope := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"name": name}, authCookie)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected project status 201, got %d (%s)", response.StatusCode, envelope.Message)
	}
	project := projectView{}
	decodePayload(t, envelope, "project", &project)
	return project
}
