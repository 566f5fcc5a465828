package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func listTestIdentities(t *testing.T, app *fiber.App, authCookie string) []identityView {
	t.Helper()

	response, envelope := doJSON(t, app, http.MethodGet, "/api/identities", nil, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected identities status 200, got %d", response.StatusCode)
	}
	identities := []identityView{}
	decodePayload(t, envelope, "identities", &identities)
	return identities
}

func TestSetActiveIdentitySwapsFlag(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := registerTestAccount(t, app, "swap@example.com")

	identities := listTestIdentities(t, app, authCookie)
	var target identityView
	for _, identity := range identities {
		if !identity.IsActive {
			target = identity
			break
		}
	}

	response, envelope := doJSON(t, app, http.MethodPost, "/api/identities/active", map[string]any{"identity_id": target.ID}, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected swap status 200, got %d (%s)", response.StatusCode, envelope.Message)
	}

	active := 0
	for _, identity := range listTestIdentities(t, app, authCookie) {
		if identity.IsActive {
			active++
			if identity.ID != target.ID {
				t.Fatalf("expected identity %d active, got %d", target.ID, identity.ID)
			}
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active identity, got %d", active)
	}

	project := createTestProject(t, app, authCookie, "Scoped project")
	if project.IdentityID != target.ID {
		t.Fatalf("expected new project under the swapped identity, got %d", project.IdentityID)
	}
}

func TestSetActiveIdentityRejectsForeignIdentity(t *testing.T) {
	app, _ := newTestApp(t)
	ownerCookie := registerTestAccount(t, app, "identity-owner@example.com")
	otherCookie := registerTestAccount(t, app, "identity-other@example.com")

	foreign := listTestIdentities(t, app, otherCookie)[0]
	response, _ := doJSON(t, app, http.MethodPost, "/api/identities/active", map[string]any{"identity_id": foreign.ID}, ownerCookie)
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", response.StatusCode)
	}

	response, _ = doJSON(t, app, http.MethodPost, "/api/identities/active", map[string]any{}, ownerCookie)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected missing identity status 400, got %d", response.StatusCode)
	}
}

func TestUpdateIdentityNames(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := registerTestAccount(t, app, "names@example.com")
	identities := listTestIdentities(t, app, authCookie)
	first, second := identities[0], identities[1]

	response, envelope := doJSON(t, app, http.MethodPatch, "/api/identities/names", map[string]any{
		"names": map[string]string{
			fmt.Sprint(first.ID):  "Night owl",
			fmt.Sprint(second.ID): second.Name,
		},
	}, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected rename status 200, got %d (%s)", response.StatusCode, envelope.Message)
	}
	updated := []uint{}
	decodePayload(t, envelope, "updated", &updated)
	if len(updated) != 1 || updated[0] != first.ID {
		t.Fatalf("expected only identity %d updated, got %v", first.ID, updated)
	}

	for _, identity := range listTestIdentities(t, app, authCookie) {
		if identity.ID == first.ID && identity.Name != "Night owl" {
			t.Fatalf("expected custom display name, got %q", identity.Name)
		}
	}

	response, _ = doJSON(t, app, http.MethodPatch, "/api/identities/names", map[string]any{
		"names": map[string]string{"not-a-number": "Broken"},
	}, authCookie)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected invalid id status 400, got %d", response.StatusCode)
	}
}
