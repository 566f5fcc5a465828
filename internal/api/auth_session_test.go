package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestRegisterCreatesSessionAndIdentities(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := registerTestAccount(t, app, "Ada@Example.com")

	response, envelope := doJSON(t, app, http.MethodGet, "/api/settings", nil, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected settings status 200, got %d", response.StatusCode)
	}
	profile := profileView{}
	decodePayload(t, envelope, "profile", &profile)
	if profile.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", profile.Email)
	}
	if profile.Theme == nil || profile.Theme.Name != "Default" {
		t.Fatalf("expected default theme, got %#v", profile.Theme)
	}
	if strings.Contains(string(envelope.Payload), "password") {
		t.Fatalf("expected payload without password fields, got %s", envelope.Payload)
	}

	_, envelope = doJSON(t, app, http.MethodGet, "/api/identities", nil, authCookie)
	identities := []identityView{}
	decodePayload(t, envelope, "identities", &identities)
	if len(identities) != 5 {
		t.Fatalf("expected one identity per seeded template, got %d", len(identities))
	}
	active := 0
	for _, identity := range identities {
		if identity.IsActive {
			active++
		}
	}
	if active != 1 {
		t.Fatalf("expected exactly one active identity, got %d", active)
	}
}

func TestRegisterDuplicateEmailReturnsBadRequest(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "dup@example.com")

	response, envelope := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"first_name":       "Ada",
		"surname":          "Lovelace",
		"date_of_birth":    "1990-12-10",
		"email":            "DUP@example.com",
		"password":         testAccountPassword,
		"confirm_password": testAccountPassword,
	}, "")
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if envelope.Success {
		t.Fatal("expected success=false in error envelope")
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)

	response, envelope := doJSON(t, app, http.MethodGet, "/api/projects", nil, "")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", response.StatusCode)
	}
	if envelope.Message != "Authentication required" {
		t.Fatalf("unexpected message %q", envelope.Message)
	}

	response, _ = doJSON(t, app, http.MethodGet, "/api/projects", nil, authCookieName+"=forged.token.value")
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected forged cookie to be rejected, got %d", response.StatusCode)
	}
}

func TestLoginSetsCookieAndRememberMeExpiry(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "login@example.com")

	response, envelope := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "login@example.com",
		"password": testAccountPassword,
	}, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d (%s)", response.StatusCode, envelope.Message)
	}
	sessionCookie := responseCookie(response.Cookies(), authCookieName)
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected auth cookie after login")
	}
	if !sessionCookie.Expires.IsZero() {
		t.Fatalf("expected session cookie without expiry, got %s", sessionCookie.Expires)
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("expected HttpOnly auth cookie")
	}

	response, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":       "login@example.com",
		"password":    testAccountPassword,
		"remember_me": true,
	}, "")
	rememberCookie := responseCookie(response.Cookies(), authCookieName)
	if rememberCookie == nil || rememberCookie.Expires.IsZero() {
		t.Fatal("expected persistent cookie for remember me")
	}
	if !rememberCookie.Expires.After(testNow.Add(defaultAuthTokenTTL)) {
		t.Fatalf("expected remember me expiry beyond default ttl, got %s", rememberCookie.Expires)
	}
}

func TestLoginInvalidCredentialsUsesGenericMessage(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "generic@example.com")

	wrongPassword, wrongEnvelope := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "generic@example.com",
		"password": "Wrong-Horse9",
	}, "")
	unknownEmail, unknownEnvelope := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "nobody@example.com",
		"password": testAccountPassword,
	}, "")

	if wrongPassword.StatusCode != http.StatusUnauthorized || unknownEmail.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both, got %d and %d", wrongPassword.StatusCode, unknownEmail.StatusCode)
	}
	if wrongEnvelope.Message != unknownEnvelope.Message {
		t.Fatalf("expected identical messages, got %q and %q", wrongEnvelope.Message, unknownEnvelope.Message)
	}
}

func TestLoginRateLimitedAfterRepeatedFailures(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "limited@example.com")

	for attempt := 0; attempt < loginAttemptLimit; attempt++ {
		response, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
			"email":    "limited@example.com",
			"password": "Wrong-Horse9",
		}, "")
		if response.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", attempt+1, response.StatusCode)
		}
	}

	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "limited@example.com",
		"password": testAccountPassword,
	}, "")
	if response.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", response.StatusCode)
	}
	if retry := response.Header.Get("Retry-After"); retry != "900" {
		t.Fatalf("expected Retry-After 900, got %q", retry)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	app, _ := newTestApp(t)
	authCookie := registerTestAccount(t, app, "logout@example.com")

	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/logout", nil, authCookie)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected logout status 200, got %d", response.StatusCode)
	}
	cleared := responseCookie(response.Cookies(), authCookieName)
	if cleared == nil || cleared.Value != "" {
		t.Fatal("expected cleared auth cookie")
	}
}

func TestCookieSecureOption(t *testing.T) {
	app, _ := newTestApp(t, WithCookieSecure(true))

	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"first_name":       "Ada",
		"surname":          "Lovelace",
		"date_of_birth":    "1990-12-10",
		"email":            "secure@example.com",
		"password":         testAccountPassword,
		"confirm_password": testAccountPassword,
	}, "")
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || !cookie.Secure {
		t.Fatal("expected secure auth cookie")
	}
}

func TestHealthReportsOK(t *testing.T) {
	app, _ := newTestApp(t)

	response, envelope := doJSON(t, app, http.MethodGet, "/healthz", nil, "")
	if response.StatusCode != http.StatusOK || !envelope.Success {
		t.Fatalf("expected healthy response, got %d", response.StatusCode)
	}
}
