package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/facets/internal/services"
)

const minSecretKeyLength = 32

var placeholderSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, placeholder := placeholderSecrets[strings.ToLower(secret)]; placeholder {
		return "", errors.New("SECRET_KEY must not use the example placeholder")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func resolveInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", key, raw)
	}
	return value, nil
}

func resolvePasswordPolicy() (services.PasswordPolicy, error) {
	policy := services.DefaultPasswordPolicy()

	var err error
	if policy.MinLength, err = resolveInt("PASSWORD_MIN_LENGTH", policy.MinLength); err != nil {
		return services.PasswordPolicy{}, err
	}
	if policy.MaxLength, err = resolveInt("PASSWORD_MAX_LENGTH", policy.MaxLength); err != nil {
		return services.PasswordPolicy{}, err
	}
	if policy.RequireUpper, err = resolveBool("PASSWORD_REQUIRE_UPPER", policy.RequireUpper); err != nil {
		return services.PasswordPolicy{}, err
	}
	if policy.RequireSymbol, err = resolveBool("PASSWORD_REQUIRE_SYMBOL", policy.RequireSymbol); err != nil {
		return services.PasswordPolicy{}, err
	}
	if policy.MaxLength < policy.MinLength {
		return services.PasswordPolicy{}, errors.New("PASSWORD_MAX_LENGTH must not be below PASSWORD_MIN_LENGTH")
	}
	return policy, nil
}
