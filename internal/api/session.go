package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/facets/internal/models"
)

const (
	authCookieName    = "facets_auth"
	contextProfileKey = "current_profile"
)

type authClaims struct {
	ProfileID uint `json:"pid"`
	jwt.RegisteredClaims
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, profile *models.Profile, rememberMe bool) error {
	tokenTTL := defaultAuthTokenTTL
	if rememberMe {
		tokenTTL = rememberAuthTokenTTL
	}

	token, err := handler.buildToken(profile, tokenTTL)
	if err != nil {
		return err
	}

	cookie := &fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	}
	if rememberMe {
		cookie.Expires = handler.now().Add(tokenTTL)
	}
	c.Cookie(cookie)
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) buildToken(profile *models.Profile, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := handler.now()

	claims := authClaims{
		ProfileID: profile.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(profile.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.Profile, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return nil, errors.New("missing auth cookie")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return nil, errors.New("token expired")
	}

	profile, err := handler.registry(c).Profiles().GetProfileByID(claims.ProfileID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AuthRequired rejects requests without a valid session cookie and stores the signed-in profile.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	profile, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required")
	}

	c.Locals(contextProfileKey, profile)
	return c.Next()
}

func currentProfile(c *fiber.Ctx) (*models.Profile, bool) {
	profile, ok := c.Locals(contextProfileKey).(*models.Profile)
	return profile, ok && profile != nil
}
