package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/models"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.database.DB()
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "Database unavailable")
	}
	return respondOK(c, "ok", fiber.Map{"status": "ok"})
}

// requestProfile returns the signed-in profile stored by AuthRequired.
func requestProfile(c *fiber.Ctx) (*models.Profile, error) {
	profile, ok := currentProfile(c)
	if !ok {
		return nil, &services.Error{Kind: services.ErrAuthentication, Message: "Authentication required"}
	}
	return profile, nil
}

// activeIdentity resolves the profile's active identity, electing the first one when none is active.
func (handler *Handler) activeIdentity(c *fiber.Ctx, profile *models.Profile) (models.Identity, error) {
	identities := handler.registry(c).Identities()
	identity, err := identities.GetActiveIdentityFor(profile.ID)
	if errors.Is(err, services.ErrNotFound) {
		return identities.SetDefaultIdentity(profile.ID)
	}
	return identity, err
}
