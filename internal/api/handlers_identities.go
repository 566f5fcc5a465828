package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) ListIdentities(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	identities, err := handler.registry(c).Identities().ListIdentities(profile.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"identities": mapViews(identities, newIdentityView)})
}

func (handler *Handler) GetActiveIdentity(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"active_identity": newIdentityView(identity)})
}

func (handler *Handler) SetActiveIdentity(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input activeIdentityInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}
	if input.IdentityID == 0 {
		return apiError(c, fiber.StatusBadRequest, "Identity is required")
	}

	identities := handler.registry(c).Identities()
	if _, err := handler.activeIdentity(c, profile); err != nil {
		return respondServiceError(c, err)
	}
	swap, err := identities.SwapActiveIdentities(profile.ID, 0, input.IdentityID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Active identity updated", fiber.Map{
		"previous": newIdentityView(swap.Previous),
		"current":  newIdentityView(swap.Current),
	})
}

func (handler *Handler) UpdateIdentityNames(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input identityNamesInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	names := make(map[uint]string, len(input.Names))
	for rawID, name := range input.Names {
		identityID, err := strconv.ParseUint(strings.TrimSpace(rawID), 10, 64)
		if err != nil || identityID == 0 {
			return respondServiceError(c, &services.Error{Kind: services.ErrValidation, Message: "Invalid identity id " + rawID})
		}
		names[uint(identityID)] = name
	}

	updated, err := handler.registry(c).Identities().UpdateCustomNames(profile.ID, names)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Identity names updated", fiber.Map{"updated": updated})
}
