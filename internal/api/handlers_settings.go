package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"profile": newProfileView(*profile)})
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input settingsInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	updated, err := handler.registry(c).Profiles().UpdateSettings(profile.ID, services.SettingsUpdate{
		ThemeName:    input.Theme,
		ThemeMode:    input.ThemeMode,
		StayLoggedIn: input.StayLoggedIn,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if input.StayLoggedIn != nil {
		if err := handler.setAuthCookie(c, &updated, updated.StayLoggedIn); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "Failed to refresh session")
		}
	}
	return respondOK(c, "Settings updated", fiber.Map{"profile": newProfileView(updated)})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input changePasswordInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	err = handler.registry(c).Profiles().ChangePassword(profile.ID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Password changed", nil)
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input deleteAccountInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.registry(c).Profiles().DeleteAccount(profile.ID, input.Password); err != nil {
		return respondServiceError(c, err)
	}
	handler.clearAuthCookie(c)
	return respondOK(c, "Account deleted", nil)
}
