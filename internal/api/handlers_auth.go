package api

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	profile, err := handler.registry(c).Profiles().CreateProfile(services.RegistrationInput{
		FirstName:       input.FirstName,
		Surname:         input.Surname,
		DateOfBirth:     input.DateOfBirth,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		ThemeName:       input.Theme,
		StayLoggedIn:    input.StayLoggedIn,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &profile, profile.StayLoggedIn); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	return respondCreated(c, "Account created", fiber.Map{"profile": newProfileView(profile)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input credentialsInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	now := handler.now()
	attemptKey := loginAttemptKey(c, input.Email)
	if wait := handler.logins.retryAfter(attemptKey, now); wait > 0 {
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
		return apiError(c, fiber.StatusTooManyRequests, "Too many login attempts, try again later")
	}

	profile, err := handler.registry(c).Profiles().CheckSignIn(input.Email, input.Password)
	if err != nil {
		handler.logins.fail(attemptKey, now)
		return respondServiceError(c, err)
	}
	handler.logins.clear(attemptKey)

	rememberMe := input.RememberMe || profile.StayLoggedIn
	if err := handler.setAuthCookie(c, &profile, rememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	return respondOK(c, "Signed in", fiber.Map{"profile": newProfileView(profile)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return respondOK(c, "Signed out", nil)
}
