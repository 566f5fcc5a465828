package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/facets/internal/services"
)

// envelope is the body of every API response. Results live under named payload keys.
type envelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Payload fiber.Map `json:"payload"`
}

func respondOK(c *fiber.Ctx, message string, payload fiber.Map) error {
	return respond(c, fiber.StatusOK, message, payload)
}

func respondCreated(c *fiber.Ctx, message string, payload fiber.Map) error {
	return respond(c, fiber.StatusCreated, message, payload)
}

func respond(c *fiber.Ctx, status int, message string, payload fiber.Map) error {
	if payload == nil {
		payload = fiber.Map{}
	}
	return c.Status(status).JSON(envelope{Success: true, Message: message, Payload: payload})
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Success: false, Message: message, Payload: fiber.Map{}})
}

// respondServiceError maps a service failure to its HTTP status. Store and integrity
// failures are logged once with the request line and the underlying cause.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError || status == fiber.StatusConflict {
		cause := err
		var serviceErr *services.Error
		if errors.As(err, &serviceErr) && serviceErr.Err != nil {
			cause = serviceErr.Err
		}
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), cause)
	}
	return apiError(c, status, services.Message(err))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrAuthentication):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrIntegrity):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
