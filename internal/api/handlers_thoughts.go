package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListThoughts(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return respondServiceError(c, err)
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return respondServiceError(c, err)
	}

	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	thoughts, err := handler.registry(c).Thoughts().GetOrderedThoughts(profile.ID, identity.ID, year, month)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"thoughts": mapViews(thoughts, newThoughtView)})
}

func (handler *Handler) CreateThought(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var input thoughtInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	identity, err := handler.activeIdentity(c, profile)
	if err != nil {
		return respondServiceError(c, err)
	}

	thought, err := handler.registry(c).Thoughts().CreateThought(profile.ID, identity.ID, input.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondCreated(c, "Thought saved", fiber.Map{"thought": newThoughtView(thought)})
}

func (handler *Handler) EditThought(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	thoughtID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input thoughtInput
	if err := parseBody(c, &input); err != nil {
		return respondServiceError(c, err)
	}

	thought, err := handler.registry(c).Thoughts().EditThought(profile.ID, thoughtID, input.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Thought updated", fiber.Map{"thought": newThoughtView(thought)})
}

func (handler *Handler) DeleteThought(c *fiber.Ctx) error {
	profile, err := requestProfile(c)
	if err != nil {
		return respondServiceError(c, err)
	}
	thoughtID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.registry(c).Thoughts().DeleteThought(profile.ID, thoughtID); err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "Thought deleted", nil)
}
