package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListTemplates(c *fiber.Ctx) error {
	templates, err := handler.registry(c).Catalog().GetAllTemplates()
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"templates": mapViews(templates, newTemplateView)})
}

func (handler *Handler) ListThemes(c *fiber.Ctx) error {
	themes, err := handler.registry(c).Themes().GetAll()
	if err != nil {
		return respondServiceError(c, err)
	}
	return respondOK(c, "", fiber.Map{"themes": mapViews(themes, newThemeView)})
}
