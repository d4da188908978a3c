package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

func (handler *Handler) SetLanguage(c *fiber.Ctx) error {
	language := c.Params("lang")
	if !handler.i18n.IsSupported(language) {
		return apiError(c, fiber.StatusBadRequest, "unsupported language")
	}
	language = handler.i18n.NormalizeLanguage(language)
	handler.setLanguageCookie(c, language)
	return c.JSON(fiber.Map{"language": language})
}
