package api

import (
	"strconv"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type insightViewedInput struct {
	Viewed *bool `json:"viewed"`
}

func (handler *Handler) ListInsights(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > defaultInsightsLimit {
		limit = defaultInsightsLimit
	}

	insights, err := handler.insightService.List(user.ID, queryBool(c, "unviewed"), limit)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load insights")
	}
	return c.JSON(fiber.Map{"insights": insights})
}

func (handler *Handler) GenerateInsights(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}

	insights, err := handler.insightService.GenerateForDay(*user, day, handler.currentLanguage(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to generate insights")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"date":     services.FormatDay(day),
		"insights": insights,
	})
}

func (handler *Handler) UpdateInsight(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	insightID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	input := insightViewedInput{}
	if err := c.BodyParser(&input); err != nil || input.Viewed == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.insightService.SetViewed(user.ID, insightID, *input.Viewed); err != nil {
		return handler.respondServiceError(c, err, "failed to update insight")
	}
	return c.JSON(fiber.Map{"ok": true, "viewed": *input.Viewed})
}
