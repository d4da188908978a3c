package api

import (
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{
		"user":         user,
		"calorie_goal": services.AdjustedCalorieGoal(user.ActivityLevel, user.Gender, user.Goal),
		"water_goal":   services.WaterGoalML,
	})
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	update := services.ProfileUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.profileService.Update(user.ID, update)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to update profile")
	}
	if update.Language != nil {
		handler.setLanguageCookie(c, updated.Language)
	}
	return c.JSON(fiber.Map{
		"user":         updated,
		"calorie_goal": services.AdjustedCalorieGoal(updated.ActivityLevel, updated.Gender, updated.Goal),
		"water_goal":   services.WaterGoalML,
	})
}
