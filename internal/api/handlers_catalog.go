package api

import (
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListSupplements(c *fiber.Ctx) error {
	items, err := handler.catalogService.Supplements()
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load supplements")
	}
	return c.JSON(fiber.Map{"supplements": items})
}

func (handler *Handler) ListWorkouts(c *fiber.Ctx) error {
	items, err := handler.catalogService.WorkoutLinks(c.Query("category"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load workouts")
	}
	return c.JSON(fiber.Map{"workouts": items})
}

func (handler *Handler) ListMindfulness(c *fiber.Ctx) error {
	items, err := handler.catalogService.MindfulnessResources(c.Query("kind"), hasPremium(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load mindfulness resources")
	}
	return c.JSON(fiber.Map{"resources": items, "premium": hasPremium(c)})
}

func (handler *Handler) ListNutritionPlans(c *fiber.Ctx) error {
	items, err := handler.catalogService.NutritionPlans(c.Query("goal"), hasPremium(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load nutrition plans")
	}
	return c.JSON(fiber.Map{"plans": items, "premium": hasPremium(c)})
}

func (handler *Handler) CreateSupplement(c *fiber.Ctx) error {
	item := models.Supplement{}
	if err := c.BodyParser(&item); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	created, err := handler.catalogService.CreateSupplement(item)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create supplement")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) CreateWorkout(c *fiber.Ctx) error {
	item := models.WorkoutLink{}
	if err := c.BodyParser(&item); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	created, err := handler.catalogService.CreateWorkoutLink(item)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create workout")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) CreateMindfulness(c *fiber.Ctx) error {
	item := models.MindfulnessResource{}
	if err := c.BodyParser(&item); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	created, err := handler.catalogService.CreateMindfulnessResource(item)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create mindfulness resource")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) CreateNutritionPlan(c *fiber.Ctx) error {
	item := models.NutritionPlan{}
	if err := c.BodyParser(&item); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	created, err := handler.catalogService.CreateNutritionPlan(item)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create nutrition plan")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (handler *Handler) DeleteCatalogItem(remove func(id uint) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "invalid id")
		}
		if err := remove(id); err != nil {
			return handler.respondServiceError(c, err, "failed to delete catalog item")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
