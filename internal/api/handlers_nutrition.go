package api

import (
	"strconv"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type waterInput struct {
	AmountML int    `json:"amount_ml"`
	Date     string `json:"date"`
}

type mealRequest struct {
	services.MealInput
	Date string `json:"date"`
}

func (handler *Handler) SearchFoods(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	limit, _ := strconv.Atoi(c.Query("limit"))

	foods, err := handler.foodService.Search(user.ID, c.Query("q"), limit)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to search foods")
	}
	return c.JSON(fiber.Map{"foods": foods})
}

func (handler *Handler) GetFood(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	foodID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	food, err := handler.foodService.Get(user.ID, foodID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load food")
	}
	return c.JSON(food)
}

func (handler *Handler) CreateFood(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := services.FoodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	food, err := handler.foodService.Create(*user, input)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to create food")
	}
	return c.Status(fiber.StatusCreated).JSON(food)
}

func (handler *Handler) DeleteFood(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	foodID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := handler.foodService.Delete(*user, foodID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete food")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ListMeals(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	entries, err := handler.mealService.ListForDay(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load meals")
	}
	return c.JSON(fiber.Map{
		"date":    services.FormatDay(day),
		"entries": entries,
		"totals":  services.AggregateDailyTotals(entries),
	})
}

func (handler *Handler) LogMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	request := mealRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := handler.bodyOrQueryDay(c, request.Date)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}

	entry, err := handler.mealService.Log(user.ID, day, request.MealInput)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to log meal")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteMeal(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := handler.mealService.Delete(user.ID, entryID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete meal")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) NutritionSummary(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	summary, err := handler.nutritionService.Summary(*user, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load summary")
	}
	return c.JSON(summary)
}

func (handler *Handler) GetWater(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	day, err := handler.requestDay(c)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	waterDay, err := handler.waterService.Day(user.ID, day)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load water intake")
	}
	return c.JSON(fiber.Map{
		"date":     services.FormatDay(day),
		"entries":  waterDay.Entries,
		"total_ml": waterDay.TotalML,
		"goal_ml":  waterDay.GoalML,
		"percent":  waterDay.Percent,
	})
}

func (handler *Handler) AddWater(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := waterInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	day, err := handler.bodyOrQueryDay(c, input.Date)
	if err != nil {
		return handler.respondServiceError(c, err, "invalid date")
	}
	entry, err := handler.waterService.Add(user.ID, day, input.AmountML)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to log water")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteWater(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := handler.waterService.Delete(user.ID, entryID); err != nil {
		return handler.respondServiceError(c, err, "failed to delete water entry")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) bodyOrQueryDay(c *fiber.Ctx, bodyDate string) (time.Time, error) {
	if bodyDate != "" {
		return services.ParseDayParam(bodyDate, handler.now(), handler.location)
	}
	return handler.requestDay(c)
}
