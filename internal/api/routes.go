package api

import (
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPublicRoutes(app, handler)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerPublicRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Post("/lang/:lang", handler.SetLanguage)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.RateLimit, handler.Register)
	auth.Post("/login", handler.RateLimit, handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.UpdateProfile)
	profile.Post("/password", handler.ChangePassword)

	foods := api.Group("/foods", handler.AuthRequired)
	foods.Get("", handler.SearchFoods)
	foods.Post("", handler.CreateFood)
	foods.Get("/:id", handler.GetFood)
	foods.Delete("/:id", handler.DeleteFood)

	meals := api.Group("/meals", handler.AuthRequired)
	meals.Get("", handler.ListMeals)
	meals.Post("", handler.LogMeal)
	meals.Get("/export", handler.ExportMeals)
	meals.Get("/export/summary", handler.ExportSummary)
	meals.Delete("/:id", handler.DeleteMeal)

	api.Get("/nutrition/summary", handler.AuthRequired, handler.NutritionSummary)

	water := api.Group("/water", handler.AuthRequired)
	water.Get("", handler.GetWater)
	water.Post("", handler.AddWater)
	water.Delete("/:id", handler.DeleteWater)

	insights := api.Group("/insights", handler.AuthRequired, handler.LoadPremium, handler.PremiumOnly)
	insights.Get("", handler.ListInsights)
	insights.Post("/generate", handler.GenerateInsights)
	insights.Patch("/:id", handler.UpdateInsight)

	catalog := handler.catalogService
	supplements := api.Group("/supplements", handler.AuthRequired)
	supplements.Get("", handler.ListSupplements)
	supplements.Post("", handler.AdminOnly, handler.CreateSupplement)
	supplements.Delete("/:id", handler.AdminOnly, handler.DeleteCatalogItem(catalog.DeleteSupplement))

	workouts := api.Group("/workouts", handler.AuthRequired)
	workouts.Get("", handler.ListWorkouts)
	workouts.Post("", handler.AdminOnly, handler.CreateWorkout)
	workouts.Delete("/:id", handler.AdminOnly, handler.DeleteCatalogItem(catalog.DeleteWorkoutLink))

	mindfulness := api.Group("/mindfulness", handler.AuthRequired, handler.LoadPremium)
	mindfulness.Get("", handler.ListMindfulness)
	mindfulness.Post("", handler.AdminOnly, handler.CreateMindfulness)
	mindfulness.Delete("/:id", handler.AdminOnly, handler.DeleteCatalogItem(catalog.DeleteMindfulnessResource))

	plans := api.Group("/nutrition-plans", handler.AuthRequired, handler.LoadPremium)
	plans.Get("", handler.ListNutritionPlans)
	plans.Post("", handler.AdminOnly, handler.CreateNutritionPlan)
	plans.Delete("/:id", handler.AdminOnly, handler.DeleteCatalogItem(catalog.DeleteNutritionPlan))

	subscription := api.Group("/subscription", handler.AuthRequired)
	subscription.Get("", handler.GetSubscription)
	subscription.Post("/checkout", handler.RateLimit, handler.Checkout)
	subscription.Post("/cancel", handler.CancelSubscription)

	paymentRoutes := api.Group("/payments", handler.RateLimit)
	paymentRoutes.Post("/webhook", handler.PaymentWebhook)
	paymentRoutes.Get("/return", handler.PaymentReturn)
}
