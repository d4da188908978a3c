package api

import (
	"errors"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/i18n"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL   = 7 * 24 * time.Hour
	rememberAuthTokenTTL  = 30 * 24 * time.Hour
	loginAttemptsLimit    = 8
	loginAttemptsWindow   = 15 * time.Minute
	defaultInsightsLimit  = 50
	defaultRequestsPerSec = 5
	defaultRequestBurst   = 10
)

type Options struct {
	SecretKey         string
	Location          *time.Location
	I18n              *i18n.Manager
	CookieSecure      bool
	Logger            *logrus.Logger
	Gateway           payments.Gateway
	Subscription      services.SubscriptionConfig
	RequestsPerSecond float64
	RequestBurst      int
}

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	logger       *logrus.Logger
	now          func() time.Time

	repositories        *db.Repositories
	authService         *services.AuthService
	profileService      *services.ProfileService
	foodService         *services.FoodService
	mealService         *services.MealService
	waterService        *services.WaterService
	nutritionService    *services.NutritionService
	insightService      *services.InsightService
	catalogService      *services.CatalogService
	subscriptionService *services.SubscriptionService
	exportService       *services.ExportService

	loginLimiter  *attemptLimiter
	clientLimiter *clientRateLimiter
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	location := options.Location
	if location == nil {
		location = time.UTC
	}
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	requestsPerSecond := options.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSec
	}
	burst := options.RequestBurst
	if burst <= 0 {
		burst = defaultRequestBurst
	}

	handler := &Handler{
		secretKey:     []byte(options.SecretKey),
		location:      location,
		cookieSecure:  options.CookieSecure,
		i18n:          options.I18n,
		logger:        logger,
		now:           time.Now,
		loginLimiter:  newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		clientLimiter: newClientRateLimiter(rate.Limit(requestsPerSecond), burst),
	}
	return handler.withDependencies(database, options), nil
}

func (handler *Handler) withDependencies(database *gorm.DB, options Options) *Handler {
	repos := db.NewRepositories(database)
	handler.repositories = repos
	handler.authService = services.NewAuthService(repos.Users)
	handler.profileService = services.NewProfileService(repos.Users, handler.i18n)
	handler.foodService = services.NewFoodService(repos.Foods)
	handler.mealService = services.NewMealService(repos.Meals, repos.Foods, handler.location)
	handler.waterService = services.NewWaterService(repos.Water, handler.location)
	handler.nutritionService = services.NewNutritionService(repos.Meals, repos.Water, handler.location)
	handler.insightService = services.NewInsightService(repos.Meals, repos.Water, repos.Insights, handler.i18n, handler.location)
	handler.catalogService = services.NewCatalogService(repos.Catalog)
	handler.subscriptionService = services.NewSubscriptionService(repos.Subscriptions, repos.Payments, options.Gateway, handler.i18n, options.Subscription)
	handler.exportService = services.NewExportService(repos.Meals, repos.Water, handler.location)
	return handler
}

// SubscriptionService exposes the paywall service for background jobs.
func (handler *Handler) SubscriptionService() *services.SubscriptionService {
	return handler.subscriptionService
}
