package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var serviceErrorMappings = []errorMapping{
	{services.ErrInvalidDate, fiber.StatusBadRequest, "invalid date"},
	{services.ErrAuthCredentialsInvalid, fiber.StatusBadRequest, "invalid input"},
	{services.ErrWeakPassword, fiber.StatusBadRequest, "weak password"},
	{services.ErrAuthEmailExists, fiber.StatusConflict, "email already exists"},
	{services.ErrAuthInvalidLogin, fiber.StatusUnauthorized, "invalid credentials"},
	{services.ErrPasswordMismatch, fiber.StatusBadRequest, "password mismatch"},
	{services.ErrInvalidCurrentPassword, fiber.StatusBadRequest, "invalid current password"},
	{services.ErrNewPasswordMustDiffer, fiber.StatusBadRequest, "new password must differ"},
	{services.ErrPasswordChangeInvalid, fiber.StatusBadRequest, "invalid input"},
	{services.ErrProfileInvalidGender, fiber.StatusBadRequest, "invalid gender"},
	{services.ErrProfileInvalidActivity, fiber.StatusBadRequest, "invalid activity level"},
	{services.ErrProfileInvalidGoal, fiber.StatusBadRequest, "invalid goal"},
	{services.ErrProfileDisplayNameTooLong, fiber.StatusBadRequest, "display name too long"},
	{services.ErrProfileInvalidWeight, fiber.StatusBadRequest, "invalid weight"},
	{services.ErrProfileInvalidHeight, fiber.StatusBadRequest, "invalid height"},
	{services.ErrProfileInvalidBirthDate, fiber.StatusBadRequest, "invalid birth date"},
	{services.ErrProfileInvalidLanguage, fiber.StatusBadRequest, "unsupported language"},
	{services.ErrFoodNotFound, fiber.StatusNotFound, "food not found"},
	{services.ErrFoodNameRequired, fiber.StatusBadRequest, "food name is required"},
	{services.ErrFoodNameTooLong, fiber.StatusBadRequest, "food name too long"},
	{services.ErrFoodInvalidValues, fiber.StatusBadRequest, "invalid nutrient values"},
	{services.ErrMealNotFound, fiber.StatusNotFound, "meal entry not found"},
	{services.ErrMealInvalidPortion, fiber.StatusBadRequest, "invalid portion"},
	{services.ErrMealInvalidType, fiber.StatusBadRequest, "invalid meal type"},
	{services.ErrMealNotesTooLong, fiber.StatusBadRequest, "notes too long"},
	{services.ErrExportFromDateInvalid, fiber.StatusBadRequest, "invalid from date"},
	{services.ErrExportToDateInvalid, fiber.StatusBadRequest, "invalid to date"},
	{services.ErrExportRangeInvalid, fiber.StatusBadRequest, "invalid range"},
	{services.ErrExportRangeTooLong, fiber.StatusBadRequest, "range too long"},
	{services.ErrWaterAmountInvalid, fiber.StatusBadRequest, "invalid water amount"},
	{services.ErrWaterEntryNotFound, fiber.StatusNotFound, "water entry not found"},
	{services.ErrInsightDataUnavailable, fiber.StatusServiceUnavailable, "insight data unavailable"},
	{services.ErrInsightNotFound, fiber.StatusNotFound, "insight not found"},
	{services.ErrCatalogItemNotFound, fiber.StatusNotFound, "catalog item not found"},
	{services.ErrCatalogNameRequired, fiber.StatusBadRequest, "name is required"},
	{services.ErrCatalogInvalidURL, fiber.StatusBadRequest, "invalid url"},
	{services.ErrCatalogInvalidKind, fiber.StatusBadRequest, "invalid kind"},
	{services.ErrCatalogInvalidLevel, fiber.StatusBadRequest, "invalid difficulty"},
	{services.ErrCatalogInvalidGoal, fiber.StatusBadRequest, "invalid goal"},
	{services.ErrCatalogInvalidMacros, fiber.StatusBadRequest, "macro percentages must add up to 100"},
	{services.ErrCatalogInvalidMinutes, fiber.StatusBadRequest, "invalid duration"},
	{services.ErrUnknownPlan, fiber.StatusBadRequest, "unknown plan"},
	{services.ErrPaymentNotFound, fiber.StatusNotFound, "payment not found"},
	{services.ErrCheckoutUnavailable, fiber.StatusBadGateway, "checkout unavailable"},
	{services.ErrNoActiveSubscription, fiber.StatusConflict, "no active subscription"},
	{payments.ErrInvalidWebhookSignature, fiber.StatusUnauthorized, "invalid signature"},
	{payments.ErrInvalidWebhookPayload, fiber.StatusBadRequest, "invalid payload"},
	{gorm.ErrRecordNotFound, fiber.StatusNotFound, "not found"},
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps known service errors to a status and message and
// logs anything else as an internal failure.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error, fallback string) error {
	for _, mapping := range serviceErrorMappings {
		if errors.Is(err, mapping.target) {
			if mapping.status >= fiber.StatusInternalServerError {
				handler.logger.WithFields(requestFields(c)).WithError(err).Warn(mapping.message)
			}
			return apiError(c, mapping.status, mapping.message)
		}
	}
	return handler.internalError(c, err, fallback)
}

func (handler *Handler) internalError(c *fiber.Ctx, err error, message string) error {
	handler.logger.WithFields(requestFields(c)).WithError(err).Error(message)
	return apiError(c, fiber.StatusInternalServerError, message)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (handler *Handler) requestDay(c *fiber.Ctx) (time.Time, error) {
	return services.ParseDayParam(c.Query("date"), handler.now(), handler.location)
}

func queryBool(c *fiber.Ctx, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes", "si", "sí":
		return true
	default:
		return false
	}
}
