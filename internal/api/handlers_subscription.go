package api

import (
	"errors"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
)

type checkoutInput struct {
	Plan string `json:"plan"`
}

func (handler *Handler) GetSubscription(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	status, err := handler.subscriptionService.Status(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load subscription")
	}
	return c.JSON(status)
}

func (handler *Handler) Checkout(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := checkoutInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.subscriptionService.Checkout(c.UserContext(), *user, input.Plan, handler.currentLanguage(c))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to start checkout")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (handler *Handler) CancelSubscription(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	subscription, err := handler.subscriptionService.Cancel(user.ID)
	if err != nil {
		return handler.respondServiceError(c, err, "failed to cancel subscription")
	}
	return c.JSON(fiber.Map{"subscription": subscription})
}

// PaymentWebhook receives gateway callbacks. Unknown references are
// acknowledged so the gateway stops retrying.
func (handler *Handler) PaymentWebhook(c *fiber.Ctx) error {
	payload := append([]byte(nil), c.Body()...)
	transaction, err := handler.subscriptionService.HandleWebhook(payload, c.Get(payments.SignatureHeader))
	if err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			handler.logger.WithFields(requestFields(c)).Warn("webhook for unknown payment reference")
			return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"ok": false, "error": "payment not found"})
		}
		return handler.respondServiceError(c, err, "failed to process webhook")
	}

	handler.logger.WithFields(requestFields(c)).WithField("reference", transaction.Reference).
		WithField("status", transaction.Status).Info("payment webhook processed")
	return c.JSON(fiber.Map{"ok": true, "reference": transaction.Reference, "status": transaction.Status})
}

func (handler *Handler) PaymentReturn(c *fiber.Ctx) error {
	transaction, err := handler.subscriptionService.PaymentStatus(c.Query("reference"))
	if err != nil {
		return handler.respondServiceError(c, err, "failed to load payment")
	}
	return c.JSON(fiber.Map{
		"reference": transaction.Reference,
		"plan":      transaction.Plan,
		"status":    transaction.Status,
		"canceled":  queryBool(c, "canceled") && transaction.Status != models.PaymentApproved,
	})
}
