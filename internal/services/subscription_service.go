package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/metrics"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUnknownPlan          = errors.New("unknown subscription plan")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrCheckoutUnavailable  = errors.New("checkout unavailable")
	ErrNoActiveSubscription = errors.New("no active subscription")
)

type Plan struct {
	Code        string `json:"code"`
	AmountCents int64  `json:"amount_cents"`
	PeriodDays  int    `json:"period_days"`
}

var subscriptionPlans = map[string]Plan{
	models.PlanMonthly: {Code: models.PlanMonthly, AmountCents: 999, PeriodDays: 30},
	models.PlanYearly:  {Code: models.PlanYearly, AmountCents: 7999, PeriodDays: 365},
}

func LookupPlan(code string) (Plan, error) {
	plan, ok := subscriptionPlans[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Plan{}, ErrUnknownPlan
	}
	return plan, nil
}

func Plans() []Plan {
	plans := make([]Plan, 0, len(subscriptionPlans))
	for _, plan := range subscriptionPlans {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool {
		return plans[i].AmountCents < plans[j].AmountCents
	})
	return plans
}

// ExtendSubscription starts a new period for plan, or appends it to the
// current one while it still grants access.
func ExtendSubscription(current models.Subscription, found bool, plan Plan, now time.Time) models.Subscription {
	next := current
	if !found {
		next = models.Subscription{CreatedAt: now}
	}

	periodStart := now
	if found && current.GrantsAccess(now) {
		periodStart = current.CurrentPeriodEnd
	}

	next.Plan = plan.Code
	next.Status = models.SubscriptionActive
	next.AutoRenew = true
	next.CanceledAt = nil
	next.CurrentPeriodEnd = periodStart.AddDate(0, 0, plan.PeriodDays)
	next.UpdatedAt = now
	return next
}

type SubscriptionRepository interface {
	FindByUser(userID uint) (models.Subscription, bool, error)
	FindByUserIn(database *gorm.DB, userID uint) (models.Subscription, bool, error)
	Save(subscription *models.Subscription) error
	SaveIn(database *gorm.DB, subscription *models.Subscription) error
	ExpireEnded(now time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(transaction *models.PaymentTransaction) error
	FindByReference(reference string) (models.PaymentTransaction, bool, error)
	UpdateSessionID(transactionID uint, sessionID string) error
	ListByUser(userID uint) ([]models.PaymentTransaction, error)
	Settle(reference string, status string, now time.Time, apply func(tx *gorm.DB, transaction models.PaymentTransaction) error) (models.PaymentTransaction, error)
}

type SubscriptionConfig struct {
	Currency      string
	WebhookSecret string
	ReturnURL     string
}

type CheckoutResult struct {
	Reference   string `json:"reference"`
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
	Plan        string `json:"plan"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type SubscriptionStatus struct {
	Subscription *models.Subscription        `json:"subscription"`
	Premium      bool                        `json:"premium"`
	Plans        []Plan                      `json:"plans"`
	Payments     []models.PaymentTransaction `json:"payments"`
}

type SubscriptionService struct {
	subscriptions SubscriptionRepository
	payments      PaymentRepository
	gateway       payments.Gateway
	translator    Translator
	config        SubscriptionConfig
	now           func() time.Time
}

func NewSubscriptionService(subscriptions SubscriptionRepository, paymentRepo PaymentRepository, gateway payments.Gateway, translator Translator, config SubscriptionConfig) *SubscriptionService {
	if strings.TrimSpace(config.Currency) == "" {
		config.Currency = "USD"
	}
	return &SubscriptionService{
		subscriptions: subscriptions,
		payments:      paymentRepo,
		gateway:       gateway,
		translator:    translator,
		config:        config,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (service *SubscriptionService) HasPremium(userID uint) (bool, error) {
	subscription, found, err := service.subscriptions.FindByUser(userID)
	if err != nil {
		return false, err
	}
	return found && subscription.GrantsAccess(service.now()), nil
}

func (service *SubscriptionService) Status(userID uint) (SubscriptionStatus, error) {
	subscription, found, err := service.subscriptions.FindByUser(userID)
	if err != nil {
		return SubscriptionStatus{}, err
	}
	history, err := service.payments.ListByUser(userID)
	if err != nil {
		return SubscriptionStatus{}, err
	}
	status := SubscriptionStatus{Plans: Plans(), Payments: history}
	if found {
		status.Subscription = &subscription
		status.Premium = subscription.GrantsAccess(service.now())
	}
	return status, nil
}

// Checkout records a pending transaction and asks the gateway for a hosted
// checkout session.
func (service *SubscriptionService) Checkout(ctx context.Context, user models.User, planCode string, language string) (CheckoutResult, error) {
	plan, err := LookupPlan(planCode)
	if err != nil {
		return CheckoutResult{}, err
	}
	if service.gateway == nil {
		return CheckoutResult{}, ErrCheckoutUnavailable
	}

	transaction := models.PaymentTransaction{
		UserID:      user.ID,
		Reference:   uuid.NewString(),
		Plan:        plan.Code,
		AmountCents: plan.AmountCents,
		Currency:    service.config.Currency,
		Status:      models.PaymentPending,
		CreatedAt:   service.now(),
	}
	if err := service.payments.Create(&transaction); err != nil {
		return CheckoutResult{}, fmt.Errorf("create payment transaction: %w", err)
	}

	session, err := service.gateway.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		Reference:     transaction.Reference,
		AmountCents:   transaction.AmountCents,
		Currency:      transaction.Currency,
		Description:   service.planDescription(plan, language),
		SuccessURL:    service.returnURL(transaction.Reference, false),
		CancelURL:     service.returnURL(transaction.Reference, true),
		CustomerEmail: user.Email,
	})
	if err != nil {
		metrics.RecordCheckout(plan.Code, false)
		if _, settleErr := service.payments.Settle(transaction.Reference, models.PaymentRejected, service.now(), nil); settleErr != nil {
			return CheckoutResult{}, fmt.Errorf("%w: %v (reject transaction: %v)", ErrCheckoutUnavailable, err, settleErr)
		}
		return CheckoutResult{}, fmt.Errorf("%w: %v", ErrCheckoutUnavailable, err)
	}
	if err := service.payments.UpdateSessionID(transaction.ID, session.ID); err != nil {
		return CheckoutResult{}, fmt.Errorf("store checkout session: %w", err)
	}
	metrics.RecordCheckout(plan.Code, true)

	return CheckoutResult{
		Reference:   transaction.Reference,
		SessionID:   session.ID,
		RedirectURL: session.URL,
		Plan:        plan.Code,
		AmountCents: plan.AmountCents,
		Currency:    transaction.Currency,
	}, nil
}

// HandleWebhook verifies and applies a gateway callback. Repeated callbacks
// for a settled reference return the stored transaction unchanged.
func (service *SubscriptionService) HandleWebhook(payload []byte, signature string) (models.PaymentTransaction, error) {
	if err := payments.VerifySignature(service.config.WebhookSecret, payload, signature); err != nil {
		metrics.RecordWebhook("invalid_signature")
		return models.PaymentTransaction{}, err
	}
	event, err := payments.ParseWebhookEvent(payload)
	if err != nil {
		metrics.RecordWebhook("invalid_payload")
		return models.PaymentTransaction{}, err
	}

	now := service.now()
	settled, err := service.payments.Settle(event.Reference, event.Status, now, func(tx *gorm.DB, transaction models.PaymentTransaction) error {
		plan, err := LookupPlan(transaction.Plan)
		if err != nil {
			return err
		}
		current, found, err := service.subscriptions.FindByUserIn(tx, transaction.UserID)
		if err != nil {
			return err
		}
		next := ExtendSubscription(current, found, plan, now)
		next.UserID = transaction.UserID
		return service.subscriptions.SaveIn(tx, &next)
	})
	switch {
	case errors.Is(err, db.ErrPaymentAlreadyProcessed):
		metrics.RecordWebhook("duplicate")
		existing, _, findErr := service.payments.FindByReference(event.Reference)
		if findErr != nil {
			return models.PaymentTransaction{}, findErr
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		metrics.RecordWebhook("unknown_reference")
		return models.PaymentTransaction{}, ErrPaymentNotFound
	case err != nil:
		metrics.RecordWebhook("error")
		return models.PaymentTransaction{}, err
	}

	metrics.RecordWebhook(settled.Status)
	return settled, nil
}

func (service *SubscriptionService) PaymentStatus(reference string) (models.PaymentTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return models.PaymentTransaction{}, ErrPaymentNotFound
	}
	transaction, found, err := service.payments.FindByReference(reference)
	if err != nil {
		return models.PaymentTransaction{}, err
	}
	if !found {
		return models.PaymentTransaction{}, ErrPaymentNotFound
	}
	return transaction, nil
}

// Cancel stops renewal. Access continues until the paid period ends.
func (service *SubscriptionService) Cancel(userID uint) (models.Subscription, error) {
	subscription, found, err := service.subscriptions.FindByUser(userID)
	if err != nil {
		return models.Subscription{}, err
	}
	now := service.now()
	if !found || !subscription.GrantsAccess(now) {
		return models.Subscription{}, ErrNoActiveSubscription
	}
	if subscription.Status == models.SubscriptionCanceled {
		return subscription, nil
	}

	subscription.Status = models.SubscriptionCanceled
	subscription.AutoRenew = false
	subscription.CanceledAt = &now
	subscription.UpdatedAt = now
	if err := service.subscriptions.Save(&subscription); err != nil {
		return models.Subscription{}, err
	}
	return subscription, nil
}

func (service *SubscriptionService) ExpireEnded() (int64, error) {
	expired, err := service.subscriptions.ExpireEnded(service.now())
	if err != nil {
		return 0, err
	}
	metrics.RecordExpiredSubscriptions(expired)
	return expired, nil
}

func (service *SubscriptionService) planDescription(plan Plan, language string) string {
	key := "subscription.plan." + plan.Code
	if service.translator == nil {
		return key
	}
	return service.translator.Translate(language, key)
}

func (service *SubscriptionService) returnURL(reference string, canceled bool) string {
	base := strings.TrimSpace(service.config.ReturnURL)
	if base == "" {
		return ""
	}
	query := url.Values{}
	query.Set("reference", reference)
	if canceled {
		query.Set("canceled", "true")
	}
	separator := "?"
	if strings.Contains(base, "?") {
		separator = "&"
	}
	return base + separator + query.Encode()
}
