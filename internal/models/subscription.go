package models

import "time"

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

const (
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

const (
	PaymentPending  = "pending"
	PaymentApproved = "approved"
	PaymentRejected = "rejected"
)

type Subscription struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Plan             string     `gorm:"not null" json:"plan"`
	Status           string     `gorm:"not null" json:"status"`
	CurrentPeriodEnd time.Time  `gorm:"not null" json:"current_period_end"`
	AutoRenew        bool       `gorm:"not null;default:true" json:"auto_renew"`
	CanceledAt       *time.Time `json:"canceled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// GrantsAccess reports whether the subscription unlocks premium content at now.
// Canceled subscriptions keep access until the paid period ends.
func (subscription Subscription) GrantsAccess(now time.Time) bool {
	if subscription.Status != SubscriptionActive && subscription.Status != SubscriptionCanceled {
		return false
	}
	return subscription.CurrentPeriodEnd.After(now)
}

type PaymentTransaction struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	Reference        string     `gorm:"not null;uniqueIndex" json:"reference"`
	Plan             string     `gorm:"not null" json:"plan"`
	AmountCents      int64      `gorm:"not null" json:"amount_cents"`
	Currency         string     `gorm:"not null" json:"currency"`
	Status           string     `gorm:"not null;default:pending" json:"status"`
	GatewaySessionID string     `json:"gateway_session_id"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
