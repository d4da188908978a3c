package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

const SignatureHeader = "X-Signature"

const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrInvalidWebhookSignature = errors.New("invalid webhook signature")
	ErrInvalidWebhookPayload   = errors.New("invalid webhook payload")
)

type WebhookEvent struct {
	ID        string
	Type      string
	Reference string
	Status    string
}

// Sign returns the hex HMAC-SHA256 of payload under secret.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret string, payload []byte, signature string) error {
	if secret == "" {
		return ErrInvalidWebhookSignature
	}
	provided, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "sha256="))
	if err != nil || len(provided) == 0 {
		return ErrInvalidWebhookSignature
	}
	expected, _ := hex.DecodeString(Sign(secret, payload))
	if !hmac.Equal(provided, expected) {
		return ErrInvalidWebhookSignature
	}
	return nil
}

// ParseWebhookEvent extracts the transaction reference and final status. Only
// approved and rejected statuses are accepted.
func ParseWebhookEvent(payload []byte) (WebhookEvent, error) {
	if !gjson.ValidBytes(payload) {
		return WebhookEvent{}, ErrInvalidWebhookPayload
	}

	result := gjson.ParseBytes(payload)
	event := WebhookEvent{
		ID:        result.Get("id").String(),
		Type:      result.Get("type").String(),
		Reference: strings.TrimSpace(result.Get("data.reference").String()),
		Status:    strings.ToLower(strings.TrimSpace(result.Get("data.status").String())),
	}
	if event.Reference == "" {
		return WebhookEvent{}, ErrInvalidWebhookPayload
	}
	switch event.Status {
	case StatusApproved, StatusRejected:
		return event, nil
	default:
		return WebhookEvent{}, ErrInvalidWebhookPayload
	}
}
