// Package payments talks to the hosted checkout gateway and verifies its
// webhook callbacks.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

type CheckoutRequest struct {
	Reference     string `json:"reference"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	SuccessURL    string `json:"success_url"`
	CancelURL     string `json:"cancel_url"`
	CustomerEmail string `json:"customer_email"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Gateway creates hosted checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, request CheckoutRequest) (CheckoutSession, error)
}

type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPGateway is the REST client for the hosted checkout API.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPGateway(cfg Config) (*HTTPGateway, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 15 * time.Second,
		}
	}

	return &HTTPGateway{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}, nil
}

func (gateway *HTTPGateway) CreateCheckoutSession(ctx context.Context, request CheckoutRequest) (CheckoutSession, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("marshal checkout request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, gateway.baseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("create checkout request: %w", err)
	}
	httpRequest.Header.Set("Authorization", "Bearer "+gateway.apiKey)
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("Idempotency-Key", request.Reference)

	response, err := gateway.httpClient.Do(httpRequest)
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return CheckoutSession{}, fmt.Errorf("read checkout response: %w", err)
	}
	if response.StatusCode >= 300 {
		return CheckoutSession{}, fmt.Errorf("%w: status %d: %s", ErrGatewayUnavailable, response.StatusCode, strings.TrimSpace(string(raw)))
	}

	session := CheckoutSession{}
	if err := json.Unmarshal(raw, &session); err != nil {
		return CheckoutSession{}, fmt.Errorf("decode checkout response: %w", err)
	}
	if session.ID == "" || session.URL == "" {
		return CheckoutSession{}, fmt.Errorf("%w: incomplete checkout session", ErrGatewayUnavailable)
	}
	return session, nil
}
