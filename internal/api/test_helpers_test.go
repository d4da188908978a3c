package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/db"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/i18n"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	testSecretKey     = "0123456789abcdef0123456789abcdef"
	testWebhookSecret = "whsec_test"
	testPassword      = "StrongPass1"
)

type fakeGateway struct {
	mu       sync.Mutex
	requests []payments.CheckoutRequest
}

func (gateway *fakeGateway) CreateCheckoutSession(ctx context.Context, request payments.CheckoutRequest) (payments.CheckoutSession, error) {
	gateway.mu.Lock()
	defer gateway.mu.Unlock()
	gateway.requests = append(gateway.requests, request)
	return payments.CheckoutSession{ID: "cs_" + request.Reference, URL: "https://pay.example.com/c/" + request.Reference}, nil
}

type testEnv struct {
	app     *fiber.App
	handler *Handler
	repos   *db.Repositories
	gateway *fakeGateway
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithOptions(t, func(*Options) {})
}

func newTestEnvWithOptions(t *testing.T, configure func(*Options)) *testEnv {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("access sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	manager, err := i18n.NewEmbeddedManager("es")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	gateway := &fakeGateway{}
	options := Options{
		SecretKey: testSecretKey,
		I18n:      manager,
		Logger:    logger,
		Gateway:   gateway,
		Subscription: services.SubscriptionConfig{
			Currency:      "USD",
			WebhookSecret: testWebhookSecret,
			ReturnURL:     "http://localhost/api/payments/return",
		},
		RequestsPerSecond: 1000,
		RequestBurst:      1000,
	}
	configure(&options)

	handler, err := NewHandler(database, options)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return &testEnv{
		app:     NewApp(handler),
		handler: handler,
		repos:   handler.repositories,
		gateway: gateway,
	}
}

type testRequest struct {
	method  string
	path    string
	body    any
	raw     []byte
	token   string
	headers map[string]string
}

func (env *testEnv) do(t *testing.T, request testRequest) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	switch {
	case request.raw != nil:
		reader = bytes.NewReader(request.raw)
	case request.body != nil:
		encoded, err := json.Marshal(request.body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	httpRequest := httptest.NewRequest(request.method, request.path, reader)
	if reader != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if request.token != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+request.token)
	}
	for key, value := range request.headers {
		httpRequest.Header.Set(key, value)
	}

	response, err := env.app.Test(httpRequest, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.method, request.path, err)
	}
	defer response.Body.Close()

	payload := map[string]any{}
	rawBody, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(rawBody) > 0 && rawBody[0] == '{' {
		if err := json.Unmarshal(rawBody, &payload); err != nil {
			t.Fatalf("decode body %q: %v", string(rawBody), err)
		}
	}
	return response.StatusCode, payload
}

func (env *testEnv) expect(t *testing.T, request testRequest, status int) map[string]any {
	t.Helper()
	gotStatus, payload := env.do(t, request)
	if gotStatus != status {
		t.Fatalf("%s %s expected status %d, got %d (%v)", request.method, request.path, status, gotStatus, payload)
	}
	return payload
}

func (env *testEnv) register(t *testing.T, email string) (string, uint) {
	t.Helper()
	payload := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   fiber.Map{"email": email, "password": testPassword},
	}, http.StatusCreated)

	token, _ := payload["token"].(string)
	if token == "" {
		t.Fatalf("expected token in register response, got %v", payload)
	}
	user, _ := payload["user"].(map[string]any)
	id, _ := user["id"].(float64)
	return token, uint(id)
}

func (env *testEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	token, userID := env.register(t, email)
	if err := env.repos.Users.UpdateRole(userID, models.RoleAdmin); err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	return token
}

func (env *testEnv) grantPremium(t *testing.T, token string) {
	t.Helper()
	checkout := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/subscription/checkout",
		body:   fiber.Map{"plan": "monthly"},
		token:  token,
	}, http.StatusCreated)
	reference, _ := checkout["reference"].(string)

	env.deliverWebhook(t, reference, payments.StatusApproved, http.StatusOK)
}

func (env *testEnv) deliverWebhook(t *testing.T, reference string, status string, expectedStatus int) map[string]any {
	t.Helper()
	payload := []byte(`{"id":"evt_` + reference + `","type":"checkout.completed","data":{"reference":"` + reference + `","status":"` + status + `"}}`)
	return env.expect(t, testRequest{
		method:  http.MethodPost,
		path:    "/api/payments/webhook",
		raw:     payload,
		headers: map[string]string{payments.SignatureHeader: payments.Sign(testWebhookSecret, payload)},
	}, expectedStatus)
}

func listLength(t *testing.T, payload map[string]any, key string) int {
	t.Helper()
	items, ok := payload[key].([]any)
	if !ok {
		t.Fatalf("expected %q list in %v", key, payload)
	}
	return len(items)
}
