package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/payments"
	"github.com/gofiber/fiber/v2"
)

func TestInsightsRequirePremium(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")

	for _, request := range []testRequest{
		{method: http.MethodGet, path: "/api/insights", token: token},
		{method: http.MethodPost, path: "/api/insights/generate", token: token},
		{method: http.MethodPatch, path: "/api/insights/1", token: token, body: fiber.Map{"viewed": true}},
	} {
		payload := env.expect(t, request, http.StatusPaymentRequired)
		if payload["error"] != "premium subscription required" {
			t.Fatalf("%s %s: unexpected error %v", request.method, request.path, payload)
		}
	}
}

func TestGenerateInsightsForPremiumUser(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")
	env.grantPremium(t, token)

	generated := env.expect(t, testRequest{
		method:  http.MethodPost,
		path:    "/api/insights/generate?date=2026-03-10",
		token:   token,
		headers: map[string]string{"Accept-Language": "en-US,en;q=0.9"},
	}, http.StatusCreated)

	insights, _ := generated["insights"].([]any)
	if len(insights) != 1 {
		t.Fatalf("expected only the hydration insight for an empty day, got %v", insights)
	}
	insight, _ := insights[0].(map[string]any)
	if insight["rule"] != "hydration.low" || insight["type"] != models.InsightWarning {
		t.Fatalf("expected low hydration warning, got %v", insight)
	}
	if insight["title"] != "Low hydration" {
		t.Fatalf("expected english title, got %v", insight["title"])
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/water",
		token:  token,
		body:   fiber.Map{"amount_ml": 1900, "date": "2026-03-10"},
	}, http.StatusCreated)
	regenerated := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/insights/generate?date=2026-03-10",
		token:  token,
	}, http.StatusCreated)
	insights, _ = regenerated["insights"].([]any)
	insight, _ = insights[0].(map[string]any)
	if insight["type"] != models.InsightAchievement || insight["title"] != "Meta de hidratación alcanzada" {
		t.Fatalf("expected hydration achievement, got %v", insight)
	}

	listed := env.expect(t, testRequest{method: http.MethodGet, path: "/api/insights", token: token}, http.StatusOK)
	if got := listLength(t, listed, "insights"); got != 1 {
		t.Fatalf("expected regenerated day to replace earlier insights, got %d", got)
	}
	stored, _ := listed["insights"].([]any)
	storedInsight, _ := stored[0].(map[string]any)
	path := fmt.Sprintf("/api/insights/%v", storedInsight["id"])

	env.expect(t, testRequest{method: http.MethodPatch, path: path, token: token, body: fiber.Map{}}, http.StatusBadRequest)
	env.expect(t, testRequest{method: http.MethodPatch, path: path, token: token, body: fiber.Map{"viewed": true}}, http.StatusOK)

	unviewed := env.expect(t, testRequest{method: http.MethodGet, path: "/api/insights?unviewed=true", token: token}, http.StatusOK)
	if got := listLength(t, unviewed, "insights"); got != 0 {
		t.Fatalf("expected no unviewed insights, got %d", got)
	}
	env.expect(t, testRequest{method: http.MethodPatch, path: "/api/insights/9999", token: token, body: fiber.Map{"viewed": true}}, http.StatusNotFound)
}

func TestPremiumCatalogVisibility(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "admin@example.com")
	memberToken, _ := env.register(t, "ana@example.com")

	for _, item := range []fiber.Map{
		{"title": "Respiración 4-7-8", "kind": "breathing", "duration_minutes": 5},
		{"title": "Escaneo corporal", "kind": "audio", "duration_minutes": 20, "premium": true},
	} {
		env.expect(t, testRequest{method: http.MethodPost, path: "/api/mindfulness", token: adminToken, body: item}, http.StatusCreated)
	}
	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/nutrition-plans",
		token:  adminToken,
		body:   fiber.Map{"name": "Volumen limpio", "goal": "ganar_musculo", "daily_calories": 2800, "protein_pct": 30, "carbs_pct": 45, "fat_pct": 25, "premium": true},
	}, http.StatusCreated)

	free := env.expect(t, testRequest{method: http.MethodGet, path: "/api/mindfulness", token: memberToken}, http.StatusOK)
	if got := listLength(t, free, "resources"); got != 1 {
		t.Fatalf("expected one free resource for non-premium user, got %d", got)
	}
	plans := env.expect(t, testRequest{method: http.MethodGet, path: "/api/nutrition-plans?goal=gain_muscle", token: memberToken}, http.StatusOK)
	if got := listLength(t, plans, "plans"); got != 0 {
		t.Fatalf("expected premium plans hidden, got %d", got)
	}

	env.grantPremium(t, memberToken)

	premium := env.expect(t, testRequest{method: http.MethodGet, path: "/api/mindfulness", token: memberToken}, http.StatusOK)
	if got := listLength(t, premium, "resources"); got != 2 {
		t.Fatalf("expected all resources for premium user, got %d", got)
	}
	plans = env.expect(t, testRequest{method: http.MethodGet, path: "/api/nutrition-plans?goal=ganar_musculo", token: memberToken}, http.StatusOK)
	if got := listLength(t, plans, "plans"); got != 1 {
		t.Fatalf("expected premium plan for premium user, got %d", got)
	}
}

func TestCatalogAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerAdmin(t, "admin@example.com")
	memberToken, _ := env.register(t, "ana@example.com")

	supplement := fiber.Map{"name": "Magnesio", "dosage": "300 mg", "timing": "noche"}
	env.expect(t, testRequest{method: http.MethodPost, path: "/api/supplements", token: memberToken, body: supplement}, http.StatusForbidden)
	created := env.expect(t, testRequest{method: http.MethodPost, path: "/api/supplements", token: adminToken, body: supplement}, http.StatusCreated)

	listed := env.expect(t, testRequest{method: http.MethodGet, path: "/api/supplements", token: memberToken}, http.StatusOK)
	if got := listLength(t, listed, "supplements"); got != 1 {
		t.Fatalf("expected one supplement, got %d", got)
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/workouts",
		token:  adminToken,
		body:   fiber.Map{"title": "HIIT", "url": "javascript:alert(1)", "category": "hiit"},
	}, http.StatusBadRequest)
	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/workouts",
		token:  adminToken,
		body:   fiber.Map{"title": "HIIT", "url": "https://example.com/hiit", "category": "hiit", "difficulty": "advanced", "duration_minutes": 15},
	}, http.StatusCreated)
	workouts := env.expect(t, testRequest{method: http.MethodGet, path: "/api/workouts?category=HIIT", token: memberToken}, http.StatusOK)
	if got := listLength(t, workouts, "workouts"); got != 1 {
		t.Fatalf("expected one hiit workout, got %d", got)
	}

	path := fmt.Sprintf("/api/supplements/%v", created["id"])
	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: memberToken}, http.StatusForbidden)
	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: adminToken}, http.StatusOK)
	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: adminToken}, http.StatusNotFound)
}

func TestCheckoutWebhookAndReturn(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")

	status := env.expect(t, testRequest{method: http.MethodGet, path: "/api/subscription", token: token}, http.StatusOK)
	if status["premium"] != false {
		t.Fatalf("expected no premium before checkout, got %v", status)
	}
	if history, _ := status["payments"].([]any); history == nil || len(history) != 0 {
		t.Fatalf("expected empty payment history before checkout, got %v", status["payments"])
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/subscription/checkout",
		token:  token,
		body:   fiber.Map{"plan": "weekly"},
	}, http.StatusBadRequest)

	checkout := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/subscription/checkout",
		token:  token,
		body:   fiber.Map{"plan": "yearly"},
	}, http.StatusCreated)
	reference, _ := checkout["reference"].(string)
	if checkout["redirect_url"] != "https://pay.example.com/c/"+reference {
		t.Fatalf("unexpected redirect url %v", checkout["redirect_url"])
	}
	if len(env.gateway.requests) != 1 || env.gateway.requests[0].CustomerEmail != "ana@example.com" {
		t.Fatalf("expected one gateway request for the user, got %+v", env.gateway.requests)
	}

	pending := env.expect(t, testRequest{method: http.MethodGet, path: "/api/payments/return?reference=" + reference}, http.StatusOK)
	if pending["status"] != models.PaymentPending {
		t.Fatalf("expected pending payment, got %v", pending)
	}

	payload := []byte(`{"data":{"reference":"` + reference + `","status":"approved"}}`)
	env.expect(t, testRequest{
		method:  http.MethodPost,
		path:    "/api/payments/webhook",
		raw:     payload,
		headers: map[string]string{payments.SignatureHeader: payments.Sign("wrong-secret", payload)},
	}, http.StatusUnauthorized)

	env.deliverWebhook(t, reference, payments.StatusApproved, http.StatusOK)
	duplicate := env.deliverWebhook(t, reference, payments.StatusRejected, http.StatusOK)
	if duplicate["status"] != models.PaymentApproved {
		t.Fatalf("expected duplicate webhook to keep approved status, got %v", duplicate)
	}
	env.deliverWebhook(t, "00000000-0000-0000-0000-000000000000", payments.StatusApproved, http.StatusAccepted)

	approved := env.expect(t, testRequest{method: http.MethodGet, path: "/api/payments/return?reference=" + reference + "&canceled=true"}, http.StatusOK)
	if approved["status"] != models.PaymentApproved || approved["canceled"] != false {
		t.Fatalf("expected approved payment, got %v", approved)
	}
	env.expect(t, testRequest{method: http.MethodGet, path: "/api/payments/return?reference=missing"}, http.StatusNotFound)

	status = env.expect(t, testRequest{method: http.MethodGet, path: "/api/subscription", token: token}, http.StatusOK)
	if status["premium"] != true {
		t.Fatalf("expected premium after approval, got %v", status)
	}
	history, _ := status["payments"].([]any)
	if len(history) != 1 {
		t.Fatalf("expected one payment in history, got %v", status["payments"])
	}
	if payment, _ := history[0].(map[string]any); payment["reference"] != reference || payment["status"] != models.PaymentApproved {
		t.Fatalf("unexpected payment history entry %v", history[0])
	}

	canceled := env.expect(t, testRequest{method: http.MethodPost, path: "/api/subscription/cancel", token: token}, http.StatusOK)
	subscription, _ := canceled["subscription"].(map[string]any)
	if subscription["status"] != models.SubscriptionCanceled || subscription["auto_renew"] != false {
		t.Fatalf("expected canceled subscription, got %v", subscription)
	}
	status = env.expect(t, testRequest{method: http.MethodGet, path: "/api/subscription", token: token}, http.StatusOK)
	if status["premium"] != true {
		t.Fatalf("expected access until period end after cancel, got %v", status)
	}
}

func TestCancelWithoutSubscription(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")

	env.expect(t, testRequest{method: http.MethodPost, path: "/api/subscription/cancel", token: token}, http.StatusConflict)
}
