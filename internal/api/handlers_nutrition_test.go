package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func createTestFood(t *testing.T, env *testEnv, token string) uint {
	t.Helper()
	food := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/foods",
		token:  token,
		body: fiber.Map{
			"name":     "Arepa de maíz",
			"calories": 200,
			"protein":  5,
			"carbs":    40,
			"fat":      2,
		},
	}, http.StatusCreated)
	id, _ := food["id"].(float64)
	if id == 0 {
		t.Fatalf("expected food id, got %v", food)
	}
	return uint(id)
}

func TestFoodsAreScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerToken, _ := env.register(t, "owner@example.com")
	otherToken, _ := env.register(t, "other@example.com")

	foodID := createTestFood(t, env, ownerToken)
	path := fmt.Sprintf("/api/foods/%d", foodID)

	env.expect(t, testRequest{method: http.MethodGet, path: path, token: ownerToken}, http.StatusOK)
	env.expect(t, testRequest{method: http.MethodGet, path: path, token: otherToken}, http.StatusNotFound)
	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: otherToken}, http.StatusNotFound)

	search := env.expect(t, testRequest{method: http.MethodGet, path: "/api/foods?q=arepa", token: otherToken}, http.StatusOK)
	if got := listLength(t, search, "foods"); got != 0 {
		t.Fatalf("expected other user to see no custom foods, got %d", got)
	}
	search = env.expect(t, testRequest{method: http.MethodGet, path: "/api/foods?q=AREPA", token: ownerToken}, http.StatusOK)
	if got := listLength(t, search, "foods"); got != 1 {
		t.Fatalf("expected owner to find one food, got %d", got)
	}

	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: ownerToken}, http.StatusOK)
	env.expect(t, testRequest{method: http.MethodGet, path: path, token: ownerToken}, http.StatusNotFound)
}

func TestCreateFoodValidation(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")

	payload := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/foods",
		token:  token,
		body:   fiber.Map{"name": "Impossible", "calories": 100, "protein": 60, "carbs": 50},
	}, http.StatusBadRequest)
	if payload["error"] != "invalid nutrient values" {
		t.Fatalf("expected invalid nutrient values, got %v", payload)
	}
	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/foods",
		token:  token,
		body:   fiber.Map{"name": " "},
	}, http.StatusBadRequest)
}

func TestMealLoggingAndDailySummary(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")
	foodID := createTestFood(t, env, token)

	entry := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/meals?date=2026-03-10",
		token:  token,
		body:   fiber.Map{"food_id": foodID, "meal_type": "desayuno", "portion_grams": 150},
	}, http.StatusCreated)
	if entry["meal_type"] != "breakfast" {
		t.Fatalf("expected spanish meal type to normalize, got %v", entry["meal_type"])
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/meals",
		token:  token,
		body:   fiber.Map{"food_id": foodID, "meal_type": "lunch", "portion_grams": 50, "date": "2026-03-10"},
	}, http.StatusCreated)

	meals := env.expect(t, testRequest{method: http.MethodGet, path: "/api/meals?date=2026-03-10", token: token}, http.StatusOK)
	if got := listLength(t, meals, "entries"); got != 2 {
		t.Fatalf("expected 2 meal entries, got %d", got)
	}

	summary := env.expect(t, testRequest{method: http.MethodGet, path: "/api/nutrition/summary?date=2026-03-10", token: token}, http.StatusOK)
	totals, _ := summary["totals"].(map[string]any)
	if totals["calories"] != float64(400) || totals["carbs"] != float64(80) {
		t.Fatalf("expected aggregated totals for 200 g, got %v", totals)
	}
	if summary["calorie_goal"] != float64(2000) {
		t.Fatalf("expected default calorie goal, got %v", summary["calorie_goal"])
	}
	if summary["calorie_percent"] != float64(20) {
		t.Fatalf("expected 20%% of goal, got %v", summary["calorie_percent"])
	}

	other := env.expect(t, testRequest{method: http.MethodGet, path: "/api/meals?date=2026-03-11", token: token}, http.StatusOK)
	if got := listLength(t, other, "entries"); got != 0 {
		t.Fatalf("expected no entries on another day, got %d", got)
	}
}

func TestMealValidationAndOwnership(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")
	otherToken, _ := env.register(t, "other@example.com")
	foodID := createTestFood(t, env, token)

	cases := []struct {
		name string
		path string
		body fiber.Map
		want int
	}{
		{name: "zero portion", path: "/api/meals", body: fiber.Map{"food_id": foodID, "meal_type": "lunch", "portion_grams": 0}, want: http.StatusBadRequest},
		{name: "unknown meal type", path: "/api/meals", body: fiber.Map{"food_id": foodID, "meal_type": "brunch", "portion_grams": 100}, want: http.StatusBadRequest},
		{name: "bad date", path: "/api/meals?date=10-03-2026", body: fiber.Map{"food_id": foodID, "meal_type": "lunch", "portion_grams": 100}, want: http.StatusBadRequest},
		{name: "missing food", path: "/api/meals", body: fiber.Map{"food_id": 9999, "meal_type": "lunch", "portion_grams": 100}, want: http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env.expect(t, testRequest{method: http.MethodPost, path: tc.path, token: token, body: tc.body}, tc.want)
		})
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/meals",
		token:  otherToken,
		body:   fiber.Map{"food_id": foodID, "meal_type": "lunch", "portion_grams": 100},
	}, http.StatusNotFound)

	entry := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/meals",
		token:  token,
		body:   fiber.Map{"food_id": foodID, "meal_type": "snack", "portion_grams": 30},
	}, http.StatusCreated)
	path := fmt.Sprintf("/api/meals/%v", entry["id"])

	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: otherToken}, http.StatusNotFound)
	env.expect(t, testRequest{method: http.MethodDelete, path: path, token: token}, http.StatusOK)
	env.expect(t, testRequest{method: http.MethodDelete, path: "/api/meals/abc", token: token}, http.StatusBadRequest)
}

func TestWaterIntakeFlow(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.register(t, "ana@example.com")

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/water",
		token:  token,
		body:   fiber.Map{"amount_ml": 750, "date": "2026-03-10"},
	}, http.StatusCreated)
	second := env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/water?date=2026-03-10",
		token:  token,
		body:   fiber.Map{"amount_ml": 250},
	}, http.StatusCreated)

	day := env.expect(t, testRequest{method: http.MethodGet, path: "/api/water?date=2026-03-10", token: token}, http.StatusOK)
	if day["total_ml"] != float64(1000) || day["goal_ml"] != float64(2000) || day["percent"] != float64(50) {
		t.Fatalf("unexpected water day %v", day)
	}

	env.expect(t, testRequest{
		method: http.MethodPost,
		path:   "/api/water",
		token:  token,
		body:   fiber.Map{"amount_ml": 6000},
	}, http.StatusBadRequest)

	env.expect(t, testRequest{method: http.MethodDelete, path: fmt.Sprintf("/api/water/%v", second["id"]), token: token}, http.StatusOK)
	day = env.expect(t, testRequest{method: http.MethodGet, path: "/api/water?date=2026-03-10", token: token}, http.StatusOK)
	if day["total_ml"] != float64(750) {
		t.Fatalf("expected 750 ml after delete, got %v", day["total_ml"])
	}
}
