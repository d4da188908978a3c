package services

import (
	"testing"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

func TestNutritionServiceSummary(t *testing.T) {
	day := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	user := models.User{ID: 2, Gender: models.GenderMale, ActivityLevel: models.ActivitySedentary, Goal: models.GoalLoseWeight}

	meals := &mealRepositoryStub{entries: []models.MealEntry{
		{UserID: 2, ConsumedOn: day, PortionGrams: 200, Food: models.Food{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}},
		{UserID: 2, ConsumedOn: day, PortionGrams: 150, Food: models.Food{Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3}},
	}}
	water := &waterRepositoryStub{entries: []models.WaterIntake{{UserID: 2, ConsumedOn: day, AmountML: 1500}}}
	service := NewNutritionService(meals, water, time.UTC)

	summary, err := service.Summary(user, day)
	if err != nil {
		t.Fatalf("Summary returned error: %v", err)
	}

	if summary.Date != "2026-06-03" {
		t.Fatalf("unexpected date %q", summary.Date)
	}
	if summary.CalorieGoal != 1870 {
		t.Fatalf("expected 2200*0.85=1870 kcal goal, got %d", summary.CalorieGoal)
	}
	if summary.Totals.Calories != 525 {
		t.Fatalf("expected 330+195=525 kcal, got %v", summary.Totals.Calories)
	}
	if summary.CaloriePercent != 28.1 {
		t.Fatalf("expected 28.1%% of goal, got %v", summary.CaloriePercent)
	}
	if summary.WaterML != 1500 || summary.WaterPercent != 75 {
		t.Fatalf("unexpected water summary %d ml %v%%", summary.WaterML, summary.WaterPercent)
	}
	if summary.EntryCount != 2 {
		t.Fatalf("expected 2 entries, got %d", summary.EntryCount)
	}
}
