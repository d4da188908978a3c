package services

import (
	"math"
	"testing"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

func TestAggregateDailyTotalsScalesByPortion(t *testing.T) {
	oats := models.Food{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9}
	egg := models.Food{Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11}

	entries := []models.MealEntry{
		{Food: oats, PortionGrams: 50},
		{Food: egg, PortionGrams: 120},
	}

	totals := AggregateDailyTotals(entries)
	want := DailyTotals{
		Calories: roundTo(389*0.5+155*1.2, 1),
		Protein:  roundTo(16.9*0.5+13*1.2, 1),
		Carbs:    roundTo(66.3*0.5+1.1*1.2, 1),
		Fat:      roundTo(6.9*0.5+11*1.2, 1),
	}
	if totals != want {
		t.Fatalf("AggregateDailyTotals() = %#v, want %#v", totals, want)
	}
}

func TestAggregateDailyTotalsRoundsDecimalHalves(t *testing.T) {
	entries := []models.MealEntry{
		{Food: models.Food{Protein: 16.9, Fat: 6.9}, PortionGrams: 50},
		{Food: models.Food{Protein: 13, Fat: 11}, PortionGrams: 120},
	}

	totals := AggregateDailyTotals(entries)
	if totals.Protein != 24.1 {
		t.Fatalf("expected protein 24.05 to round to 24.1, got %v", totals.Protein)
	}
	if totals.Fat != 16.7 {
		t.Fatalf("expected fat 16.65 to round to 16.7, got %v", totals.Fat)
	}
}

func TestAggregateDailyTotalsEmptyDay(t *testing.T) {
	if totals := AggregateDailyTotals(nil); totals != (DailyTotals{}) {
		t.Fatalf("expected zero totals, got %#v", totals)
	}
}

func TestComputeMacroRatios(t *testing.T) {
	if _, ok := ComputeMacroRatios(DailyTotals{}); ok {
		t.Fatal("expected no ratios without calories")
	}

	ratios, ok := ComputeMacroRatios(DailyTotals{Calories: 2000, Protein: 100, Carbs: 250, Fat: 60})
	if !ok {
		t.Fatal("expected ratios for a day with calories")
	}
	assertClose(t, "protein", ratios.Protein, 0.20)
	assertClose(t, "carbs", ratios.Carbs, 0.50)
	assertClose(t, "fat", ratios.Fat, 0.27)
}

func assertClose(t *testing.T, label string, got float64, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
}
