package services

import (
	"math"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type MacroRatios struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// AggregateDailyTotals sums per-100 g nutrients scaled by portion across the
// entries. Entries must have their Food loaded.
func AggregateDailyTotals(entries []models.MealEntry) DailyTotals {
	scaled := DailyTotals{}
	for _, entry := range entries {
		scaled.Calories += entry.Food.Calories * entry.PortionGrams
		scaled.Protein += entry.Food.Protein * entry.PortionGrams
		scaled.Carbs += entry.Food.Carbs * entry.PortionGrams
		scaled.Fat += entry.Food.Fat * entry.PortionGrams
	}
	return DailyTotals{
		Calories: roundTo(scaled.Calories/100, 1),
		Protein:  roundTo(scaled.Protein/100, 1),
		Carbs:    roundTo(scaled.Carbs/100, 1),
		Fat:      roundTo(scaled.Fat/100, 1),
	}
}

// ComputeMacroRatios returns each macro's share of the day's calories. The
// second result is false when there are no calories to divide by.
func ComputeMacroRatios(totals DailyTotals) (MacroRatios, bool) {
	if totals.Calories <= 0 {
		return MacroRatios{}, false
	}
	return MacroRatios{
		Protein: snapFloat(totals.Protein * proteinKcalPerGram / totals.Calories),
		Carbs:   snapFloat(totals.Carbs * carbsKcalPerGram / totals.Calories),
		Fat:     snapFloat(totals.Fat * fatKcalPerGram / totals.Calories),
	}, true
}

// roundTo rounds half away from zero after snapping off binary noise, so
// 24.049999999999997 rounds like 24.05.
func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(snapFloat(value*scale)) / scale
}

// snapFloat drops float error below the sixth decimal.
func snapFloat(value float64) float64 {
	return math.Round(value*1e6) / 1e6
}
