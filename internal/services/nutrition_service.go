package services

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

type NutritionSummary struct {
	Date           string      `json:"date"`
	Totals         DailyTotals `json:"totals"`
	CalorieGoal    int         `json:"calorie_goal"`
	CaloriePercent float64     `json:"calorie_percent"`
	MacroRatios    MacroRatios `json:"macro_ratios"`
	ProteinBand    MacroBand   `json:"protein_band"`
	CarbsBand      MacroBand   `json:"carbs_band"`
	FatBand        MacroBand   `json:"fat_band"`
	WaterML        int         `json:"water_ml"`
	WaterGoalML    int         `json:"water_goal_ml"`
	WaterPercent   float64     `json:"water_percent"`
	EntryCount     int         `json:"entry_count"`
}

type NutritionService struct {
	meals    InsightMealRepository
	water    InsightWaterRepository
	location *time.Location
}

func NewNutritionService(meals InsightMealRepository, water InsightWaterRepository, location *time.Location) *NutritionService {
	if location == nil {
		location = time.UTC
	}
	return &NutritionService{meals: meals, water: water, location: location}
}

func (service *NutritionService) Summary(user models.User, day time.Time) (NutritionSummary, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	entries, err := service.meals.ListByUserDayRange(user.ID, dayStart, dayEnd)
	if err != nil {
		return NutritionSummary{}, err
	}
	waterML, err := service.water.SumByUserDayRange(user.ID, dayStart, dayEnd)
	if err != nil {
		return NutritionSummary{}, err
	}

	totals := AggregateDailyTotals(entries)
	goal := AdjustedCalorieGoal(user.ActivityLevel, user.Gender, user.Goal)
	ratios, _ := ComputeMacroRatios(totals)

	return NutritionSummary{
		Date:           FormatDay(dayStart),
		Totals:         totals,
		CalorieGoal:    goal,
		CaloriePercent: roundTo(percentOf(totals.Calories, float64(goal)), 1),
		MacroRatios: MacroRatios{
			Protein: roundTo(ratios.Protein, 3),
			Carbs:   roundTo(ratios.Carbs, 3),
			Fat:     roundTo(ratios.Fat, 3),
		},
		ProteinBand:  ProteinBand,
		CarbsBand:    CarbsBand,
		FatBand:      FatBand,
		WaterML:      waterML,
		WaterGoalML:  WaterGoalML,
		WaterPercent: roundTo(percentOf(float64(waterML), WaterGoalML), 1),
		EntryCount:   len(entries),
	}, nil
}
