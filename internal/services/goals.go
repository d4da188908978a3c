package services

import (
	"math"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

const (
	DefaultCalorieGoal = 2000
	WaterGoalML        = 2000
	MaxWaterEntryML    = 5000
)

const (
	proteinKcalPerGram = 4.0
	carbsKcalPerGram   = 4.0
	fatKcalPerGram     = 9.0
)

var calorieGoals = map[string]map[string]int{
	models.ActivitySedentary:  {models.GenderMale: 2200, models.GenderFemale: 1800},
	models.ActivityLight:      {models.GenderMale: 2400, models.GenderFemale: 2000},
	models.ActivityModerate:   {models.GenderMale: 2600, models.GenderFemale: 2200},
	models.ActivityActive:     {models.GenderMale: 2800, models.GenderFemale: 2400},
	models.ActivityVeryActive: {models.GenderMale: 3000, models.GenderFemale: 2600},
}

type MacroBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (band MacroBand) Contains(ratio float64) bool {
	return ratio >= band.Min && ratio <= band.Max
}

var (
	ProteinBand = MacroBand{Min: 0.10, Max: 0.35}
	CarbsBand   = MacroBand{Min: 0.45, Max: 0.65}
	FatBand     = MacroBand{Min: 0.20, Max: 0.35}
)

// MuscleGainProteinRatio is the protein share below which a muscle gain goal
// gets an extra nudge.
const MuscleGainProteinRatio = 0.20

// CalorieGoal looks up the daily calorie goal for an activity level and
// gender. Unknown or missing keys fall back to DefaultCalorieGoal.
func CalorieGoal(activityLevel string, gender string) int {
	byGender, ok := calorieGoals[activityLevel]
	if !ok {
		return DefaultCalorieGoal
	}
	goal, ok := byGender[gender]
	if !ok {
		return DefaultCalorieGoal
	}
	return goal
}

func AdjustedCalorieGoal(activityLevel string, gender string, goal string) int {
	base := float64(CalorieGoal(activityLevel, gender))
	switch goal {
	case models.GoalLoseWeight:
		return int(math.Round(base * 0.85))
	case models.GoalGainMuscle:
		return int(math.Round(base * 1.10))
	default:
		return int(base)
	}
}

// percentOf keeps band edges exact: 2860 of 2600 is 110, not 110.00000000000001.
func percentOf(value float64, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return snapFloat(value * 100 / goal)
}
