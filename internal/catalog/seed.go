// Package catalog loads the curated starter content shipped with the binary.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/services"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var embeddedSeed []byte

type Seed struct {
	Supplements    []SupplementSeed    `yaml:"supplements"`
	Workouts       []WorkoutSeed       `yaml:"workouts"`
	Mindfulness    []MindfulnessSeed   `yaml:"mindfulness"`
	NutritionPlans []NutritionPlanSeed `yaml:"nutrition_plans"`
	Foods          []FoodSeed          `yaml:"foods"`
}

type SupplementSeed struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Dosage      string `yaml:"dosage"`
	Timing      string `yaml:"timing"`
}

type WorkoutSeed struct {
	Title           string `yaml:"title"`
	URL             string `yaml:"url"`
	Category        string `yaml:"category"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Difficulty      string `yaml:"difficulty"`
}

type MindfulnessSeed struct {
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	Kind            string `yaml:"kind"`
	URL             string `yaml:"url"`
	DurationMinutes int    `yaml:"duration_minutes"`
	Premium         bool   `yaml:"premium"`
}

type NutritionPlanSeed struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	Goal          string `yaml:"goal"`
	DailyCalories int    `yaml:"daily_calories"`
	ProteinPct    int    `yaml:"protein_pct"`
	CarbsPct      int    `yaml:"carbs_pct"`
	FatPct        int    `yaml:"fat_pct"`
	Premium       bool   `yaml:"premium"`
}

type FoodSeed struct {
	Name     string  `yaml:"name"`
	Brand    string  `yaml:"brand"`
	Calories float64 `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
	Carbs    float64 `yaml:"carbs"`
	Fat      float64 `yaml:"fat"`
	Fiber    float64 `yaml:"fiber"`
	Sugar    float64 `yaml:"sugar"`
}

type CatalogStore interface {
	Seed(supplements []models.Supplement, workouts []models.WorkoutLink, resources []models.MindfulnessResource, plans []models.NutritionPlan) (int64, error)
}

type FoodStore interface {
	FindGlobalByName(name string) (models.Food, bool, error)
	Create(food *models.Food) error
}

type Result struct {
	CatalogRows int64
	Foods       int
}

func LoadEmbedded() (Seed, error) {
	return Parse(embeddedSeed)
}

func Parse(raw []byte) (Seed, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)

	seed := Seed{}
	if err := decoder.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("decode catalog seed: %w", err)
	}
	if err := seed.validate(); err != nil {
		return Seed{}, err
	}
	return seed, nil
}

// Apply inserts every seed item that is not stored yet. Running it again is a
// no-op.
func Apply(seed Seed, catalog CatalogStore, foods FoodStore) (Result, error) {
	result := Result{}

	inserted, err := catalog.Seed(seed.supplements(), seed.workouts(), seed.resources(), seed.plans())
	if err != nil {
		return Result{}, fmt.Errorf("seed catalog: %w", err)
	}
	result.CatalogRows = inserted

	for _, item := range seed.Foods {
		food, err := services.ValidateFoodInput(item.input())
		if err != nil {
			return result, fmt.Errorf("seed food %q: %w", item.Name, err)
		}
		if _, exists, err := foods.FindGlobalByName(food.Name); err != nil {
			return result, fmt.Errorf("look up food %q: %w", food.Name, err)
		} else if exists {
			continue
		}
		if err := foods.Create(&food); err != nil {
			return result, fmt.Errorf("create food %q: %w", food.Name, err)
		}
		result.Foods++
	}
	return result, nil
}

func (seed Seed) validate() error {
	for _, item := range seed.Workouts {
		if item.Title == "" || item.URL == "" {
			return fmt.Errorf("workout seed requires title and url")
		}
	}
	for _, item := range seed.Mindfulness {
		switch item.Kind {
		case models.MindfulnessMeditation, models.MindfulnessBreathing, models.MindfulnessArticle, models.MindfulnessAudio:
		default:
			return fmt.Errorf("mindfulness seed %q has unknown kind %q", item.Title, item.Kind)
		}
	}
	for _, item := range seed.NutritionPlans {
		if _, err := services.NormalizeGoal(item.Goal); err != nil {
			return fmt.Errorf("nutrition plan seed %q: %w", item.Name, err)
		}
		if item.ProteinPct+item.CarbsPct+item.FatPct != 100 {
			return fmt.Errorf("nutrition plan seed %q macros must add up to 100", item.Name)
		}
	}
	return nil
}

func (seed Seed) supplements() []models.Supplement {
	items := make([]models.Supplement, 0, len(seed.Supplements))
	for _, item := range seed.Supplements {
		items = append(items, models.Supplement{
			Name:        item.Name,
			Description: item.Description,
			Dosage:      item.Dosage,
			Timing:      item.Timing,
		})
	}
	return items
}

func (seed Seed) workouts() []models.WorkoutLink {
	items := make([]models.WorkoutLink, 0, len(seed.Workouts))
	for _, item := range seed.Workouts {
		difficulty := item.Difficulty
		if difficulty == "" {
			difficulty = models.DifficultyBeginner
		}
		items = append(items, models.WorkoutLink{
			Title:           item.Title,
			URL:             item.URL,
			Category:        item.Category,
			DurationMinutes: item.DurationMinutes,
			Difficulty:      difficulty,
		})
	}
	return items
}

func (seed Seed) resources() []models.MindfulnessResource {
	items := make([]models.MindfulnessResource, 0, len(seed.Mindfulness))
	for _, item := range seed.Mindfulness {
		items = append(items, models.MindfulnessResource{
			Title:           item.Title,
			Description:     item.Description,
			Kind:            item.Kind,
			URL:             item.URL,
			DurationMinutes: item.DurationMinutes,
			Premium:         item.Premium,
		})
	}
	return items
}

func (seed Seed) plans() []models.NutritionPlan {
	items := make([]models.NutritionPlan, 0, len(seed.NutritionPlans))
	for _, item := range seed.NutritionPlans {
		goal, _ := services.NormalizeGoal(item.Goal)
		items = append(items, models.NutritionPlan{
			Name:          item.Name,
			Description:   item.Description,
			Goal:          goal,
			DailyCalories: item.DailyCalories,
			ProteinPct:    item.ProteinPct,
			CarbsPct:      item.CarbsPct,
			FatPct:        item.FatPct,
			Premium:       item.Premium,
		})
	}
	return items
}

func (item FoodSeed) input() services.FoodInput {
	return services.FoodInput{
		Name:     item.Name,
		Brand:    item.Brand,
		Calories: item.Calories,
		Protein:  item.Protein,
		Carbs:    item.Carbs,
		Fat:      item.Fat,
		Fiber:    item.Fiber,
		Sugar:    item.Sugar,
	}
}
