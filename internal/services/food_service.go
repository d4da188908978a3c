package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

const (
	maxFoodNameLength   = 120
	maxFoodSearchLimit  = 100
	maxCaloriesPer100g  = 900
	defaultSearchLimit  = 25
	maxMacroGramsPer100 = 100
)

var (
	ErrFoodNotFound      = errors.New("food not found")
	ErrFoodNameRequired  = errors.New("food name required")
	ErrFoodNameTooLong   = errors.New("food name too long")
	ErrFoodInvalidValues = errors.New("food nutrient values invalid")
)

type FoodRepository interface {
	SearchVisible(userID uint, query string, limit int) ([]models.Food, error)
	FindVisible(userID uint, foodID uint) (models.Food, bool, error)
	Create(food *models.Food) error
	DeleteOwned(userID uint, foodID uint) (bool, error)
	DeleteGlobal(foodID uint) (bool, error)
}

type FoodInput struct {
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Global   bool    `json:"global"`
}

type FoodService struct {
	foods FoodRepository
}

func NewFoodService(foods FoodRepository) *FoodService {
	return &FoodService{foods: foods}
}

func (service *FoodService) Search(userID uint, query string, limit int) ([]models.Food, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxFoodSearchLimit {
		limit = maxFoodSearchLimit
	}
	return service.foods.SearchVisible(userID, query, limit)
}

func (service *FoodService) Get(userID uint, foodID uint) (models.Food, error) {
	food, found, err := service.foods.FindVisible(userID, foodID)
	if err != nil {
		return models.Food{}, err
	}
	if !found {
		return models.Food{}, ErrFoodNotFound
	}
	return food, nil
}

// Create stores a custom food owned by user. Admins may add to the global
// catalog by setting Global.
func (service *FoodService) Create(user models.User, input FoodInput) (models.Food, error) {
	food, err := ValidateFoodInput(input)
	if err != nil {
		return models.Food{}, err
	}
	if !(input.Global && user.Role == models.RoleAdmin) {
		ownerID := user.ID
		food.OwnerUserID = &ownerID
	}
	if err := service.foods.Create(&food); err != nil {
		return models.Food{}, err
	}
	return food, nil
}

func (service *FoodService) Delete(user models.User, foodID uint) error {
	deleted, err := service.foods.DeleteOwned(user.ID, foodID)
	if err != nil {
		return err
	}
	if !deleted && user.Role == models.RoleAdmin {
		deleted, err = service.foods.DeleteGlobal(foodID)
		if err != nil {
			return err
		}
	}
	if !deleted {
		return ErrFoodNotFound
	}
	return nil
}

func ValidateFoodInput(input FoodInput) (models.Food, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Food{}, ErrFoodNameRequired
	}
	if utf8.RuneCountInString(name) > maxFoodNameLength {
		return models.Food{}, ErrFoodNameTooLong
	}

	for _, value := range []float64{input.Calories, input.Protein, input.Carbs, input.Fat, input.Fiber, input.Sugar} {
		if value < 0 {
			return models.Food{}, ErrFoodInvalidValues
		}
	}
	if input.Calories > maxCaloriesPer100g {
		return models.Food{}, ErrFoodInvalidValues
	}
	if input.Protein+input.Carbs+input.Fat > maxMacroGramsPer100 {
		return models.Food{}, ErrFoodInvalidValues
	}
	if input.Sugar > input.Carbs || input.Fiber > maxMacroGramsPer100 {
		return models.Food{}, ErrFoodInvalidValues
	}

	return models.Food{
		Name:     name,
		Brand:    strings.TrimSpace(input.Brand),
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Fiber:    input.Fiber,
		Sugar:    input.Sugar,
	}, nil
}
