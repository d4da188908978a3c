package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

const (
	maxPortionGrams = 5000
	maxMealNotes    = 500
)

var (
	ErrMealNotFound       = errors.New("meal entry not found")
	ErrMealInvalidPortion = errors.New("meal portion invalid")
	ErrMealInvalidType    = errors.New("meal type invalid")
	ErrMealNotesTooLong   = errors.New("meal notes too long")
)

type MealRepository interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MealEntry, error)
	Create(entry *models.MealEntry) error
	DeleteOwned(userID uint, entryID uint) (bool, error)
}

type MealFoodLookup interface {
	FindVisible(userID uint, foodID uint) (models.Food, bool, error)
}

type MealInput struct {
	FoodID       uint    `json:"food_id"`
	MealType     string  `json:"meal_type"`
	PortionGrams float64 `json:"portion_grams"`
	Notes        string  `json:"notes"`
}

type MealService struct {
	meals    MealRepository
	foods    MealFoodLookup
	location *time.Location
}

func NewMealService(meals MealRepository, foods MealFoodLookup, location *time.Location) *MealService {
	if location == nil {
		location = time.UTC
	}
	return &MealService{meals: meals, foods: foods, location: location}
}

func (service *MealService) Log(userID uint, day time.Time, input MealInput) (models.MealEntry, error) {
	mealType, err := NormalizeMealType(input.MealType)
	if err != nil {
		return models.MealEntry{}, err
	}
	if input.PortionGrams <= 0 || input.PortionGrams > maxPortionGrams {
		return models.MealEntry{}, ErrMealInvalidPortion
	}
	notes := strings.TrimSpace(input.Notes)
	if utf8.RuneCountInString(notes) > maxMealNotes {
		return models.MealEntry{}, ErrMealNotesTooLong
	}

	food, found, err := service.foods.FindVisible(userID, input.FoodID)
	if err != nil {
		return models.MealEntry{}, err
	}
	if !found {
		return models.MealEntry{}, ErrFoodNotFound
	}

	entry := models.MealEntry{
		UserID:       userID,
		FoodID:       food.ID,
		MealType:     mealType,
		PortionGrams: input.PortionGrams,
		ConsumedOn:   DateAtLocation(day, service.location),
		Notes:        notes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := service.meals.Create(&entry); err != nil {
		return models.MealEntry{}, err
	}
	entry.Food = food
	return entry, nil
}

func (service *MealService) ListForDay(userID uint, day time.Time) ([]models.MealEntry, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	return service.meals.ListByUserDayRange(userID, dayStart, dayEnd)
}

func (service *MealService) Delete(userID uint, entryID uint) error {
	deleted, err := service.meals.DeleteOwned(userID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMealNotFound
	}
	return nil
}

var mealTypeSynonyms = map[string]string{
	"desayuno":   models.MealBreakfast,
	"almuerzo":   models.MealLunch,
	"comida":     models.MealLunch,
	"cena":       models.MealDinner,
	"merienda":   models.MealSnack,
	"snack":      models.MealSnack,
	"refrigerio": models.MealSnack,
}

func NormalizeMealType(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := mealTypeSynonyms[value]; ok {
		value = canonical
	}
	switch value {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return value, nil
	default:
		return "", ErrMealInvalidType
	}
}
