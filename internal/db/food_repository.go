package db

import (
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

type FoodRepository struct {
	database *gorm.DB
}

func NewFoodRepository(database *gorm.DB) *FoodRepository {
	return &FoodRepository{database: database}
}

// SearchVisible returns global foods plus the user's own custom foods whose
// name contains query, ordered by name.
func (repo *FoodRepository) SearchVisible(userID uint, query string, limit int) ([]models.Food, error) {
	foods := make([]models.Food, 0)
	scope := repo.database.Where("(owner_user_id IS NULL OR owner_user_id = ?)", userID)
	if trimmed := strings.ToLower(strings.TrimSpace(query)); trimmed != "" {
		scope = scope.Where(`lower(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(trimmed)+"%")
	}
	if limit > 0 {
		scope = scope.Limit(limit)
	}
	if err := scope.Order("name ASC, id ASC").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (repo *FoodRepository) FindVisible(userID uint, foodID uint) (models.Food, bool, error) {
	food := models.Food{}
	result := repo.database.
		Where("id = ? AND (owner_user_id IS NULL OR owner_user_id = ?)", foodID, userID).
		Limit(1).
		Find(&food)
	if result.Error != nil {
		return models.Food{}, false, result.Error
	}
	return food, result.RowsAffected > 0, nil
}

func (repo *FoodRepository) FindGlobalByName(name string) (models.Food, bool, error) {
	food := models.Food{}
	result := repo.database.
		Where("owner_user_id IS NULL AND lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Limit(1).
		Find(&food)
	if result.Error != nil {
		return models.Food{}, false, result.Error
	}
	return food, result.RowsAffected > 0, nil
}

func (repo *FoodRepository) Create(food *models.Food) error {
	return repo.database.Create(food).Error
}

func (repo *FoodRepository) DeleteOwned(userID uint, foodID uint) (bool, error) {
	result := repo.database.Where("id = ? AND owner_user_id = ?", foodID, userID).Delete(&models.Food{})
	return result.RowsAffected > 0, result.Error
}

func (repo *FoodRepository) DeleteGlobal(foodID uint) (bool, error) {
	result := repo.database.Where("id = ? AND owner_user_id IS NULL", foodID).Delete(&models.Food{})
	return result.RowsAffected > 0, result.Error
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
