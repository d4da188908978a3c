package db

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

type MealRepository struct {
	database *gorm.DB
}

func NewMealRepository(database *gorm.DB) *MealRepository {
	return &MealRepository{database: database}
}

func (repo *MealRepository) ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MealEntry, error) {
	entries := make([]models.MealEntry, 0)
	if err := repo.database.
		Preload("Food").
		Where("user_id = ? AND consumed_on >= ? AND consumed_on < ?", userID, dayStart, dayEnd).
		Order("consumed_on ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *MealRepository) Create(entry *models.MealEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *MealRepository) DeleteOwned(userID uint, entryID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.MealEntry{})
	return result.RowsAffected > 0, result.Error
}
