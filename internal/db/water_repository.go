package db

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

type WaterRepository struct {
	database *gorm.DB
}

func NewWaterRepository(database *gorm.DB) *WaterRepository {
	return &WaterRepository{database: database}
}

func (repo *WaterRepository) ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.WaterIntake, error) {
	entries := make([]models.WaterIntake, 0)
	if err := repo.database.
		Where("user_id = ? AND consumed_on >= ? AND consumed_on < ?", userID, dayStart, dayEnd).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *WaterRepository) SumByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int, error) {
	var total int64
	if err := repo.database.Model(&models.WaterIntake{}).
		Select("COALESCE(SUM(amount_ml), 0)").
		Where("user_id = ? AND consumed_on >= ? AND consumed_on < ?", userID, dayStart, dayEnd).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

func (repo *WaterRepository) Create(entry *models.WaterIntake) error {
	return repo.database.Create(entry).Error
}

func (repo *WaterRepository) DeleteOwned(userID uint, entryID uint) (bool, error) {
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.WaterIntake{})
	return result.RowsAffected > 0, result.Error
}
