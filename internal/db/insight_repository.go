package db

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

type InsightRepository struct {
	database *gorm.DB
}

func NewInsightRepository(database *gorm.DB) *InsightRepository {
	return &InsightRepository{database: database}
}

// ReplaceForDay swaps the insights stored for one user day in a single
// transaction.
func (repo *InsightRepository) ReplaceForDay(userID uint, dayStart time.Time, dayEnd time.Time, insights []models.Insight) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND insight_date >= ? AND insight_date < ?", userID, dayStart, dayEnd).
			Delete(&models.Insight{}).Error; err != nil {
			return err
		}
		if len(insights) == 0 {
			return nil
		}
		return tx.Create(&insights).Error
	})
}

func (repo *InsightRepository) ListByUser(userID uint, onlyUnviewed bool, limit int) ([]models.Insight, error) {
	insights := make([]models.Insight, 0)
	query := repo.database.Where("user_id = ?", userID)
	if onlyUnviewed {
		query = query.Where("viewed = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("insight_date DESC, id ASC").Find(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (repo *InsightRepository) SetViewed(userID uint, insightID uint, viewed bool) (bool, error) {
	result := repo.database.Model(&models.Insight{}).
		Where("id = ? AND user_id = ?", insightID, userID).
		Update("viewed", viewed)
	return result.RowsAffected > 0, result.Error
}
