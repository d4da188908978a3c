package db

import (
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	database *gorm.DB
}

func NewSubscriptionRepository(database *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{database: database}
}

func (repo *SubscriptionRepository) FindByUser(userID uint) (models.Subscription, bool, error) {
	return repo.FindByUserIn(repo.database, userID)
}

// FindByUserIn runs the lookup on database, which may be an open transaction.
func (repo *SubscriptionRepository) FindByUserIn(database *gorm.DB, userID uint) (models.Subscription, bool, error) {
	subscription := models.Subscription{}
	result := database.Where("user_id = ?", userID).Limit(1).Find(&subscription)
	if result.Error != nil {
		return models.Subscription{}, false, result.Error
	}
	return subscription, result.RowsAffected > 0, nil
}

func (repo *SubscriptionRepository) Save(subscription *models.Subscription) error {
	return repo.SaveIn(repo.database, subscription)
}

func (repo *SubscriptionRepository) SaveIn(database *gorm.DB, subscription *models.Subscription) error {
	return database.Save(subscription).Error
}

// ExpireEnded flips active and canceled subscriptions whose period ended
// before now to expired.
func (repo *SubscriptionRepository) ExpireEnded(now time.Time) (int64, error) {
	result := repo.database.Model(&models.Subscription{}).
		Where("status IN ? AND current_period_end <= ?", []string{models.SubscriptionActive, models.SubscriptionCanceled}, now).
		Updates(map[string]any{
			"status":     models.SubscriptionExpired,
			"auto_renew": false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}
