package db

import (
	"errors"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentAlreadyProcessed = errors.New("payment already processed")

type PaymentRepository struct {
	database *gorm.DB
}

func NewPaymentRepository(database *gorm.DB) *PaymentRepository {
	return &PaymentRepository{database: database}
}

func (repo *PaymentRepository) Create(transaction *models.PaymentTransaction) error {
	return repo.database.Create(transaction).Error
}

func (repo *PaymentRepository) FindByReference(reference string) (models.PaymentTransaction, bool, error) {
	transaction := models.PaymentTransaction{}
	result := repo.database.Where("reference = ?", reference).Limit(1).Find(&transaction)
	if result.Error != nil {
		return models.PaymentTransaction{}, false, result.Error
	}
	return transaction, result.RowsAffected > 0, nil
}

func (repo *PaymentRepository) UpdateSessionID(transactionID uint, sessionID string) error {
	return repo.database.Model(&models.PaymentTransaction{}).
		Where("id = ?", transactionID).
		Update("gateway_session_id", sessionID).Error
}

func (repo *PaymentRepository) ListByUser(userID uint) ([]models.PaymentTransaction, error) {
	transactions := make([]models.PaymentTransaction, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// Settle moves a pending transaction to its final status and, for approved
// payments, runs apply inside the same transaction. A transaction that is no
// longer pending yields ErrPaymentAlreadyProcessed.
func (repo *PaymentRepository) Settle(reference string, status string, now time.Time, apply func(tx *gorm.DB, transaction models.PaymentTransaction) error) (models.PaymentTransaction, error) {
	var settled models.PaymentTransaction
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		locked := tx
		if tx.Dialector.Name() == DriverPostgres {
			locked = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := locked.Where("reference = ?", reference).First(&settled).Error; err != nil {
			return err
		}
		if settled.Status != models.PaymentPending {
			return ErrPaymentAlreadyProcessed
		}

		settled.Status = status
		settled.ProcessedAt = &now
		if err := tx.Model(&settled).Updates(map[string]any{
			"status":       status,
			"processed_at": now,
		}).Error; err != nil {
			return err
		}

		if status == models.PaymentApproved && apply != nil {
			return apply(tx, settled)
		}
		return nil
	})
	return settled, err
}
