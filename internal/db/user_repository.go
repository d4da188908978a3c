package db

import (
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

// normalizedEmailColumn matches the idx_users_email_normalized expression.
const normalizedEmailColumn = "lower(trim(email)) = ?"

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	return repo.first(repo.database.Where("id = ?", userID))
}

// FindByNormalizedEmail expects email already lower-cased and trimmed.
func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	return repo.first(repo.database.Where(normalizedEmailColumn, email))
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var found int64
	err := repo.database.Model(&models.User{}).Where(normalizedEmailColumn, email).Count(&found).Error
	return found > 0, err
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return repo.UpdateByID(userID, map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	})
}

func (repo *UserRepository) UpdateRole(userID uint, role string) error {
	return repo.UpdateByID(userID, map[string]any{"role": role})
}

// UpdateByID applies a partial update. A missing user is not an error.
func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) first(query *gorm.DB) (models.User, error) {
	var user models.User
	if err := query.First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
