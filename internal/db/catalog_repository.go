package db

import (
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository struct {
	database *gorm.DB
}

func NewCatalogRepository(database *gorm.DB) *CatalogRepository {
	return &CatalogRepository{database: database}
}

func (repo *CatalogRepository) ListSupplements() ([]models.Supplement, error) {
	items := make([]models.Supplement, 0)
	if err := repo.database.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *CatalogRepository) ListWorkoutLinks(category string) ([]models.WorkoutLink, error) {
	items := make([]models.WorkoutLink, 0)
	query := repo.database.Model(&models.WorkoutLink{})
	if category = strings.TrimSpace(category); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category ASC, title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *CatalogRepository) ListMindfulnessResources(kind string, includePremium bool) ([]models.MindfulnessResource, error) {
	items := make([]models.MindfulnessResource, 0)
	query := repo.database.Model(&models.MindfulnessResource{})
	if kind = strings.TrimSpace(kind); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if !includePremium {
		query = query.Where("premium = ?", false)
	}
	if err := query.Order("title ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *CatalogRepository) ListNutritionPlans(goal string, includePremium bool) ([]models.NutritionPlan, error) {
	items := make([]models.NutritionPlan, 0)
	query := repo.database.Model(&models.NutritionPlan{})
	if goal = strings.TrimSpace(goal); goal != "" {
		query = query.Where("goal = ?", goal)
	}
	if !includePremium {
		query = query.Where("premium = ?", false)
	}
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *CatalogRepository) CreateSupplement(item *models.Supplement) error {
	return repo.database.Create(item).Error
}

func (repo *CatalogRepository) CreateWorkoutLink(item *models.WorkoutLink) error {
	return repo.database.Create(item).Error
}

func (repo *CatalogRepository) CreateMindfulnessResource(item *models.MindfulnessResource) error {
	return repo.database.Create(item).Error
}

func (repo *CatalogRepository) CreateNutritionPlan(item *models.NutritionPlan) error {
	return repo.database.Create(item).Error
}

// Seed inserts every item whose natural key is not present yet and reports
// how many rows were added.
func (repo *CatalogRepository) Seed(
	supplements []models.Supplement,
	workouts []models.WorkoutLink,
	resources []models.MindfulnessResource,
	plans []models.NutritionPlan,
) (int64, error) {
	var inserted int64
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		batches := []struct {
			column string
			rows   any
			size   int
		}{
			{column: "name", rows: &supplements, size: len(supplements)},
			{column: "url", rows: &workouts, size: len(workouts)},
			{column: "title", rows: &resources, size: len(resources)},
			{column: "name", rows: &plans, size: len(plans)},
		}
		for _, batch := range batches {
			if batch.size == 0 {
				continue
			}
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: batch.column}},
				DoNothing: true,
			}).Create(batch.rows)
			if result.Error != nil {
				return result.Error
			}
			inserted += result.RowsAffected
		}
		return nil
	})
	return inserted, err
}

func (repo *CatalogRepository) DeleteSupplement(id uint) (bool, error) {
	result := repo.database.Delete(&models.Supplement{}, id)
	return result.RowsAffected > 0, result.Error
}

func (repo *CatalogRepository) DeleteWorkoutLink(id uint) (bool, error) {
	result := repo.database.Delete(&models.WorkoutLink{}, id)
	return result.RowsAffected > 0, result.Error
}

func (repo *CatalogRepository) DeleteMindfulnessResource(id uint) (bool, error) {
	result := repo.database.Delete(&models.MindfulnessResource{}, id)
	return result.RowsAffected > 0, result.Error
}

func (repo *CatalogRepository) DeleteNutritionPlan(id uint) (bool, error) {
	result := repo.database.Delete(&models.NutritionPlan{}, id)
	return result.RowsAffected > 0, result.Error
}
