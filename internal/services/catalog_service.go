package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

var (
	ErrCatalogItemNotFound   = errors.New("catalog item not found")
	ErrCatalogNameRequired   = errors.New("catalog name required")
	ErrCatalogInvalidURL     = errors.New("catalog url invalid")
	ErrCatalogInvalidKind    = errors.New("catalog kind invalid")
	ErrCatalogInvalidLevel   = errors.New("catalog difficulty invalid")
	ErrCatalogInvalidGoal    = errors.New("catalog goal invalid")
	ErrCatalogInvalidMacros  = errors.New("catalog macro split invalid")
	ErrCatalogInvalidMinutes = errors.New("catalog duration invalid")
)

type CatalogRepository interface {
	ListSupplements() ([]models.Supplement, error)
	ListWorkoutLinks(category string) ([]models.WorkoutLink, error)
	ListMindfulnessResources(kind string, includePremium bool) ([]models.MindfulnessResource, error)
	ListNutritionPlans(goal string, includePremium bool) ([]models.NutritionPlan, error)
	CreateSupplement(item *models.Supplement) error
	CreateWorkoutLink(item *models.WorkoutLink) error
	CreateMindfulnessResource(item *models.MindfulnessResource) error
	CreateNutritionPlan(item *models.NutritionPlan) error
	DeleteSupplement(id uint) (bool, error)
	DeleteWorkoutLink(id uint) (bool, error)
	DeleteMindfulnessResource(id uint) (bool, error)
	DeleteNutritionPlan(id uint) (bool, error)
}

// CatalogService serves the curated content lists. Premium mindfulness
// resources and nutrition plans are only listed for premium users.
type CatalogService struct {
	catalog CatalogRepository
}

func NewCatalogService(catalog CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (service *CatalogService) Supplements() ([]models.Supplement, error) {
	return service.catalog.ListSupplements()
}

func (service *CatalogService) WorkoutLinks(category string) ([]models.WorkoutLink, error) {
	return service.catalog.ListWorkoutLinks(strings.ToLower(strings.TrimSpace(category)))
}

func (service *CatalogService) MindfulnessResources(kind string, premium bool) ([]models.MindfulnessResource, error) {
	return service.catalog.ListMindfulnessResources(strings.ToLower(strings.TrimSpace(kind)), premium)
}

func (service *CatalogService) NutritionPlans(goal string, premium bool) ([]models.NutritionPlan, error) {
	normalizedGoal := ""
	if strings.TrimSpace(goal) != "" {
		canonical, err := NormalizeGoal(goal)
		if err != nil {
			return nil, err
		}
		normalizedGoal = canonical
	}
	return service.catalog.ListNutritionPlans(normalizedGoal, premium)
}

func (service *CatalogService) CreateSupplement(item models.Supplement) (models.Supplement, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.Supplement{}, ErrCatalogNameRequired
	}
	item.ID = 0
	if err := service.catalog.CreateSupplement(&item); err != nil {
		return models.Supplement{}, err
	}
	return item, nil
}

func (service *CatalogService) CreateWorkoutLink(item models.WorkoutLink) (models.WorkoutLink, error) {
	item.Title = strings.TrimSpace(item.Title)
	item.Category = strings.ToLower(strings.TrimSpace(item.Category))
	if item.Title == "" || item.Category == "" {
		return models.WorkoutLink{}, ErrCatalogNameRequired
	}
	if !isHTTPURL(item.URL) {
		return models.WorkoutLink{}, ErrCatalogInvalidURL
	}
	if item.DurationMinutes < 0 {
		return models.WorkoutLink{}, ErrCatalogInvalidMinutes
	}
	item.Difficulty = strings.ToLower(strings.TrimSpace(item.Difficulty))
	if item.Difficulty == "" {
		item.Difficulty = models.DifficultyBeginner
	}
	switch item.Difficulty {
	case models.DifficultyBeginner, models.DifficultyIntermediate, models.DifficultyAdvanced:
	default:
		return models.WorkoutLink{}, ErrCatalogInvalidLevel
	}
	item.ID = 0
	if err := service.catalog.CreateWorkoutLink(&item); err != nil {
		return models.WorkoutLink{}, err
	}
	return item, nil
}

func (service *CatalogService) CreateMindfulnessResource(item models.MindfulnessResource) (models.MindfulnessResource, error) {
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return models.MindfulnessResource{}, ErrCatalogNameRequired
	}
	item.Kind = strings.ToLower(strings.TrimSpace(item.Kind))
	switch item.Kind {
	case models.MindfulnessMeditation, models.MindfulnessBreathing, models.MindfulnessArticle, models.MindfulnessAudio:
	default:
		return models.MindfulnessResource{}, ErrCatalogInvalidKind
	}
	if strings.TrimSpace(item.URL) != "" && !isHTTPURL(item.URL) {
		return models.MindfulnessResource{}, ErrCatalogInvalidURL
	}
	if item.DurationMinutes < 0 {
		return models.MindfulnessResource{}, ErrCatalogInvalidMinutes
	}
	item.ID = 0
	if err := service.catalog.CreateMindfulnessResource(&item); err != nil {
		return models.MindfulnessResource{}, err
	}
	return item, nil
}

func (service *CatalogService) CreateNutritionPlan(item models.NutritionPlan) (models.NutritionPlan, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.NutritionPlan{}, ErrCatalogNameRequired
	}
	goal, err := NormalizeGoal(item.Goal)
	if err != nil {
		return models.NutritionPlan{}, ErrCatalogInvalidGoal
	}
	item.Goal = goal
	if item.DailyCalories < 0 {
		return models.NutritionPlan{}, ErrCatalogInvalidMacros
	}
	if item.ProteinPct < 0 || item.CarbsPct < 0 || item.FatPct < 0 || item.ProteinPct+item.CarbsPct+item.FatPct != 100 {
		return models.NutritionPlan{}, ErrCatalogInvalidMacros
	}
	item.ID = 0
	if err := service.catalog.CreateNutritionPlan(&item); err != nil {
		return models.NutritionPlan{}, err
	}
	return item, nil
}

func (service *CatalogService) DeleteSupplement(id uint) error {
	return catalogDeleteResult(service.catalog.DeleteSupplement(id))
}

func (service *CatalogService) DeleteWorkoutLink(id uint) error {
	return catalogDeleteResult(service.catalog.DeleteWorkoutLink(id))
}

func (service *CatalogService) DeleteMindfulnessResource(id uint) error {
	return catalogDeleteResult(service.catalog.DeleteMindfulnessResource(id))
}

func (service *CatalogService) DeleteNutritionPlan(id uint) error {
	return catalogDeleteResult(service.catalog.DeleteNutritionPlan(id))
}

func catalogDeleteResult(deleted bool, err error) error {
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCatalogItemNotFound
	}
	return nil
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
