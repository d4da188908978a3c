package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/metrics"
	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

var (
	ErrInsightDataUnavailable = errors.New("insight data unavailable")
	ErrInsightNotFound        = errors.New("insight not found")
)

type InsightMealRepository interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MealEntry, error)
}

type InsightWaterRepository interface {
	SumByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int, error)
}

type InsightRepository interface {
	ReplaceForDay(userID uint, dayStart time.Time, dayEnd time.Time, insights []models.Insight) error
	ListByUser(userID uint, onlyUnviewed bool, limit int) ([]models.Insight, error)
	SetViewed(userID uint, insightID uint, viewed bool) (bool, error)
}

type InsightService struct {
	meals      InsightMealRepository
	water      InsightWaterRepository
	insights   InsightRepository
	translator Translator
	location   *time.Location
}

func NewInsightService(meals InsightMealRepository, water InsightWaterRepository, insights InsightRepository, translator Translator, location *time.Location) *InsightService {
	if location == nil {
		location = time.UTC
	}
	return &InsightService{
		meals:      meals,
		water:      water,
		insights:   insights,
		translator: translator,
		location:   location,
	}
}

// GenerateForDay scores the user's day and replaces any insights previously
// stored for it. Nothing is stored when the day's data cannot be loaded.
func (service *InsightService) GenerateForDay(user models.User, day time.Time, language string) ([]models.Insight, error) {
	dayStart, dayEnd := DayRange(day, service.location)

	entries, err := service.meals.ListByUserDayRange(user.ID, dayStart, dayEnd)
	if err != nil {
		metrics.RecordInsightRun(false, nil)
		return nil, fmt.Errorf("%w: load meals: %v", ErrInsightDataUnavailable, err)
	}
	waterML, err := service.water.SumByUserDayRange(user.ID, dayStart, dayEnd)
	if err != nil {
		metrics.RecordInsightRun(false, nil)
		return nil, fmt.Errorf("%w: load water: %v", ErrInsightDataUnavailable, err)
	}

	profile := InsightProfileFromUser(user)
	if language != "" {
		profile.Language = language
	}
	drafts := GenerateInsights(AggregateDailyTotals(entries), profile, waterML, service.translator)

	insights := make([]models.Insight, 0, len(drafts))
	types := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		insights = append(insights, models.Insight{
			UserID:          user.ID,
			InsightDate:     dayStart,
			Type:            draft.Type,
			Rule:            draft.Rule,
			Title:           draft.Title,
			Description:     draft.Description,
			Recommendation:  draft.Recommendation,
			ConfidenceScore: draft.ConfidenceScore,
		})
		types = append(types, draft.Type)
	}

	if err := service.insights.ReplaceForDay(user.ID, dayStart, dayEnd, insights); err != nil {
		metrics.RecordInsightRun(false, nil)
		return nil, fmt.Errorf("store insights: %w", err)
	}
	metrics.RecordInsightRun(true, types)
	return insights, nil
}

func (service *InsightService) List(userID uint, onlyUnviewed bool, limit int) ([]models.Insight, error) {
	return service.insights.ListByUser(userID, onlyUnviewed, limit)
}

func (service *InsightService) SetViewed(userID uint, insightID uint, viewed bool) error {
	updated, err := service.insights.SetViewed(userID, insightID, viewed)
	if err != nil {
		return err
	}
	if !updated {
		return ErrInsightNotFound
	}
	return nil
}
