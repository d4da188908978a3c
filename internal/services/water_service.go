package services

import (
	"errors"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

var (
	ErrWaterAmountInvalid = errors.New("water amount invalid")
	ErrWaterEntryNotFound = errors.New("water entry not found")
)

type WaterRepository interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.WaterIntake, error)
	SumByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int, error)
	Create(entry *models.WaterIntake) error
	DeleteOwned(userID uint, entryID uint) (bool, error)
}

type WaterDay struct {
	Entries []models.WaterIntake `json:"entries"`
	TotalML int                  `json:"total_ml"`
	GoalML  int                  `json:"goal_ml"`
	Percent float64              `json:"percent"`
}

type WaterService struct {
	water    WaterRepository
	location *time.Location
}

func NewWaterService(water WaterRepository, location *time.Location) *WaterService {
	if location == nil {
		location = time.UTC
	}
	return &WaterService{water: water, location: location}
}

func (service *WaterService) Add(userID uint, day time.Time, amountML int) (models.WaterIntake, error) {
	if amountML <= 0 || amountML > MaxWaterEntryML {
		return models.WaterIntake{}, ErrWaterAmountInvalid
	}
	entry := models.WaterIntake{
		UserID:     userID,
		AmountML:   amountML,
		ConsumedOn: DateAtLocation(day, service.location),
		CreatedAt:  time.Now().UTC(),
	}
	if err := service.water.Create(&entry); err != nil {
		return models.WaterIntake{}, err
	}
	return entry, nil
}

func (service *WaterService) Day(userID uint, day time.Time) (WaterDay, error) {
	dayStart, dayEnd := DayRange(day, service.location)
	entries, err := service.water.ListByUserDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return WaterDay{}, err
	}
	total := 0
	for _, entry := range entries {
		total += entry.AmountML
	}
	return WaterDay{
		Entries: entries,
		TotalML: total,
		GoalML:  WaterGoalML,
		Percent: roundTo(percentOf(float64(total), WaterGoalML), 1),
	}, nil
}

func (service *WaterService) Delete(userID uint, entryID uint) error {
	deleted, err := service.water.DeleteOwned(userID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrWaterEntryNotFound
	}
	return nil
}
