package services

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

const (
	defaultExportDays = 30
	maxExportDays     = 366
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
	ErrExportRangeTooLong    = errors.New("export range too long")
)

var ExportCSVHeaders = []string{
	"Date",
	"Meal",
	"Food",
	"Brand",
	"Portion (g)",
	"Calories",
	"Protein (g)",
	"Carbs (g)",
	"Fat (g)",
	"Notes",
}

type ExportMealReader interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MealEntry, error)
}

type ExportWaterReader interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.WaterIntake, error)
}

// ExportRange covers the days From through To, both inclusive.
type ExportRange struct {
	From time.Time
	To   time.Time
}

func (rng ExportRange) bounds() (time.Time, time.Time) {
	return rng.From, rng.To.AddDate(0, 0, 1)
}

type ExportSummary struct {
	MealEntries  int    `json:"meal_entries"`
	WaterEntries int    `json:"water_entries"`
	HasData      bool   `json:"has_data"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
}

type ExportMealEntry struct {
	Date         string  `json:"date"`
	MealType     string  `json:"meal_type"`
	Food         string  `json:"food"`
	Brand        string  `json:"brand"`
	PortionGrams float64 `json:"portion_grams"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	Notes        string  `json:"notes"`
}

// Columns renders the entry in ExportCSVHeaders order.
func (entry ExportMealEntry) Columns() []string {
	return []string{
		entry.Date,
		entry.MealType,
		entry.Food,
		entry.Brand,
		formatExportNumber(entry.PortionGrams),
		formatExportNumber(entry.Calories),
		formatExportNumber(entry.Protein),
		formatExportNumber(entry.Carbs),
		formatExportNumber(entry.Fat),
		entry.Notes,
	}
}

type ExportWaterDay struct {
	Date     string `json:"date"`
	AmountML int    `json:"amount_ml"`
}

type ExportService struct {
	meals    ExportMealReader
	water    ExportWaterReader
	location *time.Location
}

func NewExportService(meals ExportMealReader, water ExportWaterReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{meals: meals, water: water, location: location}
}

// ParseRange reads optional YYYY-MM-DD bounds. A missing To means today and a
// missing From means the 30 days ending at To.
func (service *ExportService) ParseRange(rawFrom string, rawTo string, now time.Time) (ExportRange, error) {
	to := DateAtLocation(now, service.location)
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := time.ParseInLocation(dayLayout, toRaw, service.location)
		if err != nil {
			return ExportRange{}, ErrExportToDateInvalid
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(defaultExportDays - 1))
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := time.ParseInLocation(dayLayout, fromRaw, service.location)
		if err != nil {
			return ExportRange{}, ErrExportFromDateInvalid
		}
		from = parsed
	}

	if to.Before(from) {
		return ExportRange{}, ErrExportRangeInvalid
	}
	if from.AddDate(0, 0, maxExportDays).Before(to) {
		return ExportRange{}, ErrExportRangeTooLong
	}
	return ExportRange{From: from, To: to}, nil
}

func (service *ExportService) BuildMealEntries(userID uint, rng ExportRange) ([]ExportMealEntry, error) {
	start, end := rng.bounds()
	entries, err := service.meals.ListByUserDayRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportMealEntry, 0, len(entries))
	for _, entry := range entries {
		totals := AggregateDailyTotals([]models.MealEntry{entry})
		rows = append(rows, ExportMealEntry{
			Date:         FormatDay(DateAtLocation(entry.ConsumedOn, service.location)),
			MealType:     entry.MealType,
			Food:         entry.Food.Name,
			Brand:        entry.Food.Brand,
			PortionGrams: entry.PortionGrams,
			Calories:     totals.Calories,
			Protein:      totals.Protein,
			Carbs:        totals.Carbs,
			Fat:          totals.Fat,
			Notes:        entry.Notes,
		})
	}
	return rows, nil
}

// BuildWaterDays sums intake per day. Days without intake are omitted.
func (service *ExportService) BuildWaterDays(userID uint, rng ExportRange) ([]ExportWaterDay, error) {
	start, end := rng.bounds()
	intakes, err := service.water.ListByUserDayRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, intake := range intakes {
		totals[FormatDay(DateAtLocation(intake.ConsumedOn, service.location))] += intake.AmountML
	}

	days := make([]ExportWaterDay, 0, len(totals))
	for day, amount := range totals {
		days = append(days, ExportWaterDay{Date: day, AmountML: amount})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

func (service *ExportService) BuildSummary(userID uint, rng ExportRange) (ExportSummary, error) {
	start, end := rng.bounds()
	meals, err := service.meals.ListByUserDayRange(userID, start, end)
	if err != nil {
		return ExportSummary{}, err
	}
	intakes, err := service.water.ListByUserDayRange(userID, start, end)
	if err != nil {
		return ExportSummary{}, err
	}

	summary := ExportSummary{MealEntries: len(meals), WaterEntries: len(intakes)}
	days := make([]time.Time, 0, len(meals)+len(intakes))
	for _, entry := range meals {
		days = append(days, entry.ConsumedOn)
	}
	for _, intake := range intakes {
		days = append(days, intake.ConsumedOn)
	}
	if len(days) == 0 {
		return summary, nil
	}

	first, last := days[0], days[0]
	for _, day := range days[1:] {
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}
	summary.HasData = true
	summary.DateFrom = FormatDay(DateAtLocation(first, service.location))
	summary.DateTo = FormatDay(DateAtLocation(last, service.location))
	return summary, nil
}

func formatExportNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
