package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

const maxProfileDisplayNameLength = 64

var (
	ErrProfileDisplayNameTooLong = errors.New("profile display name too long")
	ErrProfileInvalidWeight      = errors.New("profile weight invalid")
	ErrProfileInvalidHeight      = errors.New("profile height invalid")
	ErrProfileInvalidBirthDate   = errors.New("profile birth date invalid")
	ErrProfileInvalidLanguage    = errors.New("profile language invalid")
)

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type LanguageSupport interface {
	IsSupported(raw string) bool
	NormalizeLanguage(raw string) string
}

// ProfileUpdate carries a partial profile change; nil fields are untouched.
type ProfileUpdate struct {
	DisplayName   *string  `json:"display_name"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
	WeightKG      *float64 `json:"weight_kg"`
	HeightCM      *float64 `json:"height_cm"`
	BirthDate     *string  `json:"birth_date"`
	Language      *string  `json:"language"`
}

type ProfileService struct {
	users     ProfileUserRepository
	languages LanguageSupport
	now       func() time.Time
}

func NewProfileService(users ProfileUserRepository, languages LanguageSupport) *ProfileService {
	return &ProfileService{users: users, languages: languages, now: time.Now}
}

func (service *ProfileService) Load(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *ProfileService) Update(userID uint, update ProfileUpdate) (models.User, error) {
	updates, err := service.NormalizeProfileUpdate(update)
	if err != nil {
		return models.User{}, err
	}
	if len(updates) > 0 {
		if err := service.users.UpdateByID(userID, updates); err != nil {
			return models.User{}, err
		}
	}
	return service.users.FindByID(userID)
}

// NormalizeProfileUpdate validates update and maps it to column updates.
func (service *ProfileService) NormalizeProfileUpdate(update ProfileUpdate) (map[string]any, error) {
	updates := map[string]any{}

	if update.DisplayName != nil {
		displayName := strings.TrimSpace(*update.DisplayName)
		if utf8.RuneCountInString(displayName) > maxProfileDisplayNameLength {
			return nil, ErrProfileDisplayNameTooLong
		}
		updates["display_name"] = displayName
	}
	if update.Gender != nil {
		gender, err := NormalizeGender(*update.Gender)
		if err != nil {
			return nil, err
		}
		updates["gender"] = gender
	}
	if update.ActivityLevel != nil {
		activity, err := NormalizeActivityLevel(*update.ActivityLevel)
		if err != nil {
			return nil, err
		}
		updates["activity_level"] = activity
	}
	if update.Goal != nil {
		goal, err := NormalizeGoal(*update.Goal)
		if err != nil {
			return nil, err
		}
		updates["goal"] = goal
	}
	if update.WeightKG != nil {
		if *update.WeightKG < 0 || *update.WeightKG > 500 {
			return nil, ErrProfileInvalidWeight
		}
		updates["weight_kg"] = *update.WeightKG
	}
	if update.HeightCM != nil {
		if *update.HeightCM < 0 || *update.HeightCM > 300 {
			return nil, ErrProfileInvalidHeight
		}
		updates["height_cm"] = *update.HeightCM
	}
	if update.BirthDate != nil {
		raw := strings.TrimSpace(*update.BirthDate)
		if raw == "" {
			updates["birth_date"] = nil
		} else {
			birthDate, err := time.Parse(dayLayout, raw)
			if err != nil {
				return nil, ErrProfileInvalidBirthDate
			}
			today := DateAtLocation(service.now(), time.UTC)
			if birthDate.After(today) || birthDate.Before(today.AddDate(-120, 0, 0)) {
				return nil, ErrProfileInvalidBirthDate
			}
			updates["birth_date"] = birthDate
		}
	}
	if update.Language != nil {
		raw := strings.TrimSpace(*update.Language)
		if service.languages == nil || !service.languages.IsSupported(raw) {
			return nil, ErrProfileInvalidLanguage
		}
		updates["language"] = service.languages.NormalizeLanguage(raw)
	}

	return updates, nil
}
