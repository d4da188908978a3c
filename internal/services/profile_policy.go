package services

import (
	"errors"
	"strings"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

var (
	ErrProfileInvalidGender   = errors.New("profile gender invalid")
	ErrProfileInvalidActivity = errors.New("profile activity level invalid")
	ErrProfileInvalidGoal     = errors.New("profile goal invalid")
)

var profileSynonyms = map[string]string{
	"masculino":     models.GenderMale,
	"hombre":        models.GenderMale,
	"femenino":      models.GenderFemale,
	"mujer":         models.GenderFemale,
	"otro":          models.GenderOther,
	"sedentario":    models.ActivitySedentary,
	"ligero":        models.ActivityLight,
	"moderado":      models.ActivityModerate,
	"activo":        models.ActivityActive,
	"muy_activo":    models.ActivityVeryActive,
	"perder_peso":   models.GoalLoseWeight,
	"mantener":      models.GoalMaintain,
	"ganar_musculo": models.GoalGainMuscle,
}

func canonicalProfileValue(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.NewReplacer(" ", "_", "-", "_", "ú", "u", "í", "i").Replace(value)
	if canonical, ok := profileSynonyms[value]; ok {
		return canonical
	}
	return value
}

// NormalizeGender accepts canonical values and Spanish synonyms. An empty
// value clears the field.
func NormalizeGender(raw string) (string, error) {
	value := canonicalProfileValue(raw)
	switch value {
	case "", models.GenderMale, models.GenderFemale, models.GenderOther:
		return value, nil
	default:
		return "", ErrProfileInvalidGender
	}
}

func NormalizeActivityLevel(raw string) (string, error) {
	value := canonicalProfileValue(raw)
	switch value {
	case "", models.ActivitySedentary, models.ActivityLight, models.ActivityModerate, models.ActivityActive, models.ActivityVeryActive:
		return value, nil
	default:
		return "", ErrProfileInvalidActivity
	}
}

func NormalizeGoal(raw string) (string, error) {
	value := canonicalProfileValue(raw)
	switch value {
	case models.GoalLoseWeight, models.GoalMaintain, models.GoalGainMuscle:
		return value, nil
	default:
		return "", ErrProfileInvalidGoal
	}
}
