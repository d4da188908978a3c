package models

import "time"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	MindfulnessMeditation = "meditation"
	MindfulnessBreathing  = "breathing"
	MindfulnessArticle    = "article"
	MindfulnessAudio      = "audio"
)

type Supplement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Dosage      string    `json:"dosage"`
	Timing      string    `json:"timing"`
	CreatedAt   time.Time `json:"created_at"`
}

type WorkoutLink struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null" json:"title"`
	URL             string    `gorm:"column:url;not null;uniqueIndex" json:"url"`
	Category        string    `gorm:"not null;index" json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Difficulty      string    `gorm:"not null;default:beginner" json:"difficulty"`
	CreatedAt       time.Time `json:"created_at"`
}

type MindfulnessResource struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"not null;uniqueIndex" json:"title"`
	Description     string    `json:"description"`
	Kind            string    `gorm:"not null;index" json:"kind"`
	URL             string    `gorm:"column:url" json:"url"`
	DurationMinutes int       `json:"duration_minutes"`
	Premium         bool      `gorm:"not null;default:false" json:"premium"`
	CreatedAt       time.Time `json:"created_at"`
}

type NutritionPlan struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;uniqueIndex" json:"name"`
	Description   string    `json:"description"`
	Goal          string    `gorm:"not null;index" json:"goal"`
	DailyCalories int       `json:"daily_calories"`
	ProteinPct    int       `json:"protein_pct"`
	CarbsPct      int       `json:"carbs_pct"`
	FatPct        int       `json:"fat_pct"`
	Premium       bool      `gorm:"not null;default:false" json:"premium"`
	CreatedAt     time.Time `json:"created_at"`
}
