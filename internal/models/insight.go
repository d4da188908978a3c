package models

import "time"

const (
	InsightNutrition   = "nutrition"
	InsightHydration   = "hydration"
	InsightBalance     = "balance"
	InsightWarning     = "warning"
	InsightAchievement = "achievement"
)

// Insight rows are immutable after creation apart from Viewed.
type Insight struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	InsightDate     time.Time `gorm:"type:date;not null" json:"insight_date"`
	Type            string    `gorm:"not null" json:"type"`
	Rule            string    `gorm:"not null" json:"rule"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	Recommendation  string    `json:"recommendation"`
	ConfidenceScore float64   `gorm:"not null" json:"confidence_score"`
	Viewed          bool      `gorm:"not null;default:false" json:"viewed"`
	CreatedAt       time.Time `json:"created_at"`
}
