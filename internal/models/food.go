package models

import "time"

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Food nutrient values are expressed per 100 g.
type Food struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Brand       string    `json:"brand"`
	Calories    float64   `gorm:"not null;default:0" json:"calories"`
	Protein     float64   `gorm:"not null;default:0" json:"protein"`
	Carbs       float64   `gorm:"not null;default:0" json:"carbs"`
	Fat         float64   `gorm:"not null;default:0" json:"fat"`
	Fiber       float64   `gorm:"not null;default:0" json:"fiber"`
	Sugar       float64   `gorm:"not null;default:0" json:"sugar"`
	OwnerUserID *uint     `gorm:"index" json:"owner_user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type MealEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_meal_entries_user_day" json:"user_id"`
	FoodID       uint      `gorm:"not null" json:"food_id"`
	Food         Food      `gorm:"foreignKey:FoodID" json:"food"`
	MealType     string    `gorm:"not null" json:"meal_type"`
	PortionGrams float64   `gorm:"not null" json:"portion_grams"`
	ConsumedOn   time.Time `gorm:"type:date;not null;index:idx_meal_entries_user_day" json:"consumed_on"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type WaterIntake struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_water_intakes_user_day" json:"user_id"`
	AmountML   int       `gorm:"column:amount_ml;not null" json:"amount_ml"`
	ConsumedOn time.Time `gorm:"type:date;not null;index:idx_water_intakes_user_day" json:"consumed_on"`
	CreatedAt  time.Time `json:"created_at"`
}
