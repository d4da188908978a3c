package models

import "time"

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

const (
	GoalLoseWeight = "lose_weight"
	GoalMaintain   = "maintain"
	GoalGainMuscle = "gain_muscle"
)

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	Role               string     `gorm:"not null;default:member" json:"role"`
	DisplayName        string     `json:"display_name"`
	Gender             string     `json:"gender"`
	ActivityLevel      string     `json:"activity_level"`
	Goal               string     `gorm:"not null;default:maintain" json:"goal"`
	WeightKG           float64    `gorm:"column:weight_kg" json:"weight_kg"`
	HeightCM           float64    `gorm:"column:height_cm" json:"height_cm"`
	BirthDate          *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Language           string     `json:"language"`
	MustChangePassword bool       `gorm:"not null;default:false" json:"must_change_password"`
	CreatedAt          time.Time  `gorm:"not null" json:"created_at"`
}
