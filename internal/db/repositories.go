package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Foods         *FoodRepository
	Meals         *MealRepository
	Water         *WaterRepository
	Insights      *InsightRepository
	Catalog       *CatalogRepository
	Subscriptions *SubscriptionRepository
	Payments      *PaymentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Foods:         NewFoodRepository(database),
		Meals:         NewMealRepository(database),
		Water:         NewWaterRepository(database),
		Insights:      NewInsightRepository(database),
		Catalog:       NewCatalogRepository(database),
		Subscriptions: NewSubscriptionRepository(database),
		Payments:      NewPaymentRepository(database),
	}
}
