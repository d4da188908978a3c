package services

import (
	"errors"
	"time"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
	"gorm.io/gorm"
)

var errStubFailure = errors.New("stub failure")

type mealRepositoryStub struct {
	entries []models.MealEntry
	listErr error
	nextID  uint
}

func (stub *mealRepositoryStub) ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.MealEntry, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.MealEntry, 0)
	for _, entry := range stub.entries {
		if entry.UserID == userID && !entry.ConsumedOn.Before(dayStart) && entry.ConsumedOn.Before(dayEnd) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (stub *mealRepositoryStub) Create(entry *models.MealEntry) error {
	stub.nextID++
	entry.ID = stub.nextID
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *mealRepositoryStub) DeleteOwned(userID uint, entryID uint) (bool, error) {
	for index, entry := range stub.entries {
		if entry.ID == entryID && entry.UserID == userID {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type waterRepositoryStub struct {
	entries []models.WaterIntake
	sumErr  error
	nextID  uint
}

func (stub *waterRepositoryStub) inRange(entry models.WaterIntake, userID uint, dayStart time.Time, dayEnd time.Time) bool {
	return entry.UserID == userID && !entry.ConsumedOn.Before(dayStart) && entry.ConsumedOn.Before(dayEnd)
}

func (stub *waterRepositoryStub) ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.WaterIntake, error) {
	result := make([]models.WaterIntake, 0)
	for _, entry := range stub.entries {
		if stub.inRange(entry, userID, dayStart, dayEnd) {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (stub *waterRepositoryStub) SumByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (int, error) {
	if stub.sumErr != nil {
		return 0, stub.sumErr
	}
	total := 0
	for _, entry := range stub.entries {
		if stub.inRange(entry, userID, dayStart, dayEnd) {
			total += entry.AmountML
		}
	}
	return total, nil
}

func (stub *waterRepositoryStub) Create(entry *models.WaterIntake) error {
	stub.nextID++
	entry.ID = stub.nextID
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *waterRepositoryStub) DeleteOwned(userID uint, entryID uint) (bool, error) {
	for index, entry := range stub.entries {
		if entry.ID == entryID && entry.UserID == userID {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type insightRepositoryStub struct {
	replaced     []models.Insight
	replaceCalls int
	viewed       map[uint]bool
}

func (stub *insightRepositoryStub) ReplaceForDay(userID uint, dayStart time.Time, dayEnd time.Time, insights []models.Insight) error {
	stub.replaceCalls++
	stub.replaced = insights
	return nil
}

func (stub *insightRepositoryStub) ListByUser(userID uint, onlyUnviewed bool, limit int) ([]models.Insight, error) {
	return stub.replaced, nil
}

func (stub *insightRepositoryStub) SetViewed(userID uint, insightID uint, viewed bool) (bool, error) {
	if _, ok := stub.viewed[insightID]; !ok {
		return false, nil
	}
	stub.viewed[insightID] = viewed
	return true, nil
}

type foodRepositoryStub struct {
	foods  []models.Food
	nextID uint
}

func (stub *foodRepositoryStub) visible(food models.Food, userID uint) bool {
	return food.OwnerUserID == nil || *food.OwnerUserID == userID
}

func (stub *foodRepositoryStub) SearchVisible(userID uint, query string, limit int) ([]models.Food, error) {
	result := make([]models.Food, 0)
	for _, food := range stub.foods {
		if stub.visible(food, userID) {
			result = append(result, food)
		}
	}
	return result, nil
}

func (stub *foodRepositoryStub) FindVisible(userID uint, foodID uint) (models.Food, bool, error) {
	for _, food := range stub.foods {
		if food.ID == foodID && stub.visible(food, userID) {
			return food, true, nil
		}
	}
	return models.Food{}, false, nil
}

func (stub *foodRepositoryStub) Create(food *models.Food) error {
	stub.nextID++
	food.ID = stub.nextID
	stub.foods = append(stub.foods, *food)
	return nil
}

func (stub *foodRepositoryStub) delete(match func(models.Food) bool) bool {
	for index, food := range stub.foods {
		if match(food) {
			stub.foods = append(stub.foods[:index], stub.foods[index+1:]...)
			return true
		}
	}
	return false
}

func (stub *foodRepositoryStub) DeleteOwned(userID uint, foodID uint) (bool, error) {
	return stub.delete(func(food models.Food) bool {
		return food.ID == foodID && food.OwnerUserID != nil && *food.OwnerUserID == userID
	}), nil
}

func (stub *foodRepositoryStub) DeleteGlobal(foodID uint) (bool, error) {
	return stub.delete(func(food models.Food) bool {
		return food.ID == foodID && food.OwnerUserID == nil
	}), nil
}

type userRepositoryStub struct {
	users  map[uint]models.User
	nextID uint
}

func newUserRepositoryStub() *userRepositoryStub {
	return &userRepositoryStub{users: make(map[uint]models.User)}
}

func (stub *userRepositoryStub) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := stub.FindByNormalizedEmail(email)
	return err == nil, nil
}

func (stub *userRepositoryStub) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *userRepositoryStub) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *userRepositoryStub) Create(user *models.User) error {
	stub.nextID++
	user.ID = stub.nextID
	stub.users[user.ID] = *user
	return nil
}

func (stub *userRepositoryStub) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	user := stub.users[userID]
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	stub.users[userID] = user
	return nil
}

func (stub *userRepositoryStub) UpdateRole(userID uint, role string) error {
	user := stub.users[userID]
	user.Role = role
	stub.users[userID] = user
	return nil
}

func (stub *userRepositoryStub) UpdateByID(userID uint, updates map[string]any) error {
	user, ok := stub.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "display_name":
			user.DisplayName = value.(string)
		case "gender":
			user.Gender = value.(string)
		case "activity_level":
			user.ActivityLevel = value.(string)
		case "goal":
			user.Goal = value.(string)
		case "weight_kg":
			user.WeightKG = value.(float64)
		case "height_cm":
			user.HeightCM = value.(float64)
		case "language":
			user.Language = value.(string)
		case "birth_date":
			if value == nil {
				user.BirthDate = nil
			} else {
				birthDate := value.(time.Time)
				user.BirthDate = &birthDate
			}
		}
	}
	stub.users[userID] = user
	return nil
}
