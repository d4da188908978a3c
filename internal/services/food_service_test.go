package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/IAMAGENCY/VITALMENTEAPP-sub000/internal/models"
)

func TestValidateFoodInput(t *testing.T) {
	tests := []struct {
		name  string
		input FoodInput
		want  error
	}{
		{name: "valid", input: FoodInput{Name: " Arroz integral ", Calories: 111, Protein: 2.6, Carbs: 23, Fat: 0.9, Sugar: 0.4}},
		{name: "missing name", input: FoodInput{Name: "  "}, want: ErrFoodNameRequired},
		{name: "long name", input: FoodInput{Name: strings.Repeat("a", 121)}, want: ErrFoodNameTooLong},
		{name: "negative calories", input: FoodInput{Name: "x", Calories: -1}, want: ErrFoodInvalidValues},
		{name: "calories above pure fat", input: FoodInput{Name: "x", Calories: 901}, want: ErrFoodInvalidValues},
		{name: "macros above 100g", input: FoodInput{Name: "x", Protein: 50, Carbs: 40, Fat: 20}, want: ErrFoodInvalidValues},
		{name: "sugar above carbs", input: FoodInput{Name: "x", Carbs: 5, Sugar: 6}, want: ErrFoodInvalidValues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			food, err := ValidateFoodInput(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == nil && food.Name != "Arroz integral" {
				t.Fatalf("expected trimmed name, got %q", food.Name)
			}
		})
	}
}

func TestFoodServiceCreateOwnership(t *testing.T) {
	foods := &foodRepositoryStub{}
	service := NewFoodService(foods)
	member := models.User{ID: 5, Role: models.RoleMember}
	admin := models.User{ID: 1, Role: models.RoleAdmin}

	custom, err := service.Create(member, FoodInput{Name: "Arepa", Calories: 220, Global: true})
	if err != nil {
		t.Fatalf("member create returned error: %v", err)
	}
	if custom.OwnerUserID == nil || *custom.OwnerUserID != member.ID {
		t.Fatalf("expected member food to stay private, got owner %v", custom.OwnerUserID)
	}

	global, err := service.Create(admin, FoodInput{Name: "Banano", Calories: 89, Global: true})
	if err != nil {
		t.Fatalf("admin create returned error: %v", err)
	}
	if global.OwnerUserID != nil {
		t.Fatalf("expected admin global food without owner, got %v", *global.OwnerUserID)
	}

	if _, err := service.Get(admin.ID, custom.ID); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("expected other users' custom food to be hidden, got %v", err)
	}
	if err := service.Delete(member, global.ID); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("expected member delete of global food to fail, got %v", err)
	}
	if err := service.Delete(admin, global.ID); err != nil {
		t.Fatalf("expected admin to delete global food, got %v", err)
	}
	if err := service.Delete(member, custom.ID); err != nil {
		t.Fatalf("expected member to delete own food, got %v", err)
	}
}
