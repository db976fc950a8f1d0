package domain

import (
	"context"
	"time"
)

// MealType classifies a meal.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether t is a known meal type.
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Meal represents a single logged meal.
type Meal struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Type         MealType  `json:"mealType"`
	EatenAt      time.Time `json:"eatenAt"`
	Name         string    `json:"name"`
	Calories     *int      `json:"calories"`
	ProteinGrams *float64  `json:"proteinGrams"`
	CarbsGrams   *float64  `json:"carbsGrams"`
	FatGrams     *float64  `json:"fatGrams"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MealRepository is the port for meal persistence.
type MealRepository interface {
	AddMeal(ctx context.Context, userID int64, m Meal) (int64, error)
	DeleteMeal(ctx context.Context, userID int64, id int64) (bool, error)
	ListMeals(ctx context.Context, userID int64, from, to time.Time) ([]Meal, error)
	ListRecentMeals(ctx context.Context, userID int64, limit int) ([]Meal, error)
	// LastLoggedMeal returns the meal with the highest ID, or nil.
	LastLoggedMeal(ctx context.Context, userID int64) (*Meal, error)
}
