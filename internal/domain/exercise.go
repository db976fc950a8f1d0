package domain

import (
	"context"
	"time"
)

// ExerciseType classifies an exercise session.
type ExerciseType string

const (
	ExerciseWalking        ExerciseType = "walking"
	ExerciseRunning        ExerciseType = "running"
	ExerciseCycling        ExerciseType = "cycling"
	ExerciseSwimming       ExerciseType = "swimming"
	ExerciseWeightTraining ExerciseType = "weight_training"
	ExerciseYoga           ExerciseType = "yoga"
	ExerciseOther          ExerciseType = "other"
)

// Valid reports whether t is a known exercise type.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseWalking, ExerciseRunning, ExerciseCycling, ExerciseSwimming,
		ExerciseWeightTraining, ExerciseYoga, ExerciseOther:
		return true
	}
	return false
}

// Exercise represents a single exercise session.
type Exercise struct {
	ID              int64        `json:"id"`
	UserID          int64        `json:"userId"`
	Type            ExerciseType `json:"exerciseType"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         time.Time    `json:"endTime"`
	DurationMinutes float64      `json:"durationMinutes"`
	DistanceKm      *float64     `json:"distanceKm"`
	CaloriesBurned  *int         `json:"caloriesBurned"`
	Notes           *string      `json:"notes"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// ExerciseRepository is the port for exercise persistence.
type ExerciseRepository interface {
	AddExercise(ctx context.Context, userID int64, e Exercise) (int64, error)
	DeleteExercise(ctx context.Context, userID int64, id int64) (bool, error)
	// ListExercises returns sessions started within [from, to], oldest first.
	ListExercises(ctx context.Context, userID int64, from, to time.Time) ([]Exercise, error)
	ListRecentExercises(ctx context.Context, userID int64, limit int) ([]Exercise, error)
}
