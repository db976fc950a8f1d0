package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack/internal/app"
	"healthtrack/internal/domain"
	"healthtrack/internal/stats"
)

func TestExerciseService_Record(t *testing.T) {
	start := time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)
	repo := &mockExerciseRepo{
		addFn: func(_ context.Context, _ int64, e domain.Exercise) (int64, error) {
			assert.InDelta(t, 45.0, e.DurationMinutes, 1e-9)
			return 11, nil
		},
	}
	svc := app.NewExerciseService(repo).WithClock(fixedClock(now))

	got, err := svc.Record(context.Background(), 2, app.ExerciseInput{
		Type:       domain.ExerciseRunning,
		StartTime:  start,
		EndTime:    start.Add(45 * time.Minute),
		DistanceKm: fp(8.2),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.Equal(t, int64(2), got.UserID)
}

func TestExerciseService_Record_Validation(t *testing.T) {
	start := time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   app.ExerciseInput
	}{
		{"unknown type", app.ExerciseInput{Type: "skydiving", StartTime: start, EndTime: start.Add(time.Hour)}},
		{"missing times", app.ExerciseInput{Type: domain.ExerciseYoga}},
		{"end before start", app.ExerciseInput{Type: domain.ExerciseYoga, StartTime: start, EndTime: start.Add(-time.Minute)}},
		{"too long", app.ExerciseInput{Type: domain.ExerciseWalking, StartTime: start, EndTime: start.Add(25 * time.Hour)}},
		{"negative distance", app.ExerciseInput{Type: domain.ExerciseCycling, StartTime: start, EndTime: start.Add(time.Hour), DistanceKm: fp(-1)}},
		{"negative calories", app.ExerciseInput{Type: domain.ExerciseCycling, StartTime: start, EndTime: start.Add(time.Hour), CaloriesBurned: ip(-5)}},
		{"future start", app.ExerciseInput{Type: domain.ExerciseRunning, StartTime: now.Add(10 * time.Minute), EndTime: now.Add(time.Hour)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewExerciseService(&mockExerciseRepo{}).WithClock(fixedClock(now))
			_, err := svc.Record(context.Background(), 1, tt.in)
			assert.ErrorIs(t, err, app.ErrValidation)
		})
	}
}

func TestExerciseService_Record_AllowsClockSkew(t *testing.T) {
	svc := app.NewExerciseService(&mockExerciseRepo{}).WithClock(fixedClock(now))
	_, err := svc.Record(context.Background(), 1, app.ExerciseInput{
		Type:      domain.ExerciseWalking,
		StartTime: now.Add(2 * time.Minute),
		EndTime:   now.Add(30 * time.Minute),
	})
	assert.NoError(t, err)
}

func TestExerciseService_Summary(t *testing.T) {
	var from time.Time
	repo := &mockExerciseRepo{
		listFn: func(_ context.Context, _ int64, f, _ time.Time) ([]domain.Exercise, error) {
			from = f
			return []domain.Exercise{
				{ID: 1, Type: domain.ExerciseRunning, StartTime: now.Add(-48 * time.Hour), DurationMinutes: 30, DistanceKm: fp(5), CaloriesBurned: ip(300)},
				{ID: 2, Type: domain.ExerciseYoga, StartTime: now.Add(-time.Hour), DurationMinutes: 60},
			}, nil
		},
	}
	svc := app.NewExerciseService(repo).WithClock(fixedClock(now))

	summary, err := svc.Summary(context.Background(), 1, stats.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, 2, summary.TotalExercises)
	assert.Equal(t, 300, summary.TotalCalories)
	assert.InDelta(t, 90.0, summary.TotalMinutes, 1e-9)
	assert.Equal(t, 1, summary.ByType[domain.ExerciseYoga])
}

func TestExerciseService_Delete_NotFound(t *testing.T) {
	repo := &mockExerciseRepo{
		deleteFn: func(context.Context, int64, int64) (bool, error) { return false, nil },
	}
	assert.ErrorIs(t, app.NewExerciseService(repo).Delete(context.Background(), 1, 1), app.ErrNotFound)
}
