package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack/internal/app"
	"healthtrack/internal/domain"
)

func TestChartsService_GetVitalSeries(t *testing.T) {
	var from, to time.Time
	vitals := &mockVitalRepo{
		listFn: func(_ context.Context, _ int64, f, t2 time.Time) ([]domain.VitalSign, error) {
			from, to = f, t2
			return []domain.VitalSign{
				{ID: 1, MeasuredAt: time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC), Weight: fp(80), HeartRate: ip(70)},
				{ID: 2, MeasuredAt: time.Date(2026, 10, 19, 21, 0, 0, 0, time.UTC), Weight: fp(79)},
				{ID: 3, MeasuredAt: time.Date(2026, 10, 21, 8, 0, 0, 0, time.UTC), SystolicBP: ip(120), DiastolicBP: ip(80)},
			}, nil
		},
	}
	goals := &mockGoalRepo{
		getFn: func(context.Context, int64) (*domain.VitalSignGoal, error) {
			return &domain.VitalSignGoal{TargetWeight: fp(75), TargetHeartRate: ip(60)}, nil
		},
	}
	svc := app.NewChartsService(vitals, goals).WithClock(fixedClock(now))

	series, err := svc.GetVitalSeries(context.Background(), 1, 3, domain.UnitKg)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
	require.Len(t, series.Points, 3)
	assert.Equal(t, "2026-10-19", series.Points[0].Day)
	assert.Equal(t, 79.0, *series.Points[0].Weight)
	assert.Equal(t, 70, *series.Points[0].HeartRate)
	assert.Nil(t, series.Points[1].Weight)
	assert.Equal(t, 120, *series.Points[2].SystolicBP)
	require.NotNil(t, series.Goal)
	assert.Equal(t, 75.0, *series.Goal.Weight)
	assert.Equal(t, 60, *series.Goal.HeartRate)
}

func TestChartsService_GetVitalSeries_Pounds(t *testing.T) {
	vitals := &mockVitalRepo{
		listFn: func(context.Context, int64, time.Time, time.Time) ([]domain.VitalSign, error) {
			return []domain.VitalSign{{ID: 1, MeasuredAt: now, Weight: fp(100)}}, nil
		},
	}
	svc := app.NewChartsService(vitals, &mockGoalRepo{}).WithClock(fixedClock(now))

	series, err := svc.GetVitalSeries(context.Background(), 1, 1, domain.UnitLb)
	require.NoError(t, err)
	require.Len(t, series.Points, 1)
	assert.InDelta(t, 220.46226218, *series.Points[0].Weight, 1e-6)
	assert.Nil(t, series.Goal)
	assert.Equal(t, domain.UnitLb, series.Unit)
}

func TestChartsService_GetVitalSeries_ClampsDays(t *testing.T) {
	svc := app.NewChartsService(&mockVitalRepo{}, &mockGoalRepo{}).WithClock(fixedClock(now))

	series, err := svc.GetVitalSeries(context.Background(), 1, 0, domain.UnitKg)
	require.NoError(t, err)
	assert.Len(t, series.Points, 1)

	series, err = svc.GetVitalSeries(context.Background(), 1, 5000, domain.UnitKg)
	require.NoError(t, err)
	assert.Len(t, series.Points, 366)
}

func TestChartsService_GetVitalSeries_InvalidUnit(t *testing.T) {
	svc := app.NewChartsService(&mockVitalRepo{}, &mockGoalRepo{})
	_, err := svc.GetVitalSeries(context.Background(), 1, 7, "stone")
	assert.ErrorIs(t, err, app.ErrValidation)
}
