package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthtrack/internal/app"
	"healthtrack/internal/domain"
	"healthtrack/internal/metrics"
	"healthtrack/internal/stats"
)

func TestStatsService_Report_QueriesCurrentWindow(t *testing.T) {
	// Wednesday 2026-10-21; the week runs Monday 19th through Sunday 25th.
	var from, to time.Time
	vitals := &mockVitalRepo{
		listFn: func(_ context.Context, userID int64, f, t2 time.Time) ([]domain.VitalSign, error) {
			from, to = f, t2
			return []domain.VitalSign{
				{ID: 1, UserID: userID, MeasuredAt: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC), Weight: fp(80)},
				{ID: 2, UserID: userID, MeasuredAt: time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC), Weight: fp(79)},
			}, nil
		},
	}
	goals := &mockGoalRepo{
		getFn: func(context.Context, int64) (*domain.VitalSignGoal, error) {
			return &domain.VitalSignGoal{TargetWeight: fp(79)}, nil
		},
	}
	m := metrics.NewTestManager()
	svc := app.NewStatsService(vitals, goals).WithClock(fixedClock(now)).WithMetrics(m)

	report, err := svc.Report(context.Background(), 5, stats.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), to)
	assert.Equal(t, stats.PeriodWeek, report.Period)
	assert.Equal(t, 2, report.RecordCount)
	require.NotNil(t, report.Weight.Current)
	assert.Equal(t, 79.0, *report.Weight.Current)
	require.NotNil(t, report.Weight.AchievementRate)
	assert.InDelta(t, 100.0, *report.Weight.AchievementRate, 1e-9)
	assert.Nil(t, report.Weight.Trend)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStatsReports.WithLabelValues("week")))
}

func TestStatsService_Report_NoData(t *testing.T) {
	svc := app.NewStatsService(&mockVitalRepo{}, &mockGoalRepo{}).WithClock(fixedClock(now))

	report, err := svc.Report(context.Background(), 5, stats.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, 0, report.RecordCount)
	assert.Nil(t, report.Weight.Current)
	assert.Nil(t, report.HeartRate.Average)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), report.PeriodStart)
}

func TestStatsService_Report_RepositoryErrors(t *testing.T) {
	boom := errors.New("db down")

	svc := app.NewStatsService(&mockVitalRepo{
		listFn: func(context.Context, int64, time.Time, time.Time) ([]domain.VitalSign, error) { return nil, boom },
	}, &mockGoalRepo{}).WithClock(fixedClock(now))
	_, err := svc.Report(context.Background(), 1, stats.PeriodWeek)
	assert.ErrorIs(t, err, boom)

	svc = app.NewStatsService(&mockVitalRepo{}, &mockGoalRepo{
		getFn: func(context.Context, int64) (*domain.VitalSignGoal, error) { return nil, boom },
	}).WithClock(fixedClock(now))
	_, err = svc.Report(context.Background(), 1, stats.PeriodWeek)
	assert.ErrorIs(t, err, boom)
}
