package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"healthtrack/internal/domain"
	"healthtrack/internal/metrics"
	"healthtrack/internal/stats"
)

// StatsService loads a user's snapshot from the record store and runs the
// stats engine over it.
type StatsService struct {
	vitals  domain.VitalSignRepository
	goals   domain.GoalRepository
	metrics *metrics.Manager
	now     func() time.Time
}

// NewStatsService creates a StatsService backed by the given repositories.
func NewStatsService(vr domain.VitalSignRepository, gr domain.GoalRepository) *StatsService {
	return &StatsService{vitals: vr, goals: gr, now: time.Now}
}

// WithClock replaces the time source that defines the current period.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// WithMetrics counts computed reports on m.
func (s *StatsService) WithMetrics(m *metrics.Manager) *StatsService {
	s.metrics = m
	return s
}

// Report computes the vital sign statistics for the period containing now.
// The clock is read once so the window and the engine agree.
func (s *StatsService) Report(ctx context.Context, userID int64, period stats.Period) (*stats.Report, error) {
	now := s.now()
	start, end := stats.Window(period, now)

	records, err := s.vitals.ListVitalSigns(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	goal, err := s.goals.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := stats.Calculate(records, goal, period, now)
	s.metrics.ObserveReport(string(report.Period))
	log.WithFields(log.Fields{
		"user":    userID,
		"period":  report.Period,
		"records": report.RecordCount,
	}).Debug("stats report computed")
	return &report, nil
}
