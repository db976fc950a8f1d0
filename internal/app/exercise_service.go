package app

import (
	"context"
	"time"

	"healthtrack/internal/domain"
	"healthtrack/internal/stats"
)

const maxExerciseDuration = 24 * time.Hour

// ExerciseInput is the user-supplied part of an exercise session.
type ExerciseInput struct {
	Type           domain.ExerciseType `json:"exerciseType"`
	StartTime      time.Time           `json:"startTime"`
	EndTime        time.Time           `json:"endTime"`
	DistanceKm     *float64            `json:"distanceKm"`
	CaloriesBurned *int                `json:"caloriesBurned"`
	Notes          *string             `json:"notes"`
}

// ExerciseService encapsulates exercise tracking use cases.
type ExerciseService struct {
	repo domain.ExerciseRepository
	now  func() time.Time
}

// NewExerciseService creates an ExerciseService backed by the given repository.
func NewExerciseService(repo domain.ExerciseRepository) *ExerciseService {
	return &ExerciseService{repo: repo, now: time.Now}
}

// WithClock replaces the time source that defines the current period.
func (s *ExerciseService) WithClock(now func() time.Time) *ExerciseService {
	s.now = now
	return s
}

// Record validates and stores an exercise session. The duration is derived
// from the start and end times.
func (s *ExerciseService) Record(ctx context.Context, userID int64, in ExerciseInput) (*domain.Exercise, error) {
	if !in.Type.Valid() {
		return nil, invalid("unknown exerciseType %q", in.Type)
	}
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, invalid("startTime and endTime are required")
	}
	d := in.EndTime.Sub(in.StartTime)
	if d <= 0 {
		return nil, invalid("endTime must be after startTime")
	}
	if in.StartTime.After(s.now().Add(maxFutureSkew)) {
		return nil, invalid("startTime must not be in the future")
	}
	if d > maxExerciseDuration {
		return nil, invalid("exercise must not last longer than %s", maxExerciseDuration)
	}
	if in.DistanceKm != nil && *in.DistanceKm < 0 {
		return nil, invalid("distanceKm must be >= 0")
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		return nil, invalid("caloriesBurned must be >= 0")
	}

	e := domain.Exercise{
		Type:            in.Type,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: d.Minutes(),
		DistanceKm:      in.DistanceKm,
		CaloriesBurned:  in.CaloriesBurned,
		Notes:           in.Notes,
	}
	id, err := s.repo.AddExercise(ctx, userID, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	e.UserID = userID
	return &e, nil
}

// ListRecent returns the most recent sessions up to limit.
func (s *ExerciseService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Exercise, error) {
	return s.repo.ListRecentExercises(ctx, userID, clampLimit(limit))
}

// Delete removes a session owned by the user.
func (s *ExerciseService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.DeleteExercise(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Summary totals the sessions of the period containing now.
func (s *ExerciseService) Summary(ctx context.Context, userID int64, period stats.Period) (*stats.ExerciseSummary, error) {
	now := s.now()
	start, end := stats.Window(period, now)
	items, err := s.repo.ListExercises(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := stats.SummarizeExercises(items, period, now)
	return &summary, nil
}
