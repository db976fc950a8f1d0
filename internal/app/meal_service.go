package app

import (
	"context"
	"strings"
	"time"

	"healthtrack/internal/domain"
	"healthtrack/internal/stats"
)

// MealInput is the user-supplied part of a meal.
type MealInput struct {
	Type         domain.MealType `json:"mealType"`
	EatenAt      *time.Time      `json:"eatenAt"`
	Name         string          `json:"name"`
	Calories     *int            `json:"calories"`
	ProteinGrams *float64        `json:"proteinGrams"`
	CarbsGrams   *float64        `json:"carbsGrams"`
	FatGrams     *float64        `json:"fatGrams"`
	Notes        *string         `json:"notes"`
}

// MealService encapsulates meal logging use cases.
type MealService struct {
	repo domain.MealRepository
	now  func() time.Time
}

// NewMealService creates a MealService backed by the given repository.
func NewMealService(repo domain.MealRepository) *MealService {
	return &MealService{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for default meal times and periods.
func (s *MealService) WithClock(now func() time.Time) *MealService {
	s.now = now
	return s
}

// Record validates and stores a meal.
func (s *MealService) Record(ctx context.Context, userID int64, in MealInput) (*domain.Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("unknown mealType %q", in.Type)
	}
	if in.Calories != nil && *in.Calories < 0 {
		return nil, invalid("calories must be >= 0")
	}
	for field, v := range map[string]*float64{
		"proteinGrams": in.ProteinGrams,
		"carbsGrams":   in.CarbsGrams,
		"fatGrams":     in.FatGrams,
	} {
		if v != nil && *v < 0 {
			return nil, invalid("%s must be >= 0", field)
		}
	}

	m := domain.Meal{
		Type:         in.Type,
		EatenAt:      s.now(),
		Name:         name,
		Calories:     in.Calories,
		ProteinGrams: in.ProteinGrams,
		CarbsGrams:   in.CarbsGrams,
		FatGrams:     in.FatGrams,
		Notes:        in.Notes,
	}
	if in.EatenAt != nil {
		if in.EatenAt.After(m.EatenAt.Add(maxFutureSkew)) {
			return nil, invalid("eatenAt must not be in the future")
		}
		m.EatenAt = *in.EatenAt
	}
	id, err := s.repo.AddMeal(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	m.ID = id
	m.UserID = userID
	return &m, nil
}

// ListRecent returns the most recent meals up to limit.
func (s *MealService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	return s.repo.ListRecentMeals(ctx, userID, clampLimit(limit))
}

// Delete removes a meal owned by the user.
func (s *MealService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.DeleteMeal(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// UndoLast deletes the most recently logged meal, whatever its EatenAt.
func (s *MealService) UndoLast(ctx context.Context, userID int64) (bool, int64, error) {
	last, err := s.repo.LastLoggedMeal(ctx, userID)
	if err != nil {
		return false, 0, err
	}
	if last == nil {
		return false, 0, nil
	}
	if _, err := s.repo.DeleteMeal(ctx, userID, last.ID); err != nil {
		return false, 0, err
	}
	return true, last.ID, nil
}

// Summary totals the meals of the period containing now.
func (s *MealService) Summary(ctx context.Context, userID int64, period stats.Period) (*stats.MealSummary, error) {
	now := s.now()
	start, end := stats.Window(period, now)
	items, err := s.repo.ListMeals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	summary := stats.SummarizeMeals(items, period, now)
	return &summary, nil
}
