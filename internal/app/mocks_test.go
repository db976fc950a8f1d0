package app_test

import (
	"context"
	"time"

	"healthtrack/internal/domain"
)

type mockVitalRepo struct {
	addFn    func(ctx context.Context, userID int64, v domain.VitalSign) (int64, error)
	updateFn func(ctx context.Context, userID int64, v domain.VitalSign) (bool, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
	getFn    func(ctx context.Context, userID, id int64) (*domain.VitalSign, error)
	listFn   func(ctx context.Context, userID int64, from, to time.Time) ([]domain.VitalSign, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.VitalSign, error)
}

func (m *mockVitalRepo) AddVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, v)
	}
	return 1, nil
}

func (m *mockVitalRepo) UpdateVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (bool, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, v)
	}
	return true, nil
}

func (m *mockVitalRepo) DeleteVitalSign(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockVitalRepo) GetVitalSign(ctx context.Context, userID, id int64) (*domain.VitalSign, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, id)
	}
	return &domain.VitalSign{ID: id, UserID: userID}, nil
}

func (m *mockVitalRepo) ListVitalSigns(ctx context.Context, userID int64, from, to time.Time) ([]domain.VitalSign, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockVitalRepo) ListRecentVitalSigns(ctx context.Context, userID int64, limit int) ([]domain.VitalSign, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockGoalRepo struct {
	getFn    func(ctx context.Context, userID int64) (*domain.VitalSignGoal, error)
	upsertFn func(ctx context.Context, userID int64, g domain.VitalSignGoal) error
	deleteFn func(ctx context.Context, userID int64) (bool, error)
}

func (m *mockGoalRepo) GetGoal(ctx context.Context, userID int64) (*domain.VitalSignGoal, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGoalRepo) UpsertGoal(ctx context.Context, userID int64, g domain.VitalSignGoal) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, g)
	}
	return nil
}

func (m *mockGoalRepo) DeleteGoal(ctx context.Context, userID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	return true, nil
}

type mockExerciseRepo struct {
	addFn    func(ctx context.Context, userID int64, e domain.Exercise) (int64, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
	listFn   func(ctx context.Context, userID int64, from, to time.Time) ([]domain.Exercise, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.Exercise, error)
}

func (m *mockExerciseRepo) AddExercise(ctx context.Context, userID int64, e domain.Exercise) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, e)
	}
	return 1, nil
}

func (m *mockExerciseRepo) DeleteExercise(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockExerciseRepo) ListExercises(ctx context.Context, userID int64, from, to time.Time) ([]domain.Exercise, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockExerciseRepo) ListRecentExercises(ctx context.Context, userID int64, limit int) ([]domain.Exercise, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

type mockMealRepo struct {
	addFn    func(ctx context.Context, userID int64, m domain.Meal) (int64, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
	listFn   func(ctx context.Context, userID int64, from, to time.Time) ([]domain.Meal, error)
	recentFn func(ctx context.Context, userID int64, limit int) ([]domain.Meal, error)
	lastFn   func(ctx context.Context, userID int64) (*domain.Meal, error)
}

func (m *mockMealRepo) AddMeal(ctx context.Context, userID int64, meal domain.Meal) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, meal)
	}
	return 1, nil
}

func (m *mockMealRepo) DeleteMeal(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return true, nil
}

func (m *mockMealRepo) ListMeals(ctx context.Context, userID int64, from, to time.Time) ([]domain.Meal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, from, to)
	}
	return nil, nil
}

func (m *mockMealRepo) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockMealRepo) LastLoggedMeal(ctx context.Context, userID int64) (*domain.Meal, error) {
	if m.lastFn != nil {
		return m.lastFn(ctx, userID)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn    func(ctx context.Context, userID int64) (*domain.Profile, error)
	upsertFn func(ctx context.Context, userID int64, p domain.Profile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, userID int64, p domain.Profile) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, p)
	}
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
