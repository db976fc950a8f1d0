package app

import (
	"context"

	"healthtrack/internal/domain"
)

// GoalInput is the user-supplied goal. Weight is given in Unit ("kg" when empty).
type GoalInput struct {
	TargetWeight      *float64 `json:"targetWeight"`
	Unit              string   `json:"unit"`
	TargetSystolicBP  *int     `json:"targetSystolicBp"`
	TargetDiastolicBP *int     `json:"targetDiastolicBp"`
	TargetHeartRate   *int     `json:"targetHeartRate"`
	Notes             *string  `json:"notes"`
}

// GoalService manages the single active goal of each user.
type GoalService struct {
	repo domain.GoalRepository
}

// NewGoalService creates a GoalService backed by the given repository.
func NewGoalService(repo domain.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

// Get returns the user's goal, or nil when none is set.
func (s *GoalService) Get(ctx context.Context, userID int64) (*domain.VitalSignGoal, error) {
	return s.repo.GetGoal(ctx, userID)
}

// Set validates and stores the goal, replacing any previous one.
func (s *GoalService) Set(ctx context.Context, userID int64, in GoalInput) (*domain.VitalSignGoal, error) {
	g := domain.VitalSignGoal{
		UserID:            userID,
		TargetSystolicBP:  in.TargetSystolicBP,
		TargetDiastolicBP: in.TargetDiastolicBP,
		TargetHeartRate:   in.TargetHeartRate,
		Notes:             in.Notes,
	}
	if in.TargetWeight != nil {
		unit := in.Unit
		if unit == "" {
			unit = domain.UnitKg
		}
		if !domain.ValidWeightUnit(unit) {
			return nil, invalid("unit must be \"kg\" or \"lb\"")
		}
		kg := domain.ConvertWeight(*in.TargetWeight, unit, domain.UnitKg)
		g.TargetWeight = &kg
	}
	if err := validateGoal(g); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertGoal(ctx, userID, g); err != nil {
		return nil, err
	}
	return s.repo.GetGoal(ctx, userID)
}

// Clear removes the user's goal.
func (s *GoalService) Clear(ctx context.Context, userID int64) error {
	ok, err := s.repo.DeleteGoal(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func validateGoal(g domain.VitalSignGoal) error {
	if !g.HasTarget() {
		return invalid("at least one target is required")
	}
	if g.TargetWeight != nil && (*g.TargetWeight <= 0 || *g.TargetWeight > maxWeightKg) {
		return invalid("targetWeight must be within (0, %g] kg", maxWeightKg)
	}
	for name, p := range map[string]*int{
		"targetSystolicBp":  g.TargetSystolicBP,
		"targetDiastolicBp": g.TargetDiastolicBP,
		"targetHeartRate":   g.TargetHeartRate,
	} {
		if p != nil && *p <= 0 {
			return invalid("%s must be > 0", name)
		}
	}
	return nil
}
