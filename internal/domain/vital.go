package domain

import (
	"context"
	"time"
)

// VitalSign is a single measurement event. Any metric may be absent (nil)
// when it was not measured.
type VitalSign struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	MeasuredAt      time.Time `json:"measuredAt"`
	Weight          *float64  `json:"weight"`
	SystolicBP      *int      `json:"systolicBp"`
	DiastolicBP     *int      `json:"diastolicBp"`
	HeartRate       *int      `json:"heartRate"`
	BodyTemperature *float64  `json:"bodyTemperature"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// HasMeasurement reports whether at least one metric is present.
func (v VitalSign) HasMeasurement() bool {
	return v.Weight != nil || v.SystolicBP != nil || v.DiastolicBP != nil ||
		v.HeartRate != nil || v.BodyTemperature != nil
}

// VitalSignGoal holds a user's targets. There is no body temperature target.
type VitalSignGoal struct {
	UserID            int64     `json:"userId"`
	TargetWeight      *float64  `json:"targetWeight"`
	TargetSystolicBP  *int      `json:"targetSystolicBp"`
	TargetDiastolicBP *int      `json:"targetDiastolicBp"`
	TargetHeartRate   *int      `json:"targetHeartRate"`
	Notes             *string   `json:"notes"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// HasTarget reports whether at least one target is set.
func (g VitalSignGoal) HasTarget() bool {
	return g.TargetWeight != nil || g.TargetSystolicBP != nil ||
		g.TargetDiastolicBP != nil || g.TargetHeartRate != nil
}

// VitalSignRepository is the port for vital sign persistence.
type VitalSignRepository interface {
	AddVitalSign(ctx context.Context, userID int64, v VitalSign) (int64, error)
	UpdateVitalSign(ctx context.Context, userID int64, v VitalSign) (bool, error)
	DeleteVitalSign(ctx context.Context, userID int64, id int64) (bool, error)
	GetVitalSign(ctx context.Context, userID int64, id int64) (*VitalSign, error)
	// ListVitalSigns returns records measured within [from, to], oldest first.
	ListVitalSigns(ctx context.Context, userID int64, from, to time.Time) ([]VitalSign, error)
	ListRecentVitalSigns(ctx context.Context, userID int64, limit int) ([]VitalSign, error)
}

// GoalRepository is the port for goal persistence. A user has at most one goal.
type GoalRepository interface {
	GetGoal(ctx context.Context, userID int64) (*VitalSignGoal, error)
	UpsertGoal(ctx context.Context, userID int64, g VitalSignGoal) error
	DeleteGoal(ctx context.Context, userID int64) (bool, error)
}
