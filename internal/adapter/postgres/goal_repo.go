package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.GoalRepository = (*DB)(nil)

// GetGoal returns the user's goal, or nil when none is set.
func (d *DB) GetGoal(ctx context.Context, userID int64) (*domain.VitalSignGoal, error) {
	var (
		g                       domain.VitalSignGoal
		weight                  sql.NullFloat64
		systolic, diastolic, hr sql.NullInt64
		notes                   sql.NullString
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, target_weight_kg, target_systolic_bp, target_diastolic_bp, target_heart_rate, notes, updated_at
		 FROM vital_sign_goals WHERE user_id = $1`,
		userID,
	).Scan(&g.UserID, &weight, &systolic, &diastolic, &hr, &notes, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g.TargetWeight = floatPtr(weight)
	g.TargetSystolicBP = intPtr(systolic)
	g.TargetDiastolicBP = intPtr(diastolic)
	g.TargetHeartRate = intPtr(hr)
	g.Notes = stringPtr(notes)
	return &g, nil
}

// UpsertGoal stores the user's goal, replacing any previous one.
func (d *DB) UpsertGoal(ctx context.Context, userID int64, g domain.VitalSignGoal) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO vital_sign_goals (user_id, target_weight_kg, target_systolic_bp, target_diastolic_bp, target_heart_rate, notes, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
		   target_weight_kg = EXCLUDED.target_weight_kg,
		   target_systolic_bp = EXCLUDED.target_systolic_bp,
		   target_diastolic_bp = EXCLUDED.target_diastolic_bp,
		   target_heart_rate = EXCLUDED.target_heart_rate,
		   notes = EXCLUDED.notes,
		   updated_at = EXCLUDED.updated_at`,
		userID, nullFloat(g.TargetWeight), nullInt(g.TargetSystolicBP), nullInt(g.TargetDiastolicBP),
		nullInt(g.TargetHeartRate), nullString(g.Notes), time.Now(),
	)
	return err
}

// DeleteGoal removes the user's goal.
func (d *DB) DeleteGoal(ctx context.Context, userID int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM vital_sign_goals WHERE user_id = $1", userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
