package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.VitalSignRepository = (*DB)(nil)

const vitalColumns = "id, user_id, measured_at, weight_kg, systolic_bp, diastolic_bp, heart_rate, body_temperature, notes, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVitalSign(row rowScanner) (domain.VitalSign, error) {
	var (
		v                       domain.VitalSign
		weight, temp            sql.NullFloat64
		systolic, diastolic, hr sql.NullInt64
		notes                   sql.NullString
	)
	err := row.Scan(&v.ID, &v.UserID, &v.MeasuredAt, &weight, &systolic, &diastolic, &hr, &temp, &notes, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return v, err
	}
	v.Weight = floatPtr(weight)
	v.SystolicBP = intPtr(systolic)
	v.DiastolicBP = intPtr(diastolic)
	v.HeartRate = intPtr(hr)
	v.BodyTemperature = floatPtr(temp)
	v.Notes = stringPtr(notes)
	return v, nil
}

// AddVitalSign inserts a record and returns its ID.
func (d *DB) AddVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (int64, error) {
	now := time.Now()
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO vital_signs (user_id, measured_at, weight_kg, systolic_bp, diastolic_bp, heart_rate, body_temperature, notes, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id`,
		userID, v.MeasuredAt, nullFloat(v.Weight), nullInt(v.SystolicBP), nullInt(v.DiastolicBP),
		nullInt(v.HeartRate), nullFloat(v.BodyTemperature), nullString(v.Notes), now,
	).Scan(&id)
	return id, err
}

// UpdateVitalSign replaces the measurement values of a record owned by the user.
func (d *DB) UpdateVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`UPDATE vital_signs SET measured_at = $3, weight_kg = $4, systolic_bp = $5, diastolic_bp = $6,
		 heart_rate = $7, body_temperature = $8, notes = $9, updated_at = $10
		 WHERE id = $1 AND user_id = $2`,
		v.ID, userID, v.MeasuredAt, nullFloat(v.Weight), nullInt(v.SystolicBP), nullInt(v.DiastolicBP),
		nullInt(v.HeartRate), nullFloat(v.BodyTemperature), nullString(v.Notes), time.Now(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteVitalSign deletes a record owned by the user.
func (d *DB) DeleteVitalSign(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM vital_signs WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetVitalSign returns a record, or nil when it does not exist.
func (d *DB) GetVitalSign(ctx context.Context, userID, id int64) (*domain.VitalSign, error) {
	v, err := scanVitalSign(d.sql.QueryRowContext(ctx,
		"SELECT "+vitalColumns+" FROM vital_signs WHERE id = $1 AND user_id = $2", id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVitalSigns lists records measured within [from, to], oldest first.
func (d *DB) ListVitalSigns(ctx context.Context, userID int64, from, to time.Time) ([]domain.VitalSign, error) {
	return d.queryVitalSigns(ctx,
		"SELECT "+vitalColumns+" FROM vital_signs WHERE user_id = $1 AND measured_at >= $2 AND measured_at <= $3 ORDER BY measured_at ASC, id ASC",
		userID, from, to)
}

// ListRecentVitalSigns lists the most recent records.
func (d *DB) ListRecentVitalSigns(ctx context.Context, userID int64, limit int) ([]domain.VitalSign, error) {
	return d.queryVitalSigns(ctx,
		"SELECT "+vitalColumns+" FROM vital_signs WHERE user_id = $1 ORDER BY measured_at DESC, id DESC LIMIT $2",
		userID, limit)
}

func (d *DB) queryVitalSigns(ctx context.Context, query string, args ...any) ([]domain.VitalSign, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.VitalSign
	for rows.Next() {
		v, err := scanVitalSign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
