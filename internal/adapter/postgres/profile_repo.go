package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.ProfileRepository = (*DB)(nil)

// GetProfile returns the user's profile, or nil when none is stored.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		p                  domain.Profile
		name, born, gender sql.NullString
		height             sql.NullFloat64
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, display_name, height_cm, to_char(birth_date, 'YYYY-MM-DD'), gender, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &name, &height, &born, &gender, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.DisplayName = stringPtr(name)
	p.HeightCm = floatPtr(height)
	p.BirthDate = stringPtr(born)
	if gender.Valid {
		g := domain.Gender(gender.String)
		p.Gender = &g
	}
	return &p, nil
}

// UpsertProfile stores the user's profile, replacing any previous one.
func (d *DB) UpsertProfile(ctx context.Context, userID int64, p domain.Profile) error {
	var gender sql.NullString
	if p.Gender != nil {
		gender = sql.NullString{String: string(*p.Gender), Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, display_name, height_cm, birth_date, gender, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   display_name = EXCLUDED.display_name,
		   height_cm = EXCLUDED.height_cm,
		   birth_date = EXCLUDED.birth_date,
		   gender = EXCLUDED.gender,
		   updated_at = EXCLUDED.updated_at`,
		userID, nullString(p.DisplayName), nullFloat(p.HeightCm), nullString(p.BirthDate), gender, time.Now(),
	)
	return err
}
