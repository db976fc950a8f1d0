package postgres

import (
	"context"
	"database/sql"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.ExerciseRepository = (*DB)(nil)

const exerciseColumns = "id, user_id, exercise_type, start_time, end_time, duration_minutes, distance_km, calories_burned, notes, created_at"

// AddExercise inserts an exercise session and returns its ID.
func (d *DB) AddExercise(ctx context.Context, userID int64, e domain.Exercise) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO exercises (user_id, exercise_type, start_time, end_time, duration_minutes, distance_km, calories_burned, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		userID, string(e.Type), e.StartTime, e.EndTime, e.DurationMinutes,
		nullFloat(e.DistanceKm), nullInt(e.CaloriesBurned), nullString(e.Notes), time.Now(),
	).Scan(&id)
	return id, err
}

// DeleteExercise deletes a session owned by the user.
func (d *DB) DeleteExercise(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM exercises WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListExercises lists sessions started within [from, to], oldest first.
func (d *DB) ListExercises(ctx context.Context, userID int64, from, to time.Time) ([]domain.Exercise, error) {
	return d.queryExercises(ctx,
		"SELECT "+exerciseColumns+" FROM exercises WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3 ORDER BY start_time ASC, id ASC",
		userID, from, to)
}

// ListRecentExercises lists the most recent sessions.
func (d *DB) ListRecentExercises(ctx context.Context, userID int64, limit int) ([]domain.Exercise, error) {
	return d.queryExercises(ctx,
		"SELECT "+exerciseColumns+" FROM exercises WHERE user_id = $1 ORDER BY start_time DESC, id DESC LIMIT $2",
		userID, limit)
}

func (d *DB) queryExercises(ctx context.Context, query string, args ...any) ([]domain.Exercise, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Exercise
	for rows.Next() {
		var (
			e        domain.Exercise
			typ      string
			distance sql.NullFloat64
			calories sql.NullInt64
			notes    sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.UserID, &typ, &e.StartTime, &e.EndTime, &e.DurationMinutes, &distance, &calories, &notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Type = domain.ExerciseType(typ)
		e.DistanceKm = floatPtr(distance)
		e.CaloriesBurned = intPtr(calories)
		e.Notes = stringPtr(notes)
		out = append(out, e)
	}
	return out, rows.Err()
}
