package postgres

import (
	"context"
	"database/sql"
	"time"

	"healthtrack/internal/domain"
)

var _ domain.MealRepository = (*DB)(nil)

const mealColumns = "id, user_id, meal_type, eaten_at, name, calories, protein_g, carbs_g, fat_g, notes, created_at"

// AddMeal inserts a meal and returns its ID.
func (d *DB) AddMeal(ctx context.Context, userID int64, m domain.Meal) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO meals (user_id, meal_type, eaten_at, name, calories, protein_g, carbs_g, fat_g, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		userID, string(m.Type), m.EatenAt, m.Name, nullInt(m.Calories),
		nullFloat(m.ProteinGrams), nullFloat(m.CarbsGrams), nullFloat(m.FatGrams), nullString(m.Notes), time.Now(),
	).Scan(&id)
	return id, err
}

// DeleteMeal deletes a meal owned by the user.
func (d *DB) DeleteMeal(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM meals WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListMeals lists meals eaten within [from, to], oldest first.
func (d *DB) ListMeals(ctx context.Context, userID int64, from, to time.Time) ([]domain.Meal, error) {
	return d.queryMeals(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = $1 AND eaten_at >= $2 AND eaten_at <= $3 ORDER BY eaten_at ASC, id ASC",
		userID, from, to)
}

// ListRecentMeals lists the most recent meals.
func (d *DB) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	return d.queryMeals(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = $1 ORDER BY eaten_at DESC, id DESC LIMIT $2",
		userID, limit)
}

// LastLoggedMeal returns the user's meal with the highest ID, or nil.
func (d *DB) LastLoggedMeal(ctx context.Context, userID int64) (*domain.Meal, error) {
	items, err := d.queryMeals(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE user_id = $1 ORDER BY id DESC LIMIT 1",
		userID)
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (d *DB) queryMeals(ctx context.Context, query string, args ...any) ([]domain.Meal, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.Meal
	for rows.Next() {
		var (
			m                   domain.Meal
			typ                 string
			calories            sql.NullInt64
			protein, carbs, fat sql.NullFloat64
			notes               sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.UserID, &typ, &m.EatenAt, &m.Name, &calories, &protein, &carbs, &fat, &notes, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = domain.MealType(typ)
		m.Calories = intPtr(calories)
		m.ProteinGrams = floatPtr(protein)
		m.CarbsGrams = floatPtr(carbs)
		m.FatGrams = floatPtr(fat)
		m.Notes = stringPtr(notes)
		out = append(out, m)
	}
	return out, rows.Err()
}
