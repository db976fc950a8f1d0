// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"healthtrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu        sync.Mutex
	vitals    []domain.VitalSign
	goals     map[int64]domain.VitalSignGoal
	profiles  map[int64]domain.Profile
	exercises []domain.Exercise
	meals     []domain.Meal
	users     []*domain.User
	sessions  map[string]*domain.Session

	vitalIDCounter    int64
	exerciseIDCounter int64
	mealIDCounter     int64
	userIDCounter     int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		goals:    make(map[int64]domain.VitalSignGoal),
		profiles: make(map[int64]domain.Profile),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.VitalSignRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.ExerciseRepository = (*DB)(nil)
var _ domain.MealRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- VitalSignRepository ---

// AddVitalSign stores a vital sign record for the user.
func (db *DB) AddVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.vitalIDCounter++
	now := time.Now().UTC()
	v.ID = db.vitalIDCounter
	v.UserID = userID
	v.MeasuredAt = v.MeasuredAt.UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	db.vitals = append(db.vitals, v)
	return v.ID, nil
}

// UpdateVitalSign replaces the measurement values of a record.
func (db *DB) UpdateVitalSign(ctx context.Context, userID int64, v domain.VitalSign) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.vitals {
		cur := &db.vitals[i]
		if cur.ID != v.ID || cur.UserID != userID {
			continue
		}
		v.UserID = userID
		v.MeasuredAt = v.MeasuredAt.UTC()
		v.CreatedAt = cur.CreatedAt
		v.UpdatedAt = time.Now().UTC()
		*cur = v
		return true, nil
	}
	return false, nil
}

// DeleteVitalSign deletes a record by ID.
func (db *DB) DeleteVitalSign(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, v := range db.vitals {
		if v.ID == id && v.UserID == userID {
			db.vitals = append(db.vitals[:i], db.vitals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// GetVitalSign returns a copy of a record, or nil when it does not exist.
func (db *DB) GetVitalSign(ctx context.Context, userID, id int64) (*domain.VitalSign, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, v := range db.vitals {
		if v.ID == id && v.UserID == userID {
			return &v, nil
		}
	}
	return nil, nil
}

// ListVitalSigns lists records measured within [from, to], oldest first.
func (db *DB) ListVitalSigns(ctx context.Context, userID int64, from, to time.Time) ([]domain.VitalSign, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.VitalSign
	for _, v := range db.vitals {
		if v.UserID == userID && inRange(v.MeasuredAt, from, to) {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[i].MeasuredAt, result[i].ID, result[j].MeasuredAt, result[j].ID)
	})
	return result, nil
}

// ListRecentVitalSigns lists the most recent records.
func (db *DB) ListRecentVitalSigns(ctx context.Context, userID int64, limit int) ([]domain.VitalSign, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.VitalSign
	for _, v := range db.vitals {
		if v.UserID == userID {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[j].MeasuredAt, result[j].ID, result[i].MeasuredAt, result[i].ID)
	})
	return truncate(result, limit), nil
}

// --- GoalRepository ---

// GetGoal returns the user's goal, or nil when none is set.
func (db *DB) GetGoal(ctx context.Context, userID int64) (*domain.VitalSignGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	g, ok := db.goals[userID]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

// UpsertGoal stores the user's goal, replacing any previous one.
func (db *DB) UpsertGoal(ctx context.Context, userID int64, g domain.VitalSignGoal) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	g.UserID = userID
	g.UpdatedAt = time.Now().UTC()
	db.goals[userID] = g
	return nil
}

// DeleteGoal removes the user's goal.
func (db *DB) DeleteGoal(ctx context.Context, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.goals[userID]; !ok {
		return false, nil
	}
	delete(db.goals, userID)
	return true, nil
}

// --- ExerciseRepository ---

// AddExercise stores an exercise session.
func (db *DB) AddExercise(ctx context.Context, userID int64, e domain.Exercise) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.exerciseIDCounter++
	e.ID = db.exerciseIDCounter
	e.UserID = userID
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	e.CreatedAt = time.Now().UTC()
	db.exercises = append(db.exercises, e)
	return e.ID, nil
}

// DeleteExercise deletes a session by ID.
func (db *DB) DeleteExercise(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, e := range db.exercises {
		if e.ID == id && e.UserID == userID {
			db.exercises = append(db.exercises[:i], db.exercises[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListExercises lists sessions started within [from, to], oldest first.
func (db *DB) ListExercises(ctx context.Context, userID int64, from, to time.Time) ([]domain.Exercise, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Exercise
	for _, e := range db.exercises {
		if e.UserID == userID && inRange(e.StartTime, from, to) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[i].StartTime, result[i].ID, result[j].StartTime, result[j].ID)
	})
	return result, nil
}

// ListRecentExercises lists the most recent sessions.
func (db *DB) ListRecentExercises(ctx context.Context, userID int64, limit int) ([]domain.Exercise, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Exercise
	for _, e := range db.exercises {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[j].StartTime, result[j].ID, result[i].StartTime, result[i].ID)
	})
	return truncate(result, limit), nil
}

// --- MealRepository ---

// AddMeal stores a meal.
func (db *DB) AddMeal(ctx context.Context, userID int64, m domain.Meal) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.mealIDCounter++
	m.ID = db.mealIDCounter
	m.UserID = userID
	m.EatenAt = m.EatenAt.UTC()
	m.CreatedAt = time.Now().UTC()
	db.meals = append(db.meals, m)
	return m.ID, nil
}

// DeleteMeal deletes a meal by ID.
func (db *DB) DeleteMeal(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, m := range db.meals {
		if m.ID == id && m.UserID == userID {
			db.meals = append(db.meals[:i], db.meals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListMeals lists meals eaten within [from, to], oldest first.
func (db *DB) ListMeals(ctx context.Context, userID int64, from, to time.Time) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Meal
	for _, m := range db.meals {
		if m.UserID == userID && inRange(m.EatenAt, from, to) {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[i].EatenAt, result[i].ID, result[j].EatenAt, result[j].ID)
	})
	return result, nil
}

// ListRecentMeals lists the most recent meals.
func (db *DB) ListRecentMeals(ctx context.Context, userID int64, limit int) ([]domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.Meal
	for _, m := range db.meals {
		if m.UserID == userID {
			result = append(result, m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return before(result[j].EatenAt, result[j].ID, result[i].EatenAt, result[i].ID)
	})
	return truncate(result, limit), nil
}

// LastLoggedMeal returns the user's meal with the highest ID, or nil.
func (db *DB) LastLoggedMeal(ctx context.Context, userID int64) (*domain.Meal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var last *domain.Meal
	for i := range db.meals {
		m := db.meals[i]
		if m.UserID == userID && (last == nil || m.ID > last.ID) {
			last = &m
		}
	}
	return last, nil
}

// --- ProfileRepository ---

// GetProfile returns the user's profile, or nil when none is stored.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// UpsertProfile stores the user's profile, replacing any previous one.
func (db *DB) UpsertProfile(ctx context.Context, userID int64, p domain.Profile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	p.UserID = userID
	p.UpdatedAt = time.Now().UTC()
	db.profiles[userID] = p
	return nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// before orders by time, then by ID.
func before(ta time.Time, ida int64, tb time.Time, idb int64) bool {
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return ida < idb
}

func truncate[T any](items []T, limit int) []T {
	if limit >= 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	// Return nil if not found
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions and reports how many were removed.
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	var n int64
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
			n++
		}
	}
	return n, nil
}
