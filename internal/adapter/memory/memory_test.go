package memory

import (
	"context"
	"testing"
	"time"

	"healthtrack/internal/domain"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func TestVitalSignRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	userID := int64(1)
	base := time.Date(2026, 10, 20, 8, 0, 0, 0, time.UTC)

	id1, err := db.AddVitalSign(ctx, userID, domain.VitalSign{MeasuredAt: base.Add(time.Hour), Weight: fp(70)})
	if err != nil {
		t.Fatalf("AddVitalSign: %v", err)
	}
	id2, _ := db.AddVitalSign(ctx, userID, domain.VitalSign{MeasuredAt: base, HeartRate: ip(60)})
	id3, _ := db.AddVitalSign(ctx, userID, domain.VitalSign{MeasuredAt: base, HeartRate: ip(62)})
	_, _ = db.AddVitalSign(ctx, 999, domain.VitalSign{MeasuredAt: base, Weight: fp(90)})

	// Oldest first, ties broken by ID
	list, err := db.ListVitalSigns(ctx, userID, base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListVitalSigns: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].ID != id2 || list[1].ID != id3 || list[2].ID != id1 {
		t.Errorf("unexpected order: %d %d %d", list[0].ID, list[1].ID, list[2].ID)
	}

	// Bounds are inclusive
	list, _ = db.ListVitalSigns(ctx, userID, base.Add(time.Minute), base.Add(time.Hour))
	if len(list) != 1 {
		t.Errorf("expected 1 record, got %d", len(list))
	}

	recent, _ := db.ListRecentVitalSigns(ctx, userID, 2)
	if len(recent) != 2 || recent[0].ID != id1 {
		t.Errorf("expected newest first, got %+v", recent)
	}

	// Update keeps CreatedAt and ownership
	ok, err := db.UpdateVitalSign(ctx, userID, domain.VitalSign{ID: id2, MeasuredAt: base, HeartRate: ip(58)})
	if err != nil || !ok {
		t.Fatalf("UpdateVitalSign: %v %v", ok, err)
	}
	v, _ := db.GetVitalSign(ctx, userID, id2)
	if v == nil || *v.HeartRate != 58 || v.CreatedAt.IsZero() {
		t.Errorf("unexpected record after update: %+v", v)
	}
	ok, _ = db.UpdateVitalSign(ctx, 999, domain.VitalSign{ID: id2, MeasuredAt: base, HeartRate: ip(1)})
	if ok {
		t.Error("expected update by other user to fail")
	}

	// Other user sees nothing
	if v, _ := db.GetVitalSign(ctx, 999, id1); v != nil {
		t.Error("expected nil for other user")
	}

	ok, _ = db.DeleteVitalSign(ctx, userID, id1)
	if !ok {
		t.Error("expected delete to succeed")
	}
	ok, _ = db.DeleteVitalSign(ctx, userID, id1)
	if ok {
		t.Error("expected second delete to report false")
	}
}

func TestGoalRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	g, err := db.GetGoal(ctx, 1)
	if err != nil || g != nil {
		t.Fatalf("expected no goal, got %+v %v", g, err)
	}

	if err := db.UpsertGoal(ctx, 1, domain.VitalSignGoal{TargetWeight: fp(70)}); err != nil {
		t.Fatalf("UpsertGoal: %v", err)
	}
	if err := db.UpsertGoal(ctx, 1, domain.VitalSignGoal{TargetHeartRate: ip(60)}); err != nil {
		t.Fatalf("UpsertGoal: %v", err)
	}
	g, _ = db.GetGoal(ctx, 1)
	if g == nil || g.TargetWeight != nil || *g.TargetHeartRate != 60 || g.UserID != 1 {
		t.Errorf("expected replaced goal, got %+v", g)
	}

	ok, _ := db.DeleteGoal(ctx, 1)
	if !ok {
		t.Error("expected delete to succeed")
	}
	ok, _ = db.DeleteGoal(ctx, 1)
	if ok {
		t.Error("expected second delete to report false")
	}
}

func TestExerciseRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	start := time.Date(2026, 10, 20, 7, 0, 0, 0, time.UTC)

	id, err := db.AddExercise(ctx, 1, domain.Exercise{Type: domain.ExerciseRunning, StartTime: start, EndTime: start.Add(30 * time.Minute), DurationMinutes: 30})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	_, _ = db.AddExercise(ctx, 1, domain.Exercise{Type: domain.ExerciseYoga, StartTime: start.Add(-48 * time.Hour), EndTime: start.Add(-47 * time.Hour), DurationMinutes: 60})

	items, _ := db.ListExercises(ctx, 1, start.Add(-time.Hour), start.Add(time.Hour))
	if len(items) != 1 || items[0].ID != id {
		t.Errorf("expected only the running session, got %+v", items)
	}

	recent, _ := db.ListRecentExercises(ctx, 1, 10)
	if len(recent) != 2 || recent[0].ID != id {
		t.Errorf("expected newest first, got %+v", recent)
	}

	if ok, _ := db.DeleteExercise(ctx, 2, id); ok {
		t.Error("expected delete by other user to fail")
	}
	if ok, _ := db.DeleteExercise(ctx, 1, id); !ok {
		t.Error("expected delete to succeed")
	}
}

func TestMealRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	now := time.Now()

	_, err := db.AddMeal(ctx, 1, domain.Meal{Type: domain.MealBreakfast, EatenAt: now.Add(-time.Hour), Name: "oats"})
	if err != nil {
		t.Fatalf("AddMeal: %v", err)
	}
	id, _ := db.AddMeal(ctx, 1, domain.Meal{Type: domain.MealSnack, EatenAt: now, Name: "apple"})

	recent, err := db.ListRecentMeals(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ListRecentMeals: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != id {
		t.Errorf("expected latest meal, got %+v", recent)
	}

	// Other user sees nothing
	if items, _ := db.ListMeals(ctx, 999, now.Add(-24*time.Hour), now); len(items) != 0 {
		t.Error("expected 0 meals for other user")
	}

	items, _ := db.ListMeals(ctx, 1, now.Add(-24*time.Hour), now)
	if len(items) != 2 || items[0].Name != "oats" {
		t.Errorf("expected 2 meals oldest first, got %+v", items)
	}

	// Back-dated entry logged after the others.
	backID, _ := db.AddMeal(ctx, 1, domain.Meal{Type: domain.MealDinner, EatenAt: now.Add(-24 * time.Hour), Name: "curry"})
	last, err := db.LastLoggedMeal(ctx, 1)
	if err != nil {
		t.Fatalf("LastLoggedMeal: %v", err)
	}
	if last == nil || last.ID != backID {
		t.Errorf("expected meal %d as last logged, got %+v", backID, last)
	}
	if last, _ := db.LastLoggedMeal(ctx, 999); last != nil {
		t.Errorf("expected no meal for other user, got %+v", last)
	}
}

func TestProfileRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	if p, _ := db.GetProfile(ctx, 1); p != nil {
		t.Fatalf("expected no profile, got %+v", p)
	}

	name := "Alice"
	if err := db.UpsertProfile(ctx, 1, domain.Profile{DisplayName: &name, HeightCm: fp(165)}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}
	if err := db.UpsertProfile(ctx, 1, domain.Profile{HeightCm: fp(166)}); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	p, err := db.GetProfile(ctx, 1)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p == nil || p.UserID != 1 || p.DisplayName != nil || *p.HeightCm != 166 {
		t.Errorf("expected replaced profile, got %+v", p)
	}
	if p.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
	if p, _ := db.GetProfile(ctx, 2); p != nil {
		t.Errorf("expected no profile for other user, got %+v", p)
	}
}

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.Create(ctx, "bob", "hash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Username != "bob" {
		t.Errorf("expected bob, got %s", u.Username)
	}

	u2, err := db.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u2 == nil || u2.ID != u.ID {
		t.Error("failed to retrieve user")
	}

	if _, err := db.Create(ctx, "bob", "hash"); err == nil {
		t.Error("expected duplicate username to fail")
	}

	count, _ := db.Count(ctx)
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()

	err := repo.Create(ctx, 1, "token123", "agent", "10.0.0.1", time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = repo.Create(ctx, 1, "stale", "agent", "10.0.0.1", time.Now().Add(-time.Hour))

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "agent" || sess.IP != "10.0.0.1" {
		t.Errorf("unexpected session: %+v", sess)
	}

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 expired session removed, got %d", n)
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}
