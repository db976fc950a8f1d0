package stats

import (
	"time"

	"healthtrack/internal/domain"
)

// ExerciseSummary totals the exercise sessions started within a period.
type ExerciseSummary struct {
	Period         Period                      `json:"period"`
	PeriodStart    time.Time                   `json:"periodStart"`
	PeriodEnd      time.Time                   `json:"periodEnd"`
	TotalExercises int                         `json:"totalExercises"`
	TotalCalories  int                         `json:"totalCalories"`
	TotalMinutes   float64                     `json:"totalMinutes"`
	TotalDistance  float64                     `json:"totalDistanceKm"`
	ByType         map[domain.ExerciseType]int `json:"byType"`
}

// SummarizeExercises totals the sessions whose start time falls in the
// period containing now. Missing calories or distance count as zero.
func SummarizeExercises(exercises []domain.Exercise, period Period, now time.Time) ExerciseSummary {
	if period != PeriodMonth {
		period = PeriodWeek
	}
	start, end := Window(period, now)
	s := ExerciseSummary{
		Period:      period,
		PeriodStart: start,
		PeriodEnd:   end,
		ByType:      make(map[domain.ExerciseType]int),
	}
	for _, e := range exercises {
		if !within(e.StartTime, start, end) {
			continue
		}
		s.TotalExercises++
		s.TotalMinutes += e.DurationMinutes
		if e.CaloriesBurned != nil {
			s.TotalCalories += *e.CaloriesBurned
		}
		if e.DistanceKm != nil {
			s.TotalDistance += *e.DistanceKm
		}
		s.ByType[e.Type]++
	}
	return s
}

// MealSummary totals the meals eaten within a period.
type MealSummary struct {
	Period        Period                  `json:"period"`
	PeriodStart   time.Time               `json:"periodStart"`
	PeriodEnd     time.Time               `json:"periodEnd"`
	TotalMeals    int                     `json:"totalMeals"`
	TotalCalories int                     `json:"totalCalories"`
	ProteinGrams  float64                 `json:"proteinGrams"`
	CarbsGrams    float64                 `json:"carbsGrams"`
	FatGrams      float64                 `json:"fatGrams"`
	ByType        map[domain.MealType]int `json:"byType"`
	// DailyCalories is the calorie total averaged over the days elapsed in
	// the period, including today. Nil when no meal has calories.
	DailyCalories *float64 `json:"dailyCalories"`
}

// SummarizeMeals totals the meals whose EatenAt falls in the period
// containing now.
func SummarizeMeals(meals []domain.Meal, period Period, now time.Time) MealSummary {
	if period != PeriodMonth {
		period = PeriodWeek
	}
	start, end := Window(period, now)
	s := MealSummary{
		Period:      period,
		PeriodStart: start,
		PeriodEnd:   end,
		ByType:      make(map[domain.MealType]int),
	}
	withCalories := 0
	for _, m := range meals {
		if !within(m.EatenAt, start, end) {
			continue
		}
		s.TotalMeals++
		s.ByType[m.Type]++
		if m.Calories != nil {
			s.TotalCalories += *m.Calories
			withCalories++
		}
		if m.ProteinGrams != nil {
			s.ProteinGrams += *m.ProteinGrams
		}
		if m.CarbsGrams != nil {
			s.CarbsGrams += *m.CarbsGrams
		}
		if m.FatGrams != nil {
			s.FatGrams += *m.FatGrams
		}
	}
	if withCalories > 0 {
		days := elapsedDays(start, end, now)
		avg := float64(s.TotalCalories) / float64(days)
		s.DailyCalories = &avg
	}
	return s
}

// elapsedDays counts calendar days from start through now, capped at the
// period end. Always at least one.
func elapsedDays(start, end, now time.Time) int {
	last := now
	if last.After(end) {
		last = end
	}
	days := 1
	for d := start.AddDate(0, 0, 1); !d.After(last); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
