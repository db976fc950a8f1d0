package app

import (
	"context"
	"time"

	"healthtrack/internal/domain"
)

const maxChartDays = 366

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	vitals domain.VitalSignRepository
	goals  domain.GoalRepository
	now    func() time.Time
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(vr domain.VitalSignRepository, gr domain.GoalRepository) *ChartsService {
	return &ChartsService{vitals: vr, goals: gr, now: time.Now}
}

// WithClock replaces the time source; its location defines local days.
func (s *ChartsService) WithClock(now func() time.Time) *ChartsService {
	s.now = now
	return s
}

// DayPoint holds the latest reading of each metric on one local day.
type DayPoint struct {
	Day             string   `json:"day"`
	Weight          *float64 `json:"weight"`
	SystolicBP      *int     `json:"systolicBp"`
	DiastolicBP     *int     `json:"diastolicBp"`
	HeartRate       *int     `json:"heartRate"`
	BodyTemperature *float64 `json:"bodyTemperature"`
}

// GoalLines are the goal targets drawn over the series.
type GoalLines struct {
	Weight      *float64 `json:"weight"`
	SystolicBP  *int     `json:"systolicBp"`
	DiastolicBP *int     `json:"diastolicBp"`
	HeartRate   *int     `json:"heartRate"`
}

// VitalSeries is the chart payload returned by GetVitalSeries.
type VitalSeries struct {
	Unit   string     `json:"unit"`
	Points []DayPoint `json:"points"`
	Goal   *GoalLines `json:"goal"`
}

// GetVitalSeries returns one point per local day for the last days days,
// oldest first, with weights converted to the requested unit.
func (s *ChartsService) GetVitalSeries(ctx context.Context, userID int64, days int, unit string) (*VitalSeries, error) {
	if !domain.ValidWeightUnit(unit) {
		return nil, invalid("unit must be \"kg\" or \"lb\"")
	}
	if days > maxChartDays {
		days = maxChartDays
	}
	if days < 1 {
		days = 1
	}

	now := s.now()
	loc := now.Location()
	y, m, d := now.Date()
	first := time.Date(y, m, d-(days-1), 0, 0, 0, 0, loc)
	last := time.Date(y, m, d+1, 0, 0, 0, 0, loc).Add(-time.Nanosecond)

	records, err := s.vitals.ListVitalSigns(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	points := make([]DayPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		day := first.AddDate(0, 0, i).Format("2006-01-02")
		points[i].Day = day
		index[day] = i
	}

	// Records arrive oldest first, so later readings overwrite earlier ones.
	for _, r := range records {
		i, ok := index[r.MeasuredAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		p := &points[i]
		if r.Weight != nil {
			w := domain.ConvertWeight(*r.Weight, domain.UnitKg, unit)
			p.Weight = &w
		}
		if r.SystolicBP != nil {
			p.SystolicBP = r.SystolicBP
		}
		if r.DiastolicBP != nil {
			p.DiastolicBP = r.DiastolicBP
		}
		if r.HeartRate != nil {
			p.HeartRate = r.HeartRate
		}
		if r.BodyTemperature != nil {
			p.BodyTemperature = r.BodyTemperature
		}
	}

	series := &VitalSeries{Unit: unit, Points: points}
	goal, err := s.goals.GetGoal(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal != nil {
		lines := &GoalLines{
			SystolicBP:  goal.TargetSystolicBP,
			DiastolicBP: goal.TargetDiastolicBP,
			HeartRate:   goal.TargetHeartRate,
		}
		if goal.TargetWeight != nil {
			w := domain.ConvertWeight(*goal.TargetWeight, domain.UnitKg, unit)
			lines.Weight = &w
		}
		series.Goal = lines
	}
	return series, nil
}
