// Package stats turns a snapshot of vital sign records and an optional goal
// into per-metric statistics for a calendar reporting period. Everything here
// is a pure function of its arguments, including the reference time.
package stats

import (
	"math"
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"

	"healthtrack/internal/domain"
)

// Trend is the direction of a metric within the period.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Metric names a tracked vital sign.
type Metric string

const (
	MetricWeight          Metric = "weight"
	MetricSystolicBP      Metric = "systolicBp"
	MetricDiastolicBP     Metric = "diastolicBp"
	MetricHeartRate       Metric = "heartRate"
	MetricBodyTemperature Metric = "bodyTemperature"
)

const (
	// trendWindow values are needed: the latest three against the three before.
	trendWindow    = 6
	trendGroup     = trendWindow / 2
	stableFraction = 0.05
)

// MetricStats summarises one metric. Nil fields are absent.
type MetricStats struct {
	Current         *float64 `json:"current"`
	Average         *float64 `json:"average"`
	Min             *float64 `json:"min"`
	Max             *float64 `json:"max"`
	Trend           *Trend   `json:"trend"`
	AchievementRate *float64 `json:"achievementRate"`
	// Target is the goal value, present even without records.
	Target *float64 `json:"target"`
}

// Report is the statistics for all five metrics over one period.
type Report struct {
	Period          Period      `json:"period"`
	PeriodStart     time.Time   `json:"periodStart"`
	PeriodEnd       time.Time   `json:"periodEnd"`
	RecordCount     int         `json:"recordCount"`
	Weight          MetricStats `json:"weight"`
	SystolicBP      MetricStats `json:"systolicBp"`
	DiastolicBP     MetricStats `json:"diastolicBp"`
	HeartRate       MetricStats `json:"heartRate"`
	BodyTemperature MetricStats `json:"bodyTemperature"`
}

// Metric returns the stats for m and whether m is a known metric.
func (r *Report) Metric(m Metric) (MetricStats, bool) {
	switch m {
	case MetricWeight:
		return r.Weight, true
	case MetricSystolicBP:
		return r.SystolicBP, true
	case MetricDiastolicBP:
		return r.DiastolicBP, true
	case MetricHeartRate:
		return r.HeartRate, true
	case MetricBodyTemperature:
		return r.BodyTemperature, true
	}
	return MetricStats{}, false
}

func (r *Report) set(m Metric, s MetricStats) {
	switch m {
	case MetricWeight:
		r.Weight = s
	case MetricSystolicBP:
		r.SystolicBP = s
	case MetricDiastolicBP:
		r.DiastolicBP = s
	case MetricHeartRate:
		r.HeartRate = s
	case MetricBodyTemperature:
		r.BodyTemperature = s
	}
}

// Descriptor binds a metric to its record and goal accessors.
type Descriptor struct {
	Metric Metric
	Unit   string
	Value  func(domain.VitalSign) *float64
	// Target is nil for metrics that cannot have a goal.
	Target func(domain.VitalSignGoal) *float64
}

// Descriptors lists the five metrics in report order.
var Descriptors = []Descriptor{
	{
		Metric: MetricWeight,
		Unit:   domain.UnitKg,
		Value:  func(v domain.VitalSign) *float64 { return v.Weight },
		Target: func(g domain.VitalSignGoal) *float64 { return g.TargetWeight },
	},
	{
		Metric: MetricSystolicBP,
		Unit:   "mmHg",
		Value:  func(v domain.VitalSign) *float64 { return intValue(v.SystolicBP) },
		Target: func(g domain.VitalSignGoal) *float64 { return intValue(g.TargetSystolicBP) },
	},
	{
		Metric: MetricDiastolicBP,
		Unit:   "mmHg",
		Value:  func(v domain.VitalSign) *float64 { return intValue(v.DiastolicBP) },
		Target: func(g domain.VitalSignGoal) *float64 { return intValue(g.TargetDiastolicBP) },
	},
	{
		Metric: MetricHeartRate,
		Unit:   "bpm",
		Value:  func(v domain.VitalSign) *float64 { return intValue(v.HeartRate) },
		Target: func(g domain.VitalSignGoal) *float64 { return intValue(g.TargetHeartRate) },
	},
	{
		Metric: MetricBodyTemperature,
		Unit:   "°C",
		Value:  func(v domain.VitalSign) *float64 { return v.BodyTemperature },
	},
}

// Calculate builds the report for the period containing now. Records outside
// the period are ignored and the input slice is not modified. A nil goal
// leaves every achievement rate absent.
func Calculate(records []domain.VitalSign, goal *domain.VitalSignGoal, period Period, now time.Time) Report {
	if period != PeriodMonth {
		period = PeriodWeek
	}
	start, end := Window(period, now)

	inPeriod := make([]domain.VitalSign, 0, len(records))
	for _, r := range records {
		if within(r.MeasuredAt, start, end) {
			inPeriod = append(inPeriod, r)
		}
	}
	sort.SliceStable(inPeriod, func(i, j int) bool {
		a, b := inPeriod[i], inPeriod[j]
		if !a.MeasuredAt.Equal(b.MeasuredAt) {
			return a.MeasuredAt.Before(b.MeasuredAt)
		}
		return a.ID < b.ID
	})

	report := Report{
		Period:      period,
		PeriodStart: start,
		PeriodEnd:   end,
		RecordCount: len(inPeriod),
	}
	for _, d := range Descriptors {
		report.set(d.Metric, metricStats(inPeriod, goal, d))
	}
	return report
}

// metricStats expects records sorted oldest first.
func metricStats(records []domain.VitalSign, goal *domain.VitalSignGoal, d Descriptor) MetricStats {
	var target *float64
	if goal != nil && d.Target != nil {
		target = d.Target(*goal)
	}

	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v := d.Value(r); v != nil {
			values = append(values, *v)
		}
	}
	if len(values) == 0 {
		return MetricStats{Target: target}
	}

	// Errors from the stats package only signal empty input, handled above.
	avg, _ := mstats.Mean(values)
	lo, _ := mstats.Min(values)
	hi, _ := mstats.Max(values)
	current := values[len(values)-1]

	s := MetricStats{
		Current: &current,
		Average: &avg,
		Min:     &lo,
		Max:     &hi,
		Trend:   trend(values, avg),
		Target:  target,
	}
	s.AchievementRate = achievementRate(current, target)
	return s
}

// trend compares the mean of the latest three values with the mean of the
// three before them. The difference counts as stable while it stays below
// 5% of the period average.
func trend(values []float64, average float64) *Trend {
	n := len(values)
	if n < trendWindow {
		return nil
	}
	recent, _ := mstats.Mean(values[n-trendGroup:])
	previous, _ := mstats.Mean(values[n-trendWindow : n-trendGroup])
	diff := recent - previous
	threshold := math.Abs(average) * stableFraction

	t := TrendDown
	switch {
	case diff == 0 || math.Abs(diff) < threshold:
		t = TrendStable
	case diff > 0:
		t = TrendUp
	}
	return &t
}

func achievementRate(current float64, target *float64) *float64 {
	if target == nil || *target == 0 {
		return nil
	}
	rate := current / *target * 100
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

func intValue(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}
