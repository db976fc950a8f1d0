package app

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"healthtrack/internal/domain"
)

// Accepted measurement ranges.
const (
	maxWeightKg    = 500.0
	minBP, maxBP   = 30, 300
	minHR, maxHR   = 20, 300
	minTempC       = 30.0
	maxTempC       = 45.0
	maxFutureSkew  = 5 * time.Minute
	maxRecentLimit = 500
)

// VitalSignInput is the user-supplied part of a vital sign record. Weight is
// given in Unit ("kg" when empty) and stored in kg.
type VitalSignInput struct {
	MeasuredAt      *time.Time `json:"measuredAt"`
	Weight          *float64   `json:"weight"`
	Unit            string     `json:"unit"`
	SystolicBP      *int       `json:"systolicBp"`
	DiastolicBP     *int       `json:"diastolicBp"`
	HeartRate       *int       `json:"heartRate"`
	BodyTemperature *float64   `json:"bodyTemperature"`
	Notes           *string    `json:"notes"`
}

// VitalService encapsulates vital sign tracking use cases.
type VitalService struct {
	repo domain.VitalSignRepository
	now  func() time.Time
}

// NewVitalService creates a VitalService backed by the given repository.
func NewVitalService(repo domain.VitalSignRepository) *VitalService {
	return &VitalService{repo: repo, now: time.Now}
}

// WithClock replaces the time source used for default measurement times.
func (s *VitalService) WithClock(now func() time.Time) *VitalService {
	s.now = now
	return s
}

// Record validates and stores a new measurement and returns the stored record.
func (s *VitalService) Record(ctx context.Context, userID int64, in VitalSignInput) (*domain.VitalSign, error) {
	v, err := s.build(in)
	if err != nil {
		return nil, err
	}
	id, err := s.repo.AddVitalSign(ctx, userID, v)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"user": userID, "id": id}).Debug("vital sign recorded")
	return s.Get(ctx, userID, id)
}

// Update replaces the measurement values of an existing record.
func (s *VitalService) Update(ctx context.Context, userID, id int64, in VitalSignInput) (*domain.VitalSign, error) {
	v, err := s.build(in)
	if err != nil {
		return nil, err
	}
	v.ID = id
	ok, err := s.repo.UpdateVitalSign(ctx, userID, v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID, id)
}

// Get returns a single record owned by the user.
func (s *VitalService) Get(ctx context.Context, userID, id int64) (*domain.VitalSign, error) {
	v, err := s.repo.GetVitalSign(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	return v, nil
}

// Delete removes a record owned by the user.
func (s *VitalService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.repo.DeleteVitalSign(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// ListRecent returns the most recent records, newest first, up to limit.
func (s *VitalService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.VitalSign, error) {
	return s.repo.ListRecentVitalSigns(ctx, userID, clampLimit(limit))
}

func (s *VitalService) build(in VitalSignInput) (domain.VitalSign, error) {
	now := s.now()
	v := domain.VitalSign{
		MeasuredAt:      now,
		SystolicBP:      in.SystolicBP,
		DiastolicBP:     in.DiastolicBP,
		HeartRate:       in.HeartRate,
		BodyTemperature: in.BodyTemperature,
		Notes:           in.Notes,
	}
	if in.MeasuredAt != nil {
		if in.MeasuredAt.After(now.Add(maxFutureSkew)) {
			return v, invalid("measuredAt must not be in the future")
		}
		v.MeasuredAt = *in.MeasuredAt
	}
	if in.Weight != nil {
		unit := in.Unit
		if unit == "" {
			unit = domain.UnitKg
		}
		if !domain.ValidWeightUnit(unit) {
			return v, invalid("unit must be \"kg\" or \"lb\"")
		}
		kg := domain.ConvertWeight(*in.Weight, unit, domain.UnitKg)
		v.Weight = &kg
	}
	return v, validateVitalSign(v)
}

func validateVitalSign(v domain.VitalSign) error {
	if !v.HasMeasurement() {
		return invalid("at least one measurement is required")
	}
	if v.Weight != nil && (*v.Weight <= 0 || *v.Weight > maxWeightKg) {
		return invalid("weight must be within (0, %g] kg", maxWeightKg)
	}
	if v.SystolicBP != nil && (*v.SystolicBP < minBP || *v.SystolicBP > maxBP) {
		return invalid("systolicBp must be within [%d, %d] mmHg", minBP, maxBP)
	}
	if v.DiastolicBP != nil && (*v.DiastolicBP < minBP || *v.DiastolicBP > maxBP) {
		return invalid("diastolicBp must be within [%d, %d] mmHg", minBP, maxBP)
	}
	if v.SystolicBP != nil && v.DiastolicBP != nil && *v.DiastolicBP >= *v.SystolicBP {
		return invalid("diastolicBp must be lower than systolicBp")
	}
	if v.HeartRate != nil && (*v.HeartRate < minHR || *v.HeartRate > maxHR) {
		return invalid("heartRate must be within [%d, %d] bpm", minHR, maxHR)
	}
	if v.BodyTemperature != nil && (*v.BodyTemperature < minTempC || *v.BodyTemperature > maxTempC) {
		return invalid("bodyTemperature must be within [%g, %g] °C", minTempC, maxTempC)
	}
	return nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 1
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
