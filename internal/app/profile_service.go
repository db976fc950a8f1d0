package app

import (
	"context"
	"strings"
	"time"

	"healthtrack/internal/domain"
)

const (
	maxDisplayNameLen = 100
	maxHeightCm       = 300.0
)

// ProfileInput is the user-supplied profile. BirthDate uses YYYY-MM-DD.
type ProfileInput struct {
	DisplayName *string        `json:"displayName"`
	HeightCm    *float64       `json:"heightCm"`
	BirthDate   *string        `json:"birthDate"`
	Gender      *domain.Gender `json:"gender"`
}

// ProfileService manages the personal details of each user.
type ProfileService struct {
	repo domain.ProfileRepository
	now  func() time.Time
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo, now: time.Now}
}

// WithClock replaces the time source used to reject future birth dates.
func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// Get returns the user's profile, or nil when none is stored.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*domain.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// Set validates and stores the profile, replacing any previous one.
func (s *ProfileService) Set(ctx context.Context, userID int64, in ProfileInput) (*domain.Profile, error) {
	p := domain.Profile{
		UserID:   userID,
		HeightCm: in.HeightCm,
		Gender:   in.Gender,
	}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if len(name) > maxDisplayNameLen {
			return nil, invalid("displayName must be at most %d characters", maxDisplayNameLen)
		}
		if name != "" {
			p.DisplayName = &name
		}
	}
	if p.HeightCm != nil && (*p.HeightCm <= 0 || *p.HeightCm > maxHeightCm) {
		return nil, invalid("heightCm must be within (0, %g]", maxHeightCm)
	}
	if p.Gender != nil && !p.Gender.Valid() {
		return nil, invalid("gender must be \"male\", \"female\" or \"other\"")
	}
	if in.BirthDate != nil && *in.BirthDate != "" {
		now := s.now()
		born, err := time.ParseInLocation(domain.BirthDateLayout, *in.BirthDate, now.Location())
		if err != nil {
			return nil, invalid("birthDate must use YYYY-MM-DD")
		}
		if born.After(now) {
			return nil, invalid("birthDate must not be in the future")
		}
		d := born.Format(domain.BirthDateLayout)
		p.BirthDate = &d
	}

	if err := s.repo.UpsertProfile(ctx, userID, p); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, userID)
}
