package domain

import (
	"context"
	"time"
)

// Gender as entered on the profile form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// BirthDateLayout is the calendar date format of Profile.BirthDate.
const BirthDateLayout = "2006-01-02"

// Profile holds the personal details of a user. Every field is optional.
type Profile struct {
	UserID      int64     `json:"userId"`
	DisplayName *string   `json:"displayName"`
	HeightCm    *float64  `json:"heightCm"`
	BirthDate   *string   `json:"birthDate"`
	Gender      *Gender   `json:"gender"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProfileRepository is the port for profile persistence. A user has at most
// one profile.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertProfile(ctx context.Context, userID int64, p Profile) error
}
