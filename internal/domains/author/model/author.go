package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"bookcatalog-core/internal/shared/audit"
	"bookcatalog-core/internal/shared/values"
)

const (
	MinBioLength = 10
	MaxBioLength = 2000
	MinAuthorAge = 16
	MinBirthYear = 1900
)

// Author is an identity-bearing entity. Equality is by ID; all state
// changes go through the named mutators, which re-validate their
// preconditions and bump UpdatedAt. Authors are never hard-deleted;
// deactivation is the terminal state in the normal flow.
type Author struct {
	ID          uuid.UUID            `json:"id" db:"id"`
	Name        values.PersonName    `json:"name"`
	Email       *values.EmailAddress `json:"email,omitempty"`
	Bio         *string              `json:"bio,omitempty" db:"bio"`
	BirthDate   *time.Time           `json:"birth_date,omitempty" db:"birth_date"`
	Nationality *string              `json:"nationality,omitempty" db:"nationality"`

	audit.Record
}

// NewAuthor validates creation-time invariants and returns a fully
// built Author, or a ValidationError before any instance exists.
func NewAuthor(name values.PersonName, email *values.EmailAddress, bio *string, birthDate *time.Time, nationality *string) (*Author, error) {
	if name.IsZero() {
		return nil, values.NewValidationError("author name is required")
	}
	normalizedBio, err := normalizeBio(bio)
	if err != nil {
		return nil, err
	}
	if err := validateBirthDate(birthDate); err != nil {
		return nil, err
	}

	return &Author{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Bio:         normalizedBio,
		BirthDate:   birthDate,
		Nationality: normalizeOptional(nationality),
		Record:      audit.NewRecord(),
	}, nil
}

// UpdateBio replaces the biography. Fails without mutating state.
func (a *Author) UpdateBio(bio string) error {
	normalized, err := normalizeBio(&bio)
	if err != nil {
		return err
	}
	a.Bio = normalized
	a.Touch()
	return nil
}

// UpdateName replaces the author's name.
func (a *Author) UpdateName(name values.PersonName) error {
	if name.IsZero() {
		return values.NewValidationError("author name is required")
	}
	a.Name = name
	a.Touch()
	return nil
}

// UpdateEmail replaces the contact email. Passing nil clears it.
func (a *Author) UpdateEmail(email *values.EmailAddress) {
	a.Email = email
	a.Touch()
}

// UpdateNationality replaces the nationality. Passing nil clears it.
func (a *Author) UpdateNationality(nationality *string) {
	a.Nationality = normalizeOptional(nationality)
	a.Touch()
}

// Age returns the author's age in full years at the given time, or -1
// when no birth date is recorded.
func (a *Author) Age(at time.Time) int {
	if a.BirthDate == nil {
		return -1
	}
	return ageAt(*a.BirthDate, at)
}

func normalizeBio(bio *string) (*string, error) {
	if bio == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*bio)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) < MinBioLength {
		return nil, values.NewValidationError("bio must be at least 10 characters")
	}
	if len(trimmed) > MaxBioLength {
		return nil, values.NewValidationError("bio exceeds maximum length of 2000 characters")
	}
	return &trimmed, nil
}

func validateBirthDate(birthDate *time.Time) error {
	if birthDate == nil {
		return nil
	}
	now := time.Now().UTC()
	if birthDate.After(now) {
		return values.NewValidationError("birth date cannot be in the future")
	}
	if birthDate.Year() < MinBirthYear {
		return values.NewValidationError("birth date cannot be before year 1900")
	}
	if ageAt(*birthDate, now) < MinAuthorAge {
		return values.NewValidationError("author must be at least 16 years old")
	}
	return nil
}

func ageAt(birthDate, at time.Time) int {
	years := at.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
