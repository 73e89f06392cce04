package booking

import (
	"time"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// Participant is an immutable value object describing a child enrolled under
// a booking.
type Participant struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	MedicalInfo  string    `json:"medical_info,omitempty"`
	SpecialNeeds string    `json:"special_needs,omitempty"`
}

// NewParticipant creates a validated Participant.
func NewParticipant(firstName, lastName string, dateOfBirth time.Time, medicalInfo, specialNeeds string) (Participant, error) {
	p := Participant{
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  dateOfBirth,
		MedicalInfo:  medicalInfo,
		SpecialNeeds: specialNeeds,
	}
	if err := p.validate(); err != nil {
		return Participant{}, err
	}
	return p, nil
}

// validate checks the field invariants, at construction and again when a
// stored participant is rehydrated.
func (p Participant) validate() error {
	if p.FirstName == "" {
		return domain.NewValidationError("participant first name is required")
	}
	if p.LastName == "" {
		return domain.NewValidationError("participant last name is required")
	}
	if p.DateOfBirth.IsZero() {
		return domain.NewValidationError("participant date of birth is required")
	}
	if !p.DateOfBirth.Before(time.Now()) {
		return domain.NewValidationError("participant date of birth must be in the past")
	}
	return nil
}

// FullName returns the participant's full name.
func (p Participant) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeAt returns the participant's age in whole years at the given instant,
// using exact calendar subtraction rather than a day count.
func (p Participant) AgeAt(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()

	// Birthday not yet reached this year.
	anniversary := time.Date(now.Year(), p.DateOfBirth.Month(), p.DateOfBirth.Day(),
		0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return years
}

// Age returns the participant's current age in whole years.
func (p Participant) Age() int {
	return p.AgeAt(time.Now())
}
