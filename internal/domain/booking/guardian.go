package booking

import (
	"regexp"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Guardian is an immutable value object describing the adult responsible for
// a booking and its participants.
type Guardian struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}

// NewGuardian creates a validated Guardian.
func NewGuardian(firstName, lastName, email, phone, address, emergencyContact string) (Guardian, error) {
	g := Guardian{
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            phone,
		Address:          address,
		EmergencyContact: emergencyContact,
	}
	if err := g.validate(); err != nil {
		return Guardian{}, err
	}
	return g, nil
}

// validate checks the field invariants, at construction and again when a
// stored guardian is rehydrated.
func (g Guardian) validate() error {
	if g.FirstName == "" {
		return domain.NewValidationError("guardian first name is required")
	}
	if g.LastName == "" {
		return domain.NewValidationError("guardian last name is required")
	}
	if !emailPattern.MatchString(g.Email) {
		return domain.NewValidationError("guardian email is invalid")
	}
	if g.Phone == "" {
		return domain.NewValidationError("guardian phone is required")
	}
	return nil
}

// FullName returns the guardian's full name.
func (g Guardian) FullName() string {
	return g.FirstName + " " + g.LastName
}
