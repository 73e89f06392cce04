package child

import (
	"time"

	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// ProfileStatus represents the lifecycle state of a saved child profile.
type ProfileStatus string

const (
	ProfileActive   ProfileStatus = "active"
	ProfileArchived ProfileStatus = "archived"
)

// Child is a saved child profile a guardian can reuse when booking, so
// participant details are not re-entered for every purchase.
type Child struct {
	id           uuid.UUID
	guardianID   uuid.UUID
	firstName    string
	lastName     string
	dateOfBirth  time.Time
	allergies    string
	medicalInfo  string
	specialNeeds string
	notes        string
	status       ProfileStatus
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewChild creates a new active child profile with validated fields.
func NewChild(
	guardianID uuid.UUID,
	firstName, lastName string,
	dateOfBirth time.Time,
	allergies, medicalInfo, specialNeeds, notes string,
) (*Child, error) {
	if guardianID == uuid.Nil {
		return nil, domain.NewValidationError("guardian ID is required")
	}
	if firstName == "" {
		return nil, domain.NewValidationError("child first name is required")
	}
	if lastName == "" {
		return nil, domain.NewValidationError("child last name is required")
	}
	if dateOfBirth.IsZero() || !dateOfBirth.Before(time.Now()) {
		return nil, domain.NewValidationError("child date of birth must be in the past")
	}

	now := time.Now().UTC()
	return &Child{
		id:           uuid.New(),
		guardianID:   guardianID,
		firstName:    firstName,
		lastName:     lastName,
		dateOfBirth:  dateOfBirth,
		allergies:    allergies,
		medicalInfo:  medicalInfo,
		specialNeeds: specialNeeds,
		notes:        notes,
		status:       ProfileActive,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Child from persistence data.
func Reconstruct(
	id, guardianID uuid.UUID,
	firstName, lastName string,
	dateOfBirth time.Time,
	allergies, medicalInfo, specialNeeds, notes string,
	status ProfileStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Child {
	return &Child{
		id:           id,
		guardianID:   guardianID,
		firstName:    firstName,
		lastName:     lastName,
		dateOfBirth:  dateOfBirth,
		allergies:    allergies,
		medicalInfo:  medicalInfo,
		specialNeeds: specialNeeds,
		notes:        notes,
		status:       status,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (c *Child) ID() uuid.UUID          { return c.id }
func (c *Child) GuardianID() uuid.UUID  { return c.guardianID }
func (c *Child) FirstName() string      { return c.firstName }
func (c *Child) LastName() string       { return c.lastName }
func (c *Child) DateOfBirth() time.Time { return c.dateOfBirth }
func (c *Child) Allergies() string      { return c.allergies }
func (c *Child) MedicalInfo() string    { return c.medicalInfo }
func (c *Child) SpecialNeeds() string   { return c.specialNeeds }
func (c *Child) Notes() string          { return c.notes }
func (c *Child) Status() ProfileStatus  { return c.status }
func (c *Child) Version() int64         { return c.version }
func (c *Child) CreatedAt() time.Time   { return c.createdAt }
func (c *Child) UpdatedAt() time.Time   { return c.updatedAt }

// --- Behavior ---

// IsOwnedBy checks if the profile belongs to the given guardian.
func (c *Child) IsOwnedBy(guardianID uuid.UUID) bool {
	return c.guardianID == guardianID
}

// Update applies partial updates to the profile.
func (c *Child) Update(firstName, lastName, allergies, medicalInfo, specialNeeds, notes string) {
	if firstName != "" {
		c.firstName = firstName
	}
	if lastName != "" {
		c.lastName = lastName
	}
	if allergies != "" {
		c.allergies = allergies
	}
	if medicalInfo != "" {
		c.medicalInfo = medicalInfo
	}
	if specialNeeds != "" {
		c.specialNeeds = specialNeeds
	}
	if notes != "" {
		c.notes = notes
	}
	c.version++
	c.updatedAt = time.Now().UTC()
}

// Archive marks the profile as archived.
func (c *Child) Archive() {
	c.status = ProfileArchived
	c.version++
	c.updatedAt = time.Now().UTC()
}

// IsActive returns true if the profile is active.
func (c *Child) IsActive() bool {
	return c.status == ProfileActive
}
