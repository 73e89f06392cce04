package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByReference retrieves a booking by its human-quotable reference.
	FindByReference(ctx context.Context, reference string) (*Booking, error)

	// FindByGuardianID retrieves bookings belonging to a guardian with pagination.
	FindByGuardianID(ctx context.Context, guardianID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindSchedulesBetween returns every schedule of non-cancelled bookings
	// in the date range, for availability checks.
	FindSchedulesBetween(ctx context.Context, from, to time.Time) ([]Schedule, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// ListBetween retrieves every booking whose effective date is in the
	// range, for reporting (admin).
	ListBetween(ctx context.Context, from, to time.Time) ([]*Booking, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists a new revision of an existing booking with optimistic
	// locking against the previously stored revision.
	Update(ctx context.Context, booking *Booking, expectedUpdatedAt time.Time) error

	// Delete removes a booking. Only drafts are ever deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
