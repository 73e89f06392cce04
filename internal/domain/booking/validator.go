package booking

import (
	"fmt"
	"time"
)

// Result is the outcome of a business-rule check. Unlike value-object
// construction, validators never return Go errors: a failed rule is an
// expected condition carried back as a value for the caller to surface.
type Result struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func valid() Result {
	return Result{Valid: true}
}

func invalid(format string, args ...interface{}) Result {
	return Result{Valid: false, Error: fmt.Sprintf(format, args...)}
}

// ConflictResult is the outcome of a schedule-conflict check, reporting every
// conflicting new schedule rather than just the first.
type ConflictResult struct {
	Valid     bool       `json:"valid"`
	Conflicts []Schedule `json:"conflicts,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Validator runs business-rule checks over bookings and their parts.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() Validator {
	return Validator{}
}

// ValidateParticipantAge checks the participant's age against optional
// bounds; a zero bound is treated as unset.
func (Validator) ValidateParticipantAge(p Participant, minAge, maxAge int) Result {
	age := p.Age()
	if minAge > 0 && age < minAge {
		return invalid("participant %s is %d, below the minimum age of %d", p.FullName(), age, minAge)
	}
	if maxAge > 0 && age > maxAge {
		return invalid("participant %s is %d, above the maximum age of %d", p.FullName(), age, maxAge)
	}
	return valid()
}

// ValidateScheduleConflicts checks each new schedule against the existing
// ones and collects every conflicting new schedule.
func (Validator) ValidateScheduleConflicts(newSchedules, existing []Schedule) ConflictResult {
	var conflicts []Schedule
	for _, candidate := range newSchedules {
		for _, booked := range existing {
			if candidate.ConflictsWith(booked) {
				conflicts = append(conflicts, candidate)
				break
			}
		}
	}

	if len(conflicts) > 0 {
		return ConflictResult{
			Valid:     false,
			Conflicts: conflicts,
			Error:     fmt.Sprintf("%d schedule(s) conflict with existing sessions", len(conflicts)),
		}
	}
	return ConflictResult{Valid: true}
}

// ValidateBookingConfirmation runs the composite confirmation check: the
// booking must be confirmable, scheduled, and have participants.
func (Validator) ValidateBookingConfirmation(b *Booking) Result {
	if !b.CanBeConfirmed() {
		return invalid("booking %s cannot be confirmed in its current state", b.Reference())
	}
	if len(b.Schedules()) == 0 {
		return invalid("booking %s has no scheduled sessions", b.Reference())
	}
	if len(b.Participants()) == 0 {
		return invalid("booking %s has no participants", b.Reference())
	}
	return valid()
}

// ValidateBookingCancellation checks the booking can still be cancelled.
func (Validator) ValidateBookingCancellation(b *Booking) Result {
	if !b.CanBeCancelled() {
		return invalid("booking %s cannot be cancelled in status %s", b.Reference(), b.Status())
	}
	return valid()
}

// ValidateMinimumHours checks the booked hours meet the package minimum.
func (Validator) ValidateMinimumHours(totalHours, minimum float64) Result {
	if totalHours < minimum {
		return invalid("booked hours %.1f are below the minimum of %.1f", totalHours, minimum)
	}
	return valid()
}

// ValidateMaximumHours checks the booked hours do not exceed the package
// maximum.
func (Validator) ValidateMaximumHours(totalHours, maximum float64) Result {
	if totalHours > maximum {
		return invalid("booked hours %.1f exceed the maximum of %.1f", totalHours, maximum)
	}
	return valid()
}

// ValidateBookingWindow checks every schedule against the availability
// policy's notice window.
func (Validator) ValidateBookingWindow(schedules []Schedule, now time.Time) Result {
	policy := NewAvailabilityPolicy()
	for _, s := range schedules {
		if !policy.IsWithinBookingWindow(s, now) {
			return invalid("session on %s at %s is outside the booking window",
				s.Date.Format("2006-01-02"), s.StartTime)
		}
	}
	return valid()
}
