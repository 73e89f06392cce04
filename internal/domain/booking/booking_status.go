package booking

import "fmt"

// BookingStatus represents the fulfillment state of a booking.
type BookingStatus string

const (
	StatusDraft     BookingStatus = "draft"
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// AllStatuses lists every booking status, used to zero-initialize counters.
var AllStatuses = []BookingStatus{
	StatusDraft,
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// validStatusTransitions defines the fulfillment state machine.
var validStatusTransitions = map[BookingStatus][]BookingStatus{
	StatusDraft:     {StatusPending},
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validStatusTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validStatusTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validStatusTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanBeCancelled returns true if a booking in this status may still be cancelled.
func (s BookingStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(StatusCancelled)
}

// CanBeConfirmed returns true if a booking in this status may be confirmed.
// Full payment is an additional requirement enforced by the aggregate.
func (s BookingStatus) CanBeConfirmed() bool {
	return s.CanTransitionTo(StatusConfirmed)
}

// IsDraft returns true for the draft status.
func (s BookingStatus) IsDraft() bool { return s == StatusDraft }

// IsPending returns true for the pending status.
func (s BookingStatus) IsPending() bool { return s == StatusPending }

// IsConfirmed returns true for the confirmed status.
func (s BookingStatus) IsConfirmed() bool { return s == StatusConfirmed }

// IsCancelled returns true for the cancelled status.
func (s BookingStatus) IsCancelled() bool { return s == StatusCancelled }

// IsCompleted returns true for the completed status.
func (s BookingStatus) IsCompleted() bool { return s == StatusCompleted }

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
