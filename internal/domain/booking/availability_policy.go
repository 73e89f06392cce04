package booking

import "time"

const (
	// MaxParticipantsPerSlot caps how many sessions can share one slot.
	MaxParticipantsPerSlot = 10

	// MinNoticeHours is how far in advance a session must be booked.
	MinNoticeHours = 24

	// MaxAdvanceDays is how far ahead a session may be booked.
	MaxAdvanceDays = 90
)

// AvailabilityPolicy decides whether dates and time slots can still be
// booked. It is stateless; callers supply the current instant and the
// already-booked schedules.
type AvailabilityPolicy struct{}

// NewAvailabilityPolicy creates an AvailabilityPolicy.
func NewAvailabilityPolicy() AvailabilityPolicy {
	return AvailabilityPolicy{}
}

// IsWithinBookingWindow returns true if the schedule starts at least
// MinNoticeHours from now and no more than MaxAdvanceDays ahead.
func (AvailabilityPolicy) IsWithinBookingWindow(s Schedule, now time.Time) bool {
	hoursUntilStart := s.StartAt().Sub(now).Hours()
	return hoursUntilStart >= MinNoticeHours && hoursUntilStart <= MaxAdvanceDays*24
}

// IsDateAvailable returns true while the number of sessions already booked on
// the date is below capacity.
func (AvailabilityPolicy) IsDateAvailable(date time.Time, existing []Schedule) bool {
	count := 0
	for _, s := range existing {
		if sameCalendarDate(s.Date, date) {
			count++
		}
	}
	return count < MaxParticipantsPerSlot
}

// AvailableTimeSlots returns the candidate start-time slots not already
// booked on the given date, preserving the candidates' order.
func (AvailabilityPolicy) AvailableTimeSlots(date time.Time, existing []Schedule, allSlots []string) []string {
	booked := make(map[string]struct{})
	for _, s := range existing {
		if sameCalendarDate(s.Date, date) {
			booked[s.StartTime] = struct{}{}
		}
	}

	available := make([]string, 0, len(allSlots))
	for _, slot := range allSlots {
		if _, taken := booked[slot]; !taken {
			available = append(available, slot)
		}
	}
	return available
}

func sameCalendarDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
