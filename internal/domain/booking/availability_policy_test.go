package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityPolicy_IsWithinBookingWindow(t *testing.T) {
	policy := NewAvailabilityPolicy()
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	slotAt := func(startsIn time.Duration) Schedule {
		start := now.Add(startsIn)
		return Schedule{
			Date:      time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			StartTime: start.Format("15:04"),
			EndTime:   start.Add(time.Hour).Format("15:04"),
		}
	}

	assert.False(t, policy.IsWithinBookingWindow(slotAt(2*time.Hour), now), "under 24h notice")
	assert.True(t, policy.IsWithinBookingWindow(slotAt(24*time.Hour), now), "exactly 24h notice")
	assert.True(t, policy.IsWithinBookingWindow(slotAt(48*time.Hour), now))
	assert.True(t, policy.IsWithinBookingWindow(slotAt(90*24*time.Hour), now), "exactly 90 days ahead")
	assert.False(t, policy.IsWithinBookingWindow(slotAt(91*24*time.Hour), now), "beyond 90 days")
}

func TestAvailabilityPolicy_IsDateAvailable(t *testing.T) {
	policy := NewAvailabilityPolicy()
	date := futureDate(7)

	var existing []Schedule
	for i := 0; i < MaxParticipantsPerSlot-1; i++ {
		existing = append(existing, Schedule{Date: date, StartTime: "09:00", EndTime: "10:00"})
	}
	assert.True(t, policy.IsDateAvailable(date, existing), "one seat left")

	existing = append(existing, Schedule{Date: date, StartTime: "09:00", EndTime: "10:00"})
	assert.False(t, policy.IsDateAvailable(date, existing), "at capacity")

	// A full day does not block other days.
	assert.True(t, policy.IsDateAvailable(futureDate(8), existing))
}

func TestAvailabilityPolicy_AvailableTimeSlots(t *testing.T) {
	policy := NewAvailabilityPolicy()
	date := futureDate(7)
	allSlots := []string{"08:00", "09:00", "10:00", "11:00"}

	existing := []Schedule{
		{Date: date, StartTime: "09:00", EndTime: "10:00"},
		{Date: date, StartTime: "11:00", EndTime: "12:00"},
		{Date: futureDate(8), StartTime: "08:00", EndTime: "09:00"}, // other day
	}

	available := policy.AvailableTimeSlots(date, existing, allSlots)
	assert.Equal(t, []string{"08:00", "10:00"}, available)

	// Nothing booked leaves every candidate, in order.
	assert.Equal(t, allSlots, policy.AvailableTimeSlots(futureDate(9), existing, allSlots))
}
