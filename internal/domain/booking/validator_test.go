package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidateParticipantAge(t *testing.T) {
	v := NewValidator()
	p := Participant{
		FirstName:   "Mia",
		LastName:    "Tan",
		DateOfBirth: time.Now().AddDate(-4, 0, -1), // just turned 4
	}

	assert.True(t, v.ValidateParticipantAge(p, 0, 0).Valid, "zero bounds are unset")
	assert.True(t, v.ValidateParticipantAge(p, 3, 6).Valid)

	result := v.ValidateParticipantAge(p, 5, 12)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "below the minimum age")

	result = v.ValidateParticipantAge(p, 0, 3)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "above the maximum age")
}

func TestValidator_ValidateScheduleConflicts(t *testing.T) {
	v := NewValidator()
	day := futureDate(7)

	existing := []Schedule{
		mustSchedule(t, day, "09:00", "11:00"),
		mustSchedule(t, day, "14:00", "16:00"),
	}

	t.Run("no conflicts", func(t *testing.T) {
		incoming := []Schedule{
			mustSchedule(t, day, "11:00", "12:00"),
			mustSchedule(t, futureDate(8), "09:00", "11:00"),
		}
		result := v.ValidateScheduleConflicts(incoming, existing)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("collects every conflicting schedule", func(t *testing.T) {
		incoming := []Schedule{
			mustSchedule(t, day, "10:00", "12:00"), // overlaps 09:00-11:00
			mustSchedule(t, day, "12:00", "13:00"), // free
			mustSchedule(t, day, "15:00", "17:00"), // overlaps 14:00-16:00
		}
		result := v.ValidateScheduleConflicts(incoming, existing)
		assert.False(t, result.Valid)
		require.Len(t, result.Conflicts, 2)
		assert.Equal(t, "10:00", result.Conflicts[0].StartTime)
		assert.Equal(t, "15:00", result.Conflicts[1].StartTime)
		assert.Contains(t, result.Error, "2 schedule(s)")
	})

	t.Run("empty inputs never conflict", func(t *testing.T) {
		assert.True(t, v.ValidateScheduleConflicts(nil, existing).Valid)
		assert.True(t, v.ValidateScheduleConflicts(existing, nil).Valid)
	})
}

func TestValidator_ValidateBookingConfirmation(t *testing.T) {
	v := NewValidator()

	paid := paidPendingBooking(t, 150)
	assert.True(t, v.ValidateBookingConfirmation(paid).Valid)

	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}
	draft := newDraftBooking(t, schedules, 3, 150)
	result := v.ValidateBookingConfirmation(draft)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "cannot be confirmed")

	pending, err := draft.Submit()
	require.NoError(t, err)
	result = v.ValidateBookingConfirmation(pending)
	assert.False(t, result.Valid, "unpaid booking fails the confirmation check")
}

func TestValidator_ValidateBookingCancellation(t *testing.T) {
	v := NewValidator()

	paid := paidPendingBooking(t, 150)
	assert.True(t, v.ValidateBookingCancellation(paid).Valid)

	cancelled, err := paid.Cancel("plans changed")
	require.NoError(t, err)
	result := v.ValidateBookingCancellation(cancelled)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "cannot be cancelled")
}

func TestValidator_ValidateHourBounds(t *testing.T) {
	v := NewValidator()

	assert.True(t, v.ValidateMinimumHours(10, 5).Valid)
	assert.True(t, v.ValidateMinimumHours(5, 5).Valid)
	assert.False(t, v.ValidateMinimumHours(4.5, 5).Valid)

	assert.True(t, v.ValidateMaximumHours(30, 40).Valid)
	assert.False(t, v.ValidateMaximumHours(40.5, 40).Valid)
}

func TestValidator_ValidateBookingWindow(t *testing.T) {
	v := NewValidator()
	now := time.Now().UTC()

	ok := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}
	assert.True(t, v.ValidateBookingWindow(ok, now).Valid)

	// A session later today is inside the 24h notice period.
	tooSoon := []Schedule{{
		Date:      startOfDay(now),
		StartTime: now.Add(time.Hour).Format("15:04"),
		EndTime:   now.Add(2 * time.Hour).Format("15:04"),
	}}
	result := v.ValidateBookingWindow(tooSoon, now)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Error, "outside the booking window")
}
