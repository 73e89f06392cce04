package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingPolicy_CanEditAndDelete(t *testing.T) {
	policy := NewBookingPolicy()

	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}
	draft := newDraftBooking(t, schedules, 3, 150)
	assert.True(t, policy.CanEdit(draft))
	assert.True(t, policy.CanDelete(draft))

	pending, err := draft.Submit()
	require.NoError(t, err)
	assert.True(t, policy.CanEdit(pending))
	assert.False(t, policy.CanDelete(pending))

	paid, err := pending.RecordPayment(150)
	require.NoError(t, err)
	confirmed, err := paid.Confirm()
	require.NoError(t, err)
	assert.False(t, policy.CanEdit(confirmed))
	assert.False(t, policy.CanDelete(confirmed))
}

func TestBookingPolicy_RequiresPayment(t *testing.T) {
	policy := NewBookingPolicy()
	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}

	assert.True(t, policy.RequiresPayment(newDraftBooking(t, schedules, 3, 150)))
	assert.False(t, policy.RequiresPayment(newDraftBooking(t, schedules, 3, 0)))
}

func TestBookingPolicy_CanAutoConfirm(t *testing.T) {
	policy := NewBookingPolicy()
	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}
	draft := newDraftBooking(t, schedules, 3, 150)

	assert.False(t, policy.CanAutoConfirm(draft), "drafts never auto-confirm")

	pending, err := draft.Submit()
	require.NoError(t, err)
	assert.False(t, policy.CanAutoConfirm(pending), "unpaid bookings never auto-confirm")

	paid, err := pending.RecordPayment(150)
	require.NoError(t, err)
	assert.True(t, policy.CanAutoConfirm(paid))
}

func TestBookingPolicy_CanBeRefunded(t *testing.T) {
	policy := NewBookingPolicy()

	paid := paidPendingBooking(t, 150)
	assert.True(t, policy.CanBeRefunded(paid))

	cancelled, err := paid.Cancel("no longer needed")
	require.NoError(t, err)
	assert.False(t, policy.CanBeRefunded(cancelled), "already cancelled")

	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}
	pending, err := newDraftBooking(t, schedules, 3, 150).Submit()
	require.NoError(t, err)
	assert.False(t, policy.CanBeRefunded(pending), "nothing has been paid")
}

func TestBookingPolicy_IsWithinCancellationDeadline(t *testing.T) {
	policy := NewBookingPolicy()
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	b := &Booking{startDate: &start}

	assert.True(t, policy.IsWithinCancellationDeadline(b, start.AddDate(0, 0, -8)))
	assert.True(t, policy.IsWithinCancellationDeadline(b, start.AddDate(0, 0, -7)), "deadline day itself")
	assert.False(t, policy.IsWithinCancellationDeadline(b, start.AddDate(0, 0, -6)))
	assert.False(t, policy.IsWithinCancellationDeadline(b, start))

	noStart := &Booking{}
	assert.False(t, policy.IsWithinCancellationDeadline(noStart, start))
}
