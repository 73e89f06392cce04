package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsFixture builds one booking per interesting state:
// a draft, a pending, a fully paid pending, a confirmed, and a cancelled one.
func statsFixture(t *testing.T) []*Booking {
	t.Helper()
	schedules := []Schedule{mustSchedule(t, futureDate(7), "09:00", "12:00")}

	draft := newDraftBooking(t, schedules, 3, 100)

	pending, err := newDraftBooking(t, schedules, 3, 200).Submit()
	require.NoError(t, err)

	paid := paidPendingBooking(t, 300)

	confirmed, err := paidPendingBooking(t, 400).Confirm()
	require.NoError(t, err)

	cancelled, err := paidPendingBooking(t, 500).Cancel("plans changed")
	require.NoError(t, err)

	return []*Booking{draft, pending, paid, confirmed, cancelled}
}

func TestStatsCalculator_TotalRevenue(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	// Paid bookings: 300 + 400 + 500 (cancelled but still paid).
	assert.Equal(t, 1200.0, stats.TotalRevenue(bookings))
	assert.Equal(t, 0.0, stats.TotalRevenue(nil))
}

func TestStatsCalculator_PendingRevenue(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	// Outstanding balances of payment-pending bookings: 100 + 200.
	assert.Equal(t, 300.0, stats.PendingRevenue(bookings))
}

func TestStatsCalculator_AverageBookingValue(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	// (100 + 200 + 300 + 400 + 500) / 5
	assert.Equal(t, 300.0, stats.AverageBookingValue(bookings))
	assert.Equal(t, 0.0, stats.AverageBookingValue(nil))
}

func TestStatsCalculator_CountByStatus(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	counts := stats.CountByStatus(bookings)
	assert.Equal(t, 1, counts[StatusDraft])
	assert.Equal(t, 2, counts[StatusPending])
	assert.Equal(t, 1, counts[StatusConfirmed])
	assert.Equal(t, 1, counts[StatusCancelled])
	assert.Equal(t, 0, counts[StatusCompleted])

	// Every status key is present, and the counts sum to the collection size.
	assert.Len(t, counts, len(AllStatuses))
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, len(bookings), total)
}

func TestStatsCalculator_CountByPaymentStatus(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	counts := stats.CountByPaymentStatus(bookings)
	assert.Equal(t, 2, counts[PaymentPending])
	assert.Equal(t, 3, counts[PaymentPaid])
	assert.Equal(t, 0, counts[PaymentPartial])
	assert.Len(t, counts, len(AllPaymentStatuses))
}

func TestStatsCalculator_TotalHoursBooked(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)
	assert.Equal(t, 15.0, stats.TotalHoursBooked(bookings))
}

func TestStatsCalculator_CancellationRate(t *testing.T) {
	stats := NewStatsCalculator()
	bookings := statsFixture(t)

	assert.Equal(t, 20.0, stats.CancellationRate(bookings))
	assert.Equal(t, 0.0, stats.CancellationRate(nil))
}

func TestStatsCalculator_FilterByDateRange(t *testing.T) {
	stats := NewStatsCalculator()

	mkBooking := func(start *time.Time) *Booking {
		return &Booking{startDate: start, createdAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	}
	aug15 := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	sep15 := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	bookings := []*Booking{
		mkBooking(&aug15),
		mkBooking(&sep15),
		mkBooking(nil), // falls back to createdAt, Aug 1
	}

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	filtered := stats.FilterByDateRange(bookings, from, to)
	assert.Len(t, filtered, 2)

	// Bounds are inclusive.
	filtered = stats.FilterByDateRange(bookings, aug15, aug15)
	assert.Len(t, filtered, 1)
}
