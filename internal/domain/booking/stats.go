package booking

import "time"

// StatsCalculator computes reporting figures over booking collections. All
// functions are pure; collections are never mutated.
type StatsCalculator struct{}

// NewStatsCalculator creates a StatsCalculator.
func NewStatsCalculator() StatsCalculator {
	return StatsCalculator{}
}

// TotalRevenue sums the paid amounts of fully paid bookings.
func (StatsCalculator) TotalRevenue(bookings []*Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.PaymentStatus().IsPaid() {
			total += b.PaidAmount()
		}
	}
	return total
}

// PendingRevenue sums the outstanding balances of bookings still awaiting
// payment (pending or partial).
func (StatsCalculator) PendingRevenue(bookings []*Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.PaymentStatus().IsPending() || b.PaymentStatus().IsPartial() {
			total += b.RemainingAmount()
		}
	}
	return total
}

// AverageBookingValue returns the mean total price, or 0 for an empty
// collection.
func (StatsCalculator) AverageBookingValue(bookings []*Booking) float64 {
	if len(bookings) == 0 {
		return 0
	}
	var total float64
	for _, b := range bookings {
		total += b.TotalPrice()
	}
	return total / float64(len(bookings))
}

// CountByStatus counts bookings per fulfillment status. Every status key is
// present and zero-initialized so report totals line up across periods.
func (StatsCalculator) CountByStatus(bookings []*Booking) map[BookingStatus]int {
	counts := make(map[BookingStatus]int, len(AllStatuses))
	for _, s := range AllStatuses {
		counts[s] = 0
	}
	for _, b := range bookings {
		counts[b.Status()]++
	}
	return counts
}

// CountByPaymentStatus counts bookings per payment status, zero-initialized
// over the full enumeration.
func (StatsCalculator) CountByPaymentStatus(bookings []*Booking) map[PaymentStatus]int {
	counts := make(map[PaymentStatus]int, len(AllPaymentStatuses))
	for _, s := range AllPaymentStatuses {
		counts[s] = 0
	}
	for _, b := range bookings {
		counts[b.PaymentStatus()]++
	}
	return counts
}

// TotalHoursBooked sums the purchased hours across the collection.
func (StatsCalculator) TotalHoursBooked(bookings []*Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.TotalHours()
	}
	return total
}

// CancellationRate returns the percentage of cancelled bookings, or 0 for an
// empty collection.
func (StatsCalculator) CancellationRate(bookings []*Booking) float64 {
	if len(bookings) == 0 {
		return 0
	}
	cancelled := 0
	for _, b := range bookings {
		if b.Status().IsCancelled() {
			cancelled++
		}
	}
	return float64(cancelled) / float64(len(bookings)) * 100
}

// FilterByDateRange returns the bookings whose effective date falls within
// [from, to] inclusive. The effective date is the start date when present,
// else the creation timestamp.
func (StatsCalculator) FilterByDateRange(bookings []*Booking, from, to time.Time) []*Booking {
	var filtered []*Booking
	for _, b := range bookings {
		effective := b.CreatedAt()
		if b.StartDate() != nil {
			effective = *b.StartDate()
		}
		if effective.Before(from) || effective.After(to) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
