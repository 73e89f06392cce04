package booking

import "time"

// cancellationNoticeDays is the minimum notice, in days before the start
// date, required for a penalty-free cancellation.
const cancellationNoticeDays = 7

// BookingPolicy answers lifecycle permission questions about a booking. All
// predicates are pure; business-rule failures are returned as booleans, never
// as errors.
type BookingPolicy struct{}

// NewBookingPolicy creates a BookingPolicy.
func NewBookingPolicy() BookingPolicy {
	return BookingPolicy{}
}

// CanEdit returns true while the booking's details may still be changed:
// only drafts and pending bookings are editable.
func (BookingPolicy) CanEdit(b *Booking) bool {
	return b.Status().IsDraft() || b.Status().IsPending()
}

// AllowsModifications is an alias of CanEdit for presentation callers.
func (p BookingPolicy) AllowsModifications(b *Booking) bool {
	return p.CanEdit(b)
}

// CanDelete returns true only for drafts; anything that has been submitted is
// cancelled rather than deleted.
func (BookingPolicy) CanDelete(b *Booking) bool {
	return b.Status().IsDraft()
}

// RequiresPayment returns true if there is anything to pay at all.
func (BookingPolicy) RequiresPayment(b *Booking) bool {
	return b.TotalPrice() > 0
}

// CanAutoConfirm returns true if the booking may be confirmed without human
// review: pending, fully paid, and with at least one scheduled session.
func (BookingPolicy) CanAutoConfirm(b *Booking) bool {
	return b.Status().IsPending() && b.IsFullyPaid() && len(b.Schedules()) > 0
}

// CanBeRefunded returns true if money has been taken and the booking is still
// in a cancellable state.
func (BookingPolicy) CanBeRefunded(b *Booking) bool {
	paid := b.PaymentStatus().IsPaid() || b.PaymentStatus().IsPartial()
	return paid && b.CanBeCancelled()
}

// IsWithinCancellationDeadline returns true if now is on or before the
// cancellation deadline (start date minus the notice period). A booking with
// no start date has no deadline to be within.
func (BookingPolicy) IsWithinCancellationDeadline(b *Booking, now time.Time) bool {
	if b.StartDate() == nil {
		return false
	}
	deadline := b.StartDate().AddDate(0, 0, -cancellationNoticeDays)
	return !now.After(deadline)
}
