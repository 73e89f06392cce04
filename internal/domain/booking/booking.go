package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// Booking is the aggregate root for the booking domain. It represents a
// purchased allocation of care time, the children attending, and the
// scheduled session slots. Instances are immutable: every state change
// returns a new, fully re-validated aggregate.
type Booking struct {
	id            uuid.UUID
	reference     Reference
	guardianID    uuid.UUID
	packageID     uuid.UUID
	packageSlug   string
	status        BookingStatus
	paymentStatus PaymentStatus
	guardian      Guardian
	participants  []Participant
	schedules     []Schedule

	totalHours float64
	totalPrice float64
	paidAmount float64

	startDate          *time.Time
	notes              string
	cancellationReason string
	cancelledAt        *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking aggregate. New bookings always start as
// draft with payment pending and nothing paid; schedules may be empty at this
// point (the pay-first-book-later flow picks slots later).
func NewBooking(
	guardianID uuid.UUID,
	packageID uuid.UUID,
	packageSlug string,
	guardian Guardian,
	participants []Participant,
	schedules []Schedule,
	totalHours float64,
	totalPrice float64,
	startDate *time.Time,
	notes string,
) (*Booking, error) {
	reference, err := GenerateReference()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &Booking{
		id:            uuid.New(),
		reference:     reference,
		guardianID:    guardianID,
		packageID:     packageID,
		packageSlug:   packageSlug,
		status:        StatusDraft,
		paymentStatus: PaymentPending,
		guardian:      guardian,
		participants:  participants,
		schedules:     schedules,
		totalHours:    totalHours,
		totalPrice:    totalPrice,
		paidAmount:    0,
		startDate:     startDate,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// ReconstituteBooking rebuilds a Booking from persisted state. It is the
// single trusted re-entry point after external storage or conflict
// resolution, so every invariant is re-validated.
func ReconstituteBooking(
	id uuid.UUID,
	reference Reference,
	guardianID uuid.UUID,
	packageID uuid.UUID,
	packageSlug string,
	status BookingStatus,
	paymentStatus PaymentStatus,
	guardian Guardian,
	participants []Participant,
	schedules []Schedule,
	totalHours float64,
	totalPrice float64,
	paidAmount float64,
	startDate *time.Time,
	notes string,
	cancellationReason string,
	cancelledAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Booking, error) {
	if _, err := NewReference(reference.String()); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, domain.NewValidationError("invalid booking status: " + status.String())
	}
	if !paymentStatus.IsValid() {
		return nil, domain.NewValidationError("invalid payment status: " + paymentStatus.String())
	}
	if err := guardian.validate(); err != nil {
		return nil, err
	}
	for _, p := range participants {
		if err := p.validate(); err != nil {
			return nil, err
		}
	}
	for _, s := range schedules {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}

	b := &Booking{
		id:                 id,
		reference:          reference,
		guardianID:         guardianID,
		packageID:          packageID,
		packageSlug:        packageSlug,
		status:             status,
		paymentStatus:      paymentStatus,
		guardian:           guardian,
		participants:       participants,
		schedules:          schedules,
		totalHours:         totalHours,
		totalPrice:         totalPrice,
		paidAmount:         paidAmount,
		startDate:          startDate,
		notes:              notes,
		cancellationReason: cancellationReason,
		cancelledAt:        cancelledAt,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// validate enforces the aggregate's cross-field invariants.
func (b *Booking) validate() error {
	if b.id == uuid.Nil {
		return domain.NewValidationError("booking ID is required")
	}
	if b.guardianID == uuid.Nil {
		return domain.NewValidationError("guardian ID is required")
	}
	if b.packageID == uuid.Nil {
		return domain.NewValidationError("package ID is required")
	}
	if len(b.participants) == 0 {
		return domain.NewValidationError("at least one participant is required")
	}
	if len(b.schedules) == 0 && !b.scheduleFreePermitted() {
		return domain.NewValidationError("at least one schedule is required")
	}
	if b.totalHours <= 0 {
		return domain.NewValidationError("total hours must be greater than zero")
	}
	if b.totalPrice < 0 {
		return domain.NewValidationError("total price cannot be negative")
	}
	if b.paidAmount < 0 || b.paidAmount > b.totalPrice {
		return domain.NewValidationError("paid amount must be between zero and the total price")
	}
	return nil
}

// scheduleFreePermitted reports whether the booking may exist without any
// session slots: drafts, and bookings whose money is settled (paid or
// refunded). The settled branch covers the pay-first-book-later state and
// every state reachable from it, so a schedule-free booking that is
// cancelled, completed, or refunded still rehydrates.
func (b *Booking) scheduleFreePermitted() bool {
	if b.status.IsDraft() {
		return true
	}
	return b.paymentStatus.IsPaid() || b.paymentStatus.IsRefunded()
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Reference returns the booking's human-quotable reference.
func (b *Booking) Reference() Reference { return b.reference }

// GuardianID returns the owning guardian account's ID.
func (b *Booking) GuardianID() uuid.UUID { return b.guardianID }

// PackageID returns the purchased package's ID.
func (b *Booking) PackageID() uuid.UUID { return b.packageID }

// PackageSlug returns the purchased package's slug.
func (b *Booking) PackageSlug() string { return b.packageSlug }

// Status returns the fulfillment status.
func (b *Booking) Status() BookingStatus { return b.status }

// PaymentStatus returns the payment status.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// Guardian returns the responsible adult's details.
func (b *Booking) Guardian() Guardian { return b.guardian }

// Participants returns the enrolled children.
func (b *Booking) Participants() []Participant {
	out := make([]Participant, len(b.participants))
	copy(out, b.participants)
	return out
}

// Schedules returns the booked session slots.
func (b *Booking) Schedules() []Schedule {
	out := make([]Schedule, len(b.schedules))
	copy(out, b.schedules)
	return out
}

// TotalHours returns the purchased hours.
func (b *Booking) TotalHours() float64 { return b.totalHours }

// TotalPrice returns the booking's total price.
func (b *Booking) TotalPrice() float64 { return b.totalPrice }

// PaidAmount returns the amount paid so far.
func (b *Booking) PaidAmount() float64 { return b.paidAmount }

// StartDate returns the first session date, or nil if not yet known.
func (b *Booking) StartDate() *time.Time { return b.startDate }

// Notes returns free-form notes attached to the booking.
func (b *Booking) Notes() string { return b.notes }

// CancellationReason returns the reason given at cancellation.
func (b *Booking) CancellationReason() string { return b.cancellationReason }

// CancelledAt returns when the booking was cancelled, or nil.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// --- Queries ---

// IsFullyPaid returns true if the payment status is paid, or, as a fallback
// should status and amount ever disagree, if the paid amount covers the total.
func (b *Booking) IsFullyPaid() bool {
	return b.paymentStatus.IsPaid() || b.paidAmount >= b.totalPrice
}

// HasOutstandingBalance returns true while the paid amount is below the total.
func (b *Booking) HasOutstandingBalance() bool {
	return b.paidAmount < b.totalPrice
}

// CanBeCancelled returns true if the booking's status permits cancellation.
func (b *Booking) CanBeCancelled() bool {
	return b.status.CanBeCancelled()
}

// CanBeConfirmed returns true if the status permits confirmation and the
// booking is fully paid. Confirmation always requires full payment.
func (b *Booking) CanBeConfirmed() bool {
	return b.status.CanBeConfirmed() && b.paymentStatus.IsPaid()
}

// RemainingAmount returns the outstanding balance.
func (b *Booking) RemainingAmount() float64 {
	return b.totalPrice - b.paidAmount
}

// --- Transitions (copy-on-write) ---

// clone returns a shallow copy with its own slices, ready to be mutated and
// re-validated by a transition.
func (b *Booking) clone() *Booking {
	next := *b
	next.participants = make([]Participant, len(b.participants))
	copy(next.participants, b.participants)
	next.schedules = make([]Schedule, len(b.schedules))
	copy(next.schedules, b.schedules)
	return &next
}

// Submit moves a draft booking into the pending state, ready for payment.
func (b *Booking) Submit() (*Booking, error) {
	if !b.status.CanTransitionTo(StatusPending) {
		return nil, domain.NewInvalidStateError(b.status.String(), StatusPending.String())
	}
	next := b.clone()
	next.status = StatusPending
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// Confirm moves a fully paid pending booking into the confirmed state.
func (b *Booking) Confirm() (*Booking, error) {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return nil, domain.NewInvalidStateError(b.status.String(), StatusConfirmed.String())
	}
	if !b.paymentStatus.IsPaid() {
		return nil, domain.NewValidationError("booking cannot be confirmed until fully paid")
	}
	next := b.clone()
	next.status = StatusConfirmed
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// Cancel moves a pending or confirmed booking into the cancelled state,
// recording the reason and timestamp.
func (b *Booking) Cancel(reason string) (*Booking, error) {
	if !b.status.CanBeCancelled() {
		return nil, domain.NewInvalidStateError(b.status.String(), StatusCancelled.String())
	}
	if reason == "" {
		return nil, domain.NewValidationError("cancellation reason is required")
	}
	now := time.Now().UTC()
	next := b.clone()
	next.status = StatusCancelled
	next.cancellationReason = reason
	next.cancelledAt = &now
	next.updatedAt = now
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// Complete moves a confirmed booking into the completed state once all
// sessions have been delivered.
func (b *Booking) Complete() (*Booking, error) {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return nil, domain.NewInvalidStateError(b.status.String(), StatusCompleted.String())
	}
	next := b.clone()
	next.status = StatusCompleted
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// RecordPayment applies a captured payment to the booking, advancing the
// payment status to partial or paid.
func (b *Booking) RecordPayment(amount float64) (*Booking, error) {
	if !b.paymentStatus.CanProcessPayment() {
		return nil, domain.NewInvalidStateError(b.paymentStatus.String(), PaymentPaid.String())
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("payment amount must be greater than zero")
	}
	if b.paidAmount+amount > b.totalPrice {
		return nil, domain.NewValidationError("payment exceeds the outstanding balance")
	}

	next := b.clone()
	next.paidAmount += amount
	if next.paidAmount >= next.totalPrice {
		next.paymentStatus = PaymentPaid
	} else {
		next.paymentStatus = PaymentPartial
	}
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// MarkPaymentFailed records a failed payment attempt.
func (b *Booking) MarkPaymentFailed() (*Booking, error) {
	if !b.paymentStatus.CanTransitionTo(PaymentFailed) {
		return nil, domain.NewInvalidStateError(b.paymentStatus.String(), PaymentFailed.String())
	}
	next := b.clone()
	next.paymentStatus = PaymentFailed
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// MarkRefunded records that the paid amount has been refunded.
func (b *Booking) MarkRefunded() (*Booking, error) {
	if !b.paymentStatus.CanTransitionTo(PaymentRefunded) {
		return nil, domain.NewInvalidStateError(b.paymentStatus.String(), PaymentRefunded.String())
	}
	next := b.clone()
	next.paymentStatus = PaymentRefunded
	next.updatedAt = time.Now().UTC()
	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// WithSchedules replaces the booking's session slots, used when a paid and
// confirmed booking picks its slots afterwards. The first slot's date becomes
// the booking's start date.
func (b *Booking) WithSchedules(schedules []Schedule) (*Booking, error) {
	next := b.clone()
	next.schedules = make([]Schedule, len(schedules))
	copy(next.schedules, schedules)

	if len(schedules) > 0 {
		earliest := schedules[0].Date
		for _, s := range schedules[1:] {
			if s.Date.Before(earliest) {
				earliest = s.Date
			}
		}
		next.startDate = &earliest
	} else {
		next.startDate = nil
	}
	next.updatedAt = time.Now().UTC()

	if err := next.validate(); err != nil {
		return nil, err
	}
	return next, nil
}
