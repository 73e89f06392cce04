package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// Kafka topics and event type names owned by the booking service.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"

	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// BookingCreatedEvent is an immutable snapshot of a newly created booking,
// suitable for dispatch to external collaborators.
type BookingCreatedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	Reference   string    `json:"reference"`
	GuardianID  uuid.UUID `json:"guardian_id"`
	PackageSlug string    `json:"package_slug"`
	TotalHours  float64   `json:"total_hours"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBookingCreatedEvent derives a creation snapshot from the booking.
func NewBookingCreatedEvent(b *Booking) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:   b.ID(),
		Reference:   b.Reference().String(),
		GuardianID:  b.GuardianID(),
		PackageSlug: b.PackageSlug(),
		TotalHours:  b.TotalHours(),
		TotalPrice:  b.TotalPrice(),
		CreatedAt:   b.CreatedAt(),
		OccurredAt:  time.Now().UTC(),
	}
}

// BookingConfirmedEvent is an immutable snapshot of a confirmed booking.
type BookingConfirmedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Reference  string    `json:"reference"`
	GuardianID uuid.UUID `json:"guardian_id"`
	TotalPrice float64   `json:"total_price"`
	PaidAmount float64   `json:"paid_amount"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingConfirmedEvent derives a confirmation snapshot from the booking.
func NewBookingConfirmedEvent(b *Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID:  b.ID(),
		Reference:  b.Reference().String(),
		GuardianID: b.GuardianID(),
		TotalPrice: b.TotalPrice(),
		PaidAmount: b.PaidAmount(),
		OccurredAt: time.Now().UTC(),
	}
}

// BookingCancelledEvent is an immutable snapshot of a cancelled booking.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	Reference   string    `json:"reference"`
	GuardianID  uuid.UUID `json:"guardian_id"`
	Reason      string    `json:"reason"`
	PaidAmount  float64   `json:"paid_amount"`
	CancelledAt time.Time `json:"cancelled_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewBookingCancelledEvent derives a cancellation snapshot from the booking.
// It fails fast if the booking carries no cancellation reason or timestamp,
// i.e. was never actually cancelled.
func NewBookingCancelledEvent(b *Booking) (BookingCancelledEvent, error) {
	if b.CancellationReason() == "" {
		return BookingCancelledEvent{}, domain.NewValidationError("booking has no cancellation reason")
	}
	if b.CancelledAt() == nil {
		return BookingCancelledEvent{}, domain.NewValidationError("booking has no cancellation timestamp")
	}

	return BookingCancelledEvent{
		BookingID:   b.ID(),
		Reference:   b.Reference().String(),
		GuardianID:  b.GuardianID(),
		Reason:      b.CancellationReason(),
		PaidAmount:  b.PaidAmount(),
		CancelledAt: *b.CancelledAt(),
		OccurredAt:  time.Now().UTC(),
	}, nil
}

// Payment event types consumed from the payment service.
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
	EventPaymentRefunded = "payment.refunded"
)

// PaymentCapturedEvent is received when the payment service captures funds
// for a booking.
type PaymentCapturedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentFailedEvent is received when a payment attempt fails terminally.
type PaymentFailedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentRefundedEvent is received when a refund completes.
type PaymentRefundedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
}
