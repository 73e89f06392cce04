package booking

import "fmt"

// PaymentStatus represents the payment state of a booking, independent of its
// fulfillment status.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// AllPaymentStatuses lists every payment status, used to zero-initialize counters.
var AllPaymentStatuses = []PaymentStatus{
	PaymentPending,
	PaymentPartial,
	PaymentPaid,
	PaymentRefunded,
	PaymentFailed,
}

// validPaymentTransitions defines the payment state machine.
var validPaymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPartial, PaymentPaid, PaymentFailed},
	PaymentPartial:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentRefunded: {},
	PaymentFailed:   {},
}

// IsValid returns true if the status is a recognized payment status.
func (s PaymentStatus) IsValid() bool {
	_, exists := validPaymentTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	allowed, exists := validPaymentTransitions[s]
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

// CanProcessPayment returns true if a payment can still be taken against this
// status. Paid, refunded, and failed records accept no further payments.
func (s PaymentStatus) CanProcessPayment() bool {
	return s == PaymentPending || s == PaymentPartial
}

// IsPending returns true for the pending status.
func (s PaymentStatus) IsPending() bool { return s == PaymentPending }

// IsPartial returns true for the partial status.
func (s PaymentStatus) IsPartial() bool { return s == PaymentPartial }

// IsPaid returns true for the paid status.
func (s PaymentStatus) IsPaid() bool { return s == PaymentPaid }

// IsRefunded returns true for the refunded status.
func (s PaymentStatus) IsRefunded() bool { return s == PaymentRefunded }

// IsFailed returns true for the failed status.
func (s PaymentStatus) IsFailed() bool { return s == PaymentFailed }

// String returns the string representation of the status.
func (s PaymentStatus) String() string {
	return string(s)
}

// ParsePaymentStatus converts a string to a PaymentStatus, returning an error if invalid.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return status, nil
}
