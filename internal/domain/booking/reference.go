package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

const (
	referencePrefix    = "BK"
	referenceMinLength = 6
	// Excludes easily confused characters (0/O, 1/I).
	referenceChars     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	referenceRandomLen = 4
)

// Reference is an opaque, human-quotable token identifying a booking.
type Reference string

// NewReference validates a reference token supplied from persistence or input.
func NewReference(value string) (Reference, error) {
	if value == "" {
		return "", domain.NewValidationError("booking reference is required")
	}
	if len(value) < referenceMinLength {
		return "", domain.NewValidationError(
			fmt.Sprintf("booking reference must be at least %d characters", referenceMinLength))
	}
	return Reference(value), nil
}

// GenerateReference issues a new reference composed of a fixed prefix, a
// date-derived segment, and a random segment, e.g. "BK-260828-7KQ4".
func GenerateReference() (Reference, error) {
	random := make([]byte, referenceRandomLen)
	for i := range random {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		random[i] = referenceChars[n.Int64()]
	}

	datePart := time.Now().UTC().Format("060102")
	return Reference(fmt.Sprintf("%s-%s-%s", referencePrefix, datePart, random)), nil
}

// String returns the reference as a plain string.
func (r Reference) String() string {
	return string(r)
}
