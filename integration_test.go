//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingDomain "github.com/Little-Sprouts/service-booking/internal/domain/booking"
)

// TestPaymentCaptured_ConfirmsBooking verifies that when a PaymentCapturedEvent
// covering the full balance is published to payment.events, the booking
// service applies it and auto-confirms the pending booking.
func TestPaymentCaptured_ConfirmsBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	// Seed a pending, unpaid booking with one scheduled session.
	bookingID := uuid.New()
	guardianID := uuid.New()
	seedPendingBooking(t, infra.DB, bookingID, guardianID, 150)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	// Publish a full-balance PaymentCapturedEvent.
	evt := bookingDomain.PaymentCapturedEvent{
		PaymentID:  uuid.New(),
		BookingID:  bookingID,
		Amount:     150,
		Currency:   "MYR",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingDomain.TopicPaymentEvents,
		"service-payment", bookingDomain.EventPaymentCaptured, evt)

	// Assert: booking transitions to confirmed/paid.
	model := waitForBookingState(t, infra.DB, bookingID, "confirmed", "paid", 15*time.Second)
	assert.Equal(t, 150.0, model.PaidAmount)

	// Assert: BookingConfirmedEvent on booking.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, bookingDomain.TopicBookingEvents,
		bookingDomain.EventBookingConfirmed, 15*time.Second)

	var confirmed bookingDomain.BookingConfirmedEvent
	require.NoError(t, ce.ParseData(&confirmed))
	assert.Equal(t, bookingID, confirmed.BookingID)
	assert.Equal(t, guardianID, confirmed.GuardianID)
	assert.Equal(t, 150.0, confirmed.PaidAmount)
	assert.Equal(t, 150.0, confirmed.TotalPrice)
}

// TestPaymentFailed_MarksBookingFailed verifies the failure path: the booking
// stays pending but its payment status becomes failed.
func TestPaymentFailed_MarksBookingFailed(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupBookingStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	bookingID := uuid.New()
	seedPendingBooking(t, infra.DB, bookingID, uuid.New(), 150)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second)

	evt := bookingDomain.PaymentFailedEvent{
		PaymentID:  uuid.New(),
		BookingID:  bookingID,
		Reason:     "card declined",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, bookingDomain.TopicPaymentEvents,
		"service-payment", bookingDomain.EventPaymentFailed, evt)

	model := waitForBookingState(t, infra.DB, bookingID, "pending", "failed", 15*time.Second)
	assert.Equal(t, 0.0, model.PaidAmount)
}
