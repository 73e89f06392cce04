package events

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Little-Sprouts/service-booking/internal/application"
	bookingDomain "github.com/Little-Sprouts/service-booking/internal/domain/booking"
	"github.com/Little-Sprouts/service-booking/pkg/domain"
	"github.com/Little-Sprouts/service-booking/pkg/kafka"
)

// PaymentEventConsumer consumes events from the payment service and applies
// them to bookings. Malformed messages and payments the booking can never
// accept are logged and committed so the consumer does not get stuck on a
// poison message; transient failures leave the offset uncommitted.
type PaymentEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.BookingService
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a consumer for the payment events topic.
func NewPaymentEventConsumer(brokers []string, groupID string, service *application.BookingService, logger *zap.Logger) *PaymentEventConsumer {
	return &PaymentEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, bookingDomain.TopicPaymentEvents, logger),
		service:  service,
		logger:   logger,
	}
}

// Start consumes payment events until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	c.logger.Info("payment event consumer started",
		zap.String("topic", bookingDomain.TopicPaymentEvents),
	)
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka reader.
func (c *PaymentEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var event kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.logger.Warn("skipping malformed payment event",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return nil
	}

	switch event.Type {
	case bookingDomain.EventPaymentCaptured:
		return c.handlePaymentCaptured(ctx, &event)
	case bookingDomain.EventPaymentFailed:
		return c.handlePaymentFailed(ctx, &event)
	case bookingDomain.EventPaymentRefunded:
		return c.handlePaymentRefunded(ctx, &event)
	default:
		c.logger.Debug("ignoring payment event type", zap.String("type", event.Type))
		return nil
	}
}

// isTerminal reports whether redelivering the event can never succeed.
// Business-rule rejections and impossible transitions are discarded by
// committing their offsets; not-found, conflict, and infrastructure errors
// are retried, since the booking row may simply not be visible yet.
func isTerminal(err error) bool {
	var validationErr *domain.ValidationError
	var stateErr *domain.InvalidStateError
	return errors.As(err, &validationErr) || errors.As(err, &stateErr)
}

func (c *PaymentEventConsumer) handlePaymentCaptured(ctx context.Context, event *kafka.CloudEvent) error {
	var payload bookingDomain.PaymentCapturedEvent
	if err := event.ParseData(&payload); err != nil {
		c.logger.Warn("skipping payment.captured with bad payload", zap.Error(err))
		return nil
	}

	result, err := c.service.RecordPayment(ctx, payload.BookingID, payload.Amount)
	if err != nil {
		if isTerminal(err) {
			c.logger.Warn("discarding payment.captured the booking cannot accept",
				zap.String("booking_id", payload.BookingID.String()),
				zap.String("payment_id", payload.PaymentID.String()),
				zap.Float64("amount", payload.Amount),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to record payment",
			zap.String("booking_id", payload.BookingID.String()),
			zap.String("payment_id", payload.PaymentID.String()),
			zap.Float64("amount", payload.Amount),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("payment recorded",
		zap.String("booking_id", payload.BookingID.String()),
		zap.String("payment_status", result.PaymentStatus),
		zap.String("booking_status", result.Status),
	)
	return nil
}

func (c *PaymentEventConsumer) handlePaymentFailed(ctx context.Context, event *kafka.CloudEvent) error {
	var payload bookingDomain.PaymentFailedEvent
	if err := event.ParseData(&payload); err != nil {
		c.logger.Warn("skipping payment.failed with bad payload", zap.Error(err))
		return nil
	}

	if err := c.service.MarkPaymentFailed(ctx, payload.BookingID); err != nil {
		if isTerminal(err) {
			c.logger.Warn("discarding payment.failed the booking cannot accept",
				zap.String("booking_id", payload.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to mark payment failed",
			zap.String("booking_id", payload.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("payment marked failed",
		zap.String("booking_id", payload.BookingID.String()),
		zap.String("reason", payload.Reason),
	)
	return nil
}

func (c *PaymentEventConsumer) handlePaymentRefunded(ctx context.Context, event *kafka.CloudEvent) error {
	var payload bookingDomain.PaymentRefundedEvent
	if err := event.ParseData(&payload); err != nil {
		c.logger.Warn("skipping payment.refunded with bad payload", zap.Error(err))
		return nil
	}

	if err := c.service.MarkRefunded(ctx, payload.BookingID); err != nil {
		if isTerminal(err) {
			c.logger.Warn("discarding payment.refunded the booking cannot accept",
				zap.String("booking_id", payload.BookingID.String()),
				zap.Error(err),
			)
			return nil
		}
		c.logger.Error("failed to mark booking refunded",
			zap.String("booking_id", payload.BookingID.String()),
			zap.Error(err),
		)
		return err
	}

	c.logger.Info("booking marked refunded",
		zap.String("booking_id", payload.BookingID.String()),
		zap.Float64("amount", payload.Amount),
	)
	return nil
}
