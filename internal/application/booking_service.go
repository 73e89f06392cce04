package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingDomain "github.com/Little-Sprouts/service-booking/internal/domain/booking"
	"github.com/Little-Sprouts/service-booking/pkg/domain"
	"github.com/Little-Sprouts/service-booking/pkg/kafka"
)

// lateCancellationFeePercent is charged when a booking is cancelled past the
// cancellation deadline.
const lateCancellationFeePercent = 30.0

// standardTimeSlots are the session start times offered each day.
var standardTimeSlots = []string{
	"08:00", "09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// EventPublisher dispatches CloudEvents to external collaborators.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *kafka.CloudEvent) error
}

// GuardianInput carries parent/guardian details.
type GuardianInput struct {
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Phone            string `json:"phone" binding:"required"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
}

// ParticipantInput carries one child's details.
type ParticipantInput struct {
	FirstName    string    `json:"first_name" binding:"required"`
	LastName     string    `json:"last_name" binding:"required"`
	DateOfBirth  time.Time `json:"date_of_birth" binding:"required"`
	MedicalInfo  string    `json:"medical_info"`
	SpecialNeeds string    `json:"special_needs"`
}

// ScheduleInput carries one session slot.
type ScheduleInput struct {
	Date        time.Time  `json:"date" binding:"required"`
	StartTime   string     `json:"start_time" binding:"required"`
	EndTime     string     `json:"end_time" binding:"required"`
	CaregiverID *uuid.UUID `json:"caregiver_id"`
	ActivityID  *uuid.UUID `json:"activity_id"`
}

// CreateBookingRequest holds the data needed to create a new booking. Package
// pricing fields are supplied by the catalog that owns packages.
type CreateBookingRequest struct {
	PackageID    uuid.UUID          `json:"package_id" binding:"required"`
	PackageSlug  string             `json:"package_slug" binding:"required"`
	PackageHours float64            `json:"package_hours"`
	BasePrice    float64            `json:"base_price"`
	HourlyRate   float64            `json:"hourly_rate"`
	Guardian     GuardianInput      `json:"guardian" binding:"required"`
	Participants []ParticipantInput `json:"participants" binding:"required"`
	Schedules    []ScheduleInput    `json:"schedules"`
	StartDate    *time.Time         `json:"start_date"`
	Notes        string             `json:"notes"`
}

// QuoteRequest holds the inputs for a price quote.
type QuoteRequest struct {
	BasePrice    float64         `json:"base_price"`
	HourlyRate   float64         `json:"hourly_rate"`
	PackageHours float64         `json:"package_hours"`
	TaxPercent   float64         `json:"tax_percent"`
	ChildCount   int             `json:"child_count" binding:"required"`
	Schedules    []ScheduleInput `json:"schedules"`
	StartDate    *time.Time      `json:"start_date"`
}

// QuoteDTO is the response representation of a price quote.
type QuoteDTO struct {
	TotalHours     float64 `json:"total_hours"`
	BasePrice      float64 `json:"base_price"`
	DiscountAmount float64 `json:"discount_amount"`
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalPrice     float64 `json:"total_price"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID                 uuid.UUID                  `json:"id"`
	Reference          string                     `json:"reference"`
	GuardianID         uuid.UUID                  `json:"guardian_id"`
	PackageID          uuid.UUID                  `json:"package_id"`
	PackageSlug        string                     `json:"package_slug"`
	Status             string                     `json:"status"`
	PaymentStatus      string                     `json:"payment_status"`
	Guardian           bookingDomain.Guardian     `json:"guardian"`
	Participants       []bookingDomain.Participant `json:"participants"`
	Schedules          []bookingDomain.Schedule   `json:"schedules"`
	TotalHours         float64                    `json:"total_hours"`
	TotalPrice         float64                    `json:"total_price"`
	PaidAmount         float64                    `json:"paid_amount"`
	RemainingAmount    float64                    `json:"remaining_amount"`
	StartDate          *time.Time                 `json:"start_date,omitempty"`
	Notes              string                     `json:"notes,omitempty"`
	CancellationReason string                     `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time                 `json:"cancelled_at,omitempty"`
	CanBeCancelled     bool                       `json:"can_be_cancelled"`
	CanBeConfirmed     bool                       `json:"can_be_confirmed"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

// BookingStatsDTO holds the admin report figures.
type BookingStatsDTO struct {
	TotalBookings        int                `json:"total_bookings"`
	TotalRevenue         float64            `json:"total_revenue"`
	PendingRevenue       float64            `json:"pending_revenue"`
	AverageBookingValue  float64            `json:"average_booking_value"`
	TotalHoursBooked     float64            `json:"total_hours_booked"`
	CancellationRate     float64            `json:"cancellation_rate"`
	CountByStatus        map[string]int     `json:"count_by_status"`
	CountByPaymentStatus map[string]int     `json:"count_by_payment_status"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	repo         bookingDomain.Repository
	calculator   bookingDomain.Calculator
	pricing      bookingDomain.PricingPolicy
	availability bookingDomain.AvailabilityPolicy
	policy       bookingDomain.BookingPolicy
	validator    bookingDomain.Validator
	stats        bookingDomain.StatsCalculator
	publisher    EventPublisher
	logger       *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(repo bookingDomain.Repository, publisher EventPublisher, logger *zap.Logger) *BookingService {
	return &BookingService{
		repo:         repo,
		calculator:   bookingDomain.NewCalculator(),
		pricing:      bookingDomain.NewPricingPolicy(),
		availability: bookingDomain.NewAvailabilityPolicy(),
		policy:       bookingDomain.NewBookingPolicy(),
		validator:    bookingDomain.NewValidator(),
		stats:        bookingDomain.NewStatsCalculator(),
		publisher:    publisher,
		logger:       logger,
	}
}

// QuotePrice computes a price quote without creating anything.
func (s *BookingService) QuotePrice(req QuoteRequest) (*QuoteDTO, error) {
	schedules, err := buildSchedules(req.Schedules)
	if err != nil {
		return nil, err
	}

	totalHours := s.calculator.TotalHours(schedules)
	if totalHours == 0 {
		totalHours = req.PackageHours
	}

	basePrice := s.calculator.TotalPrice(totalHours, req.HourlyRate, req.BasePrice)
	discount := s.pricing.CalculateTotalDiscount(
		basePrice, time.Now().UTC(), req.StartDate, req.ChildCount, totalHours)

	subtotal := basePrice - discount
	tax, err := s.calculator.TaxAmount(subtotal, req.TaxPercent)
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		TotalHours:     totalHours,
		BasePrice:      basePrice,
		DiscountAmount: discount,
		Subtotal:       subtotal,
		TaxAmount:      tax,
		TotalPrice:     subtotal + tax,
	}, nil
}

// CreateBooking creates a new draft booking for the given guardian.
func (s *BookingService) CreateBooking(ctx context.Context, guardianID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	guardian, err := bookingDomain.NewGuardian(
		req.Guardian.FirstName, req.Guardian.LastName,
		req.Guardian.Email, req.Guardian.Phone,
		req.Guardian.Address, req.Guardian.EmergencyContact,
	)
	if err != nil {
		return nil, err
	}

	participants, err := buildParticipants(req.Participants)
	if err != nil {
		return nil, err
	}

	schedules, err := buildSchedules(req.Schedules)
	if err != nil {
		return nil, err
	}

	if len(schedules) > 0 {
		if err := s.checkAvailability(ctx, schedules); err != nil {
			return nil, err
		}
	}

	totalHours := s.calculator.TotalHours(schedules)
	if totalHours == 0 {
		// Pay-first-book-later: hours come from the package until slots are
		// chosen.
		totalHours = req.PackageHours
	}

	basePrice := s.calculator.TotalPrice(totalHours, req.HourlyRate, req.BasePrice)
	startDate := req.StartDate
	if startDate == nil && len(schedules) > 0 {
		first := schedules[0].Date
		startDate = &first
	}
	discount := s.pricing.CalculateTotalDiscount(
		basePrice, time.Now().UTC(), startDate, len(participants), totalHours)
	totalPrice := basePrice - discount

	bk, err := bookingDomain.NewBooking(
		guardianID,
		req.PackageID,
		req.PackageSlug,
		guardian,
		participants,
		schedules,
		totalHours,
		totalPrice,
		startDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publish(ctx, bookingDomain.EventBookingCreated, bookingDomain.NewBookingCreatedEvent(bk))

	result := toBookingDTO(bk)
	return &result, nil
}

// SubmitBooking moves a draft booking to pending, ready for payment.
func (s *BookingService) SubmitBooking(ctx context.Context, guardianID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := bk.Submit()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, err
	}

	result := toBookingDTO(next)
	return &result, nil
}

// ConfirmBooking confirms a fully paid pending booking.
func (s *BookingService) ConfirmBooking(ctx context.Context, guardianID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return nil, err
	}

	if result := s.validator.ValidateBookingConfirmation(bk); !result.Valid {
		return nil, domain.NewValidationError(result.Error)
	}

	next, err := bk.Confirm()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, err
	}

	s.publish(ctx, bookingDomain.EventBookingConfirmed, bookingDomain.NewBookingConfirmedEvent(next))

	result := toBookingDTO(next)
	return &result, nil
}

// CancelBooking cancels a pending or confirmed booking and reports the refund
// due under the cancellation policy.
func (s *BookingService) CancelBooking(ctx context.Context, guardianID, bookingID uuid.UUID, reason string) (*BookingDTO, float64, error) {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return nil, 0, err
	}

	if result := s.validator.ValidateBookingCancellation(bk); !result.Valid {
		return nil, 0, domain.NewValidationError(result.Error)
	}

	next, err := bk.Cancel(reason)
	if err != nil {
		return nil, 0, err
	}

	var refundDue float64
	if s.policy.CanBeRefunded(bk) {
		feePercent := lateCancellationFeePercent
		if s.policy.IsWithinCancellationDeadline(bk, time.Now().UTC()) {
			feePercent = 0
		}
		refundDue, err = s.calculator.RefundAmount(bk.TotalPrice(), bk.PaidAmount(), feePercent)
		if err != nil {
			return nil, 0, err
		}
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, 0, err
	}

	evt, err := bookingDomain.NewBookingCancelledEvent(next)
	if err != nil {
		return nil, 0, err
	}
	s.publish(ctx, bookingDomain.EventBookingCancelled, evt)

	result := toBookingDTO(next)
	return &result, refundDue, nil
}

// CompleteBooking marks a confirmed booking as completed (admin).
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := bk.Complete()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, err
	}

	result := toBookingDTO(next)
	return &result, nil
}

// AddSchedules attaches session slots to a booking, the second half of the
// pay-first-book-later flow.
func (s *BookingService) AddSchedules(ctx context.Context, guardianID, bookingID uuid.UUID, inputs []ScheduleInput) (*BookingDTO, error) {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return nil, err
	}

	if len(inputs) == 0 {
		return nil, domain.NewValidationError("at least one schedule is required")
	}

	schedules, err := buildSchedules(inputs)
	if err != nil {
		return nil, err
	}

	if err := s.checkAvailability(ctx, schedules); err != nil {
		return nil, err
	}

	if result := s.validator.ValidateScheduleConflicts(schedules, bk.Schedules()); !result.Valid {
		return nil, domain.NewValidationError(result.Error)
	}

	combined := append(bk.Schedules(), schedules...)
	next, err := bk.WithSchedules(combined)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, err
	}

	result := toBookingDTO(next)
	return &result, nil
}

// RecordPayment applies a captured payment and auto-confirms the booking when
// policy allows.
func (s *BookingService) RecordPayment(ctx context.Context, bookingID uuid.UUID, amount float64) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	next, err := bk.RecordPayment(amount)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next, bk.UpdatedAt()); err != nil {
		return nil, err
	}

	if s.policy.CanAutoConfirm(next) {
		confirmed, err := next.Confirm()
		if err == nil {
			if err := s.repo.Update(ctx, confirmed, next.UpdatedAt()); err != nil {
				return nil, err
			}
			s.publish(ctx, bookingDomain.EventBookingConfirmed, bookingDomain.NewBookingConfirmedEvent(confirmed))
			next = confirmed
		}
	}

	result := toBookingDTO(next)
	return &result, nil
}

// MarkPaymentFailed records a terminal payment failure.
func (s *BookingService) MarkPaymentFailed(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	next, err := bk.MarkPaymentFailed()
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, next, bk.UpdatedAt())
}

// MarkRefunded records a completed refund.
func (s *BookingService) MarkRefunded(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	next, err := bk.MarkRefunded()
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, next, bk.UpdatedAt())
}

// DeleteBooking removes a draft booking.
func (s *BookingService) DeleteBooking(ctx context.Context, guardianID, bookingID uuid.UUID) error {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return err
	}

	if !s.policy.CanDelete(bk) {
		return domain.NewValidationError("only draft bookings can be deleted")
	}
	return s.repo.Delete(ctx, bookingID)
}

// GetBooking retrieves a single booking, verifying ownership.
func (s *BookingService) GetBooking(ctx context.Context, guardianID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.findOwned(ctx, guardianID, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetGuardianBookings retrieves paginated bookings for a guardian.
func (s *BookingService) GetGuardianBookings(ctx context.Context, guardianID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.FindByGuardianID(ctx, guardianID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetAvailableTimeSlots returns the start times still free on a date.
func (s *BookingService) GetAvailableTimeSlots(ctx context.Context, date time.Time) ([]string, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	existing, err := s.repo.FindSchedulesBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	return s.availability.AvailableTimeSlots(date, existing, standardTimeSlots), nil
}

// --- Admin methods ---

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats computes the report figures for the date range (admin).
func (s *BookingService) GetBookingStats(ctx context.Context, from, to time.Time) (*BookingStatsDTO, error) {
	bookings, err := s.repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for stats: %w", err)
	}

	inRange := s.stats.FilterByDateRange(bookings, from, to)

	byStatus := make(map[string]int)
	for status, count := range s.stats.CountByStatus(inRange) {
		byStatus[status.String()] = count
	}
	byPayment := make(map[string]int)
	for status, count := range s.stats.CountByPaymentStatus(inRange) {
		byPayment[status.String()] = count
	}

	return &BookingStatsDTO{
		TotalBookings:        len(inRange),
		TotalRevenue:         s.stats.TotalRevenue(inRange),
		PendingRevenue:       s.stats.PendingRevenue(inRange),
		AverageBookingValue:  s.stats.AverageBookingValue(inRange),
		TotalHoursBooked:     s.stats.TotalHoursBooked(inRange),
		CancellationRate:     s.stats.CancellationRate(inRange),
		CountByStatus:        byStatus,
		CountByPaymentStatus: byPayment,
	}, nil
}

// --- Helpers ---

func (s *BookingService) findOwned(ctx context.Context, guardianID, bookingID uuid.UUID) (*bookingDomain.Booking, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if bk.GuardianID() != guardianID {
		return nil, domain.NewForbiddenError("booking does not belong to this guardian")
	}
	return bk, nil
}

// checkAvailability verifies new schedules against the notice window, slot
// capacity, and sessions already booked across all bookings.
func (s *BookingService) checkAvailability(ctx context.Context, schedules []bookingDomain.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if result := s.validator.ValidateBookingWindow(schedules, now); !result.Valid {
		return domain.NewValidationError(result.Error)
	}

	from, to := scheduleDateRange(schedules)
	existing, err := s.repo.FindSchedulesBetween(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("failed to load existing schedules: %w", err)
	}

	for _, sch := range schedules {
		if !s.availability.IsDateAvailable(sch.Date, existing) {
			return domain.NewValidationError(
				fmt.Sprintf("no capacity left on %s", sch.Date.Format("2006-01-02")))
		}
	}

	if result := s.validator.ValidateScheduleConflicts(schedules, existing); !result.Valid {
		return domain.NewValidationError(result.Error)
	}
	return nil
}

func scheduleDateRange(schedules []bookingDomain.Schedule) (time.Time, time.Time) {
	from, to := schedules[0].Date, schedules[0].Date
	for _, s := range schedules[1:] {
		if s.Date.Before(from) {
			from = s.Date
		}
		if s.Date.After(to) {
			to = s.Date
		}
	}
	return from, to
}

func buildParticipants(inputs []ParticipantInput) ([]bookingDomain.Participant, error) {
	participants := make([]bookingDomain.Participant, len(inputs))
	for i, in := range inputs {
		p, err := bookingDomain.NewParticipant(in.FirstName, in.LastName, in.DateOfBirth, in.MedicalInfo, in.SpecialNeeds)
		if err != nil {
			return nil, err
		}
		participants[i] = p
	}
	return participants, nil
}

func buildSchedules(inputs []ScheduleInput) ([]bookingDomain.Schedule, error) {
	schedules := make([]bookingDomain.Schedule, len(inputs))
	for i, in := range inputs {
		s, err := bookingDomain.NewSchedule(in.Date, in.StartTime, in.EndTime, in.CaregiverID, in.ActivityID)
		if err != nil {
			return nil, err
		}
		schedules[i] = s
	}
	return schedules, nil
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:                 bk.ID(),
		Reference:          bk.Reference().String(),
		GuardianID:         bk.GuardianID(),
		PackageID:          bk.PackageID(),
		PackageSlug:        bk.PackageSlug(),
		Status:             bk.Status().String(),
		PaymentStatus:      bk.PaymentStatus().String(),
		Guardian:           bk.Guardian(),
		Participants:       bk.Participants(),
		Schedules:          bk.Schedules(),
		TotalHours:         bk.TotalHours(),
		TotalPrice:         bk.TotalPrice(),
		PaidAmount:         bk.PaidAmount(),
		RemainingAmount:    bk.RemainingAmount(),
		StartDate:          bk.StartDate(),
		Notes:              bk.Notes(),
		CancellationReason: bk.CancellationReason(),
		CancelledAt:        bk.CancelledAt(),
		CanBeCancelled:     bk.CanBeCancelled(),
		CanBeConfirmed:     bk.CanBeConfirmed(),
		CreatedAt:          bk.CreatedAt(),
		UpdatedAt:          bk.UpdatedAt(),
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, bookingDomain.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", bookingDomain.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
