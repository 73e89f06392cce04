package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/Little-Sprouts/service-booking/internal/domain/booking"
	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference          string          `gorm:"uniqueIndex;not null;size:20"`
	GuardianID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	PackageID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	PackageSlug        string          `gorm:"not null;size:100"`
	Status             string          `gorm:"not null;size:20;index"`
	PaymentStatus      string          `gorm:"not null;size:20;index"`
	Guardian           json.RawMessage `gorm:"type:jsonb;not null"`
	Participants       json.RawMessage `gorm:"type:jsonb;not null"`
	Schedules          json.RawMessage `gorm:"type:jsonb"`
	TotalHours         float64         `gorm:"not null"`
	TotalPrice         float64         `gorm:"not null"`
	PaidAmount         float64         `gorm:"not null;default:0"`
	StartDate          *time.Time      `gorm:"index"`
	Notes              string          `gorm:"size:1000"`
	CancellationReason string          `gorm:"size:500"`
	CancelledAt        *time.Time      `gorm:""`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByReference retrieves a booking by its reference token.
func (r *GormBookingRepository) FindByReference(ctx context.Context, reference string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", reference)
		}
		return nil, fmt.Errorf("failed to find booking by reference: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByGuardianID retrieves bookings for a guardian with pagination.
func (r *GormBookingRepository) FindByGuardianID(ctx context.Context, guardianID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("guardian_id = ?", guardianID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count guardian bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("guardian_id = ?", guardianID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find guardian bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// FindSchedulesBetween returns the schedules of non-cancelled bookings whose
// sessions fall in [from, to). Schedules are stored as jsonb on the booking
// row, so candidate rows are narrowed by start date and filtered in memory.
func (r *GormBookingRepository) FindSchedulesBetween(ctx context.Context, from, to time.Time) ([]bookingDomain.Schedule, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", bookingDomain.StatusCancelled.String()).
		Where("start_date IS NULL OR start_date < ?", to).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}

	var schedules []bookingDomain.Schedule
	for _, m := range models {
		if len(m.Schedules) == 0 {
			continue
		}
		var all []bookingDomain.Schedule
		if err := json.Unmarshal(m.Schedules, &all); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedules: %w", err)
		}
		for _, s := range all {
			if !s.Date.Before(from) && s.Date.Before(to) {
				schedules = append(schedules, s)
			}
		}
	}
	return schedules, nil
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListBetween retrieves bookings whose effective date (start date, else
// creation time) falls in [from, to] (admin reporting).
func (r *GormBookingRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("(start_date IS NOT NULL AND start_date BETWEEN ? AND ?) OR (start_date IS NULL AND created_at BETWEEN ? AND ?)",
			from, to, from, to).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings in range: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists a new revision of a booking, using the previously stored
// updated_at as an optimistic lock.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking, expectedUpdatedAt time.Time) error {
	model, err := toBookingModel(bk)
	if err != nil {
		return fmt.Errorf("failed to convert booking to model: %w", err)
	}

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND updated_at = ?", model.ID, expectedUpdatedAt).
		Updates(map[string]interface{}{
			"status":              model.Status,
			"payment_status":      model.PaymentStatus,
			"guardian":            model.Guardian,
			"participants":        model.Participants,
			"schedules":           model.Schedules,
			"total_hours":         model.TotalHours,
			"total_price":         model.TotalPrice,
			"paid_amount":         model.PaidAmount,
			"start_date":          model.StartDate,
			"notes":               model.Notes,
			"cancellation_reason": model.CancellationReason,
			"cancelled_at":        model.CancelledAt,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// Delete removes a booking row.
func (r *GormBookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) (*BookingModel, error) {
	guardianJSON, err := json.Marshal(bk.Guardian())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal guardian: %w", err)
	}

	participantsJSON, err := json.Marshal(bk.Participants())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal participants: %w", err)
	}

	schedulesJSON, err := json.Marshal(bk.Schedules())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schedules: %w", err)
	}

	return &BookingModel{
		ID:                 bk.ID(),
		Reference:          bk.Reference().String(),
		GuardianID:         bk.GuardianID(),
		PackageID:          bk.PackageID(),
		PackageSlug:        bk.PackageSlug(),
		Status:             bk.Status().String(),
		PaymentStatus:      bk.PaymentStatus().String(),
		Guardian:           guardianJSON,
		Participants:       participantsJSON,
		Schedules:          schedulesJSON,
		TotalHours:         bk.TotalHours(),
		TotalPrice:         bk.TotalPrice(),
		PaidAmount:         bk.PaidAmount(),
		StartDate:          bk.StartDate(),
		Notes:              bk.Notes(),
		CancellationReason: bk.CancellationReason(),
		CancelledAt:        bk.CancelledAt(),
		CreatedAt:          bk.CreatedAt(),
		UpdatedAt:          bk.UpdatedAt(),
	}, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	var guardian bookingDomain.Guardian
	if err := json.Unmarshal(m.Guardian, &guardian); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guardian: %w", err)
	}

	var participants []bookingDomain.Participant
	if err := json.Unmarshal(m.Participants, &participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}

	var schedules []bookingDomain.Schedule
	if len(m.Schedules) > 0 {
		if err := json.Unmarshal(m.Schedules, &schedules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal schedules: %w", err)
		}
	}

	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := bookingDomain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, err
	}
	reference, err := bookingDomain.NewReference(m.Reference)
	if err != nil {
		return nil, err
	}

	return bookingDomain.ReconstituteBooking(
		m.ID,
		reference,
		m.GuardianID,
		m.PackageID,
		m.PackageSlug,
		status,
		paymentStatus,
		guardian,
		participants,
		schedules,
		m.TotalHours,
		m.TotalPrice,
		m.PaidAmount,
		m.StartDate,
		m.Notes,
		m.CancellationReason,
		m.CancelledAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
