package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	childDomain "github.com/Little-Sprouts/service-booking/internal/domain/child"
	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// ChildModel is the GORM model for the children table.
type ChildModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuardianID   uuid.UUID `gorm:"type:uuid;index;not null"`
	FirstName    string    `gorm:"not null;size:100"`
	LastName     string    `gorm:"not null;size:100"`
	DateOfBirth  time.Time `gorm:"not null"`
	Allergies    string    `gorm:"size:500"`
	MedicalInfo  string    `gorm:"size:1000"`
	SpecialNeeds string    `gorm:"size:1000"`
	Notes        string    `gorm:"size:1000"`
	Status       string    `gorm:"not null;size:20;default:'active'"`
	Version      int64     `gorm:"not null;default:1"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ChildModel) TableName() string {
	return "children"
}

// GormChildRepository is the GORM-based implementation of the child
// Repository.
type GormChildRepository struct {
	db *gorm.DB
}

// NewGormChildRepository creates a new GormChildRepository.
func NewGormChildRepository(db *gorm.DB) *GormChildRepository {
	return &GormChildRepository{db: db}
}

// FindByID retrieves a child profile by ID.
func (r *GormChildRepository) FindByID(ctx context.Context, id uuid.UUID) (*childDomain.Child, error) {
	var model ChildModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Child", id.String())
		}
		return nil, fmt.Errorf("failed to find child by ID: %w", err)
	}
	return toDomainChild(&model), nil
}

// FindByGuardianID retrieves all active child profiles of a guardian.
func (r *GormChildRepository) FindByGuardianID(ctx context.Context, guardianID uuid.UUID) ([]*childDomain.Child, error) {
	var models []ChildModel
	if err := r.db.WithContext(ctx).
		Where("guardian_id = ? AND status = ?", guardianID, string(childDomain.ProfileActive)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find children: %w", err)
	}

	children := make([]*childDomain.Child, len(models))
	for i, m := range models {
		children[i] = toDomainChild(&m)
	}
	return children, nil
}

// Save persists a new child profile.
func (r *GormChildRepository) Save(ctx context.Context, c *childDomain.Child) error {
	if err := r.db.WithContext(ctx).Create(toChildModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save child: %w", err)
	}
	return nil
}

// Update persists changes to a child profile with optimistic locking.
func (r *GormChildRepository) Update(ctx context.Context, c *childDomain.Child) error {
	model := toChildModel(c)
	expectedVersion := c.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ChildModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"first_name":    model.FirstName,
			"last_name":     model.LastName,
			"allergies":     model.Allergies,
			"medical_info":  model.MedicalInfo,
			"special_needs": model.SpecialNeeds,
			"notes":         model.Notes,
			"status":        model.Status,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update child: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("child profile was modified by another transaction")
	}
	return nil
}

// Delete removes a child profile.
func (r *GormChildRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ChildModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete child: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Child", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toChildModel(c *childDomain.Child) *ChildModel {
	return &ChildModel{
		ID:           c.ID(),
		GuardianID:   c.GuardianID(),
		FirstName:    c.FirstName(),
		LastName:     c.LastName(),
		DateOfBirth:  c.DateOfBirth(),
		Allergies:    c.Allergies(),
		MedicalInfo:  c.MedicalInfo(),
		SpecialNeeds: c.SpecialNeeds(),
		Notes:        c.Notes(),
		Status:       string(c.Status()),
		Version:      c.Version(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toDomainChild(m *ChildModel) *childDomain.Child {
	return childDomain.Reconstruct(
		m.ID,
		m.GuardianID,
		m.FirstName,
		m.LastName,
		m.DateOfBirth,
		m.Allergies,
		m.MedicalInfo,
		m.SpecialNeeds,
		m.Notes,
		childDomain.ProfileStatus(m.Status),
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
