package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	childDomain "github.com/Little-Sprouts/service-booking/internal/domain/child"
	"github.com/Little-Sprouts/service-booking/pkg/domain"
)

// CreateChildRequest is the request DTO for creating a child profile.
type CreateChildRequest struct {
	FirstName    string    `json:"first_name" binding:"required"`
	LastName     string    `json:"last_name" binding:"required"`
	DateOfBirth  time.Time `json:"date_of_birth" binding:"required"`
	Allergies    string    `json:"allergies"`
	MedicalInfo  string    `json:"medical_info"`
	SpecialNeeds string    `json:"special_needs"`
	Notes        string    `json:"notes"`
}

// UpdateChildRequest is the request DTO for updating a child profile.
type UpdateChildRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Allergies    string `json:"allergies"`
	MedicalInfo  string `json:"medical_info"`
	SpecialNeeds string `json:"special_needs"`
	Notes        string `json:"notes"`
}

// ChildDTO is the API response representation of a child profile.
type ChildDTO struct {
	ID           uuid.UUID `json:"id"`
	GuardianID   uuid.UUID `json:"guardian_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	Allergies    string    `json:"allergies,omitempty"`
	MedicalInfo  string    `json:"medical_info,omitempty"`
	SpecialNeeds string    `json:"special_needs,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ChildService implements use cases for saved child profiles.
type ChildService struct {
	repo   childDomain.Repository
	logger *zap.Logger
}

// NewChildService creates a new ChildService.
func NewChildService(repo childDomain.Repository, logger *zap.Logger) *ChildService {
	return &ChildService{repo: repo, logger: logger}
}

// CreateChild creates a new child profile for the guardian.
func (s *ChildService) CreateChild(ctx context.Context, guardianID uuid.UUID, req CreateChildRequest) (*ChildDTO, error) {
	c, err := childDomain.NewChild(
		guardianID,
		req.FirstName, req.LastName,
		req.DateOfBirth,
		req.Allergies, req.MedicalInfo, req.SpecialNeeds, req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.Error("failed to create child profile", zap.Error(err))
		return nil, fmt.Errorf("failed to create child profile: %w", err)
	}

	s.logger.Info("child profile created",
		zap.String("child_id", c.ID().String()),
		zap.String("guardian_id", guardianID.String()),
	)
	result := toChildDTO(c)
	return &result, nil
}

// GetMyChildren returns all child profiles for the guardian.
func (s *ChildService) GetMyChildren(ctx context.Context, guardianID uuid.UUID) ([]ChildDTO, error) {
	children, err := s.repo.FindByGuardianID(ctx, guardianID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child profiles: %w", err)
	}
	dtos := make([]ChildDTO, len(children))
	for i, c := range children {
		dtos[i] = toChildDTO(c)
	}
	return dtos, nil
}

// GetChild returns a single child profile, verifying ownership.
func (s *ChildService) GetChild(ctx context.Context, guardianID, childID uuid.UUID) (*ChildDTO, error) {
	c, err := s.findOwned(ctx, guardianID, childID)
	if err != nil {
		return nil, err
	}
	result := toChildDTO(c)
	return &result, nil
}

// UpdateChild applies partial updates to a child profile.
func (s *ChildService) UpdateChild(ctx context.Context, guardianID, childID uuid.UUID, req UpdateChildRequest) (*ChildDTO, error) {
	c, err := s.findOwned(ctx, guardianID, childID)
	if err != nil {
		return nil, err
	}

	c.Update(req.FirstName, req.LastName, req.Allergies, req.MedicalInfo, req.SpecialNeeds, req.Notes)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to update child profile: %w", err)
	}

	result := toChildDTO(c)
	return &result, nil
}

// ArchiveChild archives a child profile so it no longer appears when booking.
func (s *ChildService) ArchiveChild(ctx context.Context, guardianID, childID uuid.UUID) error {
	c, err := s.findOwned(ctx, guardianID, childID)
	if err != nil {
		return err
	}

	c.Archive()
	if err := s.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to archive child profile: %w", err)
	}
	return nil
}

func (s *ChildService) findOwned(ctx context.Context, guardianID, childID uuid.UUID) (*childDomain.Child, error) {
	c, err := s.repo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(guardianID) {
		return nil, domain.NewForbiddenError("child profile does not belong to this guardian")
	}
	return c, nil
}

func toChildDTO(c *childDomain.Child) ChildDTO {
	return ChildDTO{
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
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}
