package child

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for child profiles.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Child, error)
	FindByGuardianID(ctx context.Context, guardianID uuid.UUID) ([]*Child, error)
	Save(ctx context.Context, child *Child) error
	Update(ctx context.Context, child *Child) error
	Delete(ctx context.Context, id uuid.UUID) error
}
