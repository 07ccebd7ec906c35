package repositories

import (
	"context"

	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
)

// InvestmentRepository defines investment data operations. Counts are read
// fresh on every structure read; the stored structure row is never trusted
// for them.
type InvestmentRepository interface {
	Create(ctx context.Context, investment *entities.Investment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error)
	ListByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.Investment, error)
	CountByStructure(ctx context.Context, structureID uuid.UUID) (int64, error)
	// CountDistinctInvestors collapses multiple investments by the same
	// investor into one.
	CountDistinctInvestors(ctx context.Context, structureID uuid.UUID) (int64, error)
}
