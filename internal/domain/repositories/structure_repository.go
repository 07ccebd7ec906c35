package repositories

import (
	"context"

	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
	"fundstack.backend/pkg/utils"
)

// StructureRepository defines structure data operations.
//
// Delete removes a single node only; children of a deleted parent keep
// their parent reference. The non-cascading policy is intentional.
type StructureRepository interface {
	Create(ctx context.Context, structure *entities.Structure) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Structure, error)
	List(ctx context.Context, filter entities.StructureFilter, pagination utils.PaginationParams) ([]*entities.Structure, int64, error)
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entities.Structure, error)
	FindRoots(ctx context.Context, creatorID uuid.UUID) ([]*entities.Structure, error)
	Update(ctx context.Context, structure *entities.Structure) error
	// UpdateFinancials replaces the whole rollup block in one statement so
	// a concurrent reader never observes a partially updated block.
	UpdateFinancials(ctx context.Context, id uuid.UUID, rollup entities.FinancialRollup) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
