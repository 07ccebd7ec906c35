package repositories

import (
	"context"

	"github.com/google/uuid"
	"fundstack.backend/internal/domain/entities"
	"fundstack.backend/pkg/utils"
)

// SmartContractRepository defines smart contract data operations
type SmartContractRepository interface {
	Create(ctx context.Context, contract *entities.SmartContract) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SmartContract, error)
	List(ctx context.Context, filter entities.SmartContractFilter, pagination utils.PaginationParams) ([]*entities.SmartContract, int64, error)
	GetByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.SmartContract, error)
	Update(ctx context.Context, contract *entities.SmartContract) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
