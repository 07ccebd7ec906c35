package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/infrastructure/models"
	"fundstack.backend/pkg/utils"
)

// SmartContractRepository implements smart contract data operations
type SmartContractRepository struct {
	db *gorm.DB
}

// NewSmartContractRepository creates a new smart contract repository
func NewSmartContractRepository(db *gorm.DB) *SmartContractRepository {
	return &SmartContractRepository{db: db}
}

// Create creates a new smart contract record
func (r *SmartContractRepository) Create(ctx context.Context, contract *entities.SmartContract) error {
	m := r.toModel(contract)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a smart contract by ID
func (r *SmartContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SmartContract, error) {
	var m models.SmartContract
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists smart contracts matching the filter
func (r *SmartContractRepository) List(ctx context.Context, filter entities.SmartContractFilter, pagination utils.PaginationParams) ([]*entities.SmartContract, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SmartContract{})

	if filter.StructureID != nil {
		query = query.Where("structure_id = ?", *filter.StructureID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var contractModels []models.SmartContract
	if err := query.Find(&contractModels).Error; err != nil {
		return nil, 0, err
	}

	var contracts []*entities.SmartContract
	for _, m := range contractModels {
		model := m
		contracts = append(contracts, r.toEntity(&model))
	}
	return contracts, total, nil
}

// GetByStructure lists all contracts referencing a structure
func (r *SmartContractRepository) GetByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.SmartContract, error) {
	var contractModels []models.SmartContract
	if err := r.db.WithContext(ctx).Where("structure_id = ?", structureID).Order("created_at DESC").Find(&contractModels).Error; err != nil {
		return nil, err
	}

	var contracts []*entities.SmartContract
	for _, m := range contractModels {
		model := m
		contracts = append(contracts, r.toEntity(&model))
	}
	return contracts, nil
}

// Update writes the contract's mutable fields, including the status and
// both deployment outcome groups. Nil outcome pointers clear the columns,
// which is what keeps the success/failure groups mutually exclusive.
func (r *SmartContractRepository) Update(ctx context.Context, contract *entities.SmartContract) error {
	updates := map[string]interface{}{
		"name":             contract.Name,
		"symbol":           contract.Symbol,
		"token_value":      contract.TokenValue,
		"status":           string(contract.Status),
		"contract_address": contract.ContractAddress.Ptr(),
		"transaction_hash": contract.TransactionHash.Ptr(),
		"block_number":     contract.BlockNumber.Ptr(),
		"deployed_at":      contract.DeployedAt.Ptr(),
		"error_message":    contract.ErrorMessage.Ptr(),
		"failed_at":        contract.FailedAt.Ptr(),
		"updated_at":       time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.SmartContract{}).Where("id = ?", contract.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a smart contract
func (r *SmartContractRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SmartContract{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *SmartContractRepository) toModel(e *entities.SmartContract) *models.SmartContract {
	return &models.SmartContract{
		ID:              e.ID,
		StructureID:     e.StructureID,
		Name:            e.Name,
		Symbol:          e.Symbol,
		ContractType:    string(e.ContractType),
		MaxSupply:       e.MaxSupply,
		TokenValue:      e.TokenValue,
		Network:         e.Network,
		Status:          string(e.Status),
		DeployedBy:      e.DeployedBy,
		ContractAddress: e.ContractAddress.Ptr(),
		TransactionHash: e.TransactionHash.Ptr(),
		BlockNumber:     e.BlockNumber.Ptr(),
		DeployedAt:      e.DeployedAt.Ptr(),
		ErrorMessage:    e.ErrorMessage.Ptr(),
		FailedAt:        e.FailedAt.Ptr(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *SmartContractRepository) toEntity(m *models.SmartContract) *entities.SmartContract {
	return &entities.SmartContract{
		ID:              m.ID,
		StructureID:     m.StructureID,
		Name:            m.Name,
		Symbol:          m.Symbol,
		ContractType:    entities.ContractType(m.ContractType),
		MaxSupply:       m.MaxSupply,
		TokenValue:      m.TokenValue,
		Network:         m.Network,
		Status:          entities.DeploymentStatus(m.Status),
		DeployedBy:      m.DeployedBy,
		ContractAddress: null.StringFromPtr(m.ContractAddress),
		TransactionHash: null.StringFromPtr(m.TransactionHash),
		BlockNumber:     null.Int64FromPtr(m.BlockNumber),
		DeployedAt:      null.TimeFromPtr(m.DeployedAt),
		ErrorMessage:    null.StringFromPtr(m.ErrorMessage),
		FailedAt:        null.TimeFromPtr(m.FailedAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
