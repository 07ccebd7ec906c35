package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"fundstack.backend/internal/domain/authz"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/domain/repositories"
	"fundstack.backend/pkg/utils"
)

// ContractUsecase handles the smart contract deployment lifecycle. Each
// contract record is an independent state machine; the only cross-record
// constraint is identity uniqueness.
type ContractUsecase struct {
	contractRepo  repositories.SmartContractRepository
	structureRepo repositories.StructureRepository
}

// NewContractUsecase creates a new contract usecase
func NewContractUsecase(
	contractRepo repositories.SmartContractRepository,
	structureRepo repositories.StructureRepository,
) *ContractUsecase {
	return &ContractUsecase{
		contractRepo:  contractRepo,
		structureRepo: structureRepo,
	}
}

// CreateContract creates a tokenization record for a structure. Status
// defaults to PENDING; callers with a deployment already in flight may
// create directly into DEPLOYING.
func (u *ContractUsecase) CreateContract(ctx context.Context, actor authz.Actor, input *entities.CreateSmartContractInput) (*entities.SmartContract, error) {
	if d := authz.Authorize(actor, authz.OpDeployContract, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	structureID, err := uuid.Parse(input.StructureID)
	if err != nil {
		return nil, domainerrors.Validation("invalid structure id")
	}

	if _, err := u.structureRepo.GetByID(ctx, structureID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	status := entities.DeploymentStatusPending
	if input.Status != "" {
		status = entities.DeploymentStatus(strings.ToUpper(input.Status))
		if status != entities.DeploymentStatusPending && status != entities.DeploymentStatusDeploying {
			return nil, domainerrors.Validation("initial status must be PENDING or DEPLOYING")
		}
	}

	contractType := entities.ContractType(strings.ToUpper(input.ContractType))

	contract := &entities.SmartContract{
		ID:           uuid.New(),
		StructureID:  structureID,
		Name:         input.Name,
		Symbol:       strings.ToUpper(input.Symbol),
		ContractType: contractType,
		MaxSupply:    input.MaxSupply,
		TokenValue:   input.TokenValue,
		Network:      input.Network,
		Status:       status,
		DeployedBy:   actor.ID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := u.contractRepo.Create(ctx, contract); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// GetContract gets a contract record by ID
func (u *ContractUsecase) GetContract(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entities.SmartContract, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("smart contract not found")
		}
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// ListContracts lists contract records matching the filter
func (u *ContractUsecase) ListContracts(ctx context.Context, actor authz.Actor, filter entities.SmartContractFilter, pagination utils.PaginationParams) ([]*entities.SmartContract, int64, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, 0, domainerrors.Denied(d.Reason)
	}

	contracts, total, err := u.contractRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, domainerrors.StorageError(err)
	}
	return contracts, total, nil
}

// UpdateContract updates token metadata. Metadata updates are legal in any
// deployment state and never change the status.
func (u *ContractUsecase) UpdateContract(ctx context.Context, actor authz.Actor, id uuid.UUID, input *entities.UpdateSmartContractInput) (*entities.SmartContract, error) {
	if d := authz.Authorize(actor, authz.OpUpdateContract, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("smart contract not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	if input.Name != "" {
		contract.Name = input.Name
	}
	if input.Symbol != "" {
		contract.Symbol = strings.ToUpper(input.Symbol)
	}
	if input.TokenValue > 0 {
		contract.TokenValue = input.TokenValue
	}

	if err := u.contractRepo.Update(ctx, contract); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// UpdateStatus applies a deployment status transition. Terminal states
// accept no further transitions; re-announcing DEPLOYING is permitted.
func (u *ContractUsecase) UpdateStatus(ctx context.Context, actor authz.Actor, id uuid.UUID, input *entities.UpdateDeploymentStatusInput) (*entities.SmartContract, error) {
	target := entities.DeploymentStatus(strings.ToUpper(input.Status))
	if !entities.ValidDeploymentStatus(target) {
		return nil, domainerrors.Validation("unknown deployment status: " + input.Status)
	}

	switch target {
	case entities.DeploymentStatusDeploying:
		return u.MarkAsDeploying(ctx, actor, id)
	case entities.DeploymentStatusDeployed:
		return u.MarkAsDeployed(ctx, actor, id, input.ContractAddress, input.TransactionHash, input.BlockNumber)
	case entities.DeploymentStatusFailed:
		return u.MarkAsFailed(ctx, actor, id, input.ErrorMessage)
	default:
		// PENDING is the creation state only; nothing transitions back
		// into it.
		contract, err := u.loadForTransition(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		return nil, domainerrors.InvalidTransition(string(contract.Status), string(target))
	}
}

// MarkAsDeploying announces that a deployment attempt is in flight.
// Re-entry from DEPLOYING is an accepted no-op.
func (u *ContractUsecase) MarkAsDeploying(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entities.SmartContract, error) {
	contract, err := u.loadForTransition(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, domainerrors.InvalidTransition(string(contract.Status), string(entities.DeploymentStatusDeploying))
	}

	contract.Status = entities.DeploymentStatusDeploying
	if err := u.contractRepo.Update(ctx, contract); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// MarkAsDeployed records a successful deployment. Requires the on-chain
// address, transaction hash and block number; clears any failure fields.
func (u *ContractUsecase) MarkAsDeployed(ctx context.Context, actor authz.Actor, id uuid.UUID, address, txHash string, blockNumber int64) (*entities.SmartContract, error) {
	contract, err := u.loadForTransition(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, domainerrors.InvalidTransition(string(contract.Status), string(entities.DeploymentStatusDeployed))
	}

	if address == "" {
		return nil, domainerrors.Validation("contract address is required")
	}
	// Network is an open string, so the address format is opaque to this
	// layer. EVM-shaped addresses are stored in their checksummed form.
	if common.IsHexAddress(address) {
		address = common.HexToAddress(address).Hex()
	}
	if txHash == "" {
		return nil, domainerrors.Validation("transaction hash is required")
	}
	if blockNumber <= 0 {
		return nil, domainerrors.Validation("block number is required")
	}

	contract.Status = entities.DeploymentStatusDeployed
	contract.ContractAddress = null.StringFrom(address)
	contract.TransactionHash = null.StringFrom(txHash)
	contract.BlockNumber = null.Int64From(blockNumber)
	contract.DeployedAt = null.TimeFrom(time.Now())
	contract.ErrorMessage = null.String{}
	contract.FailedAt = null.Time{}

	if err := u.contractRepo.Update(ctx, contract); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// MarkAsFailed records a failed deployment. Requires an error message;
// clears any success fields.
func (u *ContractUsecase) MarkAsFailed(ctx context.Context, actor authz.Actor, id uuid.UUID, message string) (*entities.SmartContract, error) {
	contract, err := u.loadForTransition(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if contract.Status.IsTerminal() {
		return nil, domainerrors.InvalidTransition(string(contract.Status), string(entities.DeploymentStatusFailed))
	}

	if message == "" {
		return nil, domainerrors.Validation("error message is required")
	}

	contract.Status = entities.DeploymentStatusFailed
	contract.ErrorMessage = null.StringFrom(message)
	contract.FailedAt = null.TimeFrom(time.Now())
	contract.ContractAddress = null.String{}
	contract.TransactionHash = null.String{}
	contract.BlockNumber = null.Int64{}
	contract.DeployedAt = null.Time{}

	if err := u.contractRepo.Update(ctx, contract); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}

// DeleteContract soft deletes a contract record
func (u *ContractUsecase) DeleteContract(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if d := authz.Authorize(actor, authz.OpDeleteContract, authz.Resource{}); !d.Allowed {
		return domainerrors.Denied(d.Reason)
	}

	if err := u.contractRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("smart contract not found")
		}
		return domainerrors.StorageError(err)
	}
	return nil
}

// loadForTransition authorizes a status change and fetches the record.
// Authorization always runs before the storage round-trip.
func (u *ContractUsecase) loadForTransition(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entities.SmartContract, error) {
	if d := authz.Authorize(actor, authz.OpUpdateContractStatus, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	contract, err := u.contractRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("smart contract not found")
		}
		return nil, domainerrors.StorageError(err)
	}
	return contract, nil
}
