package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"fundstack.backend/internal/domain/authz"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/domain/repositories"
	"fundstack.backend/pkg/logger"
	"fundstack.backend/pkg/utils"
)

// maxHierarchyDepth bounds the ancestor walk during cycle detection so a
// corrupted parent chain cannot loop forever.
const maxHierarchyDepth = 32

// StructureUsecase handles the structure hierarchy and its derived
// financial and investor aggregates
type StructureUsecase struct {
	structureRepo  repositories.StructureRepository
	investmentRepo repositories.InvestmentRepository
	userRepo       repositories.UserRepository
}

// NewStructureUsecase creates a new structure usecase
func NewStructureUsecase(
	structureRepo repositories.StructureRepository,
	investmentRepo repositories.InvestmentRepository,
	userRepo repositories.UserRepository,
) *StructureUsecase {
	return &StructureUsecase{
		structureRepo:  structureRepo,
		investmentRepo: investmentRepo,
		userRepo:       userRepo,
	}
}

// CreateStructure creates a structure node. With a parent given, the node's
// hierarchy level is parent.level+1 and the parent chain is checked for
// cycles; without one the node is a root at level 0.
func (u *StructureUsecase) CreateStructure(ctx context.Context, actor authz.Actor, input *entities.CreateStructureInput) (*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpCreateStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	structureType := entities.StructureType(strings.ToUpper(input.Type))
	if !entities.ValidStructureType(structureType) {
		return nil, domainerrors.Validation("unknown structure type: " + input.Type)
	}

	structure := &entities.Structure{
		ID:           uuid.New(),
		Name:         input.Name,
		Type:         structureType,
		CreatedBy:    actor.ID,
		BaseCurrency: strings.ToUpper(input.BaseCurrency),
		Documents:    input.Documents,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if input.ParentID != "" {
		parentID, err := uuid.Parse(input.ParentID)
		if err != nil {
			return nil, domainerrors.Validation("invalid parent structure id")
		}
		parent, err := u.resolveParent(ctx, structure.ID, parentID)
		if err != nil {
			return nil, err
		}
		structure.ParentID = &parent.ID
		structure.HierarchyLevel = parent.HierarchyLevel + 1
	}

	if err := u.structureRepo.Create(ctx, structure); err != nil {
		return nil, domainerrors.StorageError(err)
	}

	// A new structure has no investments yet.
	structure.CurrentInvestors = 0
	structure.CurrentInvestments = 0
	return structure, nil
}

// GetStructure fetches a structure and decorates it with aggregates
// computed fresh from the investment collection
func (u *StructureUsecase) GetStructure(ctx context.Context, actor authz.Actor, id uuid.UUID) (*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	structure, err := u.structureRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	u.decorate(ctx, structure)
	return structure, nil
}

// ListStructures lists structures matching the filter, each decorated with
// fresh aggregates
func (u *StructureUsecase) ListStructures(ctx context.Context, actor authz.Actor, filter entities.StructureFilter, pagination utils.PaginationParams) ([]*entities.Structure, int64, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, 0, domainerrors.Denied(d.Reason)
	}

	structures, total, err := u.structureRepo.List(ctx, filter, pagination)
	if err != nil {
		return nil, 0, domainerrors.StorageError(err)
	}

	for _, s := range structures {
		u.decorate(ctx, s)
	}
	return structures, total, nil
}

// FindChildren returns the direct children of a structure with aggregates
func (u *StructureUsecase) FindChildren(ctx context.Context, actor authz.Actor, parentID uuid.UUID) ([]*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	children, err := u.structureRepo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, domainerrors.StorageError(err)
	}

	for _, s := range children {
		u.decorate(ctx, s)
	}
	return children, nil
}

// FindRoots returns the creator's parentless structures with aggregates
func (u *StructureUsecase) FindRoots(ctx context.Context, actor authz.Actor, creatorID uuid.UUID) ([]*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpViewStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	roots, err := u.structureRepo.FindRoots(ctx, creatorID)
	if err != nil {
		return nil, domainerrors.StorageError(err)
	}

	for _, s := range roots {
		u.decorate(ctx, s)
	}
	return roots, nil
}

// UpdateStructure updates structure metadata (name, currency, documents)
func (u *StructureUsecase) UpdateStructure(ctx context.Context, actor authz.Actor, id uuid.UUID, input *entities.UpdateStructureInput) (*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpUpdateStructure, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	structure, err := u.structureRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	if input.Name != "" {
		structure.Name = input.Name
	}
	if input.BaseCurrency != "" {
		structure.BaseCurrency = strings.ToUpper(input.BaseCurrency)
	}
	if input.Documents != nil {
		structure.Documents = input.Documents
	}

	if err := u.structureRepo.Update(ctx, structure); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	u.decorate(ctx, structure)
	return structure, nil
}

// UpdateFinancials replaces the financial rollup block of a structure.
// Investor and investment counts are untouched; they remain derived.
func (u *StructureUsecase) UpdateFinancials(ctx context.Context, actor authz.Actor, id uuid.UUID, input *entities.UpdateFinancialsInput) (*entities.Structure, error) {
	if d := authz.Authorize(actor, authz.OpUpdateFinancials, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	rollup := entities.FinancialRollup{
		TotalCalled:      input.TotalCalled,
		TotalDistributed: input.TotalDistributed,
		TotalInvested:    input.TotalInvested,
		ManagementFee:    input.ManagementFee,
		CarriedInterest:  input.CarriedInterest,
	}

	if err := u.structureRepo.UpdateFinancials(ctx, id, rollup); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	structure, err := u.structureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domainerrors.StorageError(err)
	}

	u.decorate(ctx, structure)
	return structure, nil
}

// DeleteStructure removes a structure node. The delete does not cascade:
// children keep their parent reference, preserving audit history.
func (u *StructureUsecase) DeleteStructure(ctx context.Context, actor authz.Actor, id uuid.UUID) error {
	if d := authz.Authorize(actor, authz.OpDeleteStructure, authz.Resource{}); !d.Allowed {
		return domainerrors.Denied(d.Reason)
	}

	if err := u.structureRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("structure not found")
		}
		return domainerrors.StorageError(err)
	}
	return nil
}

// CreateInvestment records an investment into a structure
func (u *StructureUsecase) CreateInvestment(ctx context.Context, actor authz.Actor, input *entities.CreateInvestmentInput) (*entities.Investment, error) {
	if d := authz.Authorize(actor, authz.OpCreateInvestment, authz.Resource{}); !d.Allowed {
		return nil, domainerrors.Denied(d.Reason)
	}

	structureID, err := uuid.Parse(input.StructureID)
	if err != nil {
		return nil, domainerrors.Validation("invalid structure id")
	}
	investorID, err := uuid.Parse(input.InvestorID)
	if err != nil {
		return nil, domainerrors.Validation("invalid investor id")
	}

	if _, err := u.structureRepo.GetByID(ctx, structureID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}
	if _, err := u.userRepo.GetByID(ctx, investorID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("investor not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	investment := &entities.Investment{
		ID:          uuid.New(),
		StructureID: structureID,
		InvestorID:  investorID,
		Amount:      input.Amount,
		Currency:    strings.ToUpper(input.Currency),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := u.investmentRepo.Create(ctx, investment); err != nil {
		return nil, domainerrors.StorageError(err)
	}
	return investment, nil
}

// GetInvestorCount returns the number of distinct investors in a structure.
// A storage failure degrades to 0, matching the empty result; the failure
// is still logged.
func (u *StructureUsecase) GetInvestorCount(ctx context.Context, structureID uuid.UUID) int64 {
	count, err := u.investmentRepo.CountDistinctInvestors(ctx, structureID)
	if err != nil {
		logger.Warn(ctx, "investor count query failed, reporting zero",
			zap.String("structure_id", structureID.String()), zap.Error(err))
		return 0
	}
	return count
}

// GetInvestmentCount returns the number of investment records referencing a
// structure, with the same zero-on-failure degradation as GetInvestorCount
func (u *StructureUsecase) GetInvestmentCount(ctx context.Context, structureID uuid.UUID) int64 {
	count, err := u.investmentRepo.CountByStructure(ctx, structureID)
	if err != nil {
		logger.Warn(ctx, "investment count query failed, reporting zero",
			zap.String("structure_id", structureID.String()), zap.Error(err))
		return 0
	}
	return count
}

// decorate refreshes the derived aggregates on a structure. The counts come
// from a separate round-trip than the structure row, so they are eventual
// with respect to concurrent investment writes.
func (u *StructureUsecase) decorate(ctx context.Context, structure *entities.Structure) {
	structure.CurrentInvestments = u.GetInvestmentCount(ctx, structure.ID)
	structure.CurrentInvestors = u.GetInvestorCount(ctx, structure.ID)
}

// resolveParent validates the parent reference for a node being created:
// the parent must exist, must not be the node itself and must not sit on a
// cyclic parent chain.
func (u *StructureUsecase) resolveParent(ctx context.Context, structureID, parentID uuid.UUID) (*entities.Structure, error) {
	if parentID == structureID {
		return nil, domainerrors.InvalidHierarchy("structure cannot be its own parent")
	}

	parent, err := u.structureRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidHierarchy("parent structure not found")
		}
		return nil, domainerrors.StorageError(err)
	}

	current := parent
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= maxHierarchyDepth {
			return nil, domainerrors.InvalidHierarchy("parent chain exceeds maximum depth")
		}
		if *current.ParentID == structureID {
			return nil, domainerrors.InvalidHierarchy("parent chain contains a cycle")
		}
		ancestor, err := u.structureRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				// Dangling reference left by a non-cascading delete; the
				// chain ends here.
				break
			}
			return nil, domainerrors.StorageError(err)
		}
		current = ancestor
	}

	return parent, nil
}
