package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"fundstack.backend/internal/domain/authz"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/usecases"
)

func adminActor() authz.Actor {
	return authz.Actor{ID: uuid.New(), Role: entities.RoleAdmin}
}

func TestCreateStructure_RootLevel(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, mockUserRepo)

	mockStructureRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Structure")).Return(nil)

	structure, err := uc.CreateStructure(context.Background(), adminActor(), &entities.CreateStructureInput{
		Name:         "Growth Fund I",
		Type:         "FUND",
		BaseCurrency: "usd",
	})

	assert.NoError(t, err)
	assert.NotNil(t, structure)
	assert.Nil(t, structure.ParentID)
	assert.Equal(t, 0, structure.HierarchyLevel)
	assert.Equal(t, entities.StructureTypeFund, structure.Type)
	assert.Equal(t, "USD", structure.BaseCurrency)
	assert.Equal(t, int64(0), structure.CurrentInvestors)
	assert.Equal(t, int64(0), structure.CurrentInvestments)
	mockStructureRepo.AssertExpectations(t)
}

func TestCreateStructure_ChildLevel(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, mockUserRepo)

	parent := &entities.Structure{
		ID:             uuid.New(),
		Name:           "Growth Fund I",
		Type:           entities.StructureTypeFund,
		HierarchyLevel: 2,
	}
	mockStructureRepo.On("GetByID", mock.Anything, parent.ID).Return(parent, nil)
	mockStructureRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Structure")).Return(nil)

	structure, err := uc.CreateStructure(context.Background(), adminActor(), &entities.CreateStructureInput{
		Name:         "Growth SPV",
		Type:         "SPV",
		ParentID:     parent.ID.String(),
		BaseCurrency: "EUR",
	})

	assert.NoError(t, err)
	assert.NotNil(t, structure)
	assert.Equal(t, parent.ID, *structure.ParentID)
	assert.Equal(t, 3, structure.HierarchyLevel)
	mockStructureRepo.AssertExpectations(t)
}

func TestCreateStructure_UnknownType(t *testing.T) {
	uc := usecases.NewStructureUsecase(new(MockStructureRepository), new(MockInvestmentRepository), new(MockUserRepository))

	_, err := uc.CreateStructure(context.Background(), adminActor(), &entities.CreateStructureInput{
		Name:         "Mystery",
		Type:         "HOLDING",
		BaseCurrency: "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCreateStructure_UnknownParent(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	parentID := uuid.New()
	mockStructureRepo.On("GetByID", mock.Anything, parentID).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.CreateStructure(context.Background(), adminActor(), &entities.CreateStructureInput{
		Name:         "Orphan SPV",
		Type:         "SPV",
		ParentID:     parentID.String(),
		BaseCurrency: "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidHierarchy)
	mockStructureRepo.AssertExpectations(t)
}

func TestCreateStructure_DeniedForInvestor(t *testing.T) {
	uc := usecases.NewStructureUsecase(new(MockStructureRepository), new(MockInvestmentRepository), new(MockUserRepository))

	actor := authz.Actor{ID: uuid.New(), Role: entities.RoleInvestor}
	_, err := uc.CreateStructure(context.Background(), actor, &entities.CreateStructureInput{
		Name:         "Shadow Fund",
		Type:         "FUND",
		BaseCurrency: "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAuthorizationDenied)
}

func TestCreateStructure_CyclicParentChain(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	// a -> b -> a: the walk starting at b never terminates without the
	// depth bound, so the chain is rejected.
	aID := uuid.New()
	bID := uuid.New()
	a := &entities.Structure{ID: aID, ParentID: &bID, HierarchyLevel: 1}
	b := &entities.Structure{ID: bID, ParentID: &aID, HierarchyLevel: 0}
	mockStructureRepo.On("GetByID", mock.Anything, aID).Return(a, nil)
	mockStructureRepo.On("GetByID", mock.Anything, bID).Return(b, nil)

	_, err := uc.CreateStructure(context.Background(), adminActor(), &entities.CreateStructureInput{
		Name:         "Loop SPV",
		Type:         "SPV",
		ParentID:     aID.String(),
		BaseCurrency: "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidHierarchy)
}

func TestGetStructure_DecoratesCounts(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, new(MockUserRepository))

	structure := &entities.Structure{ID: uuid.New(), Name: "Growth Fund I", Type: entities.StructureTypeFund}
	mockStructureRepo.On("GetByID", mock.Anything, structure.ID).Return(structure, nil)
	// Two investments from the same investor: investments=2, investors=1.
	mockInvestmentRepo.On("CountByStructure", mock.Anything, structure.ID).Return(int64(2), nil)
	mockInvestmentRepo.On("CountDistinctInvestors", mock.Anything, structure.ID).Return(int64(1), nil)

	got, err := uc.GetStructure(context.Background(), adminActor(), structure.ID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), got.CurrentInvestments)
	assert.Equal(t, int64(1), got.CurrentInvestors)
	mockInvestmentRepo.AssertExpectations(t)
}

func TestGetStructure_CountFailureDegradesToZero(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, new(MockUserRepository))

	structure := &entities.Structure{ID: uuid.New(), Name: "Growth Fund I"}
	mockStructureRepo.On("GetByID", mock.Anything, structure.ID).Return(structure, nil)
	mockInvestmentRepo.On("CountByStructure", mock.Anything, structure.ID).Return(int64(0), errors.New("connection reset"))
	mockInvestmentRepo.On("CountDistinctInvestors", mock.Anything, structure.ID).Return(int64(0), errors.New("connection reset"))

	got, err := uc.GetStructure(context.Background(), adminActor(), structure.ID)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), got.CurrentInvestments)
	assert.Equal(t, int64(0), got.CurrentInvestors)
}

func TestGetStructure_NotFound(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	id := uuid.New()
	mockStructureRepo.On("GetByID", mock.Anything, id).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.GetStructure(context.Background(), adminActor(), id)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUpdateFinancials_ReplacesRollup(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, new(MockUserRepository))

	id := uuid.New()
	rollup := entities.FinancialRollup{TotalCalled: 1000, TotalDistributed: 250, TotalInvested: 900}
	updated := &entities.Structure{ID: id, Financials: rollup}

	mockStructureRepo.On("UpdateFinancials", mock.Anything, id, rollup).Return(nil)
	mockStructureRepo.On("GetByID", mock.Anything, id).Return(updated, nil)
	mockInvestmentRepo.On("CountByStructure", mock.Anything, id).Return(int64(0), nil)
	mockInvestmentRepo.On("CountDistinctInvestors", mock.Anything, id).Return(int64(0), nil)

	got, err := uc.UpdateFinancials(context.Background(), adminActor(), id, &entities.UpdateFinancialsInput{
		TotalCalled:      1000,
		TotalDistributed: 250,
		TotalInvested:    900,
	})

	assert.NoError(t, err)
	assert.Equal(t, rollup, got.Financials)
	mockStructureRepo.AssertExpectations(t)
}

func TestDeleteStructure_DoesNotTouchChildren(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	id := uuid.New()
	mockStructureRepo.On("SoftDelete", mock.Anything, id).Return(nil)

	err := uc.DeleteStructure(context.Background(), adminActor(), id)

	assert.NoError(t, err)
	// Only the node itself is removed; no child lookup, no cascading writes.
	mockStructureRepo.AssertExpectations(t)
	mockStructureRepo.AssertNotCalled(t, "FindChildren", mock.Anything, mock.Anything)
	mockStructureRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteStructure_NotFound(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	id := uuid.New()
	mockStructureRepo.On("SoftDelete", mock.Anything, id).Return(domainerrors.ErrNotFound)

	err := uc.DeleteStructure(context.Background(), adminActor(), id)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreateInvestment_Success(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, mockUserRepo)

	structure := &entities.Structure{ID: uuid.New()}
	investor := &entities.User{ID: uuid.New(), Role: entities.RoleInvestor}
	mockStructureRepo.On("GetByID", mock.Anything, structure.ID).Return(structure, nil)
	mockUserRepo.On("GetByID", mock.Anything, investor.ID).Return(investor, nil)
	mockInvestmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Investment")).Return(nil)

	actor := authz.Actor{ID: uuid.New(), Role: entities.RoleStaff}
	investment, err := uc.CreateInvestment(context.Background(), actor, &entities.CreateInvestmentInput{
		StructureID: structure.ID.String(),
		InvestorID:  investor.ID.String(),
		Amount:      50000,
		Currency:    "usd",
	})

	assert.NoError(t, err)
	assert.Equal(t, structure.ID, investment.StructureID)
	assert.Equal(t, investor.ID, investment.InvestorID)
	assert.Equal(t, "USD", investment.Currency)
	mockInvestmentRepo.AssertExpectations(t)
}

func TestCreateInvestment_SupportAliasPassesStaffGate(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	mockUserRepo := new(MockUserRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, mockUserRepo)

	structure := &entities.Structure{ID: uuid.New()}
	investor := &entities.User{ID: uuid.New()}
	mockStructureRepo.On("GetByID", mock.Anything, structure.ID).Return(structure, nil)
	mockUserRepo.On("GetByID", mock.Anything, investor.ID).Return(investor, nil)
	mockInvestmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Investment")).Return(nil)

	actor := authz.Actor{ID: uuid.New(), Role: entities.RoleSupport}
	_, err := uc.CreateInvestment(context.Background(), actor, &entities.CreateInvestmentInput{
		StructureID: structure.ID.String(),
		InvestorID:  investor.ID.String(),
		Amount:      1000,
		Currency:    "EUR",
	})

	assert.NoError(t, err)
}

func TestCreateInvestment_UnknownStructure(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, new(MockInvestmentRepository), new(MockUserRepository))

	structureID := uuid.New()
	mockStructureRepo.On("GetByID", mock.Anything, structureID).Return(nil, domainerrors.ErrNotFound)

	actor := authz.Actor{ID: uuid.New(), Role: entities.RoleStaff}
	_, err := uc.CreateInvestment(context.Background(), actor, &entities.CreateInvestmentInput{
		StructureID: structureID.String(),
		InvestorID:  uuid.New().String(),
		Amount:      1000,
		Currency:    "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCreateInvestment_DeniedForInvestor(t *testing.T) {
	uc := usecases.NewStructureUsecase(new(MockStructureRepository), new(MockInvestmentRepository), new(MockUserRepository))

	actor := authz.Actor{ID: uuid.New(), Role: entities.RoleInvestor}
	_, err := uc.CreateInvestment(context.Background(), actor, &entities.CreateInvestmentInput{
		StructureID: uuid.New().String(),
		InvestorID:  uuid.New().String(),
		Amount:      1000,
		Currency:    "USD",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAuthorizationDenied)
}

func TestFindRoots_DecoratesEach(t *testing.T) {
	mockStructureRepo := new(MockStructureRepository)
	mockInvestmentRepo := new(MockInvestmentRepository)
	uc := usecases.NewStructureUsecase(mockStructureRepo, mockInvestmentRepo, new(MockUserRepository))

	creatorID := uuid.New()
	roots := []*entities.Structure{
		{ID: uuid.New(), Name: "Fund A"},
		{ID: uuid.New(), Name: "Fund B"},
	}
	mockStructureRepo.On("FindRoots", mock.Anything, creatorID).Return(roots, nil)
	mockInvestmentRepo.On("CountByStructure", mock.Anything, roots[0].ID).Return(int64(3), nil)
	mockInvestmentRepo.On("CountDistinctInvestors", mock.Anything, roots[0].ID).Return(int64(2), nil)
	mockInvestmentRepo.On("CountByStructure", mock.Anything, roots[1].ID).Return(int64(0), nil)
	mockInvestmentRepo.On("CountDistinctInvestors", mock.Anything, roots[1].ID).Return(int64(0), nil)

	got, err := uc.FindRoots(context.Background(), adminActor(), creatorID)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].CurrentInvestments)
	assert.Equal(t, int64(2), got[0].CurrentInvestors)
	assert.Equal(t, int64(0), got[1].CurrentInvestments)
}
