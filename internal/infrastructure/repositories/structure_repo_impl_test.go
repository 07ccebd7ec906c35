package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/pkg/utils"
)

func TestStructureRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createStructureTable(t, db)
	repo := NewStructureRepository(db)
	ctx := context.Background()

	s := &entities.Structure{
		ID:           uuid.New(),
		Name:         "Growth Fund I",
		Type:         entities.StructureTypeFund,
		CreatedBy:    uuid.New(),
		BaseCurrency: "USD",
		Documents:    []string{"lpa.pdf", "ppm.pdf"},
		Financials:   entities.FinancialRollup{TotalCalled: 1000},
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, s.Name, got.Name)
	require.Equal(t, entities.StructureTypeFund, got.Type)
	require.Equal(t, []string{"lpa.pdf", "ppm.pdf"}, got.Documents)
	require.Equal(t, float64(1000), got.Financials.TotalCalled)
	require.Nil(t, got.ParentID)

	s.Name = "Growth Fund I (restated)"
	s.Documents = []string{"lpa-v2.pdf"}
	require.NoError(t, repo.Update(ctx, s))

	got, err = repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, "Growth Fund I (restated)", got.Name)
	require.Equal(t, []string{"lpa-v2.pdf"}, got.Documents)

	require.NoError(t, repo.SoftDelete(ctx, s.ID))
	_, err = repo.GetByID(ctx, s.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestStructureRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createStructureTable(t, db)
	repo := NewStructureRepository(db)
	ctx := context.Background()

	creatorA := uuid.New()
	creatorB := uuid.New()
	fund := &entities.Structure{ID: uuid.New(), Name: "Fund", Type: entities.StructureTypeFund, CreatedBy: creatorA, BaseCurrency: "USD"}
	require.NoError(t, repo.Create(ctx, fund))
	spv := &entities.Structure{ID: uuid.New(), Name: "SPV", Type: entities.StructureTypeSPV, CreatedBy: creatorA, BaseCurrency: "USD", ParentID: &fund.ID, HierarchyLevel: 1}
	require.NoError(t, repo.Create(ctx, spv))
	trust := &entities.Structure{ID: uuid.New(), Name: "Trust", Type: entities.StructureTypeTrust, CreatedBy: creatorB, BaseCurrency: "EUR"}
	require.NoError(t, repo.Create(ctx, trust))

	all, total, err := repo.List(ctx, entities.StructureFilter{}, utils.PaginationParams{})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, all, 3)

	spvType := entities.StructureTypeSPV
	byType, total, err := repo.List(ctx, entities.StructureFilter{Type: &spvType}, utils.PaginationParams{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, spv.ID, byType[0].ID)

	byCreator, total, err := repo.List(ctx, entities.StructureFilter{CreatedBy: &creatorA}, utils.PaginationParams{})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, byCreator, 2)

	byParent, total, err := repo.List(ctx, entities.StructureFilter{ParentID: &fund.ID}, utils.PaginationParams{})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, spv.ID, byParent[0].ID)

	page, total, err := repo.List(ctx, entities.StructureFilter{}, utils.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, page, 2)
}

func TestStructureRepository_ChildrenAndRoots(t *testing.T) {
	db := newTestDB(t)
	createStructureTable(t, db)
	repo := NewStructureRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	root := &entities.Structure{ID: uuid.New(), Name: "Fund", Type: entities.StructureTypeFund, CreatedBy: creator, BaseCurrency: "USD"}
	require.NoError(t, repo.Create(ctx, root))
	childA := &entities.Structure{ID: uuid.New(), Name: "SPV A", Type: entities.StructureTypeSPV, CreatedBy: creator, BaseCurrency: "USD", ParentID: &root.ID, HierarchyLevel: 1}
	require.NoError(t, repo.Create(ctx, childA))
	childB := &entities.Structure{ID: uuid.New(), Name: "SPV B", Type: entities.StructureTypeSPV, CreatedBy: creator, BaseCurrency: "USD", ParentID: &root.ID, HierarchyLevel: 1}
	require.NoError(t, repo.Create(ctx, childB))

	children, err := repo.FindChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)

	roots, err := repo.FindRoots(ctx, creator)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Equal(t, root.ID, roots[0].ID)

	// Deleting the parent leaves the children in place with their stale
	// parent reference.
	require.NoError(t, repo.SoftDelete(ctx, root.ID))
	children, err = repo.FindChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, root.ID, *children[0].ParentID)
}

func TestStructureRepository_UpdateFinancials(t *testing.T) {
	db := newTestDB(t)
	createStructureTable(t, db)
	repo := NewStructureRepository(db)
	ctx := context.Background()

	s := &entities.Structure{ID: uuid.New(), Name: "Fund", Type: entities.StructureTypeFund, CreatedBy: uuid.New(), BaseCurrency: "USD"}
	require.NoError(t, repo.Create(ctx, s))

	rollup := entities.FinancialRollup{
		TotalCalled:      2500000,
		TotalDistributed: 400000,
		TotalInvested:    2100000,
		ManagementFee:    0.02,
		CarriedInterest:  0.2,
	}
	require.NoError(t, repo.UpdateFinancials(ctx, s.ID, rollup))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, rollup, got.Financials)

	require.ErrorIs(t, repo.UpdateFinancials(ctx, uuid.New(), rollup), domainerrors.ErrNotFound)
}

func TestStructureRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createStructureTable(t, db)
	repo := NewStructureRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Structure{ID: id, Name: "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.SoftDelete(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
