package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"fundstack.backend/internal/domain/entities"
	"fundstack.backend/pkg/utils"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

// Mock StructureRepository
type MockStructureRepository struct {
	mock.Mock
}

func (m *MockStructureRepository) Create(ctx context.Context, structure *entities.Structure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockStructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Structure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Structure), args.Error(1)
}

func (m *MockStructureRepository) List(ctx context.Context, filter entities.StructureFilter, pagination utils.PaginationParams) ([]*entities.Structure, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Structure), args.Get(1).(int64), args.Error(2)
}

func (m *MockStructureRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entities.Structure, error) {
	args := m.Called(ctx, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Structure), args.Error(1)
}

func (m *MockStructureRepository) FindRoots(ctx context.Context, creatorID uuid.UUID) ([]*entities.Structure, error) {
	args := m.Called(ctx, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Structure), args.Error(1)
}

func (m *MockStructureRepository) Update(ctx context.Context, structure *entities.Structure) error {
	args := m.Called(ctx, structure)
	return args.Error(0)
}

func (m *MockStructureRepository) UpdateFinancials(ctx context.Context, id uuid.UUID, rollup entities.FinancialRollup) error {
	args := m.Called(ctx, id, rollup)
	return args.Error(0)
}

func (m *MockStructureRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock InvestmentRepository
type MockInvestmentRepository struct {
	mock.Mock
}

func (m *MockInvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	args := m.Called(ctx, investment)
	return args.Error(0)
}

func (m *MockInvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) ListByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.Investment, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Investment), args.Error(1)
}

func (m *MockInvestmentRepository) CountByStructure(ctx context.Context, structureID uuid.UUID) (int64, error) {
	args := m.Called(ctx, structureID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvestmentRepository) CountDistinctInvestors(ctx context.Context, structureID uuid.UUID) (int64, error) {
	args := m.Called(ctx, structureID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock SmartContractRepository
type MockSmartContractRepository struct {
	mock.Mock
}

func (m *MockSmartContractRepository) Create(ctx context.Context, contract *entities.SmartContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockSmartContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.SmartContract, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SmartContract), args.Error(1)
}

func (m *MockSmartContractRepository) List(ctx context.Context, filter entities.SmartContractFilter, pagination utils.PaginationParams) ([]*entities.SmartContract, int64, error) {
	args := m.Called(ctx, filter, pagination)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.SmartContract), args.Get(1).(int64), args.Error(2)
}

func (m *MockSmartContractRepository) GetByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.SmartContract, error) {
	args := m.Called(ctx, structureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SmartContract), args.Error(1)
}

func (m *MockSmartContractRepository) Update(ctx context.Context, contract *entities.SmartContract) error {
	args := m.Called(ctx, contract)
	return args.Error(0)
}

func (m *MockSmartContractRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
