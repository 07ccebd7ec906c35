package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/infrastructure/models"
)

// InvestmentRepository implements investment data operations
type InvestmentRepository struct {
	db *gorm.DB
}

// NewInvestmentRepository creates a new investment repository
func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// Create creates a new investment record
func (r *InvestmentRepository) Create(ctx context.Context, investment *entities.Investment) error {
	m := &models.Investment{
		ID:          investment.ID,
		StructureID: investment.StructureID,
		InvestorID:  investment.InvestorID,
		Amount:      investment.Amount,
		Currency:    investment.Currency,
		CreatedAt:   investment.CreatedAt,
		UpdatedAt:   investment.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets an investment by ID
func (r *InvestmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Investment, error) {
	var m models.Investment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByStructure lists all investments referencing a structure
func (r *InvestmentRepository) ListByStructure(ctx context.Context, structureID uuid.UUID) ([]*entities.Investment, error) {
	var investmentModels []models.Investment
	if err := r.db.WithContext(ctx).Where("structure_id = ?", structureID).Order("created_at ASC").Find(&investmentModels).Error; err != nil {
		return nil, err
	}

	var investments []*entities.Investment
	for _, m := range investmentModels {
		model := m
		investments = append(investments, r.toEntity(&model))
	}
	return investments, nil
}

// CountByStructure counts investment records referencing a structure
func (r *InvestmentRepository) CountByStructure(ctx context.Context, structureID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Investment{}).Where("structure_id = ?", structureID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDistinctInvestors counts distinct investor identities among a
// structure's investments. Multiple investments by the same investor
// collapse to one.
func (r *InvestmentRepository) CountDistinctInvestors(ctx context.Context, structureID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Investment{}).
		Where("structure_id = ?", structureID).
		Distinct("investor_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *InvestmentRepository) toEntity(m *models.Investment) *entities.Investment {
	return &entities.Investment{
		ID:          m.ID,
		StructureID: m.StructureID,
		InvestorID:  m.InvestorID,
		Amount:      m.Amount,
		Currency:    m.Currency,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
