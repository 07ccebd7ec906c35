package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"fundstack.backend/internal/domain/entities"
	domainerrors "fundstack.backend/internal/domain/errors"
	"fundstack.backend/internal/infrastructure/models"
	"fundstack.backend/pkg/utils"
)

// StructureRepository implements structure data operations
type StructureRepository struct {
	db *gorm.DB
}

// NewStructureRepository creates a new structure repository
func NewStructureRepository(db *gorm.DB) *StructureRepository {
	return &StructureRepository{db: db}
}

// Create creates a new structure
func (r *StructureRepository) Create(ctx context.Context, structure *entities.Structure) error {
	m := r.toModel(structure)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a structure by ID
func (r *StructureRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Structure, error) {
	var m models.Structure
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists structures matching the conjunctive filter
func (r *StructureRepository) List(ctx context.Context, filter entities.StructureFilter, pagination utils.PaginationParams) ([]*entities.Structure, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Structure{})

	if filter.CreatedBy != nil {
		query = query.Where("created_by = ?", *filter.CreatedBy)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	var structureModels []models.Structure
	if err := query.Find(&structureModels).Error; err != nil {
		return nil, 0, err
	}

	var structures []*entities.Structure
	for _, m := range structureModels {
		model := m
		structures = append(structures, r.toEntity(&model))
	}
	return structures, total, nil
}

// FindChildren returns the direct children of a structure. Traversal is
// shallow on purpose; callers never need full-tree descent.
func (r *StructureRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entities.Structure, error) {
	var structureModels []models.Structure
	if err := r.db.WithContext(ctx).Where("parent_id = ?", parentID).Order("created_at ASC").Find(&structureModels).Error; err != nil {
		return nil, err
	}

	var structures []*entities.Structure
	for _, m := range structureModels {
		model := m
		structures = append(structures, r.toEntity(&model))
	}
	return structures, nil
}

// FindRoots returns the creator's structures that have no parent
func (r *StructureRepository) FindRoots(ctx context.Context, creatorID uuid.UUID) ([]*entities.Structure, error) {
	var structureModels []models.Structure
	if err := r.db.WithContext(ctx).Where("created_by = ? AND parent_id IS NULL", creatorID).Order("created_at ASC").Find(&structureModels).Error; err != nil {
		return nil, err
	}

	var structures []*entities.Structure
	for _, m := range structureModels {
		model := m
		structures = append(structures, r.toEntity(&model))
	}
	return structures, nil
}

// Update updates structure metadata
func (r *StructureRepository) Update(ctx context.Context, structure *entities.Structure) error {
	updates := map[string]interface{}{
		"name":          structure.Name,
		"base_currency": structure.BaseCurrency,
		"updated_at":    time.Now(),
	}
	if structure.Documents != nil {
		updates["documents"] = pqStringArray(structure.Documents)
	}

	result := r.db.WithContext(ctx).Model(&models.Structure{}).Where("id = ?", structure.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateFinancials replaces the whole rollup block in a single UPDATE so a
// concurrent reader never sees a partially written block.
func (r *StructureRepository) UpdateFinancials(ctx context.Context, id uuid.UUID, rollup entities.FinancialRollup) error {
	result := r.db.WithContext(ctx).Model(&models.Structure{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_called":      rollup.TotalCalled,
		"total_distributed": rollup.TotalDistributed,
		"total_invested":    rollup.TotalInvested,
		"management_fee":    rollup.ManagementFee,
		"carried_interest":  rollup.CarriedInterest,
		"updated_at":        time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a structure. Children are not touched; they keep
// a dangling parent reference for audit history.
func (r *StructureRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Structure{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *StructureRepository) toModel(e *entities.Structure) *models.Structure {
	return &models.Structure{
		ID:               e.ID,
		Name:             e.Name,
		Type:             string(e.Type),
		ParentID:         e.ParentID,
		HierarchyLevel:   e.HierarchyLevel,
		CreatedBy:        e.CreatedBy,
		BaseCurrency:     e.BaseCurrency,
		TotalCalled:      e.Financials.TotalCalled,
		TotalDistributed: e.Financials.TotalDistributed,
		TotalInvested:    e.Financials.TotalInvested,
		ManagementFee:    e.Financials.ManagementFee,
		CarriedInterest:  e.Financials.CarriedInterest,
		Documents:        pqStringArray(e.Documents),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (r *StructureRepository) toEntity(m *models.Structure) *entities.Structure {
	return &entities.Structure{
		ID:             m.ID,
		Name:           m.Name,
		Type:           entities.StructureType(m.Type),
		ParentID:       m.ParentID,
		HierarchyLevel: m.HierarchyLevel,
		CreatedBy:      m.CreatedBy,
		BaseCurrency:   m.BaseCurrency,
		Financials: entities.FinancialRollup{
			TotalCalled:      m.TotalCalled,
			TotalDistributed: m.TotalDistributed,
			TotalInvested:    m.TotalInvested,
			ManagementFee:    m.ManagementFee,
			CarriedInterest:  m.CarriedInterest,
		},
		Documents: []string(m.Documents),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
