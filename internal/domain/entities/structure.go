package entities

import (
	"time"

	"github.com/google/uuid"
)

// StructureType represents the legal form of a structure
type StructureType string

const (
	StructureTypeFund     StructureType = "FUND"
	StructureTypeSALLC    StructureType = "SA_LLC"
	StructureTypeSPV      StructureType = "SPV"
	StructureTypeTrust    StructureType = "TRUST"
	StructureTypeGPEntity StructureType = "GP_ENTITY"
)

// ValidStructureType reports whether t belongs to the closed type set
func ValidStructureType(t StructureType) bool {
	switch t {
	case StructureTypeFund, StructureTypeSALLC, StructureTypeSPV, StructureTypeTrust, StructureTypeGPEntity:
		return true
	}
	return false
}

// FinancialRollup holds the stored financial totals of a structure.
// The block is always replaced as a whole, never field by field.
type FinancialRollup struct {
	TotalCalled      float64 `json:"totalCalled"`
	TotalDistributed float64 `json:"totalDistributed"`
	TotalInvested    float64 `json:"totalInvested"`
	ManagementFee    float64 `json:"managementFee"`
	CarriedInterest  float64 `json:"carriedInterest"`
}

// Structure represents a node in the legal-entity forest.
//
// ParentID is a weak reference: deleting a parent does not cascade to its
// children, which keep the stale reference for audit history.
// CurrentInvestors and CurrentInvestments are derived from the investment
// collection at read time and are never trusted from storage.
type Structure struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Type           StructureType   `json:"type"`
	ParentID       *uuid.UUID      `json:"parentStructureId,omitempty"`
	HierarchyLevel int             `json:"hierarchyLevel"`
	CreatedBy      uuid.UUID       `json:"createdBy"`
	BaseCurrency   string          `json:"baseCurrency"`
	Financials     FinancialRollup `json:"financials"`
	Documents      []string        `json:"documents,omitempty"`

	CurrentInvestors   int64 `json:"currentInvestors"`
	CurrentInvestments int64 `json:"currentInvestments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateStructureInput represents input for creating a structure
type CreateStructureInput struct {
	Name         string   `json:"name" binding:"required,min=1,max=200"`
	Type         string   `json:"type" binding:"required"`
	ParentID     string   `json:"parentStructureId"`
	BaseCurrency string   `json:"baseCurrency" binding:"required,len=3"`
	Documents    []string `json:"documents"`
}

// UpdateStructureInput represents input for updating structure metadata.
// Reparenting is intentionally not supported; financial totals have their
// own update path.
type UpdateStructureInput struct {
	Name         string   `json:"name,omitempty"`
	BaseCurrency string   `json:"baseCurrency,omitempty"`
	Documents    []string `json:"documents,omitempty"`
}

// UpdateFinancialsInput represents a full replacement of the rollup block
type UpdateFinancialsInput struct {
	TotalCalled      float64 `json:"totalCalled"`
	TotalDistributed float64 `json:"totalDistributed"`
	TotalInvested    float64 `json:"totalInvested"`
	ManagementFee    float64 `json:"managementFee"`
	CarriedInterest  float64 `json:"carriedInterest"`
}

// StructureFilter is a conjunctive filter for structure listing
type StructureFilter struct {
	CreatedBy *uuid.UUID
	Type      *StructureType
	ParentID  *uuid.UUID
}
