package entities

import (
	"time"

	"github.com/google/uuid"
)

// Investment represents a commitment by one investor into one structure
type Investment struct {
	ID          uuid.UUID `json:"id"`
	StructureID uuid.UUID `json:"structureId"`
	InvestorID  uuid.UUID `json:"investorId"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateInvestmentInput represents input for recording an investment
type CreateInvestmentInput struct {
	StructureID string  `json:"structureId" binding:"required,uuid"`
	InvestorID  string  `json:"investorId" binding:"required,uuid"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required,len=3"`
}
