package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ContractType represents the token standard of a contract. The set is
// open: unknown values are accepted as long as they are non-empty.
type ContractType string

const (
	ContractTypeERC3643 ContractType = "ERC3643"
	ContractTypeERC20   ContractType = "ERC20"
)

// DeploymentStatus represents the deployment state of a contract record
type DeploymentStatus string

const (
	DeploymentStatusPending   DeploymentStatus = "PENDING"
	DeploymentStatusDeploying DeploymentStatus = "DEPLOYING"
	DeploymentStatusDeployed  DeploymentStatus = "DEPLOYED"
	DeploymentStatusFailed    DeploymentStatus = "FAILED"
)

// IsTerminal reports whether the status accepts no further transitions
func (s DeploymentStatus) IsTerminal() bool {
	return s == DeploymentStatusDeployed || s == DeploymentStatusFailed
}

// ValidDeploymentStatus reports whether s is a known status value
func ValidDeploymentStatus(s DeploymentStatus) bool {
	switch s {
	case DeploymentStatusPending, DeploymentStatusDeploying, DeploymentStatusDeployed, DeploymentStatusFailed:
		return true
	}
	return false
}

// SmartContract represents a tokenization record tied to a structure.
//
// The success fields (ContractAddress, TransactionHash, BlockNumber,
// DeployedAt) are set only in DEPLOYED; the failure fields (ErrorMessage,
// FailedAt) only in FAILED. The two groups are mutually exclusive.
type SmartContract struct {
	ID           uuid.UUID        `json:"id"`
	StructureID  uuid.UUID        `json:"structureId"`
	Name         string           `json:"name"`
	Symbol       string           `json:"symbol"`
	ContractType ContractType     `json:"contractType"`
	MaxSupply    int64            `json:"maxSupply"`
	TokenValue   float64          `json:"tokenValue"`
	Network      string           `json:"network"`
	Status       DeploymentStatus `json:"status"`
	DeployedBy   uuid.UUID        `json:"deployedBy"`

	ContractAddress null.String `json:"contractAddress,omitempty"`
	TransactionHash null.String `json:"transactionHash,omitempty"`
	BlockNumber     null.Int64  `json:"blockNumber,omitempty"`
	DeployedAt      null.Time   `json:"deployedAt,omitempty"`

	ErrorMessage null.String `json:"errorMessage,omitempty"`
	FailedAt     null.Time   `json:"failedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateSmartContractInput represents input for creating a contract record.
// Status may be omitted (defaults to PENDING) or set to DEPLOYING when a
// deployment is already in flight client-side.
type CreateSmartContractInput struct {
	StructureID  string  `json:"structureId" binding:"required,uuid"`
	Name         string  `json:"name" binding:"required,min=1,max=100"`
	Symbol       string  `json:"symbol" binding:"required,min=1,max=12"`
	ContractType string  `json:"contractType" binding:"required"`
	MaxSupply    int64   `json:"maxSupply" binding:"required,gt=0"`
	TokenValue   float64 `json:"tokenValue" binding:"gte=0"`
	Network      string  `json:"network" binding:"required"`
	Status       string  `json:"status"`
}

// UpdateSmartContractInput represents a metadata update, legal in any
// deployment state and never touching the status field
type UpdateSmartContractInput struct {
	Name       string  `json:"name,omitempty"`
	Symbol     string  `json:"symbol,omitempty"`
	TokenValue float64 `json:"tokenValue,omitempty"`
}

// UpdateDeploymentStatusInput represents a status transition request
type UpdateDeploymentStatusInput struct {
	Status          string `json:"status" binding:"required"`
	ContractAddress string `json:"contractAddress"`
	TransactionHash string `json:"transactionHash"`
	BlockNumber     int64  `json:"blockNumber"`
	ErrorMessage    string `json:"errorMessage"`
}

// SmartContractFilter narrows contract listing
type SmartContractFilter struct {
	StructureID *uuid.UUID
	Status      *DeploymentStatus
}
