package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SmartContract struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	StructureID  uuid.UUID `gorm:"type:uuid;not null;index"` // reference, not ownership
	Name         string    `gorm:"type:varchar(100);not null"`
	Symbol       string    `gorm:"type:varchar(12);not null"`
	ContractType string    `gorm:"type:varchar(50);not null;default:'ERC3643'"`
	MaxSupply    int64     `gorm:"not null;default:0"`
	TokenValue   float64   `gorm:"type:decimal(20,8);not null;default:0"`
	Network      string    `gorm:"type:varchar(100);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	DeployedBy   uuid.UUID `gorm:"type:uuid;not null"`

	ContractAddress *string    `gorm:"type:varchar(66)"`
	TransactionHash *string    `gorm:"type:varchar(66)"`
	BlockNumber     *int64     ``
	DeployedAt      *time.Time `gorm:"type:timestamp"`

	ErrorMessage *string    `gorm:"type:text"`
	FailedAt     *time.Time `gorm:"type:timestamp"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
