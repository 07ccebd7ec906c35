package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Investment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	StructureID uuid.UUID `gorm:"type:uuid;not null;index"`
	InvestorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount      float64   `gorm:"type:decimal(20,2);not null"`
	Currency    string    `gorm:"type:varchar(3);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
