package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Structure struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name           string     `gorm:"type:varchar(200);not null"`
	Type           string     `gorm:"type:varchar(50);not null"`
	ParentID       *uuid.UUID `gorm:"type:uuid;index"` // weak reference, no FK constraint
	HierarchyLevel int        `gorm:"not null;default:0"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null;index"`
	BaseCurrency   string     `gorm:"type:varchar(3);not null;default:'USD'"`

	TotalCalled      float64 `gorm:"type:decimal(20,2);not null;default:0"`
	TotalDistributed float64 `gorm:"type:decimal(20,2);not null;default:0"`
	TotalInvested    float64 `gorm:"type:decimal(20,2);not null;default:0"`
	ManagementFee    float64 `gorm:"type:decimal(6,4);not null;default:0"`
	CarriedInterest  float64 `gorm:"type:decimal(6,4);not null;default:0"`

	Documents pq.StringArray `gorm:"type:text[];default:'{}'"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
