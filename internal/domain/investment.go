package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment is a pooled-fund purchase event. Recording one triggers HoldingShare
// generation from the eligible savings pool as of RecordedAt.
type Investment struct {
	InvestmentID uuid.UUID       `gorm:"column:investment_id;type:uuid;primaryKey" json:"investment_id"`
	RecordedAt   time.Time       `gorm:"column:recorded_at;type:date;not null;index" json:"recorded_at"`
	UnitValue    decimal.Decimal `gorm:"column:unit_value;type:decimal(20,4);not null" json:"unit_value"`
	TotalUnits   decimal.Decimal `gorm:"column:total_units;type:decimal(30,10);not null;default:0" json:"total_units"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Investment) TableName() string {
	return "investments"
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.InvestmentID == uuid.Nil {
		i.InvestmentID = uuid.New()
	}
	return nil
}
