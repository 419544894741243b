package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HoldingShare is a member's unit stake in an Investment. Created only by the
// allocation pass when the investment is recorded; never by direct data entry.
type HoldingShare struct {
	HoldingShareID uuid.UUID       `gorm:"column:holding_share_id;type:uuid;primaryKey" json:"holding_share_id"`
	InvestmentID   uuid.UUID       `gorm:"column:investment_id;type:uuid;not null;index" json:"investment_id"`
	MemberID       uuid.UUID       `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	Units          decimal.Decimal `gorm:"column:units;type:decimal(30,10);not null" json:"units"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (HoldingShare) TableName() string {
	return "holding_shares"
}

func (h *HoldingShare) BeforeCreate(tx *gorm.DB) error {
	if h.HoldingShareID == uuid.Nil {
		h.HoldingShareID = uuid.New()
	}
	return nil
}
