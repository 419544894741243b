package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BuyOut is an immutable record of an ownership transfer at a negotiated
// nominal valuation. Seller is required; buyer is nil when the group buys.
type BuyOut struct {
	BuyOutID         uuid.UUID       `gorm:"column:buy_out_id;type:uuid;primaryKey" json:"buy_out_id"`
	SellerID         uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	BuyerID          *uuid.UUID      `gorm:"column:buyer_id;type:uuid;index" json:"buyer_id"`
	NominalValuation decimal.Decimal `gorm:"column:nominal_valuation;type:decimal(20,4);not null" json:"nominal_valuation"`
	ValuationInputs  datatypes.JSON  `gorm:"column:valuation_inputs" json:"valuation_inputs"`
	RecordedAt       time.Time       `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt        time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (BuyOut) TableName() string {
	return "buy_outs"
}

func (b *BuyOut) BeforeCreate(tx *gorm.DB) error {
	if b.BuyOutID == uuid.Nil {
		b.BuyOutID = uuid.New()
	}
	return nil
}
