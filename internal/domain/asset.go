package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Asset is a long-term asset converted from pooled holdings. Recording one
// triggers AssetShare generation snapshotted at the conversion date.
type Asset struct {
	AssetID               uuid.UUID       `gorm:"column:asset_id;type:uuid;primaryKey" json:"asset_id"`
	Name                  string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	RecordedPurchaseValue decimal.Decimal `gorm:"column:recorded_purchase_value;type:decimal(20,4);not null" json:"recorded_purchase_value"`
	ConversionAt          time.Time       `gorm:"column:conversion_at;type:date;not null" json:"conversion_at"`
	SourceInvestmentID    *uuid.UUID      `gorm:"column:source_investment_id;type:uuid" json:"source_investment_id"`
	CreatedAt             time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Asset) TableName() string {
	return "assets"
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.AssetID == uuid.Nil {
		a.AssetID = uuid.New()
	}
	return nil
}
