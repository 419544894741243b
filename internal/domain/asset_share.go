package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AssetShare is a member's percentage ownership of an Asset, fixed permanently
// at conversion time. Later reversals of the contributing holding shares do not
// rewrite it.
type AssetShare struct {
	AssetShareID    uuid.UUID       `gorm:"column:asset_share_id;type:uuid;primaryKey" json:"asset_share_id"`
	AssetID         uuid.UUID       `gorm:"column:asset_id;type:uuid;not null;index" json:"asset_id"`
	MemberID        uuid.UUID       `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	SharePercentage decimal.Decimal `gorm:"column:share_percentage;type:decimal(20,10);not null" json:"share_percentage"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (AssetShare) TableName() string {
	return "asset_shares"
}

func (a *AssetShare) BeforeCreate(tx *gorm.DB) error {
	if a.AssetShareID == uuid.Nil {
		a.AssetShareID = uuid.New()
	}
	return nil
}
