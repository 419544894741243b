package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContributionWindow is a policy period for contributions (one per month or cycle).
// Immutable: historical windows are never updated or deleted.
type ContributionWindow struct {
	WindowID  uuid.UUID        `gorm:"column:window_id;type:uuid;primaryKey" json:"window_id"`
	Name      string           `gorm:"column:name;type:varchar(64)" json:"name"`
	StartAt   time.Time        `gorm:"column:start_at;not null" json:"start_at"`
	EndAt     time.Time        `gorm:"column:end_at;not null" json:"end_at"`
	MinAmount decimal.Decimal  `gorm:"column:min_amount;type:decimal(20,4);not null;default:0" json:"min_amount"`
	MaxAmount *decimal.Decimal `gorm:"column:max_amount;type:decimal(20,4)" json:"max_amount"`
	CreatedAt time.Time        `gorm:"column:created_at" json:"created_at"`
}

func (ContributionWindow) TableName() string {
	return "contribution_windows"
}

func (w *ContributionWindow) BeforeCreate(tx *gorm.DB) error {
	if w.WindowID == uuid.Nil {
		w.WindowID = uuid.New()
	}
	return nil
}
