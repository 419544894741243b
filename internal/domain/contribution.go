package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contribution is a savings payment inside a window. Append-only: never updated
// or deleted, only countered by a Reversal.
type Contribution struct {
	ContributionID uuid.UUID       `gorm:"column:contribution_id;type:uuid;primaryKey" json:"contribution_id"`
	MemberID       uuid.UUID       `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	WindowID       uuid.UUID       `gorm:"column:window_id;type:uuid;not null" json:"window_id"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	RecordedAt     time.Time       `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Contribution) TableName() string {
	return "contributions"
}

func (c *Contribution) BeforeCreate(tx *gorm.DB) error {
	if c.ContributionID == uuid.Nil {
		c.ContributionID = uuid.New()
	}
	return nil
}
