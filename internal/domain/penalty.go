package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Penalty is a late or out-of-bounds fee. Same immutability policy as Contribution.
type Penalty struct {
	PenaltyID  uuid.UUID       `gorm:"column:penalty_id;type:uuid;primaryKey" json:"penalty_id"`
	MemberID   uuid.UUID       `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	WindowID   *uuid.UUID      `gorm:"column:window_id;type:uuid" json:"window_id"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null" json:"amount"`
	Reason     string          `gorm:"column:reason;type:varchar(512)" json:"reason"`
	RecordedAt time.Time       `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Penalty) TableName() string {
	return "penalties"
}

func (p *Penalty) BeforeCreate(tx *gorm.DB) error {
	if p.PenaltyID == uuid.Nil {
		p.PenaltyID = uuid.New()
	}
	return nil
}
