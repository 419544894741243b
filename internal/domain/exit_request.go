package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Exit request statuses. queued is the only non-terminal state; the single
// permitted transitions are queued→fulfilled and queued→cancelled.
const (
	ExitQueued    = "queued"
	ExitFulfilled = "fulfilled"
	ExitCancelled = "cancelled"
)

// ExitRequest is a member's request to withdraw from the pool. queue_position
// and amount_entitled are fixed at creation; status/fulfilled_at mutate exactly
// once on fulfillment or cancellation.
type ExitRequest struct {
	ExitRequestID  uuid.UUID       `gorm:"column:exit_request_id;type:uuid;primaryKey" json:"exit_request_id"`
	MemberID       uuid.UUID       `gorm:"column:member_id;type:uuid;not null;index" json:"member_id"`
	RequestedAt    time.Time       `gorm:"column:requested_at;not null;index" json:"requested_at"`
	QueuePosition  int             `gorm:"column:queue_position;not null" json:"queue_position"`
	Status         string          `gorm:"column:status;type:varchar(16);not null;default:queued" json:"status"`
	FulfilledAt    *time.Time      `gorm:"column:fulfilled_at" json:"fulfilled_at"`
	AmountEntitled decimal.Decimal `gorm:"column:amount_entitled;type:decimal(20,4);not null;default:0" json:"amount_entitled"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (ExitRequest) TableName() string {
	return "exit_requests"
}

func (e *ExitRequest) BeforeCreate(tx *gorm.DB) error {
	if e.ExitRequestID == uuid.Nil {
		e.ExitRequestID = uuid.New()
	}
	return nil
}
