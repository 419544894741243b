package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reversal is an audit correction pointing at a prior record. The original row
// is never mutated or deleted; aggregation excludes it instead. Reversals are
// themselves never reversed or edited.
type Reversal struct {
	ReversalID         uuid.UUID `gorm:"column:reversal_id;type:uuid;primaryKey" json:"reversal_id"`
	OriginalRecordType string    `gorm:"column:original_record_type;type:varchar(32);not null;index" json:"original_record_type"`
	OriginalRecordID   uuid.UUID `gorm:"column:original_record_id;type:uuid;not null" json:"original_record_id"`
	Reason             string    `gorm:"column:reason;type:varchar(512)" json:"reason"`
	CreatedAt          time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Reversal) TableName() string {
	return "reversals"
}

func (r *Reversal) BeforeCreate(tx *gorm.DB) error {
	if r.ReversalID == uuid.Nil {
		r.ReversalID = uuid.New()
	}
	return nil
}
