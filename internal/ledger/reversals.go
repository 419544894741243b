// Package ledger holds the aggregation core: request-scoped snapshots of the
// append-only record stream and the pure functions that derive eligibility,
// entitlement and holding values from them. Snapshots are loaded once per
// aggregation pass and passed in explicitly; nothing here caches across calls.
package ledger

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
)

// RecordType identifies what kind of record a Reversal points at.
type RecordType string

const (
	RecordContribution RecordType = "contribution"
	RecordPenalty      RecordType = "penalty"
	RecordHoldingShare RecordType = "holding_share"
	RecordAssetShare   RecordType = "asset_share"
	RecordExitRequest  RecordType = "exit_request"
	RecordBuyOut       RecordType = "buy_out"
)

var recordTypes = map[RecordType]bool{
	RecordContribution: true,
	RecordPenalty:      true,
	RecordHoldingShare: true,
	RecordAssetShare:   true,
	RecordExitRequest:  true,
	RecordBuyOut:       true,
}

// ValidRecordType reports whether t names a reversible record type.
func ValidRecordType(t string) bool {
	return recordTypes[RecordType(t)]
}

// ReversalSet is the set of reversed record IDs, keyed by record type. It is a
// point-in-time snapshot: load it once at the start of an aggregation pass and
// treat it as frozen for the duration of that pass.
type ReversalSet map[RecordType]map[uuid.UUID]bool

// LoadReversals reads all Reversal rows into a ReversalSet.
func LoadReversals(tx *gorm.DB) (ReversalSet, error) {
	var rows []domain.Reversal
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(ReversalSet, len(recordTypes))
	for _, r := range rows {
		t := RecordType(r.OriginalRecordType)
		if set[t] == nil {
			set[t] = make(map[uuid.UUID]bool)
		}
		set[t][r.OriginalRecordID] = true
	}
	return set, nil
}

// Reversed reports whether the record of the given type has been reversed.
func (s ReversalSet) Reversed(t RecordType, id uuid.UUID) bool {
	return s[t][id]
}
