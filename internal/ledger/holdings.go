package ledger

import (
	"bytes"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
)

// HoldingsLedger is a request-scoped snapshot of holding shares, their parent
// investments and the reversal set, used to value members' stakes at a date.
type HoldingsLedger struct {
	Shares      []domain.HoldingShare
	Investments map[uuid.UUID]domain.Investment
	Reversed    ReversalSet
}

// LoadHoldingsLedger reads all holding shares, investments and reversals in
// one pass, inside the caller's transaction.
func LoadHoldingsLedger(tx *gorm.DB) (*HoldingsLedger, error) {
	reversed, err := LoadReversals(tx)
	if err != nil {
		return nil, err
	}
	var shares []domain.HoldingShare
	if err := tx.Order("created_at, holding_share_id").Find(&shares).Error; err != nil {
		return nil, err
	}
	var investments []domain.Investment
	if err := tx.Find(&investments).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Investment, len(investments))
	for _, inv := range investments {
		byID[inv.InvestmentID] = inv
	}
	return &HoldingsLedger{
		Shares:      shares,
		Investments: byID,
		Reversed:    reversed,
	}, nil
}

// MemberValues returns each member's holding value as of the given date:
// sum over non-reversed holding shares whose investment was recorded on or
// before asOf of units × unit_value. Shares whose parent investment is
// missing are skipped; referential integrity makes that unreachable in a
// consistent store.
func (l *HoldingsLedger) MemberValues(asOf time.Time) map[uuid.UUID]decimal.Decimal {
	cutoff := DateCutoff(asOf)
	result := make(map[uuid.UUID]decimal.Decimal)
	for _, hs := range l.Shares {
		if l.Reversed.Reversed(RecordHoldingShare, hs.HoldingShareID) {
			continue
		}
		inv, ok := l.Investments[hs.InvestmentID]
		if !ok {
			continue
		}
		if !inv.RecordedAt.Before(cutoff) {
			continue
		}
		result[hs.MemberID] = result[hs.MemberID].Add(hs.Units.Mul(inv.UnitValue))
	}
	return result
}

// SortedMemberIDs returns the keys of a per-member decimal map in a stable
// order, so allocation passes create derived rows deterministically.
func SortedMemberIDs(values map[uuid.UUID]decimal.Decimal) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}
