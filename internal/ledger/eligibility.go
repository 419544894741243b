package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
)

// SavingsLedger is a request-scoped snapshot of contributions, penalties and
// the reversal set. It is the single place "what counts toward the pool as of
// a date" is defined; investment allocation and exit entitlement both go
// through it.
type SavingsLedger struct {
	Contributions []domain.Contribution
	Penalties     []domain.Penalty
	Reversed      ReversalSet
}

// LoadSavingsLedger reads all contributions, penalties and reversals in one
// pass. Call it inside the same transaction as any writes that depend on it so
// the snapshot cannot tear against concurrent reversal creation.
func LoadSavingsLedger(tx *gorm.DB) (*SavingsLedger, error) {
	reversed, err := LoadReversals(tx)
	if err != nil {
		return nil, err
	}
	var contributions []domain.Contribution
	if err := tx.Order("recorded_at, contribution_id").Find(&contributions).Error; err != nil {
		return nil, err
	}
	var penalties []domain.Penalty
	if err := tx.Order("recorded_at, penalty_id").Find(&penalties).Error; err != nil {
		return nil, err
	}
	return &SavingsLedger{
		Contributions: contributions,
		Penalties:     penalties,
		Reversed:      reversed,
	}, nil
}

// EligibleSavings returns each member's non-reversed net savings (contributions
// minus penalties) recorded on or before asOf, at date granularity. Members with
// no records are omitted; zero and negative nets are retained so callers decide
// whether to filter before allocating.
func (l *SavingsLedger) EligibleSavings(asOf time.Time) map[uuid.UUID]decimal.Decimal {
	cutoff := DateCutoff(asOf)
	result := make(map[uuid.UUID]decimal.Decimal)
	for _, c := range l.Contributions {
		if l.Reversed.Reversed(RecordContribution, c.ContributionID) {
			continue
		}
		if !c.RecordedAt.Before(cutoff) {
			continue
		}
		result[c.MemberID] = result[c.MemberID].Add(c.Amount)
	}
	for _, p := range l.Penalties {
		if l.Reversed.Reversed(RecordPenalty, p.PenaltyID) {
			continue
		}
		if !p.RecordedAt.Before(cutoff) {
			continue
		}
		result[p.MemberID] = result[p.MemberID].Sub(p.Amount)
	}
	return result
}

// MemberEntitlement returns the member's exit entitlement: non-reversed
// contributions minus penalties over the whole history, floored at zero. A
// member is never asked to pay money back through a negative entitlement.
func (l *SavingsLedger) MemberEntitlement(memberID uuid.UUID) decimal.Decimal {
	net := decimal.Zero
	for _, c := range l.Contributions {
		if c.MemberID != memberID || l.Reversed.Reversed(RecordContribution, c.ContributionID) {
			continue
		}
		net = net.Add(c.Amount)
	}
	for _, p := range l.Penalties {
		if p.MemberID != memberID || l.Reversed.Reversed(RecordPenalty, p.PenaltyID) {
			continue
		}
		net = net.Sub(p.Amount)
	}
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// DateCutoff returns the first instant after the day of asOf, so a record
// counts as "on or before" asOf when its timestamp is strictly before the
// returned instant. As-of comparisons are date-granular, not instant-granular.
func DateCutoff(asOf time.Time) time.Time {
	y, m, d := asOf.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, asOf.Location()).AddDate(0, 0, 1)
}
