package statement

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
)

// ErrInvalidDateRange is returned when from is after to.
var ErrInvalidDateRange = errors.New("from_date must not be after to_date")

type Service struct {
	DB *gorm.DB
}

type ContributionEntry struct {
	ContributionID uuid.UUID       `json:"contribution_id"`
	WindowID       uuid.UUID       `json:"window_id"`
	Amount         decimal.Decimal `json:"amount"`
	RecordedAt     time.Time       `json:"recorded_at"`
}

type PenaltyEntry struct {
	PenaltyID  uuid.UUID       `json:"penalty_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	RecordedAt time.Time       `json:"recorded_at"`
}

type InvestmentEntry struct {
	InvestmentID uuid.UUID       `json:"investment_id"`
	RecordedAt   time.Time       `json:"recorded_at"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	Units        decimal.Decimal `json:"units"`
}

type ExitRequestEntry struct {
	ExitRequestID  uuid.UUID       `json:"exit_request_id"`
	RequestedAt    time.Time       `json:"requested_at"`
	QueuePosition  int             `json:"queue_position"`
	Status         string          `json:"status"`
	AmountEntitled decimal.Decimal `json:"amount_entitled"`
}

type BuyOutEntry struct {
	BuyOutID         uuid.UUID       `json:"buy_out_id"`
	SellerID         uuid.UUID       `json:"seller_id"`
	BuyerID          *uuid.UUID      `json:"buyer_id"`
	NominalValuation decimal.Decimal `json:"nominal_valuation"`
	RecordedAt       time.Time       `json:"recorded_at"`
}

// Statement is a member's reversal-aware history over an optional date range,
// each list chronological ascending by its own timestamp. Identical inputs and
// ledger state always produce identical output.
type Statement struct {
	FromDate      *time.Time          `json:"from_date"`
	ToDate        *time.Time          `json:"to_date"`
	Contributions []ContributionEntry `json:"contributions"`
	Penalties     []PenaltyEntry      `json:"penalties"`
	Investments   []InvestmentEntry   `json:"investments"`
	ExitRequests  []ExitRequestEntry  `json:"exit_requests"`
	BuyOuts       []BuyOutEntry       `json:"buy_outs"`
}

// MemberStatement builds the member's historical statement. Date bounds apply
// to each record type's own relevant timestamp; holding shares are bounded by
// their investment's recorded date; buy-outs match the member as seller or
// buyer.
func (s *Service) MemberStatement(ctx context.Context, memberID uuid.UUID, fromDate, toDate *time.Time) (*Statement, error) {
	if fromDate != nil && toDate != nil && fromDate.After(*toDate) {
		return nil, ErrInvalidDateRange
	}

	out := &Statement{
		FromDate:      fromDate,
		ToDate:        toDate,
		Contributions: []ContributionEntry{},
		Penalties:     []PenaltyEntry{},
		Investments:   []InvestmentEntry{},
		ExitRequests:  []ExitRequestEntry{},
		BuyOuts:       []BuyOutEntry{},
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reversed, err := ledger.LoadReversals(tx)
		if err != nil {
			return err
		}

		var contributions []domain.Contribution
		if err := tx.Where("member_id = ?", memberID).
			Order("recorded_at, contribution_id").Find(&contributions).Error; err != nil {
			return err
		}
		for _, c := range contributions {
			if reversed.Reversed(ledger.RecordContribution, c.ContributionID) || !inRange(c.RecordedAt, fromDate, toDate) {
				continue
			}
			out.Contributions = append(out.Contributions, ContributionEntry{
				ContributionID: c.ContributionID,
				WindowID:       c.WindowID,
				Amount:         c.Amount,
				RecordedAt:     c.RecordedAt,
			})
		}

		var penalties []domain.Penalty
		if err := tx.Where("member_id = ?", memberID).
			Order("recorded_at, penalty_id").Find(&penalties).Error; err != nil {
			return err
		}
		for _, p := range penalties {
			if reversed.Reversed(ledger.RecordPenalty, p.PenaltyID) || !inRange(p.RecordedAt, fromDate, toDate) {
				continue
			}
			out.Penalties = append(out.Penalties, PenaltyEntry{
				PenaltyID:  p.PenaltyID,
				Amount:     p.Amount,
				Reason:     p.Reason,
				RecordedAt: p.RecordedAt,
			})
		}

		var shares []domain.HoldingShare
		if err := tx.Where("member_id = ?", memberID).Find(&shares).Error; err != nil {
			return err
		}
		if len(shares) > 0 {
			ids := make([]uuid.UUID, 0, len(shares))
			for _, hs := range shares {
				ids = append(ids, hs.InvestmentID)
			}
			var investments []domain.Investment
			if err := tx.Where("investment_id IN ?", ids).Find(&investments).Error; err != nil {
				return err
			}
			byID := make(map[uuid.UUID]domain.Investment, len(investments))
			for _, inv := range investments {
				byID[inv.InvestmentID] = inv
			}
			entries := make([]InvestmentEntry, 0, len(shares))
			for _, hs := range shares {
				if reversed.Reversed(ledger.RecordHoldingShare, hs.HoldingShareID) {
					continue
				}
				inv, ok := byID[hs.InvestmentID]
				if !ok || !inRange(inv.RecordedAt, fromDate, toDate) {
					continue
				}
				entries = append(entries, InvestmentEntry{
					InvestmentID: hs.InvestmentID,
					RecordedAt:   inv.RecordedAt,
					UnitValue:    inv.UnitValue,
					Units:        hs.Units,
				})
			}
			sort.Slice(entries, func(i, j int) bool {
				if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
					return entries[i].RecordedAt.Before(entries[j].RecordedAt)
				}
				return bytes.Compare(entries[i].InvestmentID[:], entries[j].InvestmentID[:]) < 0
			})
			out.Investments = entries
		}

		var requests []domain.ExitRequest
		if err := tx.Where("member_id = ?", memberID).
			Order("requested_at, exit_request_id").Find(&requests).Error; err != nil {
			return err
		}
		for _, r := range requests {
			if reversed.Reversed(ledger.RecordExitRequest, r.ExitRequestID) || !inRange(r.RequestedAt, fromDate, toDate) {
				continue
			}
			out.ExitRequests = append(out.ExitRequests, ExitRequestEntry{
				ExitRequestID:  r.ExitRequestID,
				RequestedAt:    r.RequestedAt,
				QueuePosition:  r.QueuePosition,
				Status:         r.Status,
				AmountEntitled: r.AmountEntitled,
			})
		}

		var buyOuts []domain.BuyOut
		if err := tx.Where("seller_id = ? OR buyer_id = ?", memberID, memberID).
			Order("recorded_at, buy_out_id").Find(&buyOuts).Error; err != nil {
			return err
		}
		for _, b := range buyOuts {
			if reversed.Reversed(ledger.RecordBuyOut, b.BuyOutID) || !inRange(b.RecordedAt, fromDate, toDate) {
				continue
			}
			out.BuyOuts = append(out.BuyOuts, BuyOutEntry{
				BuyOutID:         b.BuyOutID,
				SellerID:         b.SellerID,
				BuyerID:          b.BuyerID,
				NominalValuation: b.NominalValuation,
				RecordedAt:       b.RecordedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// inRange applies date-granular bounds: a record is in range when its
// timestamp falls on or after fromDate's day and on or before toDate's day.
func inRange(ts time.Time, fromDate, toDate *time.Time) bool {
	if fromDate != nil {
		y, m, d := fromDate.Date()
		if ts.Before(time.Date(y, m, d, 0, 0, 0, 0, fromDate.Location())) {
			return false
		}
	}
	if toDate != nil && !ts.Before(ledger.DateCutoff(*toDate)) {
		return false
	}
	return true
}
