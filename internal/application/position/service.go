package position

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
)

// SourceOfTruthDisclaimer is surfaced on every position view: the ledger
// records events, it does not adjudicate them.
const SourceOfTruthDisclaimer = "External bank and investment records are the ultimate source of truth in disputes."

type Service struct {
	DB *gorm.DB
}

// HoldingEntry is one non-reversed holding share in a position view.
type HoldingEntry struct {
	InvestmentID uuid.UUID       `json:"investment_id"`
	Units        decimal.Decimal `json:"units"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	RecordedAt   time.Time       `json:"recorded_at"`
}

// AssetEntry is one non-reversed asset share in a position view.
type AssetEntry struct {
	AssetID               uuid.UUID       `json:"asset_id"`
	SharePercentage       decimal.Decimal `json:"share_percentage"`
	RecordedPurchaseValue decimal.Decimal `json:"recorded_purchase_value"`
}

// ExitSummary projects the member's latest non-reversed exit request.
type ExitSummary struct {
	Status         string          `json:"status"`
	QueuePosition  int             `json:"queue_position"`
	AmountEntitled decimal.Decimal `json:"amount_entitled"`
}

// Position is a member's current snapshot, reversal-aware throughout.
type Position struct {
	ContributionsTotal decimal.Decimal `json:"contributions_total"`
	PenaltiesTotal     decimal.Decimal `json:"penalties_total"`
	HoldingsBreakdown  []HoldingEntry  `json:"holdings_breakdown"`
	AssetsBreakdown    []AssetEntry    `json:"assets_breakdown"`
	ExitRequest        *ExitSummary    `json:"exit_request"`
	Disclaimer         string          `json:"source_of_truth_disclaimer"`
}

// MemberPosition derives the member's current financial position from the
// ledger. A member with zero records gets zero totals and empty lists, never
// an error.
func (s *Service) MemberPosition(ctx context.Context, memberID uuid.UUID) (*Position, error) {
	out := &Position{
		ContributionsTotal: decimal.Zero,
		PenaltiesTotal:     decimal.Zero,
		HoldingsBreakdown:  []HoldingEntry{},
		AssetsBreakdown:    []AssetEntry{},
		Disclaimer:         SourceOfTruthDisclaimer,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reversed, err := ledger.LoadReversals(tx)
		if err != nil {
			return err
		}

		var contributions []domain.Contribution
		if err := tx.Where("member_id = ?", memberID).Find(&contributions).Error; err != nil {
			return err
		}
		for _, c := range contributions {
			if reversed.Reversed(ledger.RecordContribution, c.ContributionID) {
				continue
			}
			out.ContributionsTotal = out.ContributionsTotal.Add(c.Amount)
		}

		var penalties []domain.Penalty
		if err := tx.Where("member_id = ?", memberID).Find(&penalties).Error; err != nil {
			return err
		}
		for _, p := range penalties {
			if reversed.Reversed(ledger.RecordPenalty, p.PenaltyID) {
				continue
			}
			out.PenaltiesTotal = out.PenaltiesTotal.Add(p.Amount)
		}

		var shares []domain.HoldingShare
		if err := tx.Where("member_id = ?", memberID).Order("created_at, holding_share_id").Find(&shares).Error; err != nil {
			return err
		}
		if len(shares) > 0 {
			investments, err := loadInvestments(tx, shares)
			if err != nil {
				return err
			}
			for _, hs := range shares {
				if reversed.Reversed(ledger.RecordHoldingShare, hs.HoldingShareID) {
					continue
				}
				inv, ok := investments[hs.InvestmentID]
				if !ok {
					continue
				}
				out.HoldingsBreakdown = append(out.HoldingsBreakdown, HoldingEntry{
					InvestmentID: hs.InvestmentID,
					Units:        hs.Units,
					UnitValue:    inv.UnitValue,
					RecordedAt:   inv.RecordedAt,
				})
			}
		}

		var assetShares []domain.AssetShare
		if err := tx.Where("member_id = ?", memberID).Order("created_at, asset_share_id").Find(&assetShares).Error; err != nil {
			return err
		}
		if len(assetShares) > 0 {
			assets, err := loadAssets(tx, assetShares)
			if err != nil {
				return err
			}
			for _, as := range assetShares {
				if reversed.Reversed(ledger.RecordAssetShare, as.AssetShareID) {
					continue
				}
				asset, ok := assets[as.AssetID]
				if !ok {
					continue
				}
				out.AssetsBreakdown = append(out.AssetsBreakdown, AssetEntry{
					AssetID:               as.AssetID,
					SharePercentage:       as.SharePercentage,
					RecordedPurchaseValue: asset.RecordedPurchaseValue,
				})
			}
		}

		var requests []domain.ExitRequest
		if err := tx.Where("member_id = ?", memberID).Order("requested_at DESC").Find(&requests).Error; err != nil {
			return err
		}
		for _, r := range requests {
			if reversed.Reversed(ledger.RecordExitRequest, r.ExitRequestID) {
				continue
			}
			out.ExitRequest = &ExitSummary{
				Status:         r.Status,
				QueuePosition:  r.QueuePosition,
				AmountEntitled: r.AmountEntitled,
			}
			break
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GroupAggregates is the privacy-bounded group view: a member count and the
// pooled contribution total, never a per-member breakdown.
type GroupAggregates struct {
	TotalMembers int64           `json:"total_members"`
	TotalPool    decimal.Decimal `json:"total_pool"`
}

// GroupAggregates counts members and sums non-reversed contributions.
func (s *Service) GroupAggregates(ctx context.Context) (*GroupAggregates, error) {
	out := &GroupAggregates{TotalPool: decimal.Zero}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Member{}).Count(&out.TotalMembers).Error; err != nil {
			return err
		}
		reversed, err := ledger.LoadReversals(tx)
		if err != nil {
			return err
		}
		var contributions []domain.Contribution
		if err := tx.Find(&contributions).Error; err != nil {
			return err
		}
		for _, c := range contributions {
			if reversed.Reversed(ledger.RecordContribution, c.ContributionID) {
				continue
			}
			out.TotalPool = out.TotalPool.Add(c.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func loadInvestments(tx *gorm.DB, shares []domain.HoldingShare) (map[uuid.UUID]domain.Investment, error) {
	ids := make([]uuid.UUID, 0, len(shares))
	seen := map[uuid.UUID]bool{}
	for _, hs := range shares {
		if !seen[hs.InvestmentID] {
			seen[hs.InvestmentID] = true
			ids = append(ids, hs.InvestmentID)
		}
	}
	var investments []domain.Investment
	if err := tx.Where("investment_id IN ?", ids).Find(&investments).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Investment, len(investments))
	for _, inv := range investments {
		byID[inv.InvestmentID] = inv
	}
	return byID, nil
}

func loadAssets(tx *gorm.DB, shares []domain.AssetShare) (map[uuid.UUID]domain.Asset, error) {
	ids := make([]uuid.UUID, 0, len(shares))
	seen := map[uuid.UUID]bool{}
	for _, as := range shares {
		if !seen[as.AssetID] {
			seen[as.AssetID] = true
			ids = append(ids, as.AssetID)
		}
	}
	var assets []domain.Asset
	if err := tx.Where("asset_id IN ?", ids).Find(&assets).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Asset, len(assets))
	for _, a := range assets {
		byID[a.AssetID] = a
	}
	return byID, nil
}
