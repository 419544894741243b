package investments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
	"prosper-backend/internal/pkg/apperrors"
)

type Service struct {
	DB *gorm.DB
}

type RecordInvestmentInput struct {
	RecordedAt time.Time
	UnitValue  decimal.Decimal
	// TotalUnits, when nil, defaults to eligible pool / unit value.
	TotalUnits *decimal.Decimal
}

// RecordInvestment records a pooled-fund purchase and allocates it: each
// member's eligible savings as of the investment date buys units at the unit
// value. The eligibility snapshot and the share writes live in one transaction
// so a concurrent reversal can never tear the allocation.
func (s *Service) RecordInvestment(ctx context.Context, in RecordInvestmentInput) (*domain.Investment, error) {
	if !in.UnitValue.IsPositive() {
		return nil, apperrors.E(apperrors.InvalidAmount, "unit value must be positive")
	}

	var investment domain.Investment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		savings, err := ledger.LoadSavingsLedger(tx)
		if err != nil {
			return err
		}
		eligible := savings.EligibleSavings(in.RecordedAt)
		pool := decimal.Zero
		for _, amount := range eligible {
			pool = pool.Add(amount)
		}

		totalUnits := decimal.Zero
		if in.TotalUnits != nil {
			totalUnits = *in.TotalUnits
		} else if pool.IsPositive() {
			totalUnits = pool.Div(in.UnitValue)
		}
		investment = domain.Investment{
			RecordedAt: in.RecordedAt,
			UnitValue:  in.UnitValue,
			TotalUnits: totalUnits,
		}
		if err := tx.Create(&investment).Error; err != nil {
			return err
		}

		// An empty pool is a valid investment with no participants.
		if !pool.IsPositive() {
			return nil
		}

		for _, memberID := range ledger.SortedMemberIDs(eligible) {
			amount := eligible[memberID]
			if !amount.IsPositive() {
				continue
			}
			share := domain.HoldingShare{
				InvestmentID: investment.InvestmentID,
				MemberID:     memberID,
				Units:        amount.Div(in.UnitValue),
			}
			if err := tx.Create(&share).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &investment, nil
}
