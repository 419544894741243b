package assets

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/ledger"
	"prosper-backend/internal/pkg/apperrors"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	DB *gorm.DB
}

type RecordAssetInput struct {
	Name               string
	PurchaseValue      decimal.Decimal
	ConversionAt       time.Time
	SourceInvestmentID *uuid.UUID
}

// RecordAssetConversion converts pooled holdings into a long-term asset.
// Each member's share percentage is their holding value at the conversion
// date over the total, times 100. Percentages are fixed permanently at
// conversion: reversing a contributing holding share afterwards does not
// rewrite them.
func (s *Service) RecordAssetConversion(ctx context.Context, in RecordAssetInput) (*domain.Asset, error) {
	if in.PurchaseValue.IsNegative() {
		return nil, apperrors.E(apperrors.InvalidAmount, "recorded_purchase_value must not be negative")
	}

	var asset domain.Asset
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.SourceInvestmentID != nil {
			var inv domain.Investment
			if err := tx.Where("investment_id = ?", in.SourceInvestmentID).First(&inv).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.E(apperrors.NotFound, "investment %s not found", in.SourceInvestmentID)
				}
				return err
			}
		}

		holdings, err := ledger.LoadHoldingsLedger(tx)
		if err != nil {
			return err
		}
		values := holdings.MemberValues(in.ConversionAt)
		total := decimal.Zero
		for _, v := range values {
			total = total.Add(v)
		}

		asset = domain.Asset{
			Name:                  in.Name,
			RecordedPurchaseValue: in.PurchaseValue,
			ConversionAt:          in.ConversionAt,
			SourceInvestmentID:    in.SourceInvestmentID,
		}
		if err := tx.Create(&asset).Error; err != nil {
			return err
		}

		// No holdings at conversion: asset exists with no shares.
		if !total.IsPositive() {
			return nil
		}

		for _, memberID := range ledger.SortedMemberIDs(values) {
			value := values[memberID]
			if !value.IsPositive() {
				continue
			}
			share := domain.AssetShare{
				AssetID:         asset.AssetID,
				MemberID:        memberID,
				SharePercentage: value.Div(total).Mul(hundred),
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
	return &asset, nil
}
