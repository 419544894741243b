package buyouts

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"prosper-backend/internal/domain"
	"prosper-backend/internal/pkg/apperrors"
)

type Service struct {
	DB *gorm.DB
}

type RecordBuyOutInput struct {
	SellerID         uuid.UUID
	BuyerID          *uuid.UUID
	NominalValuation decimal.Decimal
	// ValuationInputs is free-form: whatever figures the negotiation used.
	ValuationInputs map[string]interface{}
	RecordedAt      *time.Time
}

// RecordBuyOut appends an immutable ownership-transfer record at a negotiated
// valuation. Buyer is optional: nil means the group buys.
func (s *Service) RecordBuyOut(ctx context.Context, in RecordBuyOutInput) (*domain.BuyOut, error) {
	var buyOut domain.BuyOut
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seller domain.Member
		if err := tx.Where("member_id = ?", in.SellerID).First(&seller).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "seller %s not found", in.SellerID)
			}
			return err
		}
		if in.BuyerID != nil {
			var buyer domain.Member
			if err := tx.Where("member_id = ?", in.BuyerID).First(&buyer).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.E(apperrors.NotFound, "buyer %s not found", in.BuyerID)
				}
				return err
			}
		}

		inputs := in.ValuationInputs
		if inputs == nil {
			inputs = map[string]interface{}{}
		}
		inputsJSON, err := json.Marshal(inputs)
		if err != nil {
			return err
		}
		recordedAt := time.Now()
		if in.RecordedAt != nil {
			recordedAt = *in.RecordedAt
		}
		buyOut = domain.BuyOut{
			SellerID:         in.SellerID,
			BuyerID:          in.BuyerID,
			NominalValuation: in.NominalValuation,
			ValuationInputs:  datatypes.JSON(inputsJSON),
			RecordedAt:       recordedAt,
		}
		return tx.Create(&buyOut).Error
	})
	if err != nil {
		return nil, err
	}
	return &buyOut, nil
}
