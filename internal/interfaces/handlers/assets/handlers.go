package assets

import (
	assetsvc "prosper-backend/internal/application/assets"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *assetsvc.Service
}

// RecordAssetRequest body.
type RecordAssetRequest struct {
	Name               string `json:"name"`
	PurchaseValue      string `json:"recorded_purchase_value"`
	ConversionAt       string `json:"conversion_at"`
	SourceInvestmentID string `json:"source_investment_id"`
}

// RecordAsset POST /api/v1/admin/assets
func (h *Handlers) RecordAsset(c *fiber.Ctx) error {
	var req RecordAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Name == "" {
		return response.BadRequest(c, "name is required")
	}
	if req.ConversionAt == "" {
		return response.BadRequest(c, "conversion_at is required")
	}
	conversionAt, ok := validation.ParseDate(req.ConversionAt)
	if !ok {
		return response.BadRequest(c, "Invalid conversion_at")
	}
	purchaseValue, ok := validation.ParseAmount(req.PurchaseValue)
	if !ok {
		return response.BadRequest(c, "Invalid recorded_purchase_value")
	}
	var sourceInvestmentID *uuid.UUID
	if req.SourceInvestmentID != "" {
		id, err := uuid.Parse(req.SourceInvestmentID)
		if err != nil {
			return response.BadRequest(c, "Invalid source_investment_id")
		}
		sourceInvestmentID = &id
	}

	asset, err := h.Service.RecordAssetConversion(c.Context(), assetsvc.RecordAssetInput{
		Name:               req.Name,
		PurchaseValue:      purchaseValue,
		ConversionAt:       conversionAt,
		SourceInvestmentID: sourceInvestmentID,
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Asset conversion recorded", asset)
}
