package buyouts

import (
	buyoutsvc "prosper-backend/internal/application/buyouts"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *buyoutsvc.Service
}

// RecordBuyOutRequest body. valuation_inputs is free-form JSON.
type RecordBuyOutRequest struct {
	SellerID         string                 `json:"seller_id"`
	BuyerID          string                 `json:"buyer_id"`
	NominalValuation string                 `json:"nominal_valuation"`
	ValuationInputs  map[string]interface{} `json:"valuation_inputs"`
	RecordedAt       string                 `json:"recorded_at"`
}

// RecordBuyOut POST /api/v1/admin/buyouts
func (h *Handlers) RecordBuyOut(c *fiber.Ctx) error {
	var req RecordBuyOutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	sellerID, err := uuid.Parse(req.SellerID)
	if err != nil {
		return response.BadRequest(c, "Invalid seller_id")
	}
	var buyerID *uuid.UUID
	if req.BuyerID != "" {
		id, err := uuid.Parse(req.BuyerID)
		if err != nil {
			return response.BadRequest(c, "Invalid buyer_id")
		}
		buyerID = &id
	}
	valuation, ok := validation.ParseAmount(req.NominalValuation)
	if !ok {
		return response.BadRequest(c, "Invalid nominal_valuation")
	}
	input := buyoutsvc.RecordBuyOutInput{
		SellerID:         sellerID,
		BuyerID:          buyerID,
		NominalValuation: valuation,
		ValuationInputs:  req.ValuationInputs,
	}
	if req.RecordedAt != "" {
		t, ok := validation.ParseDate(req.RecordedAt)
		if !ok {
			return response.BadRequest(c, "Invalid recorded_at")
		}
		input.RecordedAt = &t
	}

	buyOut, err := h.Service.RecordBuyOut(c.Context(), input)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Buy-out recorded", buyOut)
}
