package investments

import (
	invsvc "prosper-backend/internal/application/investments"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *invsvc.Service
}

// RecordInvestmentRequest body. total_units is optional; when absent it is
// derived from the eligible pool.
type RecordInvestmentRequest struct {
	RecordedAt string `json:"recorded_at"`
	UnitValue  string `json:"unit_value"`
	TotalUnits string `json:"total_units"`
}

// RecordInvestment POST /api/v1/admin/investments
func (h *Handlers) RecordInvestment(c *fiber.Ctx) error {
	var req RecordInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.RecordedAt == "" {
		return response.BadRequest(c, "recorded_at is required")
	}
	recordedAt, ok := validation.ParseDate(req.RecordedAt)
	if !ok {
		return response.BadRequest(c, "Invalid recorded_at")
	}
	unitValue, ok := validation.ParseAmount(req.UnitValue)
	if !ok {
		return response.BadRequest(c, "Invalid unit_value")
	}
	var totalUnits *decimal.Decimal
	if req.TotalUnits != "" {
		u, ok := validation.ParseAmount(req.TotalUnits)
		if !ok {
			return response.BadRequest(c, "Invalid total_units")
		}
		totalUnits = &u
	}

	investment, err := h.Service.RecordInvestment(c.Context(), invsvc.RecordInvestmentInput{
		RecordedAt: recordedAt,
		UnitValue:  unitValue,
		TotalUnits: totalUnits,
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Investment recorded", investment)
}
