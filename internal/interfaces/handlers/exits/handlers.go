package exits

import (
	exitsvc "prosper-backend/internal/application/exits"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *exitsvc.Service
}

// CreateExitRequestRequest body.
type CreateExitRequestRequest struct {
	MemberID string `json:"member_id"`
}

// CreateExitRequest POST /api/v1/admin/exit-requests
func (h *Handlers) CreateExitRequest(c *fiber.Ctx) error {
	var req CreateExitRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return response.BadRequest(c, "Invalid member_id")
	}

	request, err := h.Service.CreateExitRequest(c.Context(), memberID)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Exit request created", request)
}

// FulfillRequest body; amount_entitled optionally overrides the snapshot with
// the negotiated settlement value.
type FulfillRequest struct {
	AmountEntitled string `json:"amount_entitled"`
}

// Fulfill POST /api/v1/admin/exit-requests/:id/fulfill
func (h *Handlers) Fulfill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid exit request id")
	}
	var req FulfillRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	var amount *decimal.Decimal
	if req.AmountEntitled != "" {
		a, ok := validation.ParseAmount(req.AmountEntitled)
		if !ok {
			return response.BadRequest(c, "Invalid amount_entitled")
		}
		amount = &a
	}

	request, err := h.Service.FulfillExitRequest(c.Context(), id, amount)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Exit request fulfilled", request)
}

// Cancel POST /api/v1/admin/exit-requests/:id/cancel
func (h *Handlers) Cancel(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid exit request id")
	}
	request, err := h.Service.CancelExitRequest(c.Context(), id)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Exit request cancelled", request)
}

// ListQueue GET /api/v1/admin/exit-queue
func (h *Handlers) ListQueue(c *fiber.Ctx) error {
	queue, err := h.Service.ListQueue(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Exit queue fetched", queue)
}
