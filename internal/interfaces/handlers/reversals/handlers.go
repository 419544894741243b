package reversals

import (
	revsvc "prosper-backend/internal/application/reversals"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *revsvc.Service
}

// CreateReversalRequest body.
type CreateReversalRequest struct {
	OriginalRecordType string `json:"original_record_type"`
	OriginalRecordID   string `json:"original_record_id"`
	Reason             string `json:"reason"`
}

// CreateReversal POST /api/v1/admin/reversals
func (h *Handlers) CreateReversal(c *fiber.Ctx) error {
	var req CreateReversalRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	originalID, err := uuid.Parse(req.OriginalRecordID)
	if err != nil {
		return response.BadRequest(c, "Invalid original_record_id")
	}

	reversal, err := h.Service.CreateReversal(c.Context(), revsvc.CreateReversalInput{
		OriginalRecordType: req.OriginalRecordType,
		OriginalRecordID:   originalID,
		Reason:             req.Reason,
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Reversal created", reversal)
}
