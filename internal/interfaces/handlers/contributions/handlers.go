package contributions

import (
	"errors"
	"time"

	contribsvc "prosper-backend/internal/application/contributions"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Handlers struct {
	Service *contribsvc.Service
}

// CreateWindowRequest body. Amounts cross the boundary as decimal strings.
type CreateWindowRequest struct {
	Name      string `json:"name"`
	StartAt   string `json:"start_at"`
	EndAt     string `json:"end_at"`
	MinAmount string `json:"min_amount"`
	MaxAmount string `json:"max_amount"`
}

// CreateWindow POST /api/v1/admin/contribution-windows
func (h *Handlers) CreateWindow(c *fiber.Ctx) error {
	var req CreateWindowRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.StartAt == "" || req.EndAt == "" {
		return response.BadRequest(c, "start_at and end_at are required")
	}
	startAt, ok := validation.ParseDate(req.StartAt)
	if !ok {
		return response.BadRequest(c, "Invalid start_at")
	}
	endAt, ok := validation.ParseDate(req.EndAt)
	if !ok {
		return response.BadRequest(c, "Invalid end_at")
	}
	minAmount := decimal.Zero
	if req.MinAmount != "" {
		if minAmount, ok = validation.ParseAmount(req.MinAmount); !ok {
			return response.BadRequest(c, "Invalid min_amount")
		}
	}
	var maxAmount *decimal.Decimal
	if req.MaxAmount != "" {
		m, ok := validation.ParseAmount(req.MaxAmount)
		if !ok {
			return response.BadRequest(c, "Invalid max_amount")
		}
		maxAmount = &m
	}

	window, err := h.Service.CreateWindow(c.Context(), contribsvc.CreateWindowInput{
		Name:      req.Name,
		StartAt:   startAt,
		EndAt:     endAt,
		MinAmount: minAmount,
		MaxAmount: maxAmount,
	})
	if err != nil {
		if errors.Is(err, contribsvc.ErrInvalidWindowDates) || apperrors.KindOf(err) != 0 {
			return response.BadRequest(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Contribution window created", window)
}

// ListWindows GET /api/v1/admin/contribution-windows
func (h *Handlers) ListWindows(c *fiber.Ctx) error {
	windows, err := h.Service.ListWindows(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Contribution windows fetched", windows)
}

// RecordContributionRequest body.
type RecordContributionRequest struct {
	MemberID   string `json:"member_id"`
	WindowID   string `json:"window_id"`
	Amount     string `json:"amount"`
	RecordedAt string `json:"recorded_at"`
}

// RecordContribution POST /api/v1/admin/contributions
func (h *Handlers) RecordContribution(c *fiber.Ctx) error {
	var req RecordContributionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return response.BadRequest(c, "Invalid member_id")
	}
	windowID, err := uuid.Parse(req.WindowID)
	if err != nil {
		return response.BadRequest(c, "Invalid window_id")
	}
	amount, ok := validation.ParseAmount(req.Amount)
	if !ok {
		return response.BadRequest(c, "Invalid amount")
	}
	recordedAt, err := optionalDate(req.RecordedAt)
	if err != nil {
		return response.BadRequest(c, "Invalid recorded_at")
	}

	contribution, err := h.Service.RecordContribution(c.Context(), contribsvc.RecordContributionInput{
		MemberID:   memberID,
		WindowID:   windowID,
		Amount:     amount,
		RecordedAt: recordedAt,
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Contribution recorded", contribution)
}

// RecordPenaltyRequest body.
type RecordPenaltyRequest struct {
	MemberID   string `json:"member_id"`
	Amount     string `json:"amount"`
	Reason     string `json:"reason"`
	WindowID   string `json:"window_id"`
	RecordedAt string `json:"recorded_at"`
}

// RecordPenalty POST /api/v1/admin/penalties
func (h *Handlers) RecordPenalty(c *fiber.Ctx) error {
	var req RecordPenaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	memberID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return response.BadRequest(c, "Invalid member_id")
	}
	amount, ok := validation.ParseAmount(req.Amount)
	if !ok {
		return response.BadRequest(c, "Invalid amount")
	}
	var windowID *uuid.UUID
	if req.WindowID != "" {
		id, err := uuid.Parse(req.WindowID)
		if err != nil {
			return response.BadRequest(c, "Invalid window_id")
		}
		windowID = &id
	}
	recordedAt, err := optionalDate(req.RecordedAt)
	if err != nil {
		return response.BadRequest(c, "Invalid recorded_at")
	}

	penalty, err := h.Service.RecordPenalty(c.Context(), contribsvc.RecordPenaltyInput{
		MemberID:   memberID,
		Amount:     amount,
		Reason:     req.Reason,
		WindowID:   windowID,
		RecordedAt: recordedAt,
	})
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, "Penalty recorded", penalty)
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, ok := validation.ParseDate(s)
	if !ok {
		return nil, errors.New("invalid date")
	}
	return &t, nil
}
