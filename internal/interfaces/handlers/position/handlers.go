package position

import (
	authsvc "prosper-backend/internal/application/auth"
	possvc "prosper-backend/internal/application/position"
	"prosper-backend/internal/middleware"
	"prosper-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *possvc.Service
}

// GetOwnPosition GET /api/v1/me/position — the caller's own snapshot. A
// session without a linked member profile is a permission failure, not a
// data failure.
func (h *Handlers) GetOwnPosition(c *fiber.Ctx) error {
	memberID := authsvc.MemberIDFromSession(middleware.GetUser(c))
	if memberID == "" {
		return response.Forbidden(c, "No linked member profile")
	}
	id, err := uuid.Parse(memberID)
	if err != nil {
		return response.Forbidden(c, "No linked member profile")
	}

	pos, err := h.Service.MemberPosition(c.Context(), id)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Position fetched", pos)
}

// GetGroupAggregates GET /api/v1/group/aggregates — member count and pool
// total only; no per-member breakdown crosses this boundary.
func (h *Handlers) GetGroupAggregates(c *fiber.Ctx) error {
	aggregates, err := h.Service.GroupAggregates(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Group aggregates fetched", aggregates)
}
