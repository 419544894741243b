package statement

import (
	"errors"
	"time"

	authsvc "prosper-backend/internal/application/auth"
	stmtsvc "prosper-backend/internal/application/statement"
	"prosper-backend/internal/middleware"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *stmtsvc.Service
}

// GetOwnStatement GET /api/v1/me/statement?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handlers) GetOwnStatement(c *fiber.Ctx) error {
	memberID := authsvc.MemberIDFromSession(middleware.GetUser(c))
	if memberID == "" {
		return response.Forbidden(c, "No linked member profile")
	}
	id, err := uuid.Parse(memberID)
	if err != nil {
		return response.Forbidden(c, "No linked member profile")
	}

	var fromDate, toDate *time.Time
	if from := c.Query("from"); from != "" {
		t, ok := validation.ParseDate(from)
		if !ok {
			return response.BadRequest(c, "Invalid from date")
		}
		fromDate = &t
	}
	if to := c.Query("to"); to != "" {
		t, ok := validation.ParseDate(to)
		if !ok {
			return response.BadRequest(c, "Invalid to date")
		}
		toDate = &t
	}

	stmt, err := h.Service.MemberStatement(c.Context(), id, fromDate, toDate)
	if err != nil {
		if errors.Is(err, stmtsvc.ErrInvalidDateRange) {
			return response.BadRequest(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Statement fetched", stmt)
}
