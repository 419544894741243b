package members

import (
	"errors"

	membersvc "prosper-backend/internal/application/members"
	"prosper-backend/internal/pkg/apperrors"
	"prosper-backend/internal/pkg/response"
	"prosper-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *membersvc.Service
}

// CreateMemberRequest body.
type CreateMemberRequest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Password  string   `json:"password"`
	JoinDate  string   `json:"join_date"`
	Roles     []string `json:"roles"`
}

// CreateMember POST /api/v1/admin/members
func (h *Handlers) CreateMember(c *fiber.Ctx) error {
	var req CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.FirstName == "" || req.LastName == "" {
		return response.BadRequest(c, "first_name and last_name are required")
	}
	if req.JoinDate == "" {
		return response.BadRequest(c, "join_date is required")
	}
	joinDate, ok := validation.ParseDate(req.JoinDate)
	if !ok {
		return response.BadRequest(c, "Invalid join_date")
	}

	member, err := h.Service.CreateMember(c.Context(), membersvc.CreateMemberInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		JoinDate:  joinDate,
		Roles:     req.Roles,
	})
	if err != nil {
		switch {
		case errors.Is(err, membersvc.ErrInvalidEmail),
			errors.Is(err, membersvc.ErrInvalidPassword),
			errors.Is(err, membersvc.ErrEmailTaken),
			errors.Is(err, membersvc.ErrInvalidRole),
			errors.Is(err, membersvc.ErrMissingBaseRole):
			return response.BadRequest(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Member created", member)
}

// GetMember GET /api/v1/admin/members/:id
func (h *Handlers) GetMember(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid member id")
	}
	member, err := h.Service.GetMember(c.Context(), id)
	if err != nil {
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Member fetched", member)
}

// UpdateStatusRequest body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus PATCH /api/v1/admin/members/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid member id")
	}
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	member, err := h.Service.UpdateMemberStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, membersvc.ErrInvalidStatus) {
			return response.BadRequest(c, err.Error())
		}
		if apperrors.KindOf(err) != 0 {
			return response.Error(c, err.Error(), apperrors.StatusCode(err), nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Member status updated", member)
}
