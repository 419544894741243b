package auth

import (
	"context"

	authsvc "prosper-backend/internal/application/auth"
	"prosper-backend/internal/middleware"
	"prosper-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const memberSessionsPrefix = "member_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	MemberFinder authsvc.MemberFinder
	Rdb          *redis.Client
	Config       middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login — authenticate, create session, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.MemberFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Email and password are required")
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	member, err := h.MemberFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case authsvc.ErrEmailPasswordRequired:
			return response.BadRequest(c, err.Error())
		case authsvc.ErrInvalidEmail, authsvc.ErrIncorrectPassword:
			return response.Unauthorized(c, err.Error())
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	roles := member.RoleList()
	middleware.SetSessionMember(c, middleware.SessionMember{
		MemberID: member.MemberID.String(),
		Fullname: member.Fullname(),
		Email:    member.Email,
		Roles:    roles,
	})

	if err := h.Rdb.SAdd(context.Background(), memberSessionsPrefix+member.MemberID.String(), sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = sessionID
	c.Cookie(&cookie)

	log.Info().Str("member_id", member.MemberID.String()).Msg("member logged in")
	return response.Success(c, "Login successful", fiber.Map{
		"member": fiber.Map{
			"member_id": member.MemberID.String(),
			"fullname":  member.Fullname(),
			"email":     member.Email,
			"roles":     roles,
		},
	})
}

// Me GET /api/v1/auth/me — return current session member.
func (h *Handlers) Me(c *fiber.Ctx) error {
	member, err := authsvc.VerifyMember(middleware.GetUser(c))
	if err != nil {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{"member": member})
}

// Logout DELETE /api/v1/auth/logout — drop the session and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()
	if memberID := authsvc.MemberIDFromSession(sessionUser); memberID != "" && sessionID != "" {
		h.Rdb.SRem(ctx, memberSessionsPrefix+memberID, sessionID)
	}
	if sessionID != "" {
		h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID)
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logout successful", fiber.Map{})
}
