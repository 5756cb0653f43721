package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/vyadl/idli-back/internal/auth/dto"
	"github.com/vyadl/idli-back/internal/auth/service"
	autherror "github.com/vyadl/idli-back/internal/errors"
	"github.com/vyadl/idli-back/pkg/constant"
)

type AuthHandler struct {
	sessionService *service.SessionService
	tokenService   service.TokenGenerator
	blacklist      domainBlacklist
}

func NewAuthHandler(sessionService *service.SessionService, tokenService service.TokenGenerator, blacklist domainBlacklist) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		tokenService:   tokenService,
		blacklist:      blacklist,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.sessionService.Register(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	input.Fingerprint = c.Get(constant.FingerprintHeader)

	tokenPair, err := h.sessionService.Login(c.Context(), input)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(tokenPair)
}

// Logout revokes sessions of the authenticated caller. The mode comes from
// the query string so a body-less DELETE defaults to "current".
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	input := dto.LogoutInput{
		Mode: c.Query("mode", constant.LogoutModeCurrent),
	}
	// The refresh token may arrive in the body; it is carried through but not
	// matched against the stored session.
	_ = c.BodyParser(&input)
	if mode := c.Query("mode"); mode != "" {
		input.Mode = mode
	}

	input.UserID, _ = c.Locals(localUserID).(string)
	input.AccessToken, _ = c.Locals(localAccessToken).(string)
	input.Fingerprint = c.Get(constant.FingerprintHeader)
	input.Forced = false

	resp, err := h.sessionService.Logout(c.Context(), input)
	if err != nil {
		return logoutError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// ForceLogout destroys every session of the given user without a token
// context. Authorization is the admin middleware's, not the session's.
func (h *AuthHandler) ForceLogout(c *fiber.Ctx) error {
	input := dto.LogoutInput{
		UserID: c.Params("id"),
		Mode:   constant.LogoutModeAll,
		Forced: true,
	}

	resp, err := h.sessionService.Logout(c.Context(), input)
	if err != nil {
		return logoutError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) GetUserSessions(c *fiber.Ctx) error {
	sessions, err := h.sessionService.UserSessions(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list sessions",
		})
	}

	return c.Status(fiber.StatusOK).JSON(sessions)
}

func logoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, autherror.ErrInvalidLogoutMode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, autherror.ErrInvalidSession), errors.Is(err, autherror.ErrSessionNotFound):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "The data is invalid",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "logout failed",
		})
	}
}
