package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vyadl/idli-back/pkg/constant"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Post("/api/v1/register", h.Register)
	app.Post("/api/v1/login", h.Login)
	app.Delete("/api/v1/session", h.RequireAuth, h.Logout)

	// Admin-only endpoints
	admin := app.Group("/api/v1/admin", h.RequireRole(constant.AdminRoleName))
	admin.Delete("/user/:id/sessions", h.ForceLogout)
	admin.Get("/user/:id/sessions", h.GetUserSessions)
}
