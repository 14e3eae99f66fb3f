package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	api := app.Group("/api/v1")

	api.Post("/login", h.Login)
	api.Post("/token/refresh", h.Refresh)
	api.Delete("/users/:id/session", h.Logout)

	api.Put("/users/password", h.ChangePassword)
	api.Post("/users/password-reset", h.RequestPasswordReset)

	api.Post("/users/verification-email", h.RequestVerificationEmail)
	api.Post("/users/verify-email", h.VerifyEmail)
}
