package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cieslarmichal/just-join-us-auth/internal/auth/dto"
	"github.com/cieslarmichal/just-join-us-auth/internal/auth/service"
	autherror "github.com/cieslarmichal/just-join-us-auth/internal/errors"
)

type AuthHandler struct {
	sessions *service.SessionService
	accounts *service.AccountService
	gate     *service.AccessGate
}

func NewAuthHandler(sessions *service.SessionService, accounts *service.AccountService, gate *service.AccessGate) *AuthHandler {
	return &AuthHandler{sessions: sessions, accounts: accounts, gate: gate}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	tokenPair, err := h.sessions.Login(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokenPair)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	tokens, err := h.sessions.Refresh(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(tokens)
}

// Logout revokes the token pair carried in the body. The caller must hold a
// valid access token for the path subject.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID := c.Params("id")

	if _, err := h.gate.Authorize(c.Get(fiber.HeaderAuthorization), userID); err != nil {
		return respondError(c, err)
	}

	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.sessions.Logout(c.Context(), userID, input); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword is dual-mode: with a reset_password_token in the body no
// bearer token is needed; otherwise the subject comes from the access token.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if input.ResetPasswordToken == "" {
		authCtx, err := h.gate.Authorize(c.Get(fiber.HeaderAuthorization), "")
		if err != nil {
			return respondError(c, err)
		}

		input.UserID = authCtx.Subject
	}

	if err := h.accounts.ChangePassword(c.Context(), input); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var input dto.PasswordResetRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accounts.RequestPasswordReset(c.Context(), input.Email); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *AuthHandler) RequestVerificationEmail(c *fiber.Ctx) error {
	var input dto.VerificationEmailRequestInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accounts.RequestVerificationEmail(c.Context(), input.Email); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusAccepted)
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var input dto.VerifyEmailInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	if err := h.accounts.VerifyEmail(c.Context(), input.Token); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch autherror.KindOf(err) {
	case autherror.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case autherror.KindForbidden:
		status = fiber.StatusForbidden
	case autherror.KindInvalidOperation:
		status = fiber.StatusBadRequest
	case autherror.KindResourceNotFound:
		status = fiber.StatusNotFound
	case autherror.KindResourceAlreadyExists:
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
