package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AuthHandler exposes the signup, signin and verification endpoints.
type AuthHandler struct {
	auth       *service.AuthService
	production bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, production bool) *AuthHandler {
	return &AuthHandler{auth: authService, production: production}
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.SignUp(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// SignIn handles POST /api/auth/sign-in.
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	token, expiresAt, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "Bearer " + token,
		Expires:  expiresAt,
		HTTPOnly: h.production,
		Secure:   h.production,
	})
	return c.JSON(fiber.Map{
		"token":   token,
		"message": "User signed in successfully",
	})
}

// SignOut handles POST /api/auth/sign-out.
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	claims, _ := auth.ClaimsFromContext(c)
	if err := h.auth.SignOut(c.Context(), claims); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:    auth.CookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})
	return c.JSON(fiber.Map{
		"message": "User signed out successfully",
	})
}

// SendVerifyCode handles PATCH /api/auth/send-verify-code.
func (h *AuthHandler) SendVerifyCode(c *fiber.Ctx) error {
	var req dto.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	if err := h.auth.SendVerificationCode(c.Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Verification code sent successfully",
	})
}

// VerifyVerificationCode handles PATCH /api/auth/verify-verification-code.
func (h *AuthHandler) VerifyVerificationCode(c *fiber.Ctx) error {
	var req dto.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(&req); err != nil {
		return err
	}

	user, err := h.auth.VerifyCode(c.Context(), req.Email, req.VerificationCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "User verified successfully",
		"user":    dto.NewUserResponse(user),
	})
}
