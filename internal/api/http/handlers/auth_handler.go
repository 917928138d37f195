package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/family-service/internal/api/dto"
	"github.com/spec-kit/family-service/internal/auth"
	"github.com/spec-kit/family-service/internal/domain"
	"github.com/spec-kit/family-service/internal/i18n"
	"github.com/spec-kit/family-service/internal/service"
	"github.com/spec-kit/family-service/internal/validation"
	apperrors "github.com/spec-kit/family-service/pkg/util"
)

// AuthHandler exposes registration, login and the protected endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	validate *validation.Validator
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validate: validate}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string]string{"body": "invalid_payload"})
	}
	req.Normalize()

	if fields := req.FieldErrors(h.validate); fields != nil {
		return apperrors.NewValidationError(fields)
	}

	user, token, err := h.auth.Register(c.UserContext(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return apperrors.NewFieldError("email", "email_exists")
		case errors.Is(err, domain.ErrUsernameTaken):
			return apperrors.NewFieldError("username", "username_taken")
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "registration_successful",
		"user": dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
		"token": token,
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string]string{"body": "invalid_payload"})
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewFieldError("email", "email_password_required")
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		// Both failures share one reason key; only the field tag differs.
		switch {
		case errors.Is(err, domain.ErrUnknownEmail):
			return apperrors.NewFieldError("email", "invalid_credentials")
		case errors.Is(err, domain.ErrWrongPassword):
			return apperrors.NewFieldError("password", "invalid_credentials")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"message": "login_successful",
		"token":   token,
	})
}

// Dashboard handles GET /api/v1/auth/dashboard behind the auth middleware.
func (h *AuthHandler) Dashboard(c *fiber.Ctx) error {
	loc := i18n.FromCtx(c)
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(loc.T("unauthorized"))
	}

	lucky := rand.Intn(100)
	return c.JSON(fiber.Map{
		"message": loc.T("welcome_message", i18n.Args{"name": principal.Name}),
		"secret":  loc.T("lucky_number", i18n.Args{"number": lucky}),
	})
}

// ListUsers handles GET /api/v1/auth/users. Password hashes never appear.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
	return c.JSON(fiber.Map{
		"message": "users_retrieved",
		"users":   out,
	})
}
