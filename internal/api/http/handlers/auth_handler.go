package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/service"
	"github.com/menyesha/complaint-service/internal/storage"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth  *service.AuthService
	store *storage.Store
}

// NewAuthHandler returns a new handler instance.
func NewAuthHandler(authService *service.AuthService, store *storage.Store) *AuthHandler {
	return &AuthHandler{auth: authService, store: store}
}

// Register handles POST /api/auth/register. The body is multipart so the
// citizen can attach an id card image.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if err := form.Validate(); err != nil {
		return err
	}

	input := service.RegisterInput{
		FullName: form.FullName,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
		IDType:   form.IDType,
	}
	if file, err := c.FormFile("idCard"); err == nil && file != nil {
		name, err := h.store.SaveIDCard(file)
		if err != nil {
			return err
		}
		input.IDCard = name
	}

	user, token, exp, err := h.auth.RegisterCitizen(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    dto.NewUserSummary(user),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password are required", nil)
	}

	user, token, exp, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    dto.NewUserSummary(user),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if principal.User == nil {
		return apperrors.NewNotFound("User", nil)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewDirectoryUser(principal.User),
	})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.UserContext(), principal, service.ProfileUpdateInput{
		FullName:        req.FullName,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewDirectoryUser(user),
	})
}
