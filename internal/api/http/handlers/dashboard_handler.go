package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// DashboardHandler serves the citizen dashboard projection.
type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler returns a new handler instance.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// Citizen handles GET /api/dashboard/citizen.
func (h *DashboardHandler) Citizen(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if principal.User == nil {
		return apperrors.NewNotFound("User", nil)
	}

	board, err := h.dashboards.ForCitizen(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewCitizenDashboardResponse(principal.User, board))
}
