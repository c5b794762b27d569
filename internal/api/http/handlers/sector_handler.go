package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// SectorHandler serves the sector admin portal endpoints.
type SectorHandler struct {
	dashboards *service.DashboardService
	complaints *service.ComplaintService
}

// NewSectorHandler returns a new handler instance.
func NewSectorHandler(dashboards *service.DashboardService, complaints *service.ComplaintService) *SectorHandler {
	return &SectorHandler{dashboards: dashboards, complaints: complaints}
}

// DashboardStats handles GET /api/sector/dashboard-stats.
func (h *SectorHandler) DashboardStats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	stats, err := h.dashboards.ForSector(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalComplaints": stats.Total,
			"newToday":        stats.NewToday,
			"inProgress":      stats.InProgress,
			"resolved":        stats.Resolved,
		},
	})
}

// Complaints handles GET /api/sector/complaints.
func (h *SectorHandler) Complaints(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	complaints, err := h.complaints.List(c.UserContext(), principal, service.ListQuery{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Limit:    c.QueryInt("limit"),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"complaints": dto.NewComplaintResponses(complaints),
	})
}

// Profile handles GET /api/sector/profile.
func (h *SectorHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}
	if principal.User == nil {
		return apperrors.NewNotFound("User", nil)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": dto.NewDirectoryUser(principal.User),
	})
}
