package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// InstitutionHandler serves the institution admin portal endpoints.
type InstitutionHandler struct {
	dashboards *service.DashboardService
	complaints *service.ComplaintService
}

// NewInstitutionHandler returns a new handler instance.
func NewInstitutionHandler(dashboards *service.DashboardService, complaints *service.ComplaintService) *InstitutionHandler {
	return &InstitutionHandler{dashboards: dashboards, complaints: complaints}
}

// DashboardStats handles GET /api/institution/dashboard-stats.
func (h *InstitutionHandler) DashboardStats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	stats, err := h.dashboards.ForInstitution(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalComplaints":   stats.Total,
			"resolved":          stats.Resolved,
			"inProgress":        stats.InProgress,
			"avgResolutionTime": stats.AvgResolutionTime,
		},
	})
}

// Complaints handles GET /api/institution/complaints.
func (h *InstitutionHandler) Complaints(c *fiber.Ctx) error {
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

// Profile handles GET /api/institution/profile.
func (h *InstitutionHandler) Profile(c *fiber.Ctx) error {
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
