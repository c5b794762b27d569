package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// AdminHandler serves super admin provisioning and oversight endpoints.
type AdminHandler struct {
	directory  *service.DirectoryService
	dashboards *service.DashboardService
}

// NewAdminHandler returns a new handler instance.
func NewAdminHandler(directory *service.DirectoryService, dashboards *service.DashboardService) *AdminHandler {
	return &AdminHandler{directory: directory, dashboards: dashboards}
}

// CreateInstitution handles POST /api/admin/create-institution.
func (h *AdminHandler) CreateInstitution(c *fiber.Ctx) error {
	var req dto.CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.InstitutionName == "" || req.InstitutionCode == "" {
		return apperrors.NewValidationError("Full name, email, password, institution name and code are required", nil)
	}

	user, err := h.directory.CreateInstitutionAdmin(c.UserContext(), service.InstitutionAdminInput{
		FullName:               req.FullName,
		Email:                  req.Email,
		Password:               req.Password,
		Phone:                  req.Phone,
		InstitutionName:        req.InstitutionName,
		InstitutionCode:        req.InstitutionCode,
		InstitutionCategory:    req.InstitutionCategory,
		InstitutionAddress:     req.InstitutionAddress,
		InstitutionDescription: req.InstitutionDescription,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    dto.NewDirectoryUser(user),
	})
}

// CreateSector handles POST /api/admin/create-sector.
func (h *AdminHandler) CreateSector(c *fiber.Ctx) error {
	var req dto.CreateSectorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.FullName == "" || req.Email == "" || req.Password == "" || req.SectorName == "" || req.SectorCode == "" {
		return apperrors.NewValidationError("Full name, email, password, sector name and code are required", nil)
	}

	user, err := h.directory.CreateSectorAdmin(c.UserContext(), service.SectorAdminInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		SectorName: req.SectorName,
		SectorCode: req.SectorCode,
		Province:   req.Province,
		District:   req.District,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"user":    dto.NewDirectoryUser(user),
	})
}

// Institutions handles GET /api/admin/institutions.
func (h *AdminHandler) Institutions(c *fiber.Ctx) error {
	users, err := h.directory.ListByRole(c.UserContext(), domain.RoleInstitutionAdmin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"institutions": dto.NewDirectoryUsers(users),
	})
}

// Sectors handles GET /api/admin/sectors.
func (h *AdminHandler) Sectors(c *fiber.Ctx) error {
	users, err := h.directory.ListByRole(c.UserContext(), domain.RoleSectorAdmin)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"sectors": dto.NewDirectoryUsers(users),
	})
}

// Users handles GET /api/admin/users.
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.directory.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"users":   dto.NewDirectoryUsers(users),
	})
}

// AllInstitutions handles GET /api/admin/all-institutions. It is public and
// backs the institution picker on the submission form.
func (h *AdminHandler) AllInstitutions(c *fiber.Ctx) error {
	users, err := h.directory.ActiveInstitutions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"institutions": dto.NewInstitutionOptions(users),
	})
}

// DashboardStats handles GET /api/admin/dashboard-stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.dashboards.ForAdmin(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats": fiber.Map{
			"totalUsers":             stats.TotalUsers,
			"totalCitizens":          stats.TotalCitizens,
			"totalInstitutionAdmins": stats.TotalInstitutionAdmins,
			"totalSectorAdmins":      stats.TotalSectorAdmins,
			"totalComplaints":        stats.TotalComplaints,
			"resolvedComplaints":     stats.ResolvedComplaints,
			"avgResolutionTime":      stats.AvgResolutionTime,
		},
	})
}

// SetUserStatus handles PUT /api/admin/users/:id/status and
// PUT /api/admin/institutions/:id/status.
func (h *AdminHandler) SetUserStatus(c *fiber.Ctx) error {
	var req dto.UserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("Status is required", nil)
	}

	if err := h.directory.SetUserStatus(c.UserContext(), c.Params("id"), domain.UserStatus(req.Status)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User status updated",
	})
}

// ReactivateInstitutions handles PUT /api/admin/reactivate-institutions.
func (h *AdminHandler) ReactivateInstitutions(c *fiber.Ctx) error {
	count, err := h.directory.ReactivateInstitutionAdmins(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"reactivated": count,
	})
}
