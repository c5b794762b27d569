package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
	"github.com/menyesha/complaint-service/internal/storage"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// ComplaintsHandler exposes complaint submission and triage endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	store      *storage.Store
}

// NewComplaintsHandler returns a new handler instance.
func NewComplaintsHandler(complaints *service.ComplaintService, store *storage.Store) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints, store: store}
}

// Submit handles POST /api/complaints. Authentication is optional; without
// a token the submission is anonymous and must carry contact details.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	var form dto.SubmitComplaintForm
	if err := c.BodyParser(&form); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}

	input := service.SubmitInput{
		Title:            form.Title,
		Description:      form.Description,
		SpecificLocation: form.SpecificLocation,
		Province:         form.Province,
		District:         form.District,
		Sector:           form.Sector,
		Cell:             form.Cell,
		Village:          form.Village,
		Institution:      form.Institution,
		Category:         form.Category,
		AnonymousName:    form.AnonymousName,
		AnonymousEmail:   form.AnonymousEmail,
		AnonymousPhone:   form.AnonymousPhone,
	}

	if mp, err := c.MultipartForm(); err == nil && mp != nil {
		if files := mp.File["evidenceImages"]; len(files) > 0 {
			names, err := h.store.SaveEvidence(files)
			if err != nil {
				return err
			}
			input.EvidenceImages = names
		}
	}

	principal, _ := auth.PrincipalFromContext(c)
	complaint, err := h.complaints.Submit(c.UserContext(), principal, input)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"complaint": dto.NewComplaintResponse(complaint),
	})
}

// List handles GET /api/complaints, scoped by the caller's role.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
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

// Stats handles GET /api/complaints/stats.
func (h *ComplaintsHandler) Stats(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	counts, err := h.complaints.Stats(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"stats":   dto.NewStatsResponse(counts),
	})
}

// UpdateStatus handles PUT /api/complaints/:id/status.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("Status is required", nil)
	}

	complaint, err := h.complaints.UpdateStatus(c.UserContext(), principal, c.Params("id"), domain.ComplaintStatus(req.Status))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"complaint": dto.NewComplaintResponse(complaint),
	})
}

// UpdatePriority handles PUT /api/complaints/:id/priority.
func (h *ComplaintsHandler) UpdatePriority(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Authentication required")
	}

	var req dto.PriorityChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid request payload", nil)
	}
	if req.Priority == "" {
		return apperrors.NewValidationError("Priority is required", nil)
	}

	complaint, err := h.complaints.UpdatePriority(c.UserContext(), principal, c.Params("id"), domain.ComplaintPriority(req.Priority))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"complaint": dto.NewComplaintResponse(complaint),
	})
}
