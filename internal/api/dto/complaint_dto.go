package dto

import (
	"time"

	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
)

// SubmitComplaintForm carries the multipart fields of a complaint submission;
// evidenceImages files are handled separately.
type SubmitComplaintForm struct {
	Title            string `form:"title"`
	Description      string `form:"description"`
	SpecificLocation string `form:"specificLocation"`
	Province         string `form:"province"`
	District         string `form:"district"`
	Sector           string `form:"sector"`
	Cell             string `form:"cell"`
	Village          string `form:"village"`
	Institution      string `form:"institution"`
	Category         string `form:"category"`
	AnonymousName    string `form:"anonymousName"`
	AnonymousEmail   string `form:"anonymousEmail"`
	AnonymousPhone   string `form:"anonymousPhone"`
}

// StatusChangeRequest payload for PUT /:id/status.
type StatusChangeRequest struct {
	Status string `json:"status"`
}

// PriorityChangeRequest payload for PUT /:id/priority.
type PriorityChangeRequest struct {
	Priority string `json:"priority"`
}

// ComplaintResponse full complaint shape returned to owners and admins.
type ComplaintResponse struct {
	ID               string                   `json:"id"`
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	SpecificLocation string                   `json:"specificLocation"`
	Province         string                   `json:"province"`
	District         string                   `json:"district"`
	Sector           string                   `json:"sector"`
	Cell             string                   `json:"cell,omitempty"`
	Village          string                   `json:"village,omitempty"`
	Institution      string                   `json:"institution"`
	Category         string                   `json:"category"`
	Status           domain.ComplaintStatus   `json:"status"`
	Priority         domain.ComplaintPriority `json:"priority"`
	EvidenceImages   []string                 `json:"evidenceImages"`
	CitizenID        *string                  `json:"citizenId,omitempty"`
	AnonymousName    string                   `json:"anonymousName,omitempty"`
	AnonymousEmail   string                   `json:"anonymousEmail,omitempty"`
	AnonymousPhone   string                   `json:"anonymousPhone,omitempty"`
	SubmittedAt      time.Time                `json:"submittedAt"`
	ResolvedAt       *time.Time               `json:"resolvedAt,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// NewComplaintResponse maps a domain complaint.
func NewComplaintResponse(c *domain.Complaint) ComplaintResponse {
	images := c.EvidenceImages
	if images == nil {
		images = []string{}
	}
	return ComplaintResponse{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		SpecificLocation: c.SpecificLocation,
		Province:         c.Province,
		District:         c.District,
		Sector:           c.Sector,
		Cell:             c.Cell,
		Village:          c.Village,
		Institution:      c.Institution,
		Category:         c.Category,
		Status:           c.Status,
		Priority:         c.Priority,
		EvidenceImages:   images,
		CitizenID:        c.CitizenID,
		AnonymousName:    c.AnonymousName,
		AnonymousEmail:   c.AnonymousEmail,
		AnonymousPhone:   c.AnonymousPhone,
		SubmittedAt:      c.SubmittedAt,
		ResolvedAt:       c.ResolvedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// NewComplaintResponses maps a slice.
func NewComplaintResponses(list []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(list))
	for i := range list {
		out = append(out, NewComplaintResponse(&list[i]))
	}
	return out
}

// StatsResponse status counts for the caller's scope.
type StatsResponse struct {
	Total      int64 `json:"total"`
	Submitted  int64 `json:"submitted"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
	Closed     int64 `json:"closed"`
}

// NewStatsResponse maps service counts.
func NewStatsResponse(counts *service.StatusCounts) StatsResponse {
	return StatsResponse{
		Total:      counts.Total,
		Submitted:  counts.Submitted,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
		Closed:     counts.Closed,
	}
}
