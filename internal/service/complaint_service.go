package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/repository"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// ComplaintService coordinates submission, role-scoped listing and the
// triage lifecycle.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	dispatcher events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(complaints repository.ComplaintRepository, dispatcher events.Dispatcher) *ComplaintService {
	return &ComplaintService{complaints: complaints, dispatcher: dispatcher}
}

// SubmitInput describes a complaint submission. EvidenceImages carries the
// stored filenames, already written to disk by the upload store.
type SubmitInput struct {
	Title            string
	Description      string
	SpecificLocation string
	Province         string
	District         string
	Sector           string
	Cell             string
	Village          string
	Institution      string
	Category         string
	EvidenceImages   []string
	AnonymousName    string
	AnonymousEmail   string
	AnonymousPhone   string
}

// Submit files a complaint for an authenticated citizen or anonymously.
// Anonymous submissions must carry a name and at least one contact field.
func (s *ComplaintService) Submit(ctx context.Context, principal *auth.Principal, input SubmitInput) (*domain.Complaint, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("Description is required", nil)
	}
	if strings.TrimSpace(input.SpecificLocation) == "" {
		return nil, apperrors.NewValidationError("Specific location is required", nil)
	}
	if strings.TrimSpace(input.Province) == "" || strings.TrimSpace(input.District) == "" || strings.TrimSpace(input.Sector) == "" {
		return nil, apperrors.NewValidationError("Province, district and sector are required", nil)
	}

	complaint := &domain.Complaint{
		Title:            strings.TrimSpace(input.Title),
		Description:      strings.TrimSpace(input.Description),
		SpecificLocation: strings.TrimSpace(input.SpecificLocation),
		Province:         input.Province,
		District:         input.District,
		Sector:           input.Sector,
		Cell:             input.Cell,
		Village:          input.Village,
		Institution:      input.Institution,
		Category:         input.Category,
		Status:           domain.ComplaintStatusSubmitted,
		Priority:         domain.ComplaintPriorityMedium,
		EvidenceImages:   input.EvidenceImages,
		SubmittedAt:      time.Now(),
	}
	if complaint.Title == "" {
		complaint.Title = domain.DefaultComplaintTitle
	}
	if complaint.Category == "" {
		complaint.Category = domain.DefaultComplaintCategory
	}
	if complaint.EvidenceImages == nil {
		complaint.EvidenceImages = []string{}
	}

	if principal != nil && principal.Role == domain.RoleCitizen {
		citizenID := principal.UserID
		complaint.CitizenID = &citizenID
	} else {
		if strings.TrimSpace(input.AnonymousName) == "" {
			return nil, apperrors.NewValidationError("Anonymous submissions require a contact name", nil)
		}
		if strings.TrimSpace(input.AnonymousEmail) == "" && strings.TrimSpace(input.AnonymousPhone) == "" {
			return nil, apperrors.NewValidationError("Anonymous submissions require an email or phone number", nil)
		}
		complaint.AnonymousName = input.AnonymousName
		complaint.AnonymousEmail = input.AnonymousEmail
		complaint.AnonymousPhone = input.AnonymousPhone
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventComplaintCreated,
		SubjectID: complaint.ID,
		Actor:     actorFor(principal),
		Payload: events.ComplaintCreatedPayload{
			Title:       complaint.Title,
			Institution: complaint.Institution,
			Sector:      complaint.Sector,
			Priority:    complaint.Priority,
			Anonymous:   complaint.IsAnonymous(),
		},
	})
	return complaint, nil
}

// ListQuery carries caller-supplied filters applied on top of role scoping.
// Values arrive UI-shaped ("In Progress", "All Priority") and are
// normalized before filtering.
type ListQuery struct {
	Status   string
	Priority string
	Limit    int
}

// List returns the complaints visible to the principal, newest first.
func (s *ComplaintService) List(ctx context.Context, principal *auth.Principal, query ListQuery) ([]domain.Complaint, error) {
	filter, err := scopeFor(principal)
	if err != nil {
		return nil, err
	}
	if status, ok := normalizeStatus(query.Status); ok {
		filter.Statuses = []domain.ComplaintStatus{status}
	}
	if priority, ok := normalizePriority(query.Priority); ok {
		filter.Priorities = []domain.ComplaintPriority{priority}
	}
	filter.Limit = query.Limit

	complaints, err := s.complaints.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// StatusCounts summarizes a scope by lifecycle state.
type StatusCounts struct {
	Total      int64
	Submitted  int64
	InProgress int64
	Resolved   int64
	Closed     int64
}

// Stats returns scoped counts by status.
func (s *ComplaintService) Stats(ctx context.Context, principal *auth.Principal) (*StatusCounts, error) {
	filter, err := scopeFor(principal)
	if err != nil {
		return nil, err
	}
	return countByStatus(ctx, s.complaints, filter)
}

// countByStatus aggregates a scope by lifecycle state; shared with the
// dashboard projections.
func countByStatus(ctx context.Context, complaints repository.ComplaintRepository, scope repository.ComplaintFilter) (*StatusCounts, error) {
	counts := &StatusCounts{}
	steps := []struct {
		status domain.ComplaintStatus
		target *int64
	}{
		{"", &counts.Total},
		{domain.ComplaintStatusSubmitted, &counts.Submitted},
		{domain.ComplaintStatusInProgress, &counts.InProgress},
		{domain.ComplaintStatusResolved, &counts.Resolved},
		{domain.ComplaintStatusClosed, &counts.Closed},
	}
	for _, step := range steps {
		filter := scope
		if step.status != "" {
			filter.Statuses = []domain.ComplaintStatus{step.status}
		}
		count, err := complaints.CountWithFilter(ctx, filter)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		*step.target = count
	}
	return counts, nil
}

// UpdateStatus applies an admin status transition. The transition table is
// enforced; entering resolved stamps ResolvedAt in the same write, leaving
// it clears the stamp.
func (s *ComplaintService) UpdateStatus(ctx context.Context, principal *auth.Principal, id string, newStatus domain.ComplaintStatus) (*domain.Complaint, error) {
	if !domain.IsValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status value", nil)
	}

	complaint, err := s.getForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsValidTransition(complaint.Status, newStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": complaint.Status,
			"to":   newStatus,
		})
	}

	oldStatus := complaint.Status
	complaint.Status = newStatus
	if newStatus == domain.ComplaintStatusResolved {
		now := time.Now()
		complaint.ResolvedAt = &now
	} else if oldStatus == domain.ComplaintStatusResolved && newStatus == domain.ComplaintStatusInProgress {
		complaint.ResolvedAt = nil
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventComplaintStatusChanged,
		SubjectID: complaint.ID,
		Actor:     actorFor(principal),
		Payload:   events.ComplaintStatusChangedPayload{OldStatus: oldStatus, NewStatus: newStatus},
	})
	return complaint, nil
}

// UpdatePriority reassigns triage urgency; no ordering constraint.
func (s *ComplaintService) UpdatePriority(ctx context.Context, principal *auth.Principal, id string, newPriority domain.ComplaintPriority) (*domain.Complaint, error) {
	if !domain.IsValidPriority(newPriority) {
		return nil, apperrors.NewValidationError("unknown priority value", nil)
	}

	complaint, err := s.getForMutation(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	oldPriority := complaint.Priority
	complaint.Priority = newPriority
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventComplaintPriorityChanged,
		SubjectID: complaint.ID,
		Actor:     actorFor(principal),
		Payload:   events.ComplaintPriorityChangedPayload{OldPriority: oldPriority, NewPriority: newPriority},
	})
	return complaint, nil
}

func (s *ComplaintService) getForMutation(ctx context.Context, principal *auth.Principal, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if !canMutate(principal, complaint) {
		return nil, apperrors.NewForbidden("complaint outside your scope")
	}
	return complaint, nil
}

// scopeFor builds the equality filter a principal may see. Institution and
// sector admins match by denormalized name; renaming an institution
// orphans its history, which is accepted behavior.
func scopeFor(principal *auth.Principal) (repository.ComplaintFilter, error) {
	if principal == nil {
		return repository.ComplaintFilter{}, apperrors.NewUnauthorized("authentication required")
	}
	switch principal.Role {
	case domain.RoleCitizen:
		citizenID := principal.UserID
		return repository.ComplaintFilter{CitizenID: &citizenID}, nil
	case domain.RoleInstitutionAdmin:
		institution := principal.ScopeInstitution()
		return repository.ComplaintFilter{Institution: &institution}, nil
	case domain.RoleSectorAdmin:
		sector := principal.ScopeSector()
		return repository.ComplaintFilter{Sector: &sector}, nil
	case domain.RoleSuperAdmin:
		return repository.ComplaintFilter{}, nil
	}
	return repository.ComplaintFilter{}, apperrors.NewForbidden("unknown role")
}

func canMutate(principal *auth.Principal, complaint *domain.Complaint) bool {
	if principal == nil {
		return false
	}
	switch principal.Role {
	case domain.RoleSuperAdmin:
		return true
	case domain.RoleInstitutionAdmin:
		return complaint.Institution == principal.ScopeInstitution()
	case domain.RoleSectorAdmin:
		return complaint.Sector == principal.ScopeSector()
	}
	return false
}

func normalizeStatus(raw string) (domain.ComplaintStatus, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "All Status") {
		return "", false
	}
	normalized := domain.ComplaintStatus(strings.ReplaceAll(strings.ToLower(trimmed), " ", "_"))
	if !domain.IsValidStatus(normalized) {
		return "", false
	}
	return normalized, true
}

func normalizePriority(raw string) (domain.ComplaintPriority, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "All Priority") {
		return "", false
	}
	normalized := domain.ComplaintPriority(strings.ToLower(trimmed))
	if !domain.IsValidPriority(normalized) {
		return "", false
	}
	return normalized, true
}

func actorFor(principal *auth.Principal) events.Actor {
	if principal == nil {
		return events.Actor{}
	}
	return events.Actor{Role: principal.Role, UserID: principal.UserID}
}

func (s *ComplaintService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
