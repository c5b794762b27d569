package events

import (
	"time"

	"github.com/menyesha/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated         EventType = "complaint_created"
	EventComplaintStatusChanged   EventType = "complaint_status_changed"
	EventComplaintPriorityChanged EventType = "complaint_priority_changed"
	EventUserStatusChanged        EventType = "user_status_changed"
)

// Actor encapsulates actor metadata for an event. UserID is empty for
// anonymous submissions.
type Actor struct {
	Role   domain.Role `json:"role,omitempty"`
	UserID string      `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Title       string                   `json:"title"`
	Institution string                   `json:"institution,omitempty"`
	Sector      string                   `json:"sector"`
	Priority    domain.ComplaintPriority `json:"priority"`
	Anonymous   bool                     `json:"anonymous"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// ComplaintPriorityChangedPayload payload.
type ComplaintPriorityChangedPayload struct {
	OldPriority domain.ComplaintPriority `json:"old_priority"`
	NewPriority domain.ComplaintPriority `json:"new_priority"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	Role      domain.Role       `json:"role"`
	NewStatus domain.UserStatus `json:"new_status"`
}
