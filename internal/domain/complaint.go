package domain

import "time"

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusSubmitted  ComplaintStatus = "submitted"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

// ComplaintPriority enumerates triage urgency.
type ComplaintPriority string

const (
	ComplaintPriorityLow    ComplaintPriority = "low"
	ComplaintPriorityMedium ComplaintPriority = "medium"
	ComplaintPriorityHigh   ComplaintPriority = "high"
	ComplaintPriorityUrgent ComplaintPriority = "urgent"
)

// DefaultComplaintTitle is used when a submission carries no title.
const DefaultComplaintTitle = "Community Issue Report"

// DefaultComplaintCategory is used when a submission carries no category.
const DefaultComplaintCategory = "General"

// Complaint is the aggregate for citizen issue reports. Institution is
// free text matched against a User's InstitutionName, not a foreign key;
// the same goes for Sector against SectorName.
type Complaint struct {
	ID               string
	Title            string
	Description      string
	SpecificLocation string

	// Rwanda location hierarchy. Cell and village are optional free text.
	Province string
	District string
	Sector   string
	Cell     string
	Village  string

	Institution string
	Category    string

	Status   ComplaintStatus
	Priority ComplaintPriority

	// Stored filenames of evidence images, in upload order.
	EvidenceImages []string

	// CitizenID is nil for anonymous submissions; the anonymous contact
	// fields are populated only in that case.
	CitizenID      *string
	AnonymousName  string
	AnonymousEmail string
	AnonymousPhone string

	AssignedToID *string

	SubmittedAt time.Time
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAnonymous reports whether the complaint was filed without an account.
func (c *Complaint) IsAnonymous() bool {
	return c.CitizenID == nil
}

var allowedTransitions = map[ComplaintStatus][]ComplaintStatus{
	ComplaintStatusSubmitted:  {ComplaintStatusInProgress, ComplaintStatusResolved},
	ComplaintStatusInProgress: {ComplaintStatusSubmitted, ComplaintStatusResolved},
	ComplaintStatusResolved:   {ComplaintStatusInProgress, ComplaintStatusClosed},
	ComplaintStatusClosed:     {ComplaintStatusResolved},
}

// IsValidTransition reports whether moving from current to next is allowed.
func IsValidTransition(current, next ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether the value is a known complaint status.
func IsValidStatus(s ComplaintStatus) bool {
	switch s {
	case ComplaintStatusSubmitted, ComplaintStatusInProgress, ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

// IsValidPriority reports whether the value is a known priority.
func IsValidPriority(p ComplaintPriority) bool {
	switch p {
	case ComplaintPriorityLow, ComplaintPriorityMedium, ComplaintPriorityHigh, ComplaintPriorityUrgent:
		return true
	}
	return false
}
