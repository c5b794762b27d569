package dto

import (
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
)

// CitizenDashboardResponse is the citizen home view: scoped counts, the
// most recent complaints and the owner's profile summary.
type CitizenDashboardResponse struct {
	Success          bool                `json:"success"`
	Stats            StatsResponse       `json:"stats"`
	RecentComplaints []ComplaintResponse `json:"recentComplaints"`
	User             UserSummary         `json:"user"`
}

// NewCitizenDashboardResponse maps the dashboard projection.
func NewCitizenDashboardResponse(user *domain.User, board *service.CitizenDashboard) CitizenDashboardResponse {
	return CitizenDashboardResponse{
		Success:          true,
		Stats:            NewStatsResponse(&board.Counts),
		RecentComplaints: NewComplaintResponses(board.Recent),
		User:             NewUserSummary(user),
	}
}
