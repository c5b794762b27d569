package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menyesha/complaint-service/internal/api/dto"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
)

func TestNewCitizenDashboardResponse_IncludesProfileSummary(t *testing.T) {
	user := &domain.User{
		ID:       "citizen-1",
		FullName: "Alice Uwase",
		Email:    "alice@example.com",
		Phone:    "+250788000001",
		Role:     domain.RoleCitizen,
	}
	board := &service.CitizenDashboard{
		Counts: service.StatusCounts{Total: 2, Submitted: 1, Resolved: 1},
		Recent: []domain.Complaint{
			{ID: "c-1", Title: "Burst pipe", Status: domain.ComplaintStatusSubmitted, SubmittedAt: time.Now()},
		},
	}

	resp := dto.NewCitizenDashboardResponse(user, board)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(2), resp.Stats.Total)
	require.Len(t, resp.RecentComplaints, 1)
	assert.Equal(t, "Alice Uwase", resp.User.FullName)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "+250788000001", resp.User.Phone)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "success")
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "recentComplaints")
	assert.Contains(t, decoded, "user")

	var profile map[string]any
	require.NoError(t, json.Unmarshal(decoded["user"], &profile))
	assert.Equal(t, "Alice Uwase", profile["fullName"])
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, "+250788000001", profile["phone"])
}
