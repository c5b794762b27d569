package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/service"
)

func newDashboardService(complaints *fakeComplaintRepo, users *fakeUserRepo) *service.DashboardService {
	directory := service.NewDirectoryService(testConfig(), users, events.NewInMemoryDispatcher())
	return service.NewDashboardService(complaints, directory)
}

func seedResolvedComplaint(t *testing.T, repo *fakeComplaintRepo, institution string, resolutionDays int) {
	t.Helper()
	submitted := time.Now().Add(-time.Duration(resolutionDays+1) * 24 * time.Hour)
	resolved := submitted.Add(time.Duration(resolutionDays) * 24 * time.Hour)
	complaint := &domain.Complaint{
		Title:       "Seeded",
		Description: "Seeded complaint",
		Institution: institution,
		Sector:      "Kimironko",
		Status:      domain.ComplaintStatusResolved,
		Priority:    domain.ComplaintPriorityMedium,
		SubmittedAt: submitted,
		ResolvedAt:  &resolved,
	}
	require.NoError(t, repo.Create(context.Background(), complaint))
}

func TestForCitizen_RecentCappedAtTen(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints)
	dashboards := newDashboardService(complaints, newFakeUserRepo())
	ctx := context.Background()

	principal := citizenPrincipal("citizen-1")
	for i := 0; i < 12; i++ {
		_, err := svc.Submit(ctx, principal, validSubmitInput())
		require.NoError(t, err)
	}

	board, err := dashboards.ForCitizen(ctx, principal)
	require.NoError(t, err)
	assert.Equal(t, int64(12), board.Counts.Total)
	assert.Len(t, board.Recent, 10)
}

func TestForInstitution_AvgResolutionTime(t *testing.T) {
	complaints := newFakeComplaintRepo()
	dashboards := newDashboardService(complaints, newFakeUserRepo())
	ctx := context.Background()

	seedResolvedComplaint(t, complaints, "WASAC", 2)
	seedResolvedComplaint(t, complaints, "WASAC", 4)
	seedResolvedComplaint(t, complaints, "REG", 10) // outside scope

	stats, err := dashboards.ForInstitution(ctx, institutionPrincipal("WASAC"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Resolved)
	assert.Equal(t, "3.0 days", stats.AvgResolutionTime)
}

func TestForInstitution_NoResolvedComplaints(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints)
	dashboards := newDashboardService(complaints, newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Submit(ctx, citizenPrincipal("citizen-1"), validSubmitInput())
	require.NoError(t, err)

	stats, err := dashboards.ForInstitution(ctx, institutionPrincipal("WASAC"))
	require.NoError(t, err)
	assert.Equal(t, service.ZeroResolutionTime, stats.AvgResolutionTime)
}

func TestForSector_NewToday(t *testing.T) {
	complaints := newFakeComplaintRepo()
	svc := newComplaintService(complaints)
	dashboards := newDashboardService(complaints, newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Submit(ctx, citizenPrincipal("citizen-1"), validSubmitInput())
	require.NoError(t, err)
	stale, err := svc.Submit(ctx, citizenPrincipal("citizen-1"), validSubmitInput())
	require.NoError(t, err)

	// Backdate the second complaint to yesterday.
	complaints.mu.Lock()
	complaints.complaints[stale.ID].CreatedAt = time.Now().Add(-36 * time.Hour)
	complaints.mu.Unlock()

	stats, err := dashboards.ForSector(ctx, sectorPrincipal("Kimironko"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.NewToday)
}

func TestForAdmin_PlatformTotals(t *testing.T) {
	complaints := newFakeComplaintRepo()
	users := newFakeUserRepo()
	dashboards := newDashboardService(complaints, users)
	directory := service.NewDirectoryService(testConfig(), users, events.NewInMemoryDispatcher())
	authSvc := service.NewAuthService(testConfig(), users)
	ctx := context.Background()

	_, _, _, err := authSvc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	_, err = directory.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Admin", Email: "admin@wasac.rw", Password: "secret123",
		InstitutionName: "WASAC", InstitutionCode: "WASAC01",
	})
	require.NoError(t, err)

	seedResolvedComplaint(t, complaints, "WASAC", 2)

	stats, err := dashboards.ForAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalCitizens)
	assert.Equal(t, int64(1), stats.TotalInstitutionAdmins)
	assert.Equal(t, int64(0), stats.TotalSectorAdmins)
	assert.Equal(t, int64(1), stats.TotalComplaints)
	assert.Equal(t, int64(1), stats.ResolvedComplaints)
	assert.Equal(t, "2.0 days", stats.AvgResolutionTime)
}
