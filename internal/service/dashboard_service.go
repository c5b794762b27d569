package service

import (
	"context"
	"fmt"
	"time"

	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/repository"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// ZeroResolutionTime is reported when the scoped resolved set is empty.
const ZeroResolutionTime = "0 days"

// DashboardService computes read-only projections over the complaint
// store, scoped the same way listings are.
type DashboardService struct {
	complaints repository.ComplaintRepository
	directory  *DirectoryService
	recentN    int
}

// NewDashboardService constructs the service.
func NewDashboardService(complaints repository.ComplaintRepository, directory *DirectoryService) *DashboardService {
	return &DashboardService{complaints: complaints, directory: directory, recentN: 10}
}

// CitizenDashboard bundles a citizen's counts and recent complaints.
type CitizenDashboard struct {
	Counts StatusCounts
	Recent []domain.Complaint
}

// ForCitizen returns the caller's own stats and 10 most recent complaints.
func (s *DashboardService) ForCitizen(ctx context.Context, principal *auth.Principal) (*CitizenDashboard, error) {
	scope, err := scopeFor(principal)
	if err != nil {
		return nil, err
	}

	counts, err := s.counts(ctx, scope)
	if err != nil {
		return nil, err
	}

	recentScope := scope
	recentScope.Limit = s.recentN
	recent, err := s.complaints.ListWithFilter(ctx, recentScope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &CitizenDashboard{Counts: *counts, Recent: recent}, nil
}

// InstitutionStats projects an institution admin's triage load.
type InstitutionStats struct {
	Total             int64
	Resolved          int64
	InProgress        int64
	AvgResolutionTime string
}

// ForInstitution returns scoped totals plus average resolution time.
func (s *DashboardService) ForInstitution(ctx context.Context, principal *auth.Principal) (*InstitutionStats, error) {
	scope, err := scopeFor(principal)
	if err != nil {
		return nil, err
	}

	counts, err := s.counts(ctx, scope)
	if err != nil {
		return nil, err
	}
	avg, err := s.avgResolutionTime(ctx, scope)
	if err != nil {
		return nil, err
	}
	return &InstitutionStats{
		Total:             counts.Total,
		Resolved:          counts.Resolved,
		InProgress:        counts.InProgress,
		AvgResolutionTime: avg,
	}, nil
}

// SectorStats projects a sector admin's triage load.
type SectorStats struct {
	Total      int64
	NewToday   int64
	InProgress int64
	Resolved   int64
}

// ForSector returns scoped totals including complaints filed since the
// start of the current calendar day, local server time.
func (s *DashboardService) ForSector(ctx context.Context, principal *auth.Principal) (*SectorStats, error) {
	scope, err := scopeFor(principal)
	if err != nil {
		return nil, err
	}

	counts, err := s.counts(ctx, scope)
	if err != nil {
		return nil, err
	}

	todayScope := scope
	midnight := startOfDay(time.Now())
	todayScope.CreatedFrom = &midnight
	newToday, err := s.complaints.CountWithFilter(ctx, todayScope)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &SectorStats{
		Total:      counts.Total,
		NewToday:   newToday,
		InProgress: counts.InProgress,
		Resolved:   counts.Resolved,
	}, nil
}

// AdminStats projects the platform-wide view for the super admin.
type AdminStats struct {
	TotalUsers             int64
	TotalCitizens          int64
	TotalInstitutionAdmins int64
	TotalSectorAdmins      int64
	TotalComplaints        int64
	ResolvedComplaints     int64
	AvgResolutionTime      string
}

// ForAdmin returns directory totals and global complaint aggregates.
func (s *DashboardService) ForAdmin(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	var err error
	if stats.TotalUsers, err = s.directory.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCitizens, err = s.directory.CountByRole(ctx, domain.RoleCitizen); err != nil {
		return nil, err
	}
	if stats.TotalInstitutionAdmins, err = s.directory.CountByRole(ctx, domain.RoleInstitutionAdmin); err != nil {
		return nil, err
	}
	if stats.TotalSectorAdmins, err = s.directory.CountByRole(ctx, domain.RoleSectorAdmin); err != nil {
		return nil, err
	}

	globalScope := repository.ComplaintFilter{}
	counts, err := s.counts(ctx, globalScope)
	if err != nil {
		return nil, err
	}
	stats.TotalComplaints = counts.Total
	stats.ResolvedComplaints = counts.Resolved

	if stats.AvgResolutionTime, err = s.avgResolutionTime(ctx, globalScope); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardService) counts(ctx context.Context, scope repository.ComplaintFilter) (*StatusCounts, error) {
	return countByStatus(ctx, s.complaints, scope)
}

// avgResolutionTime reports the mean of (resolvedAt - submittedAt) in days
// over resolved complaints carrying a resolution stamp, one decimal place.
func (s *DashboardService) avgResolutionTime(ctx context.Context, scope repository.ComplaintFilter) (string, error) {
	resolvedScope := scope
	resolvedScope.Statuses = []domain.ComplaintStatus{domain.ComplaintStatusResolved}
	resolved, err := s.complaints.ListWithFilter(ctx, resolvedScope)
	if err != nil {
		return "", apperrors.MapError(err)
	}

	var totalDays float64
	var counted int
	for i := range resolved {
		if resolved[i].ResolvedAt == nil {
			continue
		}
		totalDays += resolved[i].ResolvedAt.Sub(resolved[i].SubmittedAt).Hours() / 24
		counted++
	}
	if counted == 0 {
		return ZeroResolutionTime, nil
	}
	return fmt.Sprintf("%.1f days", totalDays/float64(counted)), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
