package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/config"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/repository"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// DirectoryService manages admin account issuance and status toggles.
type DirectoryService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewDirectoryService constructs the service.
func NewDirectoryService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *DirectoryService {
	return &DirectoryService{
		users:      users,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// InstitutionAdminInput describes super-admin issued institution accounts.
type InstitutionAdminInput struct {
	FullName               string
	Email                  string
	Password               string
	Phone                  string
	InstitutionName        string
	InstitutionCode        string
	InstitutionCategory    string
	InstitutionAddress     string
	InstitutionDescription string
}

// SectorAdminInput describes super-admin issued sector accounts.
type SectorAdminInput struct {
	FullName   string
	Email      string
	Password   string
	Phone      string
	SectorName string
	SectorCode string
	Province   string
	District   string
}

// CreateInstitutionAdmin creates an institution admin account. The code is
// upper-cased on write and must be unique among institution admins.
func (s *DirectoryService) CreateInstitutionAdmin(ctx context.Context, input InstitutionAdminInput) (*domain.User, error) {
	code := strings.ToUpper(strings.TrimSpace(input.InstitutionCode))
	if err := s.checkDuplicates(ctx, input.Email, domain.RoleInstitutionAdmin, code,
		"Institution with this code already exists"); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FullName:               input.FullName,
		Email:                  input.Email,
		PasswordHash:           hash,
		Phone:                  input.Phone,
		Role:                   domain.RoleInstitutionAdmin,
		Status:                 domain.UserStatusActive,
		InstitutionName:        input.InstitutionName,
		InstitutionCode:        code,
		InstitutionCategory:    input.InstitutionCategory,
		InstitutionAddress:     input.InstitutionAddress,
		InstitutionDescription: input.InstitutionDescription,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// CreateSectorAdmin creates a sector admin account, same code rules.
func (s *DirectoryService) CreateSectorAdmin(ctx context.Context, input SectorAdminInput) (*domain.User, error) {
	code := strings.ToUpper(strings.TrimSpace(input.SectorCode))
	if err := s.checkDuplicates(ctx, input.Email, domain.RoleSectorAdmin, code,
		"Sector with this code already exists"); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         domain.RoleSectorAdmin,
		Status:       domain.UserStatusActive,
		SectorName:   input.SectorName,
		SectorCode:   code,
		Province:     input.Province,
		District:     input.District,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *DirectoryService) checkDuplicates(ctx context.Context, email string, role domain.Role, code, codeMessage string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewDuplicateEmail()
	} else if err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}

	if _, err := s.users.GetByCode(ctx, role, code); err == nil {
		return apperrors.NewDuplicateCode(codeMessage)
	} else if err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}
	return nil
}

// SetUserStatus flips an account between active and inactive. It does not
// cascade to the admin's complaints.
func (s *DirectoryService) SetUserStatus(ctx context.Context, id string, status domain.UserStatus) error {
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return apperrors.NewValidationError("status must be active or inactive", nil)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	if err := s.users.UpdateStatus(ctx, id, status); err != nil {
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:      events.EventUserStatusChanged,
		SubjectID: id,
		Actor:     events.Actor{Role: domain.RoleSuperAdmin, UserID: domain.SuperAdminID},
		Payload:   events.UserStatusChangedPayload{Role: user.Role, NewStatus: status},
	})
	return nil
}

// ReactivateInstitutionAdmins flips every inactive institution admin back
// to active and returns the affected count.
func (s *DirectoryService) ReactivateInstitutionAdmins(ctx context.Context) (int64, error) {
	count, err := s.users.ReactivateByRole(ctx, domain.RoleInstitutionAdmin)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// ListByRole returns accounts of one role, newest first.
func (s *DirectoryService) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ListAll returns every account, newest first.
func (s *DirectoryService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ActiveInstitutions returns active institution admins sorted by
// institution name for the complaint-form dropdown.
func (s *DirectoryService) ActiveInstitutions(ctx context.Context) ([]domain.User, error) {
	role := domain.RoleInstitutionAdmin
	status := domain.UserStatusActive
	users, err := s.users.List(ctx, repository.UserFilter{
		Role:                   &role,
		Status:                 &status,
		OrderByInstitutionName: true,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// CountByRole returns the number of accounts holding a role.
func (s *DirectoryService) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	count, err := s.users.Count(ctx, repository.UserFilter{Role: &role})
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// CountAll returns the total number of accounts.
func (s *DirectoryService) CountAll(ctx context.Context) (int64, error) {
	count, err := s.users.Count(ctx, repository.UserFilter{})
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

func (s *DirectoryService) publish(ctx context.Context, event events.Event) {
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
