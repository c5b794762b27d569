package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/events"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

func newDirectoryService(repo *fakeUserRepo) *service.DirectoryService {
	return service.NewDirectoryService(testConfig(), repo, events.NewInMemoryDispatcher())
}

func TestCreateInstitutionAdmin_UppercasesCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)

	user, err := svc.CreateInstitutionAdmin(context.Background(), service.InstitutionAdminInput{
		FullName:        "City Water Admin",
		Email:           "admin@wasac.rw",
		Password:        "secret123",
		InstitutionName: "WASAC",
		InstitutionCode: "  wasac01 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "WASAC01", user.InstitutionCode)
	assert.Equal(t, domain.RoleInstitutionAdmin, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
}

func TestCreateInstitutionAdmin_DuplicateCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	_, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "First", Email: "first@wasac.rw", Password: "secret123",
		InstitutionName: "WASAC", InstitutionCode: "WASAC01",
	})
	require.NoError(t, err)

	// Same code, different case: still a duplicate after normalization.
	_, err = svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Second", Email: "second@wasac.rw", Password: "secret123",
		InstitutionName: "WASAC Branch", InstitutionCode: "wasac01",
	})
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_CODE", apperrors.ToDomainError(err).Code)
}

func TestCreateSectorAdmin_CodeUniquePerRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	_, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Institution", Email: "inst@example.com", Password: "secret123",
		InstitutionName: "WASAC", InstitutionCode: "SHARED",
	})
	require.NoError(t, err)

	// A sector admin may reuse a code held by an institution admin.
	sector, err := svc.CreateSectorAdmin(ctx, service.SectorAdminInput{
		FullName: "Sector", Email: "sector@example.com", Password: "secret123",
		SectorName: "Kimironko", SectorCode: "shared",
		Province: "Kigali", District: "Gasabo",
	})
	require.NoError(t, err)
	assert.Equal(t, "SHARED", sector.SectorCode)
	assert.Equal(t, domain.RoleSectorAdmin, sector.Role)
}

func TestSetUserStatus(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	user, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Admin", Email: "admin@example.com", Password: "secret123",
		InstitutionName: "WASAC", InstitutionCode: "WASAC01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetUserStatus(ctx, user.ID, domain.UserStatusInactive))

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusInactive, stored.Status)

	err = svc.SetUserStatus(ctx, user.ID, domain.UserStatus("banned"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	err = svc.SetUserStatus(ctx, "missing-id", domain.UserStatusActive)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestReactivateInstitutionAdmins(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	for i, email := range []string{"a@example.com", "b@example.com"} {
		codes := []string{"AAA", "BBB"}
		user, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
			FullName: "Admin", Email: email, Password: "secret123",
			InstitutionName: "Inst", InstitutionCode: codes[i],
		})
		require.NoError(t, err)
		require.NoError(t, svc.SetUserStatus(ctx, user.ID, domain.UserStatusInactive))
	}

	count, err := svc.ReactivateInstitutionAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	active, err := svc.ActiveInstitutions(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestActiveInstitutions_ExcludesInactive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	kept, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Kept", Email: "kept@example.com", Password: "secret123",
		InstitutionName: "Kept Inst", InstitutionCode: "KEEP",
	})
	require.NoError(t, err)

	dropped, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
		FullName: "Dropped", Email: "dropped@example.com", Password: "secret123",
		InstitutionName: "Dropped Inst", InstitutionCode: "DROP",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetUserStatus(ctx, dropped.ID, domain.UserStatusInactive))

	active, err := svc.ActiveInstitutions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)
}

func TestActiveInstitutions_SortedByName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newDirectoryService(repo)
	ctx := context.Background()

	// Created in reverse alphabetical order; the dropdown must not follow
	// insertion order.
	for _, inst := range []struct{ name, code, email string }{
		{"Zeta Water Board", "ZWB", "zeta@example.com"},
		{"Midland Energy", "MEN", "midland@example.com"},
		{"Alpha Roads Agency", "ARA", "alpha@example.com"},
	} {
		_, err := svc.CreateInstitutionAdmin(ctx, service.InstitutionAdminInput{
			FullName: "Admin", Email: inst.email, Password: "secret123",
			InstitutionName: inst.name, InstitutionCode: inst.code,
		})
		require.NoError(t, err)
	}

	active, err := svc.ActiveInstitutions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, "Alpha Roads Agency", active[0].InstitutionName)
	assert.Equal(t, "Midland Energy", active[1].InstitutionName)
	assert.Equal(t, "Zeta Water Board", active[2].InstitutionName)
}
