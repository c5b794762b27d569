package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/config"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/service"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:           "test-secret",
			AccessTokenTTLHours: 1,
			BcryptCost:          bcrypt.MinCost,
			SuperAdminEmail:     "superadmin@menyesha.gov.rw",
			SuperAdminPassword:  "SuperAdmin123!",
			SuperAdminName:      "Super Administrator",
		},
	}
}

func TestRegisterCitizen(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)

	user, token, _, err := svc.RegisterCitizen(context.Background(), service.RegisterInput{
		FullName: "Alice Uwase",
		Email:    "alice@example.com",
		Password: "secret123",
		Phone:    "+250788000001",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleCitizen, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterCitizen_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice Uwase", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, _, err = svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Someone Else", Email: "alice@example.com", Password: "other456",
	})
	require.Error(t, err)
	assert.Equal(t, "DUPLICATE_EMAIL", apperrors.ToDomainError(err).Code)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice Uwase", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	user, token, _, err := svc.Login(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleCitizen, claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)

	_, _, _, err = svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice Uwase", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice Uwase", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(ctx, user.ID, domain.UserStatusInactive))

	_, _, _, err = svc.Login(ctx, "alice@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "ACCOUNT_INACTIVE", apperrors.ToDomainError(err).Code)
}

func TestLogin_BootstrapSuperAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)

	user, token, _, err := svc.Login(context.Background(), "superadmin@menyesha.gov.rw", "SuperAdmin123!")
	require.NoError(t, err)
	assert.Equal(t, domain.SuperAdminID, user.ID)
	assert.Equal(t, domain.RoleSuperAdmin, user.Role)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.SuperAdminID, claims.UserID)
	assert.Equal(t, domain.RoleSuperAdmin, claims.Role)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAuthService(testConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.RegisterCitizen(ctx, service.RegisterInput{
		FullName: "Alice Uwase", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	principal := &auth.Principal{UserID: user.ID, Email: user.Email, Role: user.Role, User: user}

	_, err = svc.UpdateProfile(ctx, principal, service.ProfileUpdateInput{
		CurrentPassword: "wrong-password",
		NewPassword:     "newsecret456",
	})
	require.Error(t, err)

	updated, err := svc.UpdateProfile(ctx, principal, service.ProfileUpdateInput{
		FullName:        "Alice U.",
		CurrentPassword: "secret123",
		NewPassword:     "newsecret456",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice U.", updated.FullName)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "newsecret456")
	assert.NoError(t, err)
}
