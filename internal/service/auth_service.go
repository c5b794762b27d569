package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/menyesha/complaint-service/internal/auth"
	"github.com/menyesha/complaint-service/internal/config"
	"github.com/menyesha/complaint-service/internal/domain"
	"github.com/menyesha/complaint-service/internal/repository"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.AuthConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Auth,
	}
}

// RegisterInput describes citizen self-registration.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	IDType   string
	IDCard   string
}

// RegisterCitizen creates a citizen account and issues a token.
func (s *AuthService) RegisterCitizen(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateEmail()
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        input.Phone,
		Role:         domain.RoleCitizen,
		Status:       domain.UserStatusActive,
		IDType:       input.IDType,
		IDCard:       input.IDCard,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// Login authenticates any account. The bootstrap super-admin pair bypasses
// the directory entirely and mints a sentinel-identified token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if email == s.bootstrap.SuperAdminEmail && password == s.bootstrap.SuperAdminPassword {
		superAdmin := &domain.User{
			ID:       domain.SuperAdminID,
			FullName: s.bootstrap.SuperAdminName,
			Email:    s.bootstrap.SuperAdminEmail,
			Role:     domain.RoleSuperAdmin,
			Status:   domain.UserStatusActive,
		}
		token, exp, err := s.tokenMgr.GenerateToken(superAdmin.ID, superAdmin.Email, superAdmin.Role)
		if err != nil {
			return nil, "", time.Time{}, apperrors.NewInternalError(err)
		}
		return superAdmin, token, exp, nil
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.IsActive() {
		return nil, "", time.Time{}, apperrors.NewAccountInactive()
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// ProfileUpdateInput describes owner-driven profile mutation. Password is
// changed only when NewPassword is set, after verifying CurrentPassword.
type ProfileUpdateInput struct {
	FullName        string
	Phone           string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile lets an account owner change name, phone and password.
func (s *AuthService) UpdateProfile(ctx context.Context, principal *auth.Principal, input ProfileUpdateInput) (*domain.User, error) {
	if principal.User == nil {
		return nil, apperrors.NewForbidden("bootstrap super admin has no stored profile")
	}

	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.NewPassword != "" {
		if err := auth.ComparePassword(user.PasswordHash, input.CurrentPassword); err != nil {
			return nil, apperrors.NewInvalidCredentials()
		}
		hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
