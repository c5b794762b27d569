package dto

import (
	"regexp"
	"strings"
	"time"

	"github.com/menyesha/complaint-service/internal/domain"
	apperrors "github.com/menyesha/complaint-service/pkg/util"
)

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterForm carries the multipart fields of citizen registration; the
// optional idCard file is handled separately.
type RegisterForm struct {
	FullName string `form:"fullName"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Phone    string `form:"phone"`
	IDType   string `form:"idType"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate enforces the registration contract before any account work
// happens: name and phone present, a plausible email, password of at
// least 6 characters.
func (f RegisterForm) Validate() error {
	if strings.TrimSpace(f.FullName) == "" {
		return apperrors.NewValidationError("Full name is required", nil)
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return apperrors.NewValidationError("Valid email is required", nil)
	}
	if len(f.Password) < 6 {
		return apperrors.NewValidationError("Password must be at least 6 characters", nil)
	}
	if strings.TrimSpace(f.Phone) == "" {
		return apperrors.NewValidationError("Phone number is required", nil)
	}
	return nil
}

// ProfileUpdateRequest payload for owner profile changes.
type ProfileUpdateRequest struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserSummary is the public shape of an account in auth responses.
type UserSummary struct {
	ID       string      `json:"id"`
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone,omitempty"`
	Role     domain.Role `json:"role"`
}

// NewUserSummary maps a domain user.
func NewUserSummary(user *domain.User) UserSummary {
	return UserSummary{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Phone:    user.Phone,
		Role:     user.Role,
	}
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
