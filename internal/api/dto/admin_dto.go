package dto

import (
	"time"

	"github.com/menyesha/complaint-service/internal/domain"
)

// CreateInstitutionRequest payload for provisioning an institution admin.
type CreateInstitutionRequest struct {
	FullName               string `json:"fullName"`
	Email                  string `json:"email"`
	Password               string `json:"password"`
	Phone                  string `json:"phone"`
	InstitutionName        string `json:"institutionName"`
	InstitutionCode        string `json:"institutionCode"`
	InstitutionCategory    string `json:"institutionCategory"`
	InstitutionAddress     string `json:"institutionAddress"`
	InstitutionDescription string `json:"institutionDescription"`
}

// CreateSectorRequest payload for provisioning a sector admin.
type CreateSectorRequest struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	SectorName string `json:"sectorName"`
	SectorCode string `json:"sectorCode"`
	Province   string `json:"province"`
	District   string `json:"district"`
}

// UserStatusRequest payload for activating or deactivating an account.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// DirectoryUser is the admin-facing account shape; credentials and id card
// details are never exposed.
type DirectoryUser struct {
	ID                  string            `json:"id"`
	FullName            string            `json:"fullName"`
	Email               string            `json:"email"`
	Phone               string            `json:"phone,omitempty"`
	Role                domain.Role       `json:"role"`
	Status              domain.UserStatus `json:"status"`
	InstitutionName     string            `json:"institutionName,omitempty"`
	InstitutionCode     string            `json:"institutionCode,omitempty"`
	InstitutionCategory string            `json:"institutionCategory,omitempty"`
	SectorName          string            `json:"sectorName,omitempty"`
	SectorCode          string            `json:"sectorCode,omitempty"`
	Province            string            `json:"province,omitempty"`
	District            string            `json:"district,omitempty"`
	CreatedAt           time.Time         `json:"createdAt"`
}

// NewDirectoryUser maps a domain user.
func NewDirectoryUser(user *domain.User) DirectoryUser {
	return DirectoryUser{
		ID:                  user.ID,
		FullName:            user.FullName,
		Email:               user.Email,
		Phone:               user.Phone,
		Role:                user.Role,
		Status:              user.Status,
		InstitutionName:     user.InstitutionName,
		InstitutionCode:     user.InstitutionCode,
		InstitutionCategory: user.InstitutionCategory,
		SectorName:          user.SectorName,
		SectorCode:          user.SectorCode,
		Province:            user.Province,
		District:            user.District,
		CreatedAt:           user.CreatedAt,
	}
}

// NewDirectoryUsers maps a slice.
func NewDirectoryUsers(users []domain.User) []DirectoryUser {
	out := make([]DirectoryUser, 0, len(users))
	for i := range users {
		out = append(out, NewDirectoryUser(&users[i]))
	}
	return out
}

// InstitutionOption is the lightweight shape used to populate the public
// institution picker on the submission form.
type InstitutionOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Category string `json:"category,omitempty"`
}

// NewInstitutionOptions maps active institution admins to picker options.
func NewInstitutionOptions(users []domain.User) []InstitutionOption {
	out := make([]InstitutionOption, 0, len(users))
	for _, u := range users {
		out = append(out, InstitutionOption{
			ID:       u.ID,
			Name:     u.InstitutionName,
			Code:     u.InstitutionCode,
			Category: u.InstitutionCategory,
		})
	}
	return out
}
