package domain

import "time"

// Role enumerates actor roles on the platform.
type Role string

const (
	RoleCitizen          Role = "citizen"
	RoleInstitutionAdmin Role = "institution_admin"
	RoleSectorAdmin      Role = "sector_admin"
	RoleSuperAdmin       Role = "super_admin"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// SuperAdminID is the sentinel identifier carried by tokens minted for the
// bootstrap super-admin pair; it never resolves to a users row.
const SuperAdminID = "super-admin"

// User is the domain model for all account types. Institution and sector
// profile fields are populated only for the matching admin role; complaint
// scoping matches against InstitutionName/SectorName by string equality.
type User struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	Status       UserStatus

	// Citizen identity document, optional.
	IDType string
	IDCard string

	// Institution admin profile.
	InstitutionName        string
	InstitutionCode        string
	InstitutionCategory    string
	InstitutionAddress     string
	InstitutionDescription string

	// Sector admin profile.
	SectorName string
	SectorCode string
	Province   string
	District   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account may log in.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
