package models

import "time"

const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleClient     = "client"
)

type User struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Email             string             `json:"email"`
	Phone             *string            `json:"phone"`
	PasswordHash      string             `json:"-"` // Never expose in JSON
	Role              string             `json:"role"`
	IsActive          bool               `json:"isActive"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
	ClientProfile     *ClientProfile     `json:"clientProfile,omitempty"`
	TechnicianProfile *TechnicianProfile `json:"technicianProfile,omitempty"`
}

type ClientProfile struct {
	ID          int     `json:"id"`
	UserID      int     `json:"userId"`
	CompanyName string  `json:"companyName"`
	Document    *string `json:"document"`
	Address     *string `json:"address"`
}

type TechnicianProfile struct {
	ID            int      `json:"id"`
	UserID        int      `json:"userId"`
	LicenseNumber string   `json:"licenseNumber"`
	Specialty     *string  `json:"specialty"`
	HourlyRate    *float64 `json:"hourlyRate"`
	Available     bool     `json:"available"`
}

// UserSummary is the contact block embedded in related records.
type UserSummary struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// RegisterRequest is used both by public self-registration and by admins
// creating accounts. Profile fields apply to the matching role only.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`

	CompanyName string `json:"companyName"`
	Document    string `json:"document"`
	Address     string `json:"address"`

	LicenseNumber string         `json:"licenseNumber"`
	Specialty     string         `json:"specialty"`
	HourlyRate    OptionalNumber `json:"hourlyRate"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type UserFilter struct {
	Role   string
	Search string
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTechnician, RoleClient:
		return true
	}
	return false
}
