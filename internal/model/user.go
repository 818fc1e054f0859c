package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of access levels. Role checks always go through
// this type — never raw string comparison.
type Role string

const (
	RoleEmployee Role = "Employee"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "Admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// User is the identity record. Accounts are deactivated, never hard-deleted.
type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode  string    `gorm:"uniqueIndex;not null"`
	Email         string    `gorm:"uniqueIndex;not null"`
	PasswordHash  string    `gorm:"not null"`
	Role          Role      `gorm:"type:varchar(20);not null;default:'Employee'"`
	Active        bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`
	// VerificationToken is single-use: nulled once the email is verified.
	VerificationToken *string `gorm:"index"`
	TokenExpiry       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
