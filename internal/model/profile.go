package model

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeProfile is the optional 1:1 extension of a User.
// Created lazily on the first profile edit.
type EmployeeProfile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName   string
	LastName    string
	Phone       string
	Address     string
	City        string
	State       string
	Department  string
	Designation string
	JoinDate    *time.Time `gorm:"type:date"`
	// PicturePath is relative to the configured upload directory.
	PicturePath string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
