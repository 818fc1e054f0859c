package model

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType string

const (
	LeavePaid   LeaveType = "Paid"
	LeaveSick   LeaveType = "Sick"
	LeaveUnpaid LeaveType = "Unpaid"
	LeaveCasual LeaveType = "Casual"
)

// ValidLeaveType reports whether t is one of the known leave types.
func ValidLeaveType(t LeaveType) bool {
	switch t {
	case LeavePaid, LeaveSick, LeaveUnpaid, LeaveCasual:
		return true
	}
	return false
}

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// LeaveRequest is an inclusive date-range request. A Pending request is
// decided exactly once; Approved/Rejected are terminal.
type LeaveRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveType LeaveType `gorm:"type:varchar(20);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	// TotalDays is the inclusive day count: (end - start) + 1.
	TotalDays     int         `gorm:"not null"`
	Status        LeaveStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
	Reason        string
	AdminComments string
	ApprovedBy    *uuid.UUID `gorm:"type:uuid"`
	DecidedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
