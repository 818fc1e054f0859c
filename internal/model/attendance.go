package model

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "Half-day"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// AttendanceRecord is unique per (user, calendar date). Created by check-in,
// mutated by check-out or by leave approval.
type AttendanceRecord struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date"`
	AttendanceDate time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date"`
	Status         AttendanceStatus `gorm:"type:varchar(20);not null;default:'Absent'"`
	CheckIn        *time.Time
	CheckOut       *time.Time
	Remarks        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
