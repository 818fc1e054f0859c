package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Domain sentinel errors. Handlers map these to HTTP responses; anything else
// coming out of a service is treated as an opaque storage failure.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("employee ID or email already exists")
	ErrInvalidToken       = errors.New("invalid verification token")
	ErrTokenExpired       = errors.New("verification token has expired")

	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrNoCheckInFound    = errors.New("please check in first")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")

	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrLeaveAlreadyDecided = errors.New("leave request has already been decided")

	ErrPayrollOrdering = errors.New("effective date must be after the latest existing entry")

	ErrNotFound = errors.New("record not found")
)

// ValidationError aggregates every violated rule so the user sees the full
// list, not just the first failure.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
