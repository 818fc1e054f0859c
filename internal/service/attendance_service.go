package service

import (
	"context"
	"errors"
	"time"

	"dayflow/internal/model"
	"dayflow/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error)
	CheckOut(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error)
	// Today returns today's record or nil when the user has not checked in.
	Today(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error)
	History(ctx context.Context, userID uuid.UUID, days int) ([]model.AttendanceRecord, error)
}

type attendanceService struct {
	repo repository.AttendanceRepository
	// now is swappable in tests.
	now func() time.Time
}

func NewAttendanceService(repo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{repo: repo, now: time.Now}
}

// Truncate to the calendar date — attendance is keyed by (user, day).
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *attendanceService) CheckIn(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	now := s.now()
	today := dateOf(now)

	if _, err := s.repo.FindByUserAndDate(ctx, userID, today); err == nil {
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rec := &model.AttendanceRecord{
		UserID:         userID,
		AttendanceDate: today,
		Status:         model.AttendancePresent,
		CheckIn:        &now,
	}
	// The unique (user, date) constraint backstops a concurrent double
	// check-in that slipped past the existence check.
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *attendanceService) CheckOut(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	now := s.now()

	rec, err := s.repo.FindByUserAndDate(ctx, userID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCheckInFound
		}
		return nil, err
	}
	if rec.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	rec.CheckOut = &now
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *attendanceService) Today(ctx context.Context, userID uuid.UUID) (*model.AttendanceRecord, error) {
	rec, err := s.repo.FindByUserAndDate(ctx, userID, dateOf(s.now()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (s *attendanceService) History(ctx context.Context, userID uuid.UUID, days int) ([]model.AttendanceRecord, error) {
	since := dateOf(s.now()).AddDate(0, 0, -days)
	return s.repo.ListSince(ctx, userID, since)
}
