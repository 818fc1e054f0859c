package service

import (
	"context"
	"time"

	"testing"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory attendance repository stub ──────────────────────────────────────

type stubAttendanceRepo struct {
	records map[string]*model.AttendanceRecord
	upserts int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[string]*model.AttendanceRecord)}
}

func attKey(userID uuid.UUID, date time.Time) string {
	return userID.String() + "|" + date.Format("2006-01-02")
}

func (r *stubAttendanceRepo) DB() *gorm.DB { return nil }

func (r *stubAttendanceRepo) FindByUserAndDate(_ context.Context, userID uuid.UUID, date time.Time) (*model.AttendanceRecord, error) {
	rec, ok := r.records[attKey(userID, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rec, nil
}

func (r *stubAttendanceRepo) Create(_ context.Context, rec *model.AttendanceRecord) error {
	rec.ID = uuid.New()
	r.records[attKey(rec.UserID, rec.AttendanceDate)] = rec
	return nil
}

func (r *stubAttendanceRepo) Update(_ context.Context, rec *model.AttendanceRecord) error {
	r.records[attKey(rec.UserID, rec.AttendanceDate)] = rec
	return nil
}

func (r *stubAttendanceRepo) ListSince(_ context.Context, userID uuid.UUID, since time.Time) ([]model.AttendanceRecord, error) {
	var out []model.AttendanceRecord
	for _, rec := range r.records {
		if rec.UserID == userID && !rec.AttendanceDate.Before(since) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) UpsertLeaveDayTx(_ context.Context, _ *gorm.DB, userID uuid.UUID, date time.Time, remarks string) error {
	r.upserts++
	key := attKey(userID, date)
	if existing, ok := r.records[key]; ok {
		existing.Status = model.AttendanceLeave
		existing.Remarks = remarks
		return nil
	}
	r.records[key] = &model.AttendanceRecord{
		ID:             uuid.New(),
		UserID:         userID,
		AttendanceDate: date,
		Status:         model.AttendanceLeave,
		Remarks:        remarks,
	}
	return nil
}

func (r *stubAttendanceRepo) CountByStatusOn(_ context.Context, date time.Time, status model.AttendanceStatus) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.AttendanceDate.Equal(date) && rec.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestAttendanceService(repo *stubAttendanceRepo) *attendanceService {
	return &attendanceService{repo: repo, now: fixedClock(testNow)}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCheckIn_Success(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)
	userID := uuid.New()

	rec, err := svc.CheckIn(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, model.AttendancePresent, rec.Status)
	assert.NotNil(t, rec.CheckIn)
	assert.Equal(t, testNow, *rec.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), rec.AttendanceDate)
	assert.Nil(t, rec.CheckOut)
}

func TestCheckIn_TwiceSameDay(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID)
	assert.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
	assert.Len(t, repo.records, 1, "second check-in must not create another row")
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)

	_, err := svc.CheckOut(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoCheckInFound)
}

func TestCheckOut_Success(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)
	userID := uuid.New()

	checkedIn, err := svc.CheckIn(context.Background(), userID)
	assert.NoError(t, err)

	rec, err := svc.CheckOut(context.Background(), userID)
	assert.NoError(t, err)
	assert.NotNil(t, rec.CheckOut)
	assert.Equal(t, checkedIn.CheckIn, rec.CheckIn, "check-out must not touch check-in")
}

func TestCheckOut_Twice(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)
	userID := uuid.New()

	_, err := svc.CheckIn(context.Background(), userID)
	assert.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), userID)
	assert.NoError(t, err)

	_, err = svc.CheckOut(context.Background(), userID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
}

func TestToday_NoRecord(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)

	rec, err := svc.Today(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestHistory_WindowFiltersOldRecords(t *testing.T) {
	repo := newStubAttendanceRepo()
	svc := newTestAttendanceService(repo)
	userID := uuid.New()

	recent := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	old := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	repo.records[attKey(userID, recent)] = &model.AttendanceRecord{UserID: userID, AttendanceDate: recent, Status: model.AttendancePresent}
	repo.records[attKey(userID, old)] = &model.AttendanceRecord{UserID: userID, AttendanceDate: old, Status: model.AttendancePresent}

	recs, err := svc.History(context.Background(), userID, 30)
	assert.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, recent, recs[0].AttendanceDate)
}
