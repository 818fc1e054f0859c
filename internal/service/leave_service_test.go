package service

import (
	"context"
	"testing"
	"time"

	"dayflow/internal/dto"
	"dayflow/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// ── In-memory leave repository stub ───────────────────────────────────────────

type stubLeaveRepo struct {
	requests map[uuid.UUID]*model.LeaveRequest
	updates  int
}

func newStubLeaveRepo() *stubLeaveRepo {
	return &stubLeaveRepo{requests: make(map[uuid.UUID]*model.LeaveRequest)}
}

func (r *stubLeaveRepo) DB() *gorm.DB { return nil }

func (r *stubLeaveRepo) Create(_ context.Context, lr *model.LeaveRequest) error {
	lr.ID = uuid.New()
	lr.CreatedAt = time.Now()
	r.requests[lr.ID] = lr
	return nil
}

func (r *stubLeaveRepo) FindByID(_ context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	lr, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *lr
	return &cp, nil
}

func (r *stubLeaveRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for _, lr := range r.requests {
		if lr.UserID == userID {
			out = append(out, *lr)
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) List(_ context.Context, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	var out []model.LeaveRequest
	for _, lr := range r.requests {
		if status == nil || lr.Status == *status {
			out = append(out, *lr)
		}
	}
	return out, nil
}

func (r *stubLeaveRepo) UpdateTx(_ context.Context, _ *gorm.DB, lr *model.LeaveRequest) error {
	r.updates++
	cp := *lr
	r.requests[lr.ID] = &cp
	return nil
}

func (r *stubLeaveRepo) CountByStatus(_ context.Context, status model.LeaveStatus) (int64, error) {
	var n int64
	for _, lr := range r.requests {
		if lr.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubLeaveRepo) CountByUserAndStatus(_ context.Context, userID uuid.UUID, status model.LeaveStatus) (int64, error) {
	var n int64
	for _, lr := range r.requests {
		if lr.UserID == userID && lr.Status == status {
			n++
		}
	}
	return n, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func newTestLeaveService(repo *stubLeaveRepo, att *stubAttendanceRepo) *leaveService {
	return &leaveService{
		repo:       repo,
		attendance: att,
		now:        fixedClock(testNow),
	}
}

func seedPendingLeave(repo *stubLeaveRepo, userID uuid.UUID, start, end string) *model.LeaveRequest {
	s, _ := time.ParseInLocation("2006-01-02", start, time.UTC)
	e, _ := time.ParseInLocation("2006-01-02", end, time.UTC)
	lr := &model.LeaveRequest{
		ID:        uuid.New(),
		UserID:    userID,
		LeaveType: model.LeaveSick,
		StartDate: s,
		EndDate:   e,
		TotalDays: inclusiveDays(s, e),
		Status:    model.LeavePending,
	}
	repo.requests[lr.ID] = lr
	return lr
}

// ── Tests: Submit ─────────────────────────────────────────────────────────────

func TestSubmitLeave_InclusiveDayCount(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	lr, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Paid",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-22",
		Reason:    "family event",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, lr.TotalDays)
	assert.Equal(t, model.LeavePending, lr.Status)
}

func TestSubmitLeave_SingleDay(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	lr, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Casual",
		StartDate: "2025-03-20",
		EndDate:   "2025-03-20",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, lr.TotalDays)
}

func TestSubmitLeave_CollectsAllViolations(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	_, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Vacation", // not a known type
		StartDate: "not-a-date",
		EndDate:   "",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 3)
	assert.Empty(t, repo.requests, "invalid submission must not persist")
}

func TestSubmitLeave_EndBeforeStart(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	_, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Sick",
		StartDate: "2025-03-22",
		EndDate:   "2025-03-20",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "End date must be after start date.")
}

func TestSubmitLeave_StartInPast(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	_, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Sick",
		StartDate: "2025-03-13", // testNow is 2025-03-14
		EndDate:   "2025-03-15",
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "Start date cannot be in the past.")
}

func TestSubmitLeave_StartToday_Allowed(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	_, err := svc.Submit(context.Background(), uuid.New(), dto.SubmitLeaveRequest{
		LeaveType: "Sick",
		StartDate: "2025-03-14",
		EndDate:   "2025-03-14",
	})
	assert.NoError(t, err)
}

// ── Tests: Decide ─────────────────────────────────────────────────────────────

func TestDecide_ApproveFansOutOneRowPerDay(t *testing.T) {
	repo := newStubLeaveRepo()
	att := newStubAttendanceRepo()
	svc := newTestLeaveService(repo, att)
	userID := uuid.New()
	adminID := uuid.New()

	lr := seedPendingLeave(repo, userID, "2025-03-20", "2025-03-24")

	decided, err := svc.Decide(context.Background(), lr.ID, DecisionApprove, "enjoy", adminID)
	assert.NoError(t, err)
	assert.Equal(t, model.LeaveApproved, decided.Status)
	assert.Equal(t, adminID, *decided.ApprovedBy)
	assert.NotNil(t, decided.DecidedAt)

	assert.Equal(t, 5, att.upserts)
	for _, day := range []string{"2025-03-20", "2025-03-21", "2025-03-22", "2025-03-23", "2025-03-24"} {
		d, _ := time.ParseInLocation("2006-01-02", day, time.UTC)
		rec, ok := att.records[attKey(userID, d)]
		assert.True(t, ok, "missing attendance row for %s", day)
		assert.Equal(t, model.AttendanceLeave, rec.Status)
		assert.Equal(t, "Approved leave", rec.Remarks)
	}
}

func TestDecide_ApprovePreservesExistingCheckIn(t *testing.T) {
	repo := newStubLeaveRepo()
	att := newStubAttendanceRepo()
	svc := newTestLeaveService(repo, att)
	userID := uuid.New()

	day := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	checkIn := day.Add(9 * time.Hour)
	att.records[attKey(userID, day)] = &model.AttendanceRecord{
		UserID:         userID,
		AttendanceDate: day,
		Status:         model.AttendancePresent,
		CheckIn:        &checkIn,
	}

	lr := seedPendingLeave(repo, userID, "2025-03-20", "2025-03-20")
	_, err := svc.Decide(context.Background(), lr.ID, DecisionApprove, "", uuid.New())
	assert.NoError(t, err)

	rec := att.records[attKey(userID, day)]
	assert.Equal(t, model.AttendanceLeave, rec.Status)
	assert.Equal(t, "Approved leave", rec.Remarks)
	assert.NotNil(t, rec.CheckIn, "existing check-in must survive the overwrite")
	assert.Equal(t, checkIn, *rec.CheckIn)
}

func TestDecide_RejectWritesNoAttendance(t *testing.T) {
	repo := newStubLeaveRepo()
	att := newStubAttendanceRepo()
	svc := newTestLeaveService(repo, att)

	lr := seedPendingLeave(repo, uuid.New(), "2025-03-20", "2025-03-22")

	decided, err := svc.Decide(context.Background(), lr.ID, DecisionReject, "short staffed", uuid.New())
	assert.NoError(t, err)
	assert.Equal(t, model.LeaveRejected, decided.Status)
	assert.Equal(t, "short staffed", decided.AdminComments)
	assert.Zero(t, att.upserts)
	assert.Empty(t, att.records)
}

func TestDecide_SecondDecisionRefused(t *testing.T) {
	repo := newStubLeaveRepo()
	att := newStubAttendanceRepo()
	svc := newTestLeaveService(repo, att)

	lr := seedPendingLeave(repo, uuid.New(), "2025-03-20", "2025-03-21")

	_, err := svc.Decide(context.Background(), lr.ID, DecisionApprove, "", uuid.New())
	assert.NoError(t, err)
	upsertsAfterFirst := att.upserts

	_, err = svc.Decide(context.Background(), lr.ID, DecisionReject, "", uuid.New())
	assert.ErrorIs(t, err, ErrLeaveAlreadyDecided)

	stored := repo.requests[lr.ID]
	assert.Equal(t, model.LeaveApproved, stored.Status, "first decision must stand")
	assert.Equal(t, upsertsAfterFirst, att.upserts, "refused decision must not touch attendance")
}

func TestDecide_NotFound(t *testing.T) {
	svc := newTestLeaveService(newStubLeaveRepo(), newStubAttendanceRepo())

	_, err := svc.Decide(context.Background(), uuid.New(), DecisionApprove, "", uuid.New())
	assert.ErrorIs(t, err, ErrLeaveNotFound)
}

func TestDecide_UnknownAction(t *testing.T) {
	repo := newStubLeaveRepo()
	svc := newTestLeaveService(repo, newStubAttendanceRepo())

	lr := seedPendingLeave(repo, uuid.New(), "2025-03-20", "2025-03-21")
	_, err := svc.Decide(context.Background(), lr.ID, "escalate", "", uuid.New())
	assert.Error(t, err)
	assert.Equal(t, model.LeavePending, repo.requests[lr.ID].Status)
}
