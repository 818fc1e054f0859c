package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dayflow/internal/dto"
	"dayflow/internal/model"
	"dayflow/internal/repository"
	"dayflow/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"

	approvedLeaveRemarks = "Approved leave"
)

type LeaveService interface {
	Submit(ctx context.Context, userID uuid.UUID, req dto.SubmitLeaveRequest) (*model.LeaveRequest, error)
	// Decide resolves a Pending request exactly once. Approval fans out one
	// attendance row per calendar day of the range, atomically with the
	// status change.
	Decide(ctx context.Context, leaveID uuid.UUID, action, comments string, adminID uuid.UUID) (*model.LeaveRequest, error)
	Get(ctx context.Context, leaveID uuid.UUID) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	List(ctx context.Context, status *model.LeaveStatus) ([]model.LeaveRequest, error)
}

type leaveService struct {
	repo       repository.LeaveRepository
	attendance repository.AttendanceRepository
	users      repository.UserRepository
	dispatcher *worker.Dispatcher
	now        func() time.Time
}

func NewLeaveService(
	repo repository.LeaveRepository,
	attendance repository.AttendanceRepository,
	users repository.UserRepository,
	dispatcher *worker.Dispatcher,
) LeaveService {
	return &leaveService{
		repo:       repo,
		attendance: attendance,
		users:      users,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func (s *leaveService) Submit(ctx context.Context, userID uuid.UUID, req dto.SubmitLeaveRequest) (*model.LeaveRequest, error) {
	var violations []string

	if req.LeaveType == "" {
		violations = append(violations, "Leave type is required.")
	} else if !model.ValidLeaveType(model.LeaveType(req.LeaveType)) {
		violations = append(violations, "Invalid leave type.")
	}

	start, startErr := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if req.StartDate == "" || startErr != nil {
		violations = append(violations, "Valid start date is required.")
	}
	end, endErr := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if req.EndDate == "" || endErr != nil {
		violations = append(violations, "Valid end date is required.")
	}

	// Date-order rules only apply once both dates parse.
	if startErr == nil && endErr == nil {
		if end.Before(start) {
			violations = append(violations, "End date must be after start date.")
		}
		if start.Before(dateOf(s.now())) {
			violations = append(violations, "Start date cannot be in the past.")
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	lr := &model.LeaveRequest{
		UserID:    userID,
		LeaveType: model.LeaveType(req.LeaveType),
		StartDate: start,
		EndDate:   end,
		TotalDays: inclusiveDays(start, end),
		Status:    model.LeavePending,
		Reason:    req.Reason,
	}
	if err := s.repo.Create(ctx, lr); err != nil {
		return nil, err
	}
	return lr, nil
}

func (s *leaveService) Decide(ctx context.Context, leaveID uuid.UUID, action, comments string, adminID uuid.UUID) (*model.LeaveRequest, error) {
	lr, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}

	// Approved/Rejected are terminal: a second decision is refused rather
	// than re-running the fanout.
	if lr.Status != model.LeavePending {
		return nil, ErrLeaveAlreadyDecided
	}

	var status model.LeaveStatus
	switch action {
	case DecisionApprove:
		status = model.LeaveApproved
	case DecisionReject:
		status = model.LeaveRejected
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}

	now := s.now()
	lr.Status = status
	lr.AdminComments = comments
	lr.ApprovedBy = &adminID
	lr.DecidedAt = &now

	// The status change and the per-day attendance fanout commit together —
	// a failure mid-range rolls back the decision itself.
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateTx(ctx, tx, lr); err != nil {
			return err
		}
		if status != model.LeaveApproved {
			return nil
		}
		for d := lr.StartDate; !d.After(lr.EndDate); d = d.AddDate(0, 0, 1) {
			if err := s.attendance.UpsertLeaveDayTx(ctx, tx, lr.UserID, d, approvedLeaveRemarks); err != nil {
				return fmt.Errorf("attendance fanout for %s: %w", d.Format("2006-01-02"), err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyDecision(ctx, lr)
	return lr, nil
}

// notifyDecision enqueues the decision email; failures are swallowed — the
// decision has already committed.
func (s *leaveService) notifyDecision(ctx context.Context, lr *model.LeaveRequest) {
	if s.dispatcher == nil || s.users == nil {
		return
	}
	user, err := s.users.FindByID(ctx, lr.UserID)
	if err != nil {
		return
	}
	_ = s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		Kind:     worker.EmailKindLeaveDecision,
		ToEmail:  user.Email,
		Decision: string(lr.Status),
		Comments: lr.AdminComments,
	})
}

func (s *leaveService) Get(ctx context.Context, leaveID uuid.UUID) (*model.LeaveRequest, error) {
	lr, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveNotFound
		}
		return nil, err
	}
	return lr, nil
}

func (s *leaveService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *leaveService) List(ctx context.Context, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	return s.repo.List(ctx, status)
}

// inclusiveDays counts calendar days in [start, end], both ends included.
func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
