package service

import (
	"context"
	"time"

	"dayflow/internal/dto"
	"dayflow/internal/model"
	"dayflow/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	// EmployeeSummary: today's attendance, own pending leave count, current net pay.
	EmployeeSummary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error)
	// AdminSummary: headcount, present-today count, pending leave requests.
	AdminSummary(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	users      repository.UserRepository
	attendance AttendanceService
	attRepo    repository.AttendanceRepository
	leaves     repository.LeaveRepository
	payroll    PayrollService
	now        func() time.Time
}

func NewDashboardService(
	users repository.UserRepository,
	attendance AttendanceService,
	attRepo repository.AttendanceRepository,
	leaves repository.LeaveRepository,
	payroll PayrollService,
) DashboardService {
	return &dashboardService{
		users:      users,
		attendance: attendance,
		attRepo:    attRepo,
		leaves:     leaves,
		payroll:    payroll,
		now:        time.Now,
	}
}

func (s *dashboardService) EmployeeSummary(ctx context.Context, userID uuid.UUID) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	today, err := s.attendance.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	if today != nil {
		resp.TodayAttendance = attendanceToResponse(today)
	}

	pending, err := s.leaves.CountByUserAndStatus(ctx, userID, model.LeavePending)
	if err != nil {
		return nil, err
	}
	resp.MyPendingLeaves = pending

	current, err := s.payroll.CurrentFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current != nil {
		resp.CurrentNetPay = current.NetSalary.StringFixed(2)
	}
	return resp, nil
}

func (s *dashboardService) AdminSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	resp := &dto.DashboardResponse{}

	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	resp.TotalEmployees = total

	present, err := s.attRepo.CountByStatusOn(ctx, dateOf(s.now()), model.AttendancePresent)
	if err != nil {
		return nil, err
	}
	resp.PresentToday = present

	pending, err := s.leaves.CountByStatus(ctx, model.LeavePending)
	if err != nil {
		return nil, err
	}
	resp.PendingLeaves = pending
	return resp, nil
}

func attendanceToResponse(rec *model.AttendanceRecord) *dto.AttendanceResponse {
	resp := &dto.AttendanceResponse{
		Date:    rec.AttendanceDate.Format("2006-01-02"),
		Status:  string(rec.Status),
		Remarks: rec.Remarks,
	}
	if rec.CheckIn != nil {
		resp.CheckIn = rec.CheckIn.Format("15:04:05")
	}
	if rec.CheckOut != nil {
		resp.CheckOut = rec.CheckOut.Format("15:04:05")
	}
	return resp
}
