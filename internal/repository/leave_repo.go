package repository

import (
	"context"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaveRepository interface {
	DB() *gorm.DB

	Create(ctx context.Context, lr *model.LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error)
	// List returns all requests, optionally filtered by status, newest first.
	List(ctx context.Context, status *model.LeaveStatus) ([]model.LeaveRequest, error)
	UpdateTx(ctx context.Context, tx *gorm.DB, lr *model.LeaveRequest) error
	CountByStatus(ctx context.Context, status model.LeaveStatus) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.LeaveStatus) (int64, error)
}

type leaveRepo struct{ db *gorm.DB }

func NewLeaveRepository(db *gorm.DB) LeaveRepository { return &leaveRepo{db: db} }

func (r *leaveRepo) DB() *gorm.DB { return r.db }

func (r *leaveRepo) Create(ctx context.Context, lr *model.LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *leaveRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LeaveRequest, error) {
	var lr model.LeaveRequest
	err := r.db.WithContext(ctx).First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *leaveRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.LeaveRequest, error) {
	var reqs []model.LeaveRequest
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

func (r *leaveRepo) List(ctx context.Context, status *model.LeaveStatus) ([]model.LeaveRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.LeaveRequest{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var reqs []model.LeaveRequest
	err := q.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *leaveRepo) UpdateTx(ctx context.Context, tx *gorm.DB, lr *model.LeaveRequest) error {
	return tx.WithContext(ctx).Save(lr).Error
}

func (r *leaveRepo) CountByStatus(ctx context.Context, status model.LeaveStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *leaveRepo) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.LeaveStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LeaveRequest{}).
		Where("user_id = ? AND status = ?", userID, status).Count(&n).Error
	return n, err
}
