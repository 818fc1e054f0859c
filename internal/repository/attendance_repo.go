package repository

import (
	"context"
	"time"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository interface {
	// DB exposes the underlying handle so services can open transactions;
	// nil in unit tests (stub mode).
	DB() *gorm.DB

	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.AttendanceRecord, error)
	Create(ctx context.Context, rec *model.AttendanceRecord) error
	Update(ctx context.Context, rec *model.AttendanceRecord) error
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.AttendanceRecord, error)
	// UpsertLeaveDayTx inserts a Leave row for (userID, date) or, on conflict,
	// overwrites status and remarks only — existing check-in/out survive.
	UpsertLeaveDayTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, remarks string) error
	CountByStatusOn(ctx context.Context, date time.Time, status model.AttendanceStatus) (int64, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) DB() *gorm.DB { return r.db }

func (r *attendanceRepo) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date time.Time) (*model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date = ?", userID, date).
		First(&rec).Error
	return &rec, err
}

func (r *attendanceRepo) Create(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *attendanceRepo) Update(ctx context.Context, rec *model.AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *attendanceRepo) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.AttendanceRecord, error) {
	var recs []model.AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND attendance_date >= ?", userID, since).
		Order("attendance_date DESC").
		Find(&recs).Error
	return recs, err
}

func (r *attendanceRepo) UpsertLeaveDayTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, remarks string) error {
	rec := model.AttendanceRecord{
		UserID:         userID,
		AttendanceDate: date,
		Status:         model.AttendanceLeave,
		Remarks:        remarks,
	}
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "attendance_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":  model.AttendanceLeave,
			"remarks": remarks,
		}),
	}).Create(&rec).Error
}

func (r *attendanceRepo) CountByStatusOn(ctx context.Context, date time.Time, status model.AttendanceStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.AttendanceRecord{}).
		Where("attendance_date = ? AND status = ?", date, status).
		Count(&n).Error
	return n, err
}
