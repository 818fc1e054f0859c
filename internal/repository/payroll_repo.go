package repository

import (
	"context"
	"time"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PayrollRepository interface {
	DB() *gorm.DB

	CreateTx(ctx context.Context, tx *gorm.DB, entry *model.PayrollEntry) error
	// LatestTx returns the entry with the maximum effective-from for the user,
	// regardless of whether it is in effect yet.
	LatestTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.PayrollEntry, error)
	// CurrentFor returns the entry with the maximum effective-from <= asOf.
	CurrentFor(ctx context.Context, userID uuid.UUID, asOf time.Time) (*model.PayrollEntry, error)
	History(ctx context.Context, userID uuid.UUID) ([]model.PayrollEntry, error)
}

type payrollRepo struct{ db *gorm.DB }

func NewPayrollRepository(db *gorm.DB) PayrollRepository { return &payrollRepo{db: db} }

func (r *payrollRepo) DB() *gorm.DB { return r.db }

func (r *payrollRepo) CreateTx(ctx context.Context, tx *gorm.DB, entry *model.PayrollEntry) error {
	return tx.WithContext(ctx).Create(entry).Error
}

func (r *payrollRepo) LatestTx(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*model.PayrollEntry, error) {
	var entry model.PayrollEntry
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("effective_from DESC").
		First(&entry).Error
	return &entry, err
}

func (r *payrollRepo) CurrentFor(ctx context.Context, userID uuid.UUID, asOf time.Time) (*model.PayrollEntry, error) {
	var entry model.PayrollEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND effective_from <= ?", userID, asOf).
		Order("effective_from DESC").
		First(&entry).Error
	return &entry, err
}

func (r *payrollRepo) History(ctx context.Context, userID uuid.UUID) ([]model.PayrollEntry, error) {
	var entries []model.PayrollEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("effective_from DESC").
		Find(&entries).Error
	return entries, err
}
