package repository

import (
	"context"

	"dayflow/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployeeProfile, error)
	Create(ctx context.Context, p *model.EmployeeProfile) error
	Update(ctx context.Context, p *model.EmployeeProfile) error
	ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.EmployeeProfile, error)
}

type profileRepo struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepo{db: db} }

func (r *profileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.EmployeeProfile, error) {
	var p model.EmployeeProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	return &p, err
}

func (r *profileRepo) Create(ctx context.Context, p *model.EmployeeProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepo) Update(ctx context.Context, p *model.EmployeeProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepo) ListByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]model.EmployeeProfile, error) {
	var profiles []model.EmployeeProfile
	if err := r.db.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	byUser := make(map[uuid.UUID]model.EmployeeProfile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	return byUser, nil
}
