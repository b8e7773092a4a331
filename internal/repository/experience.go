package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type ExperienceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Experience, error)
	Create(ctx context.Context, e *entity.Experience) error
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Experience, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type experienceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewExperienceRepository(db *gorm.DB, logger *zap.Logger) ExperienceRepository {
	return &experienceRepository{db: db, logger: logger}
}

func (r *experienceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Experience, error) {
	var e entity.Experience
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *experienceRepository) Create(ctx context.Context, e *entity.Experience) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		r.logger.Error("failed to create experience", zap.String("profile_id", e.ProfileID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (r *experienceRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Experience, error) {
	var list []*entity.Experience
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("start_date DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list experience", zap.String("profile_id", profileID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *experienceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Experience{}, "id = ?", id)
	if res.Error != nil {
		r.logger.Error("failed to delete experience", zap.String("experience_id", id.String()), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
