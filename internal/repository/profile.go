package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	GetByUsername(ctx context.Context, username string) (*entity.Profile, error)
	Create(ctx context.Context, p *entity.Profile) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Profile, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type profileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewProfileRepository(db *gorm.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	var p entity.Profile
	if err := r.db.WithContext(ctx).First(&p, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *entity.Profile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if !IsDuplicate(err) {
			r.logger.Error("failed to create profile", zap.String("profile_id", p.ID.String()), zap.Error(err))
		}
		return err
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Profile, error) {
	res := r.db.WithContext(ctx).Model(&entity.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if !IsDuplicate(res.Error) {
			r.logger.Error("failed to update profile", zap.String("profile_id", id.String()), zap.Error(res.Error))
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Profile{}, "id = ?", id)
	if res.Error != nil {
		r.logger.Error("failed to delete profile", zap.String("profile_id", id.String()), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Profile{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		r.logger.Error("failed to check profile existence", zap.String("profile_id", id.String()), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}
