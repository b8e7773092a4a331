package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type ApplicationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error)
	Create(ctx context.Context, a *entity.JobApplication) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.JobApplication, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]*entity.JobApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.JobApplication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type applicationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewApplicationRepository(db *gorm.DB, logger *zap.Logger) ApplicationRepository {
	return &applicationRepository{db: db, logger: logger}
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	var a entity.JobApplication
	err := r.db.WithContext(ctx).Preload("Job").Preload("Profile").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create relies on the (profile_id, job_id) unique index: a duplicate
// application comes back as a constraint violation, not a silent insert.
func (r *applicationRepository) Create(ctx context.Context, a *entity.JobApplication) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if !IsDuplicate(err) {
			r.logger.Error("failed to create application",
				zap.String("job_id", a.JobID.String()),
				zap.String("profile_id", a.ProfileID.String()),
				zap.Error(err))
		}
		return err
	}
	return nil
}

func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	var list []*entity.JobApplication
	err := r.db.WithContext(ctx).Preload("Profile").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list applications by job", zap.String("job_id", jobID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *applicationRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.JobApplication, error) {
	var list []*entity.JobApplication
	err := r.db.WithContext(ctx).Preload("Job").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list applications by profile", zap.String("profile_id", profileID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *applicationRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]*entity.JobApplication, error) {
	var list []*entity.JobApplication
	err := r.db.WithContext(ctx).Preload("Job").Preload("Profile").
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.startup_id = ?", startupID).
		Order("job_applications.created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list applications by startup", zap.String("startup_id", startupID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.JobApplication, error) {
	res := r.db.WithContext(ctx).Model(&entity.JobApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		r.logger.Error("failed to update application status", zap.String("application_id", id.String()), zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.JobApplication{}, "id = ?", id)
	if res.Error != nil {
		r.logger.Error("failed to delete application", zap.String("application_id", id.String()), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
