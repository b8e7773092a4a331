package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type JobRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Create(ctx context.Context, j *entity.Job) error
	List(ctx context.Context, startupID *uuid.UUID, params SearchParams) ([]*entity.Job, int64, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Job, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewJobRepository(db *gorm.DB, logger *zap.Logger) JobRepository {
	return &jobRepository{db: db, logger: logger}
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var j entity.Job
	err := r.db.WithContext(ctx).Preload("Startup").First(&j, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) Create(ctx context.Context, j *entity.Job) error {
	if err := r.db.WithContext(ctx).Create(j).Error; err != nil {
		r.logger.Error("failed to create job", zap.String("title", j.Title), zap.Error(err))
		return err
	}
	return nil
}

func (r *jobRepository) List(ctx context.Context, startupID *uuid.UUID, params SearchParams) ([]*entity.Job, int64, error) {
	params.normalize()

	q := r.db.WithContext(ctx).Model(&entity.Job{})
	if startupID != nil {
		q = q.Where("startup_id = ?", *startupID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Error("failed to count jobs", zap.Error(err))
		return nil, 0, err
	}

	var list []*entity.Job
	err := q.Preload("Startup").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list jobs", zap.Error(err))
		return nil, 0, err
	}
	return list, total, nil
}

func (r *jobRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Job, error) {
	res := r.db.WithContext(ctx).Model(&entity.Job{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		r.logger.Error("failed to update job", zap.String("job_id", id.String()), zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Job{}, "id = ?", id)
	if res.Error != nil {
		r.logger.Error("failed to delete job", zap.String("job_id", id.String()), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
