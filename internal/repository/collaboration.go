package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type CollaborationRepository interface {
	Create(ctx context.Context, c *entity.Collaboration) error
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Collaboration, error)
	CountByProfile(ctx context.Context, profileID uuid.UUID) (int64, error)
	ListRoles(ctx context.Context) ([]*entity.JobRole, error)
	EnsureRole(ctx context.Context, name string) (*entity.JobRole, error)
}

type collaborationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCollaborationRepository(db *gorm.DB, logger *zap.Logger) CollaborationRepository {
	return &collaborationRepository{db: db, logger: logger}
}

func (r *collaborationRepository) Create(ctx context.Context, c *entity.Collaboration) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		r.logger.Error("failed to create collaboration",
			zap.String("profile_id", c.ProfileID.String()),
			zap.String("startup_id", c.StartupID.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (r *collaborationRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Collaboration, error) {
	var list []*entity.Collaboration
	err := r.db.WithContext(ctx).Preload("Startup").Preload("JobRole").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list collaborations", zap.String("profile_id", profileID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *collaborationRepository) CountByProfile(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Collaboration{}).
		Where("profile_id = ?", profileID).
		Count(&count).Error
	return count, err
}

func (r *collaborationRepository) ListRoles(ctx context.Context) ([]*entity.JobRole, error) {
	var roles []*entity.JobRole
	err := r.db.WithContext(ctx).Order("name").Find(&roles).Error
	if err != nil {
		r.logger.Error("failed to list job roles", zap.Error(err))
		return nil, err
	}
	return roles, nil
}

// EnsureRole returns the role named name, creating it first if needed.
func (r *collaborationRepository) EnsureRole(ctx context.Context, name string) (*entity.JobRole, error) {
	var role entity.JobRole
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}
	role = entity.JobRole{ID: uuid.New(), Name: name}
	if err := r.db.WithContext(ctx).Create(&role).Error; err != nil {
		if IsDuplicate(err) {
			// lost the race; fetch the winner
			if ferr := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; ferr == nil {
				return &role, nil
			}
		}
		return nil, err
	}
	return &role, nil
}
