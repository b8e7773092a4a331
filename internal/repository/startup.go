package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

// SearchParams bound a free-text listing query. Page is 1-based.
type SearchParams struct {
	Query string
	Page  int
	Limit int
}

func (p *SearchParams) normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
}

type StartupRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Startup, error)
	Create(ctx context.Context, s *entity.Startup) error
	Search(ctx context.Context, params SearchParams) ([]*entity.Startup, int64, error)
	ListByFounder(ctx context.Context, founderID uuid.UUID) ([]*entity.Startup, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Startup, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByFounder(ctx context.Context, founderID uuid.UUID) (int64, error)
}

type startupRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStartupRepository(db *gorm.DB, logger *zap.Logger) StartupRepository {
	return &startupRepository{db: db, logger: logger}
}

func (r *startupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Startup, error) {
	var s entity.Startup
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *startupRepository) Create(ctx context.Context, s *entity.Startup) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		r.logger.Error("failed to create startup", zap.String("name", s.Name), zap.Error(err))
		return err
	}
	return nil
}

// Search filters across name, description, industry and location with a
// single LIKE term, then pages with LIMIT/OFFSET.
func (r *startupRepository) Search(ctx context.Context, params SearchParams) ([]*entity.Startup, int64, error) {
	params.normalize()

	q := r.db.WithContext(ctx).Model(&entity.Startup{})
	if term := strings.TrimSpace(params.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(industry) LIKE ? OR LOWER(location) LIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.logger.Error("failed to count startups", zap.Error(err))
		return nil, 0, err
	}

	var list []*entity.Startup
	err := q.Order("created_at DESC").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list startups", zap.Error(err))
		return nil, 0, err
	}
	return list, total, nil
}

func (r *startupRepository) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]*entity.Startup, error) {
	var list []*entity.Startup
	err := r.db.WithContext(ctx).
		Where("founder_id = ?", founderID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list startups by founder", zap.String("founder_id", founderID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *startupRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*entity.Startup, error) {
	res := r.db.WithContext(ctx).Model(&entity.Startup{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		r.logger.Error("failed to update startup", zap.String("startup_id", id.String()), zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *startupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Startup{}, "id = ?", id)
	if res.Error != nil {
		r.logger.Error("failed to delete startup", zap.String("startup_id", id.String()), zap.Error(res.Error))
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *startupRepository) CountByFounder(ctx context.Context, founderID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Startup{}).
		Where("founder_id = ?", founderID).
		Count(&count).Error
	return count, err
}
