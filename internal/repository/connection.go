package repository

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/constants"
	"github.com/engin-hq/engin/internal/entity"
)

type ConnectionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Connection, error)
	Create(ctx context.Context, c *entity.Connection) error
	PairExists(ctx context.Context, a, b uuid.UUID) (bool, error)
	Pending(ctx context.Context, receiverID uuid.UUID) ([]*entity.Connection, error)
	ListAccepted(ctx context.Context, profileID uuid.UUID) ([]*entity.Connection, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ConnectionStatus) (*entity.Connection, error)
	CountAccepted(ctx context.Context, profileID uuid.UUID) (int64, error)
}

type connectionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewConnectionRepository(db *gorm.DB, logger *zap.Logger) ConnectionRepository {
	return &connectionRepository{db: db, logger: logger}
}

func (r *connectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Connection, error) {
	var c entity.Connection
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Receiver").First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *connectionRepository) Create(ctx context.Context, c *entity.Connection) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if !IsDuplicate(err) {
			r.logger.Error("failed to create connection",
				zap.String("sender_id", c.SenderID.String()),
				zap.String("receiver_id", c.ReceiverID.String()),
				zap.Error(err))
		}
		return err
	}
	return nil
}

// PairExists checks the edge in both directions, so a request cannot
// shadow an existing one going the other way.
func (r *connectionRepository) PairExists(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Connection{}).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		r.logger.Error("failed to check connection pair", zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

func (r *connectionRepository) Pending(ctx context.Context, receiverID uuid.UUID) ([]*entity.Connection, error) {
	var list []*entity.Connection
	err := r.db.WithContext(ctx).Preload("Sender").
		Where("receiver_id = ? AND status = ?", receiverID, constants.ConnectionPending).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list pending connections", zap.String("receiver_id", receiverID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

// ListAccepted reads the edge bidirectionally: accepted rows where the
// profile is on either side.
func (r *connectionRepository) ListAccepted(ctx context.Context, profileID uuid.UUID) ([]*entity.Connection, error) {
	var list []*entity.Connection
	err := r.db.WithContext(ctx).Preload("Sender").Preload("Receiver").
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", profileID, profileID, constants.ConnectionAccepted).
		Order("updated_at DESC").
		Find(&list).Error
	if err != nil {
		r.logger.Error("failed to list connections", zap.String("profile_id", profileID.String()), zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.ConnectionStatus) (*entity.Connection, error) {
	res := r.db.WithContext(ctx).Model(&entity.Connection{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		r.logger.Error("failed to update connection status", zap.String("connection_id", id.String()), zap.Error(res.Error))
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *connectionRepository) CountAccepted(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Connection{}).
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", profileID, profileID, constants.ConnectionAccepted).
		Count(&count).Error
	return count, err
}
