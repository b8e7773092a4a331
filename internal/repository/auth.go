package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/engin-hq/engin/internal/entity"
)

type IdentityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.AuthIdentity, error)
	Upsert(ctx context.Context, identity *entity.AuthIdentity) (*entity.AuthIdentity, error)
}

type identityRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewIdentityRepository(db *gorm.DB, logger *zap.Logger) IdentityRepository {
	return &identityRepository{db: db, logger: logger}
}

func (r *identityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.AuthIdentity, error) {
	var ident entity.AuthIdentity
	if err := r.db.WithContext(ctx).First(&ident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ident, nil
}

// Upsert finds the identity by (provider, subject) and refreshes the
// provider-supplied fields, or creates it with a fresh id.
func (r *identityRepository) Upsert(ctx context.Context, identity *entity.AuthIdentity) (*entity.AuthIdentity, error) {
	var existing entity.AuthIdentity
	err := r.db.WithContext(ctx).
		Where("provider = ? AND subject = ?", identity.Provider, identity.Subject).
		First(&existing).Error
	if err == nil {
		updates := map[string]any{
			"email":      identity.Email,
			"name":       identity.Name,
			"avatar_url": identity.AvatarURL,
		}
		if uerr := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; uerr != nil {
			r.logger.Error("failed to refresh identity", zap.String("identity_id", existing.ID.String()), zap.Error(uerr))
			return nil, uerr
		}
		return &existing, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	if identity.ID == uuid.Nil {
		identity.ID = uuid.New()
	}
	if cerr := r.db.WithContext(ctx).Create(identity).Error; cerr != nil {
		r.logger.Error("failed to create identity", zap.String("subject", identity.Subject), zap.Error(cerr))
		return nil, cerr
	}
	return identity, nil
}

type SessionRepository interface {
	Create(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewSessionRepository(db *gorm.DB, logger *zap.Logger) SessionRepository {
	return &sessionRepository{db: db, logger: logger}
}

func (r *sessionRepository) Create(ctx context.Context, s *entity.Session) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		r.logger.Error("failed to create session", zap.String("identity_id", s.IdentityID.String()), zap.Error(err))
		return err
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*entity.Session, error) {
	var s entity.Session
	if err := r.db.WithContext(ctx).First(&s, "token = ?", token).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&entity.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.Session{}, "expires_at < ?", now)
	return res.RowsAffected, res.Error
}
