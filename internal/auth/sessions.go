package auth

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// SessionCookie is the name of the login cookie.
const SessionCookie = "engin_session"

// Sessions issues and resolves login sessions backed by the store.
type Sessions struct {
	identityRepo repository.IdentityRepository
	sessionRepo  repository.SessionRepository
	ttl          time.Duration
	logger       *zap.Logger
}

func NewSessions(identityRepo repository.IdentityRepository, sessionRepo repository.SessionRepository, ttl time.Duration, logger *zap.Logger) *Sessions {
	return &Sessions{
		identityRepo: identityRepo,
		sessionRepo:  sessionRepo,
		ttl:          ttl,
		logger:       logger,
	}
}

// Login persists the identity the provider vouched for and opens a
// session for it.
func (s *Sessions) Login(ctx context.Context, identity *entity.AuthIdentity) (*entity.Session, *entity.AuthIdentity, error) {
	ident, err := s.identityRepo.Upsert(ctx, identity)
	if err != nil {
		return nil, nil, common.WrapError(err, "upsert identity")
	}

	token, err := RandomToken()
	if err != nil {
		return nil, nil, common.WrapError(err, "generate session token")
	}
	sess := &entity.Session{
		Token:      token,
		IdentityID: ident.ID,
		ExpiresAt:  time.Now().Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, nil, common.WrapError(err, "create session")
	}

	s.logger.Info("session opened", zap.String("identity_id", ident.ID.String()), zap.String("provider", ident.Provider))
	return sess, ident, nil
}

// Resolve maps a cookie token to its identity. Expired or unknown
// tokens come back unauthorized; expired rows are removed on sight.
func (s *Sessions) Resolve(ctx context.Context, token string) (*entity.AuthIdentity, error) {
	if token == "" {
		return nil, common.UnauthorizedError("no session")
	}
	sess, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.UnauthorizedError("invalid session")
		}
		return nil, common.WrapError(err, "get session")
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, common.UnauthorizedError("session expired")
	}

	ident, err := s.identityRepo.GetByID(ctx, sess.IdentityID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.UnauthorizedError("identity no longer exists")
		}
		return nil, common.WrapError(err, "get identity")
	}
	return ident, nil
}

// Logout closes the session.
func (s *Sessions) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.Delete(ctx, token)
}

// SweepExpired removes expired session rows.
func (s *Sessions) SweepExpired(ctx context.Context) {
	n, err := s.sessionRepo.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Warn("failed to sweep expired sessions", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("swept expired sessions", zap.Int64("removed", n))
	}
}
