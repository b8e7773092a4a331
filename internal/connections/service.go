package connections

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/constants"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// Service handles the connection request lifecycle. Connections are
// directed-with-acceptance: one row per request, and only the receiver
// may accept or reject it. Accepted edges are read bidirectionally.
type Service struct {
	connRepo    repository.ConnectionRepository
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewService(connRepo repository.ConnectionRepository, profileRepo repository.ProfileRepository, logger *zap.Logger) *Service {
	return &Service{
		connRepo:    connRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Request creates a pending connection from the caller to receiverID.
func (s *Service) Request(ctx context.Context, callerID, receiverID uuid.UUID) (*entity.Connection, error) {
	if callerID == receiverID {
		return nil, common.InvalidArgumentError("cannot connect to yourself")
	}

	if _, err := s.profileRepo.GetByID(ctx, receiverID); err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("receiver profile not found")
		}
		return nil, common.WrapError(err, "get receiver profile")
	}

	exists, err := s.connRepo.PairExists(ctx, callerID, receiverID)
	if err != nil {
		return nil, common.WrapError(err, "check existing connection")
	}
	if exists {
		return nil, common.ConflictError("a connection between these profiles already exists")
	}

	c := &entity.Connection{
		ID:         uuid.New(),
		SenderID:   callerID,
		ReceiverID: receiverID,
		Status:     constants.ConnectionPending,
	}
	if err := s.connRepo.Create(ctx, c); err != nil {
		if repository.IsDuplicate(err) {
			return nil, common.ConflictError("a connection between these profiles already exists")
		}
		return nil, common.WrapError(err, "create connection")
	}

	s.logger.Info("connection requested",
		zap.String("connection_id", c.ID.String()),
		zap.String("sender_id", callerID.String()),
		zap.String("receiver_id", receiverID.String()))
	return c, nil
}

// Pending lists requests awaiting the caller's decision.
func (s *Service) Pending(ctx context.Context, callerID uuid.UUID) ([]*entity.Connection, error) {
	list, err := s.connRepo.Pending(ctx, callerID)
	if err != nil {
		return nil, common.WrapError(err, "list pending connections")
	}
	return list, nil
}

// List returns the caller's accepted connections, both directions.
func (s *Service) List(ctx context.Context, callerID uuid.UUID) ([]*entity.Connection, error) {
	list, err := s.connRepo.ListAccepted(ctx, callerID)
	if err != nil {
		return nil, common.WrapError(err, "list connections")
	}
	return list, nil
}

// Accept transitions a pending request to accepted. The caller must be
// the request's receiver; any other authenticated profile gets 403.
func (s *Service) Accept(ctx context.Context, callerID, connectionID uuid.UUID) (*entity.Connection, error) {
	return s.transition(ctx, callerID, connectionID, constants.ConnectionAccepted)
}

// Reject transitions a pending request to rejected, receiver only.
func (s *Service) Reject(ctx context.Context, callerID, connectionID uuid.UUID) (*entity.Connection, error) {
	return s.transition(ctx, callerID, connectionID, constants.ConnectionRejected)
}

func (s *Service) transition(ctx context.Context, callerID, connectionID uuid.UUID, status constants.ConnectionStatus) (*entity.Connection, error) {
	c, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("connection not found")
		}
		return nil, common.WrapError(err, "get connection")
	}
	if c.ReceiverID != callerID {
		return nil, common.ForbiddenError("only the receiver may act on a connection request")
	}
	if c.Status != constants.ConnectionPending {
		return nil, common.ConflictError("connection request already resolved")
	}

	updated, err := s.connRepo.UpdateStatus(ctx, connectionID, status)
	if err != nil {
		return nil, common.WrapError(err, "update connection status")
	}

	s.logger.Info("connection resolved",
		zap.String("connection_id", connectionID.String()),
		zap.String("status", string(status)))
	return updated, nil
}

// CountAccepted reports the caller's accepted-connection count for the
// dashboard.
func (s *Service) CountAccepted(ctx context.Context, callerID uuid.UUID) (int64, error) {
	return s.connRepo.CountAccepted(ctx, callerID)
}
