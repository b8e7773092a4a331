package collaborations

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// Service handles informal (non-job) collaborations between a profile
// and a startup via a named role.
type Service struct {
	collabRepo  repository.CollaborationRepository
	startupRepo repository.StartupRepository
	logger      *zap.Logger
}

func NewService(collabRepo repository.CollaborationRepository, startupRepo repository.StartupRepository, logger *zap.Logger) *Service {
	return &Service{
		collabRepo:  collabRepo,
		startupRepo: startupRepo,
		logger:      logger,
	}
}

// Create records a collaboration for the caller on a startup, resolving
// the role by name (creating the lookup row on first use).
func (s *Service) Create(ctx context.Context, callerID, startupID uuid.UUID, roleName string) (*entity.Collaboration, error) {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return nil, common.InvalidArgumentError("role is required")
	}

	if _, err := s.startupRepo.GetByID(ctx, startupID); err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("startup not found")
		}
		return nil, common.WrapError(err, "get startup")
	}

	role, err := s.collabRepo.EnsureRole(ctx, roleName)
	if err != nil {
		return nil, common.WrapError(err, "resolve job role")
	}

	c := &entity.Collaboration{
		ID:        uuid.New(),
		ProfileID: callerID,
		StartupID: startupID,
		JobRoleID: role.ID,
	}
	if err := s.collabRepo.Create(ctx, c); err != nil {
		return nil, common.WrapError(err, "create collaboration")
	}

	s.logger.Info("collaboration created",
		zap.String("collaboration_id", c.ID.String()),
		zap.String("startup_id", startupID.String()),
		zap.String("role", roleName))
	return c, nil
}

// List returns the caller's collaborations.
func (s *Service) List(ctx context.Context, callerID uuid.UUID) ([]*entity.Collaboration, error) {
	list, err := s.collabRepo.ListByProfile(ctx, callerID)
	if err != nil {
		return nil, common.WrapError(err, "list collaborations")
	}
	return list, nil
}

// Roles lists the known role names.
func (s *Service) Roles(ctx context.Context) ([]*entity.JobRole, error) {
	roles, err := s.collabRepo.ListRoles(ctx)
	if err != nil {
		return nil, common.WrapError(err, "list roles")
	}
	return roles, nil
}

// Count reports the caller's collaboration count for the dashboard.
func (s *Service) Count(ctx context.Context, callerID uuid.UUID) (int64, error) {
	return s.collabRepo.CountByProfile(ctx, callerID)
}
