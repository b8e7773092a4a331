package startups

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// Service handles startup business logic. Every mutation takes the
// caller's verified identity and refuses anyone but the founder.
type Service struct {
	startupRepo repository.StartupRepository
	logger      *zap.Logger
}

func NewService(startupRepo repository.StartupRepository, logger *zap.Logger) *Service {
	return &Service{startupRepo: startupRepo, logger: logger}
}

// CreateStartupRequest carries the fields of the multi-step creation form.
type CreateStartupRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Problem     string  `json:"problem"`
	Solution    string  `json:"solution"`
	Industry    string  `json:"industry"`
	Location    string  `json:"location"`
	TeamSize    int     `json:"team_size"`
	Patent      *string `json:"patent"`
	Funding     float64 `json:"funding"`
}

func (s *Service) Create(ctx context.Context, founderID uuid.UUID, req CreateStartupRequest) (*entity.Startup, error) {
	name := strings.TrimSpace(req.Name)

	v := common.NewValidator()
	v.Field("name", name, common.Required, common.MinLength(2), common.MaxLength(250))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if req.TeamSize < 1 {
		return nil, common.InvalidArgumentError("team_size must be a positive integer")
	}
	if req.Funding < 0 {
		return nil, common.InvalidArgumentError("funding must not be negative")
	}

	st := &entity.Startup{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Problem:     req.Problem,
		Solution:    req.Solution,
		Industry:    req.Industry,
		Location:    req.Location,
		TeamSize:    req.TeamSize,
		Patent:      req.Patent,
		Funding:     req.Funding,
		FounderID:   founderID,
	}
	if err := s.startupRepo.Create(ctx, st); err != nil {
		return nil, common.WrapError(err, "create startup")
	}

	s.logger.Info("startup created", zap.String("startup_id", st.ID.String()), zap.String("founder_id", founderID.String()))
	return st, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Startup, error) {
	st, err := s.startupRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("startup not found")
		}
		return nil, common.WrapError(err, "get startup")
	}
	return st, nil
}

// Search lists startups matching an optional free-text query, paged.
func (s *Service) Search(ctx context.Context, params repository.SearchParams) ([]*entity.Startup, int64, error) {
	list, total, err := s.startupRepo.Search(ctx, params)
	if err != nil {
		return nil, 0, common.WrapError(err, "search startups")
	}
	return list, total, nil
}

func (s *Service) Update(ctx context.Context, callerID, id uuid.UUID, patch entity.StartupUpdate) (*entity.Startup, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st.FounderID != callerID {
		return nil, common.ForbiddenError("only the founder may edit a startup")
	}

	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, common.InvalidArgumentError("name must not be empty")
		}
		fields["name"] = name
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Problem != nil {
		fields["problem"] = *patch.Problem
	}
	if patch.Solution != nil {
		fields["solution"] = *patch.Solution
	}
	if patch.Industry != nil {
		fields["industry"] = *patch.Industry
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.TeamSize != nil {
		if *patch.TeamSize < 1 {
			return nil, common.InvalidArgumentError("team_size must be a positive integer")
		}
		fields["team_size"] = *patch.TeamSize
	}
	if patch.Patent != nil {
		fields["patent"] = *patch.Patent
	}
	if patch.Funding != nil {
		if *patch.Funding < 0 {
			return nil, common.InvalidArgumentError("funding must not be negative")
		}
		fields["funding"] = *patch.Funding
	}
	if len(fields) == 0 {
		return nil, common.InvalidArgumentError("no updatable fields in body")
	}

	updated, err := s.startupRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, common.WrapError(err, "update startup")
	}
	return updated, nil
}

// ListByFounder returns every startup the given profile founded.
func (s *Service) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]*entity.Startup, error) {
	list, err := s.startupRepo.ListByFounder(ctx, founderID)
	if err != nil {
		return nil, common.WrapError(err, "list startups by founder")
	}
	return list, nil
}

// CountByFounder reports how many startups the profile founded, for
// the dashboard.
func (s *Service) CountByFounder(ctx context.Context, founderID uuid.UUID) (int64, error) {
	return s.startupRepo.CountByFounder(ctx, founderID)
}

// Delete removes a startup immediately; there is no soft delete.
func (s *Service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	st, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if st.FounderID != callerID {
		return common.ForbiddenError("only the founder may delete a startup")
	}
	if err := s.startupRepo.Delete(ctx, id); err != nil {
		return common.WrapError(err, "delete startup")
	}
	s.logger.Info("startup deleted", zap.String("startup_id", id.String()))
	return nil
}
