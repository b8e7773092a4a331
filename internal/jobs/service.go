package jobs

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/engin-hq/engin/constants"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// Service handles job postings and applications.
type Service struct {
	jobRepo     repository.JobRepository
	startupRepo repository.StartupRepository
	appRepo     repository.ApplicationRepository
	logger      *zap.Logger
}

func NewService(jobRepo repository.JobRepository, startupRepo repository.StartupRepository, appRepo repository.ApplicationRepository, logger *zap.Logger) *Service {
	return &Service{
		jobRepo:     jobRepo,
		startupRepo: startupRepo,
		appRepo:     appRepo,
		logger:      logger,
	}
}

// CreateJobRequest carries a new job posting.
type CreateJobRequest struct {
	StartupID    uuid.UUID `json:"startup_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	Skills       []string  `json:"skills"`
	Experience   string    `json:"experience"`
	Equity       float64   `json:"equity"`
	Type         string    `json:"type"`
}

// requireFounder loads the startup and refuses callers other than its
// founder.
func (s *Service) requireFounder(ctx context.Context, callerID, startupID uuid.UUID) (*entity.Startup, error) {
	st, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("startup not found")
		}
		return nil, common.WrapError(err, "get startup")
	}
	if st.FounderID != callerID {
		return nil, common.ForbiddenError("only the founder may manage jobs for this startup")
	}
	return st, nil
}

func (s *Service) Create(ctx context.Context, callerID uuid.UUID, req CreateJobRequest) (*entity.Job, error) {
	title := strings.TrimSpace(req.Title)

	v := common.NewValidator()
	v.Field("title", title, common.Required, common.MinLength(2), common.MaxLength(250))
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if req.Equity < 0 || req.Equity > 100 {
		return nil, common.InvalidArgumentError("equity must be a percentage between 0 and 100")
	}

	if _, err := s.requireFounder(ctx, callerID, req.StartupID); err != nil {
		return nil, err
	}

	j := &entity.Job{
		ID:           uuid.New(),
		StartupID:    req.StartupID,
		Title:        title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Skills:       datatypes.NewJSONSlice(req.Skills),
		Experience:   req.Experience,
		Equity:       req.Equity,
		Type:         req.Type,
	}
	if err := s.jobRepo.Create(ctx, j); err != nil {
		return nil, common.WrapError(err, "create job")
	}

	s.logger.Info("job created", zap.String("job_id", j.ID.String()), zap.String("startup_id", req.StartupID.String()))
	return j, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	j, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("job not found")
		}
		return nil, common.WrapError(err, "get job")
	}
	return j, nil
}

func (s *Service) List(ctx context.Context, startupID *uuid.UUID, params repository.SearchParams) ([]*entity.Job, int64, error) {
	list, total, err := s.jobRepo.List(ctx, startupID, params)
	if err != nil {
		return nil, 0, common.WrapError(err, "list jobs")
	}
	return list, total, nil
}

func (s *Service) Update(ctx context.Context, callerID, id uuid.UUID, patch entity.JobUpdate) (*entity.Job, error) {
	j, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireFounder(ctx, callerID, j.StartupID); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, common.InvalidArgumentError("title must not be empty")
		}
		fields["title"] = title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Requirements != nil {
		fields["requirements"] = *patch.Requirements
	}
	if patch.Skills != nil {
		fields["skills"] = datatypes.NewJSONSlice(*patch.Skills)
	}
	if patch.Experience != nil {
		fields["experience"] = *patch.Experience
	}
	if patch.Equity != nil {
		if *patch.Equity < 0 || *patch.Equity > 100 {
			return nil, common.InvalidArgumentError("equity must be a percentage between 0 and 100")
		}
		fields["equity"] = *patch.Equity
	}
	if patch.Type != nil {
		fields["type"] = *patch.Type
	}
	if len(fields) == 0 {
		return nil, common.InvalidArgumentError("no updatable fields in body")
	}

	updated, err := s.jobRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, common.WrapError(err, "update job")
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	j, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.requireFounder(ctx, callerID, j.StartupID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return common.WrapError(err, "delete job")
	}
	s.logger.Info("job deleted", zap.String("job_id", id.String()))
	return nil
}

// Apply creates an application for the caller. The store's unique
// (profile, job) index makes the second application fail whatever the
// first one's status is, with no check-then-insert window.
func (s *Service) Apply(ctx context.Context, callerID, jobID uuid.UUID) (*entity.JobApplication, error) {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.Startup != nil && j.Startup.FounderID == callerID {
		return nil, common.InvalidArgumentError("founders cannot apply to their own job")
	}

	a := &entity.JobApplication{
		ID:        uuid.New(),
		JobID:     jobID,
		ProfileID: callerID,
		Status:    constants.ApplicationPending,
	}
	if err := s.appRepo.Create(ctx, a); err != nil {
		if repository.IsDuplicate(err) {
			return nil, common.ConflictError("an application for this job already exists")
		}
		return nil, common.WrapError(err, "create application")
	}

	s.logger.Info("application created", zap.String("application_id", a.ID.String()), zap.String("job_id", jobID.String()))
	return a, nil
}

// ListApplicationsByJob returns a job's applications to its founder.
func (s *Service) ListApplicationsByJob(ctx context.Context, callerID, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireFounder(ctx, callerID, j.StartupID); err != nil {
		return nil, err
	}
	return s.appRepo.ListByJob(ctx, jobID)
}

// ListApplicationsByProfile returns the caller's own applications.
func (s *Service) ListApplicationsByProfile(ctx context.Context, callerID uuid.UUID) ([]*entity.JobApplication, error) {
	return s.appRepo.ListByProfile(ctx, callerID)
}

// SetApplicationStatus lets the owning founder accept or reject an
// application.
func (s *Service) SetApplicationStatus(ctx context.Context, callerID, applicationID uuid.UUID, status string) (*entity.JobApplication, error) {
	if !constants.ValidApplicationStatus(status) {
		return nil, common.InvalidArgumentErrorf("unknown status %q", status)
	}

	a, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("application not found")
		}
		return nil, common.WrapError(err, "get application")
	}
	if _, err := s.requireFounder(ctx, callerID, a.Job.StartupID); err != nil {
		return nil, err
	}

	updated, err := s.appRepo.UpdateStatus(ctx, applicationID, status)
	if err != nil {
		return nil, common.WrapError(err, "update application status")
	}
	s.logger.Info("application status updated",
		zap.String("application_id", applicationID.String()),
		zap.String("status", status))
	return updated, nil
}

// WithdrawApplication lets an applicant delete their own pending
// application.
func (s *Service) WithdrawApplication(ctx context.Context, callerID, applicationID uuid.UUID) error {
	a, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if repository.IsNotFound(err) {
			return common.NotFoundError("application not found")
		}
		return common.WrapError(err, "get application")
	}
	if a.ProfileID != callerID {
		return common.ForbiddenError("only the applicant may withdraw an application")
	}
	if a.Status != constants.ApplicationPending {
		return common.ConflictError("only pending applications can be withdrawn")
	}
	if err := s.appRepo.Delete(ctx, applicationID); err != nil {
		return common.WrapError(err, "delete application")
	}
	return nil
}
