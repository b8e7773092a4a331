package profiles

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// AddExperienceRequest carries one work-history entry. Dates are
// YYYY-MM-DD; a missing end date means the position is current.
type AddExperienceRequest struct {
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
}

// AddExperience records a work-history entry on the caller's profile.
func (s *Service) AddExperience(ctx context.Context, callerID uuid.UUID, req AddExperienceRequest) (*entity.Experience, error) {
	v := common.NewValidator()
	v.Field("company", req.Company, common.Required, common.MaxLength(250))
	v.Field("title", req.Title, common.Required, common.MaxLength(250))
	v.Field("start_date", req.StartDate, common.Required)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	start, err := parseYMD(req.StartDate)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("invalid start_date %q", req.StartDate)
	}
	var end *time.Time
	if req.EndDate != nil && strings.TrimSpace(*req.EndDate) != "" {
		e, err := parseYMD(*req.EndDate)
		if err != nil {
			return nil, common.InvalidArgumentErrorf("invalid end_date %q", *req.EndDate)
		}
		if e.Before(start) {
			return nil, common.InvalidArgumentError("end_date must not precede start_date")
		}
		end = &e
	}

	exp := &entity.Experience{
		ID:          uuid.New(),
		ProfileID:   callerID,
		Company:     strings.TrimSpace(req.Company),
		Title:       strings.TrimSpace(req.Title),
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
	}
	if err := s.experienceRepo.Create(ctx, exp); err != nil {
		return nil, common.WrapError(err, "create experience")
	}

	s.logger.Info("experience added", zap.String("profile_id", callerID.String()), zap.String("company", exp.Company))
	return exp, nil
}

// ListExperience returns the caller's work history, newest first.
func (s *Service) ListExperience(ctx context.Context, callerID uuid.UUID) ([]*entity.Experience, error) {
	list, err := s.experienceRepo.ListByProfile(ctx, callerID)
	if err != nil {
		return nil, common.WrapError(err, "list experience")
	}
	return list, nil
}

// DeleteExperience removes one of the caller's own entries.
func (s *Service) DeleteExperience(ctx context.Context, callerID, id uuid.UUID) error {
	exp, err := s.experienceRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return common.NotFoundError("experience not found")
		}
		return common.WrapError(err, "get experience")
	}
	if exp.ProfileID != callerID {
		return common.ForbiddenError("only the owner may delete an experience entry")
	}
	if err := s.experienceRepo.Delete(ctx, id); err != nil {
		return common.WrapError(err, "delete experience")
	}
	return nil
}

// parseYMD parses a date-only value at midnight UTC to match DATE
// semantics.
func parseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
