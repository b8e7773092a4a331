package profiles

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/engin-hq/engin/constants"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

// Service handles profile business logic.
type Service struct {
	profileRepo    repository.ProfileRepository
	experienceRepo repository.ExperienceRepository
	logger         *zap.Logger
}

// NewService creates a new profile service.
func NewService(profileRepo repository.ProfileRepository, experienceRepo repository.ExperienceRepository, logger *zap.Logger) *Service {
	return &Service{
		profileRepo:    profileRepo,
		experienceRepo: experienceRepo,
		logger:         logger,
	}
}

// CreateProfileRequest represents the onboarding submission, the merged
// output of every step.
type CreateProfileRequest struct {
	Email          string   `json:"email"`
	Username       string   `json:"username"`
	FullName       string   `json:"full_name"`
	Bio            string   `json:"bio"`
	AvatarURL      string   `json:"avatar_url"`
	Location       string   `json:"location"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	UserType       string   `json:"user_type"`
	EmploymentType string   `json:"employment_type"`
	GitHubURL      string   `json:"github_url"`
	LinkedInURL    string   `json:"linkedin_url"`
}

// CompleteOnboarding inserts the profile row for the verified identity.
// The id and fallback email come from the identity, never the client.
// A second submission for the same identity hits the primary key and
// surfaces as a conflict.
func (s *Service) CompleteOnboarding(ctx context.Context, identity *entity.AuthIdentity, req CreateProfileRequest) (*entity.Profile, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = identity.Email
	}

	v := common.NewValidator()
	v.Field("username", username, common.Required, common.MinLength(3), common.MaxLength(50))
	v.Field("email", email, common.Required, common.Email)
	v.Field("bio", req.Bio, common.MaxLength(2000))
	v.Field("github_url", req.GitHubURL, common.AbsoluteURL)
	v.Field("linkedin_url", req.LinkedInURL, common.AbsoluteURL)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	userType, ok := constants.ParseUserType(req.UserType)
	if req.UserType != "" && !ok {
		return nil, common.InvalidArgumentErrorf("unknown user_type %q", req.UserType)
	}
	employmentType, ok := constants.ParseEmploymentType(req.EmploymentType)
	if req.EmploymentType != "" && !ok {
		return nil, common.InvalidArgumentErrorf("unknown employment_type %q", req.EmploymentType)
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = identity.Name
	}
	avatarURL := req.AvatarURL
	if avatarURL == "" {
		avatarURL = identity.AvatarURL
	}

	p := &entity.Profile{
		ID:             identity.ID,
		Email:          email,
		Username:       username,
		FullName:       fullName,
		Bio:            req.Bio,
		AvatarURL:      avatarURL,
		Location:       req.Location,
		Skills:         datatypes.NewJSONSlice(req.Skills),
		Interests:      datatypes.NewJSONSlice(req.Interests),
		UserType:       userType,
		EmploymentType: employmentType,
		GitHubURL:      req.GitHubURL,
		LinkedInURL:    req.LinkedInURL,
	}

	if err := s.profileRepo.Create(ctx, p); err != nil {
		if repository.IsDuplicate(err) {
			if exists, exErr := s.profileRepo.Exists(ctx, identity.ID); exErr == nil && exists {
				return nil, common.ConflictError("profile already exists for this account")
			}
			return nil, common.ConflictError("email or username already taken")
		}
		return nil, common.WrapError(err, "create profile")
	}

	s.logger.Info("profile created", zap.String("profile_id", p.ID.String()), zap.String("username", p.Username))
	return p, nil
}

// Get returns a profile by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	p, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("profile not found")
		}
		return nil, common.WrapError(err, "get profile")
	}
	return p, nil
}

// GetByEmail returns the profile with the given email, or not-found.
// A missing row is always a 404, never an empty success.
func (s *Service) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	p, err := s.profileRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("no profile with that email")
		}
		return nil, common.WrapError(err, "get profile by email")
	}
	return p, nil
}

// GetByUsername returns the profile with the given username, or not-found.
func (s *Service) GetByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	p, err := s.profileRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("no profile with that username")
		}
		return nil, common.WrapError(err, "get profile by username")
	}
	return p, nil
}

// Update applies a partial update for the caller's own profile. The raw
// payload is checked against the field schema before anything is
// decoded, so malformed values are rejected with the full detail list.
func (s *Service) Update(ctx context.Context, callerID uuid.UUID, raw []byte) (*entity.Profile, error) {
	if err := ValidateUpdatePayload(raw); err != nil {
		return nil, err
	}

	var patch entity.ProfileUpdate
	if err := json.Unmarshal(raw, &patch); err != nil {
		return nil, common.InvalidArgumentError("malformed JSON body")
	}

	fields := map[string]any{}
	if patch.Email != nil {
		fields["email"] = strings.TrimSpace(*patch.Email)
	}
	if patch.Username != nil {
		fields["username"] = strings.TrimSpace(*patch.Username)
	}
	if patch.FullName != nil {
		fields["full_name"] = *patch.FullName
	}
	if patch.Bio != nil {
		fields["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		fields["avatar_url"] = *patch.AvatarURL
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.Skills != nil {
		fields["skills"] = datatypes.NewJSONSlice(*patch.Skills)
	}
	if patch.Interests != nil {
		fields["interests"] = datatypes.NewJSONSlice(*patch.Interests)
	}
	if patch.UserType != nil {
		t, ok := constants.ParseUserType(*patch.UserType)
		if !ok {
			return nil, common.InvalidArgumentErrorf("unknown user_type %q", *patch.UserType)
		}
		fields["user_type"] = t
	}
	if patch.EmploymentType != nil {
		t, ok := constants.ParseEmploymentType(*patch.EmploymentType)
		if !ok {
			return nil, common.InvalidArgumentErrorf("unknown employment_type %q", *patch.EmploymentType)
		}
		fields["employment_type"] = t
	}
	if patch.GitHubURL != nil {
		fields["github_url"] = *patch.GitHubURL
	}
	if patch.LinkedInURL != nil {
		fields["linkedin_url"] = *patch.LinkedInURL
	}
	if len(fields) == 0 {
		return nil, common.InvalidArgumentError("no updatable fields in body")
	}

	p, err := s.profileRepo.Update(ctx, callerID, fields)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, common.NotFoundError("profile not found")
		}
		if repository.IsDuplicate(err) {
			return nil, common.ConflictError("email or username already taken")
		}
		return nil, common.WrapError(err, "update profile")
	}

	s.logger.Info("profile updated", zap.String("profile_id", callerID.String()), zap.Int("fields", len(fields)))
	return p, nil
}

// Delete removes the caller's own profile.
func (s *Service) Delete(ctx context.Context, callerID uuid.UUID) error {
	if err := s.profileRepo.Delete(ctx, callerID); err != nil {
		if repository.IsNotFound(err) {
			return common.NotFoundError("profile not found")
		}
		return common.WrapError(err, "delete profile")
	}
	s.logger.Info("profile deleted", zap.String("profile_id", callerID.String()))
	return nil
}

// Exists reports whether the identity already completed onboarding.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.profileRepo.Exists(ctx, id)
}
