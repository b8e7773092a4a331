package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/auth"
	"github.com/engin-hq/engin/internal/collaborations"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/connections"
	"github.com/engin-hq/engin/internal/export"
	"github.com/engin-hq/engin/internal/jobs"
	"github.com/engin-hq/engin/internal/onboarding"
	"github.com/engin-hq/engin/internal/profiles"
	"github.com/engin-hq/engin/internal/startups"
)

// Server wires the HTTP surface over the domain services.
type Server struct {
	oauth      *auth.Registry
	sessions   *auth.Sessions
	onboarding *onboarding.Manager

	profiles       *profiles.Service
	startups       *startups.Service
	jobs           *jobs.Service
	connections    *connections.Service
	collaborations *collaborations.Service
	export         *export.Service

	logger *zap.Logger
}

func New(
	oauth *auth.Registry,
	sessions *auth.Sessions,
	onboardingMgr *onboarding.Manager,
	profilesSvc *profiles.Service,
	startupsSvc *startups.Service,
	jobsSvc *jobs.Service,
	connectionsSvc *connections.Service,
	collaborationsSvc *collaborations.Service,
	exportSvc *export.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		oauth:          oauth,
		sessions:       sessions,
		onboarding:     onboardingMgr,
		profiles:       profilesSvc,
		startups:       startupsSvc,
		jobs:           jobsSvc,
		connections:    connectionsSvc,
		collaborations: collaborationsSvc,
		export:         exportSvc,
		logger:         logger,
	}
}

// Routes builds the full handler tree. Auth routes are public; the
// /api tree sits behind the session middleware; the landing path runs
// through the profile gate.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth routes (public)
	mux.HandleFunc("GET /auth/login", s.handleLogin)
	mux.HandleFunc("GET /auth/callback", s.handleCallback)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)

	// Landing and dashboard pages are API-shaped placeholders here; the
	// interesting part is the gate that decides between them.
	mux.Handle("GET /{$}", s.profileGate(http.HandlerFunc(s.handleLanding)))
	mux.Handle("GET /dashboard", s.pageAuth(http.HandlerFunc(s.handleDashboardPage)))

	api := http.NewServeMux()

	// Onboarding
	api.HandleFunc("GET /api/onboarding", s.handleOnboardingState)
	api.HandleFunc("POST /api/onboarding/advance", s.handleOnboardingAdvance)
	api.HandleFunc("POST /api/onboarding/retreat", s.handleOnboardingRetreat)
	api.HandleFunc("POST /api/onboarding/jump", s.handleOnboardingJump)

	// Users
	api.HandleFunc("GET /api/user", s.handleGetUser)
	api.HandleFunc("PUT /api/user", s.handleUpdateUser)
	api.HandleFunc("DELETE /api/user", s.handleDeleteUser)

	// Startups
	api.HandleFunc("GET /api/startup", s.handleListStartups)
	api.HandleFunc("POST /api/startup", s.handleCreateStartup)
	api.HandleFunc("GET /api/startup/{id}", s.handleGetStartup)
	api.HandleFunc("PUT /api/startup/{id}", s.handleUpdateStartup)
	api.HandleFunc("DELETE /api/startup/{id}", s.handleDeleteStartup)
	api.HandleFunc("GET /api/startup/{id}/applications/export", s.handleExportApplications)

	// Jobs
	api.HandleFunc("GET /api/job", s.handleListJobs)
	api.HandleFunc("POST /api/job", s.handleCreateJob)
	api.HandleFunc("GET /api/job/{id}", s.handleGetJob)
	api.HandleFunc("PUT /api/job/{id}", s.handleUpdateJob)
	api.HandleFunc("DELETE /api/job/{id}", s.handleDeleteJob)

	// Applications
	api.HandleFunc("GET /api/job-application", s.handleListApplications)
	api.HandleFunc("POST /api/job-application", s.handleCreateApplication)
	api.HandleFunc("PUT /api/job-application/{id}", s.handleSetApplicationStatus)
	api.HandleFunc("DELETE /api/job-application/{id}", s.handleWithdrawApplication)

	// Connections
	api.HandleFunc("GET /api/connection", s.handleListConnections)
	api.HandleFunc("POST /api/connection", s.handleRequestConnection)
	api.HandleFunc("GET /api/connection/pending", s.handlePendingConnections)
	api.HandleFunc("POST /api/connection/{id}/acceptreq", s.handleAcceptConnection)
	api.HandleFunc("POST /api/connection/{id}/rejectreq", s.handleRejectConnection)

	// Collaborations
	api.HandleFunc("GET /api/collaboration", s.handleListCollaborations)
	api.HandleFunc("POST /api/collaboration", s.handleCreateCollaboration)
	api.HandleFunc("GET /api/jobrole", s.handleListJobRoles)

	// Experience
	api.HandleFunc("GET /api/experience", s.handleListExperience)
	api.HandleFunc("POST /api/experience", s.handleAddExperience)
	api.HandleFunc("DELETE /api/experience/{id}", s.handleDeleteExperience)

	// Dashboard
	api.HandleFunc("GET /api/dashboard/stats", s.handleDashboardStats)

	mux.Handle("/api/", s.requireAuth(api))

	return requestID(mux)
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			s.logger.Warn("failed to encode response", zap.Error(err))
		}
	}
}

// respondError maps the error taxonomy onto HTTP statuses. Internal
// detail is logged, never echoed to the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	msg := err.Error()
	var details []string

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
		details = strings.Split(msg, "; ")
		msg = "validation failed"
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", common.RequestIDFromContext(r.Context())),
			zap.Error(err))
		msg = "internal error"
	}

	s.respondJSON(w, status, errorResponse{Error: msg, Details: details})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, r, common.InvalidArgumentError("malformed JSON body"))
		return false
	}
	return true
}
