package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/internal/common"
)

// handleListApplications lists either the applications for one of the
// founder's jobs (?jobId=) or the caller's own applications.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	caller := currentIdentity(r).ID

	if v := r.URL.Query().Get("jobId"); v != "" {
		jobID, err := uuid.Parse(v)
		if err != nil {
			s.respondError(w, r, common.InvalidArgumentError("invalid jobId"))
			return
		}
		list, err := s.jobs.ListApplicationsByJob(r.Context(), caller, jobID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
		return
	}

	list, err := s.jobs.ListApplicationsByProfile(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
}

func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var body struct {
		JobID uuid.UUID `json:"job_id"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if body.JobID == uuid.Nil {
		s.respondError(w, r, common.InvalidArgumentError("job_id is required"))
		return
	}

	a, err := s.jobs.Apply(r.Context(), currentIdentity(r).ID, body.JobID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, a)
}

// handleSetApplicationStatus lets the owning founder accept or reject.
func (s *Server) handleSetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}

	a, err := s.jobs.SetApplicationStatus(r.Context(), currentIdentity(r).ID, id, body.Status)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleWithdrawApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.jobs.WithdrawApplication(r.Context(), currentIdentity(r).ID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}
