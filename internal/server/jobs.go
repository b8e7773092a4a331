package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/jobs"
)

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	var startupID *uuid.UUID
	if v := r.URL.Query().Get("startupId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			s.respondError(w, r, common.InvalidArgumentError("invalid startupId"))
			return
		}
		startupID = &id
	}

	list, total, err := s.jobs.List(r.Context(), startupID, searchParams(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: total})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobs.CreateJobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	j, err := s.jobs.Create(r.Context(), currentIdentity(r).ID, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, j)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	j, err := s.jobs.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, j)
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var patch entity.JobUpdate
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	j, err := s.jobs.Update(r.Context(), currentIdentity(r).ID, id, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, j)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.jobs.Delete(r.Context(), currentIdentity(r).ID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
