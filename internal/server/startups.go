package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
	"github.com/engin-hq/engin/internal/startups"
)

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, common.InvalidArgumentError("invalid id in path")
	}
	return id, nil
}

func searchParams(r *http.Request) repository.SearchParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return repository.SearchParams{
		Query: q.Get("q"),
		Page:  page,
		Limit: limit,
	}
}

type listResponse struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
}

// handleListStartups lists one founder's startups (?founderId=) or
// searches across all of them.
func (s *Server) handleListStartups(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("founderId"); v != "" {
		founderID, err := uuid.Parse(v)
		if err != nil {
			s.respondError(w, r, common.InvalidArgumentError("invalid founderId"))
			return
		}
		list, err := s.startups.ListByFounder(r.Context(), founderID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
		return
	}

	list, total, err := s.startups.Search(r.Context(), searchParams(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: total})
}

func (s *Server) handleCreateStartup(w http.ResponseWriter, r *http.Request) {
	var req startups.CreateStartupRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	st, err := s.startups.Create(r.Context(), currentIdentity(r).ID, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, st)
}

func (s *Server) handleGetStartup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	st, err := s.startups.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleUpdateStartup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var patch entity.StartupUpdate
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	st, err := s.startups.Update(r.Context(), currentIdentity(r).ID, id, patch)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteStartup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.startups.Delete(r.Context(), currentIdentity(r).ID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleExportApplications streams the founder's application export as
// an XLSX download.
func (s *Server) handleExportApplications(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	data, err := s.export.ApplicationsXLSX(r.Context(), currentIdentity(r).ID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=applications-%s.xlsx", id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
