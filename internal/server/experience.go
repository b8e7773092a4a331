package server

import (
	"net/http"

	"github.com/engin-hq/engin/internal/profiles"
)

func (s *Server) handleListExperience(w http.ResponseWriter, r *http.Request) {
	list, err := s.profiles.ListExperience(r.Context(), currentIdentity(r).ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
}

func (s *Server) handleAddExperience(w http.ResponseWriter, r *http.Request) {
	var req profiles.AddExperienceRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	exp, err := s.profiles.AddExperience(r.Context(), currentIdentity(r).ID, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.profiles.DeleteExperience(r.Context(), currentIdentity(r).ID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
