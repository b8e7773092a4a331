package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/internal/common"
)

func (s *Server) handleListCollaborations(w http.ResponseWriter, r *http.Request) {
	list, err := s.collaborations.List(r.Context(), currentIdentity(r).ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
}

func (s *Server) handleCreateCollaboration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartupID uuid.UUID `json:"startup_id"`
		Role      string    `json:"role"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if body.StartupID == uuid.Nil {
		s.respondError(w, r, common.InvalidArgumentError("startup_id is required"))
		return
	}

	c, err := s.collaborations.Create(r.Context(), currentIdentity(r).ID, body.StartupID, body.Role)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListJobRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.collaborations.Roles(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: roles, Total: int64(len(roles))})
}
