package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/internal/common"
)

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	list, err := s.connections.List(r.Context(), currentIdentity(r).ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
}

func (s *Server) handleRequestConnection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReceiverID uuid.UUID `json:"receiver_id"`
	}
	if !s.decodeJSON(w, r, &body) {
		return
	}
	if body.ReceiverID == uuid.Nil {
		s.respondError(w, r, common.InvalidArgumentError("receiver_id is required"))
		return
	}

	c, err := s.connections.Request(r.Context(), currentIdentity(r).ID, body.ReceiverID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, c)
}

func (s *Server) handlePendingConnections(w http.ResponseWriter, r *http.Request) {
	list, err := s.connections.Pending(r.Context(), currentIdentity(r).ID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listResponse{Items: list, Total: int64(len(list))})
}

// handleAcceptConnection accepts a pending request; only the receiver
// may do this, enforced in the service against the verified caller.
func (s *Server) handleAcceptConnection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.connections.Accept(r.Context(), currentIdentity(r).ID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleRejectConnection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	c, err := s.connections.Reject(r.Context(), currentIdentity(r).ID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, c)
}
