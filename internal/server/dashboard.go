package server

import (
	"net/http"
)

type dashboardStats struct {
	Connections    int64 `json:"connections"`
	Startups       int64 `json:"startups"`
	Collaborations int64 `json:"collaborations"`
}

// handleDashboardStats aggregates the caller's counts in one response.
func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	caller := currentIdentity(r).ID

	connCount, err := s.connections.CountAccepted(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	startupCount, err := s.startups.CountByFounder(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	collabCount, err := s.collaborations.Count(r.Context(), caller)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, dashboardStats{
		Connections:    connCount,
		Startups:       startupCount,
		Collaborations: collabCount,
	})
}
