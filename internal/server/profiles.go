package server

import (
	"io"
	"net/http"

	"github.com/engin-hq/engin/internal/common"
)

// handleGetUser looks a profile up by email or username. A miss is a
// 404, never a 200 with an empty body.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	email := q.Get("email")
	username := q.Get("username")

	switch {
	case email != "":
		p, err := s.profiles.GetByEmail(r.Context(), email)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, p)
	case username != "":
		p, err := s.profiles.GetByUsername(r.Context(), username)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, p)
	default:
		// No lookup key: return the caller's own profile.
		p, err := s.profiles.Get(r.Context(), currentIdentity(r).ID)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.respondJSON(w, http.StatusOK, p)
	}
}

// handleUpdateUser applies a schema-validated partial update to the
// caller's own profile.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.respondError(w, r, common.InvalidArgumentError("could not read body"))
		return
	}

	p, err := s.profiles.Update(r.Context(), currentIdentity(r).ID, raw)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.profiles.Delete(r.Context(), currentIdentity(r).ID); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
