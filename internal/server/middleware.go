package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/auth"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
)

type contextKey string

const identityKey contextKey = "identity"

// currentIdentity returns the verified identity the middleware put on
// the request, or nil outside the authenticated tree.
func currentIdentity(r *http.Request) *entity.AuthIdentity {
	if ident, ok := r.Context().Value(identityKey).(*entity.AuthIdentity); ok {
		return ident
	}
	return nil
}

func (s *Server) sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(auth.SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// requireAuth resolves the session cookie to an identity and stores it
// on the context. Every authorization decision downstream reads that
// identity, never a client-supplied id.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.sessions.Resolve(r.Context(), s.sessionToken(r))
		if err != nil {
			s.respondError(w, r, common.UnauthorizedError("authentication required"))
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, ident)
		ctx = common.WithIdentityID(ctx, ident.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// pageAuth guards page routes. Unlike requireAuth it answers an auth
// failure with a redirect to the landing page, not a JSON 401.
func (s *Server) pageAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.sessions.Resolve(r.Context(), s.sessionToken(r))
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, ident)
		ctx = common.WithIdentityID(ctx, ident.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// profileGate implements the landing-page branch: anonymous users see
// the landing page, onboarded users are sent to the dashboard, and a
// failing existence check fails open so a store hiccup never locks
// everyone out.
func (s *Server) profileGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := s.sessions.Resolve(r.Context(), s.sessionToken(r))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		exists, err := s.profiles.Exists(r.Context(), ident.ID)
		if err != nil {
			s.logger.Warn("profile existence check failed, failing open",
				zap.String("identity_id", ident.ID.String()),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}
		if exists {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}

		// Authenticated but not onboarded: let the landing render so
		// onboarding can run.
		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestID tags every request for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(common.WithRequestID(r.Context(), id)))
	})
}
