package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/engin-hq/engin/internal/auth"
	"github.com/engin-hq/engin/internal/common"
)

const stateCookie = "engin_oauth_state"

// handleLogin starts the OAuth dance for the requested provider.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	provider, err := s.oauth.Lookup(r.URL.Query().Get("provider"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	state, err := auth.RandomToken()
	if err != nil {
		s.respondError(w, r, common.WrapError(err, "generate state"))
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    provider.Name + ":" + state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.Config.AuthCodeURL(state), http.StatusSeeOther)
}

// handleCallback finishes the dance: verify state, exchange the code,
// persist the identity, open a session. Where the user goes next is the
// profile gate's decision, so we just send them to the root.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil {
		s.respondError(w, r, common.UnauthorizedError("missing OAuth state"))
		return
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, MaxAge: -1, Path: "/"})

	providerName, state, ok := splitState(cookie.Value)
	if !ok || state != r.URL.Query().Get("state") {
		s.respondError(w, r, common.UnauthorizedError("OAuth state mismatch"))
		return
	}

	provider, err := s.oauth.Lookup(providerName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	identity, err := provider.FetchIdentity(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		s.logger.Warn("OAuth identity fetch failed", zap.String("provider", providerName), zap.Error(err))
		s.respondError(w, r, common.UnauthorizedError("could not verify identity with provider"))
		return
	}

	sess, _, err := s.sessions.Login(r.Context(), identity)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout closes the session and drops any in-flight onboarding
// flow with it.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := s.sessionToken(r)
	if token != "" {
		if err := s.sessions.Logout(r.Context(), token); err != nil {
			s.logger.Warn("failed to close session", zap.Error(err))
		}
		s.onboarding.Remove(token)
	}
	http.SetCookie(w, &http.Cookie{Name: auth.SessionCookie, MaxAge: -1, Path: "/"})
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func splitState(v string) (provider, state string, ok bool) {
	for i := 0; i < len(v); i++ {
		if v[i] == ':' {
			return v[:i], v[i+1:], true
		}
	}
	return "", "", false
}

// handleLanding is the public landing page stand-in.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"page": "landing"}
	if ident := currentIdentity(r); ident != nil {
		resp["onboarding"] = true
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleDashboardPage is the authenticated dashboard stand-in.
func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"page": "dashboard"})
}
